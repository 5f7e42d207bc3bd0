package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from the system CSPRNG.
// crypto/rand.Read never fails on supported platforms; a failure here means
// the process cannot do anything security-relevant, so it panics.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
