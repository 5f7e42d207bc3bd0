package password

import (
	"bytes"
	"testing"
)

func TestHash_Deterministic(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef")
	a := Hash("s3cret", salt)
	b := Hash("s3cret", salt)
	if !bytes.Equal(a, b) {
		t.Fatal("same password and salt produced different digests")
	}
	if len(a) != argonKeyLen {
		t.Fatalf("digest length %d, want %d", len(a), argonKeyLen)
	}
}

func TestHash_SaltChangesDigest(t *testing.T) {
	t.Parallel()

	a := Hash("s3cret", []byte("0123456789abcdef"))
	b := Hash("s3cret", []byte("fedcba9876543210"))
	if bytes.Equal(a, b) {
		t.Fatal("different salts produced identical digests")
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	salt := NewSalt()
	digest := Hash("correct horse", salt)

	if !Verify("correct horse", salt, digest) {
		t.Fatal("correct password rejected")
	}
	if Verify("wrong horse", salt, digest) {
		t.Fatal("wrong password accepted")
	}
}

func TestNewSalt_Length(t *testing.T) {
	t.Parallel()

	if got := len(NewSalt()); got != SaltLength {
		t.Fatalf("salt length %d, want %d", got, SaltLength)
	}
}
