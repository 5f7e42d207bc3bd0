package users

import "time"

// User is the stored credential record. UserName is the unique identifier
// clients authenticate with; TokenVersion is bumped to revoke every token
// issued before the bump.
type User struct {
	ID           string
	UserName     string
	Salt         []byte
	PasswordHash []byte
	TokenVersion int64
	CreatedAt    time.Time
}
