// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// DeletedUserName is the sentinel a soft-deleted account's name is set to.
const DeletedUserName = "(deleted)"

// User is a user row. Email is a pointer because soft-deleted accounts
// have it nulled; a live account always has one.
type User struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Email          *string   `db:"email"`
	EmailConfirmed bool      `db:"email_confirmed"`
	IsAdmin        bool      `db:"is_admin"`
	Deleted        bool      `db:"deleted"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	CredentialsID  int64     `db:"credentials_id"`
}

// Credential holds the one-way password hash, one row per live user,
// owned exclusively by that user.
type Credential struct {
	ID   int64  `db:"id"`
	Hash string `db:"hash"`
}

func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
