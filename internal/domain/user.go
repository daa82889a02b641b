package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Email        string
	CreatedAt    time.Time
}

// Session is an authenticated login, addressed by an opaque token held
// in the client's cookie.
type Session struct {
	Token    string
	Username string
}
