package account

import "fmt"

// User is an account record. No HTTP route exposes it yet; the store
// contract defines it and the bootstrap path in main seeds one.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// NewUser carries the fields required to create an account.
type NewUser struct {
	Username     string
	PasswordHash string
}

// Validate checks the record shape before it reaches a store.
func (n NewUser) Validate() error {
	if n.Username == "" {
		return fmt.Errorf("%w: username is empty", ErrInvalidRecord)
	}
	if n.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is empty", ErrInvalidRecord)
	}
	return nil
}
