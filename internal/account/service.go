package account

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const maxPasswordLength = 72 // bcrypt limit

// UserStore abstracts the persistence layer.
type UserStore interface {
	Create(ctx context.Context, data NewUser) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// Service manages user accounts. Passwords are bcrypt-hashed before they
// reach a store; plaintext is never persisted.
type Service struct {
	store      UserStore
	bcryptCost int
}

// NewService constructs an account service.
func NewService(store UserStore, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, bcryptCost: bcryptCost}
}

// Register hashes the password and creates the account.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if len(password) == 0 || len(password) > maxPasswordLength {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.store.Create(ctx, NewUser{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.store.Get(ctx, id)
}

// GetByUsername returns the account registered under the username.
func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.store.GetByUsername(ctx, username)
}

// VerifyPassword reports whether the password matches the stored hash.
func (s *Service) VerifyPassword(user User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
