package account

import (
	"context"
	"sync"
)

// MemoryRepository keeps user accounts in process memory.
type MemoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]User
	byUsername map[string]int64
}

// NewMemoryRepository constructs an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:     1,
		users:      make(map[int64]User),
		byUsername: make(map[string]int64),
	}
}

// Create assigns the next id and stores the account. The id increment and
// map insertions happen under one lock.
func (r *MemoryRepository) Create(ctx context.Context, data NewUser) (User, error) {
	if err := data.Validate(); err != nil {
		return User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[data.Username]; taken {
		return User{}, ErrUsernameTaken
	}

	user := User{
		ID:           r.nextID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
	}
	r.nextID++
	r.users[user.ID] = user
	r.byUsername[user.Username] = user.ID

	return user, nil
}

// Get returns the account with the given id.
func (r *MemoryRepository) Get(ctx context.Context, id int64) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername resolves an account through the username index.
func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return r.users[id], nil
}
