package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashesPassword(t *testing.T) {
	service := NewService(NewMemoryRepository(), bcrypt.MinCost)

	user, err := service.Register(context.Background(), "owner", "s3cret-password")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.PasswordHash == "s3cret-password" {
		t.Fatalf("password stored in plaintext")
	}
	if !service.VerifyPassword(user, "s3cret-password") {
		t.Fatalf("expected password to verify against stored hash")
	}
	if service.VerifyPassword(user, "wrong-password") {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	service := NewService(NewMemoryRepository(), bcrypt.MinCost)

	if _, err := service.Register(context.Background(), "owner", "password-one"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := service.Register(context.Background(), "owner", "password-two"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterRejectsBadPasswords(t *testing.T) {
	service := NewService(NewMemoryRepository(), bcrypt.MinCost)

	if _, err := service.Register(context.Background(), "owner", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for empty password, got %v", err)
	}
	long := strings.Repeat("p", 73)
	if _, err := service.Register(context.Background(), "owner", long); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for oversized password, got %v", err)
	}
}

func TestLookups(t *testing.T) {
	service := NewService(NewMemoryRepository(), bcrypt.MinCost)

	created, err := service.Register(context.Background(), "owner", "s3cret-password")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	byID, err := service.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if byID.Username != "owner" {
		t.Fatalf("unexpected username: %s", byID.Username)
	}

	byName, err := service.GetByUsername(context.Background(), "owner")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, byName.ID)
	}

	if _, err := service.Get(context.Background(), created.ID+100); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.GetByUsername(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryRepositoryAssignsMonotonicIDs(t *testing.T) {
	repo := NewMemoryRepository()

	var lastID int64
	for _, name := range []string{"alice", "bob", "carol"} {
		user, err := repo.Create(context.Background(), NewUser{Username: name, PasswordHash: "hash"})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if user.ID <= lastID {
			t.Fatalf("expected id > %d, got %d", lastID, user.ID)
		}
		lastID = user.ID
	}
}
