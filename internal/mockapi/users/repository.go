package users

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// MemoryRepository keeps users in process memory. Emails are matched
// case-insensitively.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrAlreadyExists
	}
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[key] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}
