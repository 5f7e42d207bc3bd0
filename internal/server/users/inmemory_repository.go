package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/google/uuid"
)

// InMemoryRepository is a mutex-guarded map implementation used in tests and
// for running the server without a database. It gives the same
// one-winner-per-username guarantee as the postgres unique index because
// check and insert happen under one lock.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := &User{
		ID:           uuid.NewString(),
		UserName:     user.UserName,
		Salt:         append([]byte(nil), user.Salt...),
		PasswordHash: append([]byte(nil), user.PasswordHash...),
		TokenVersion: 1,
		CreatedAt:    time.Now(),
	}
	r.users[user.UserName] = stored

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) IncrementTokenVersion(ctx context.Context, login string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[login]
	if !ok {
		return 0, common.ErrorNotFound
	}

	stored.TokenVersion++
	return stored.TokenVersion, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, login string, salt, passwordHash []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[login]
	if !ok {
		return 0, common.ErrorNotFound
	}

	stored.Salt = append([]byte(nil), salt...)
	stored.PasswordHash = append([]byte(nil), passwordHash...)
	stored.TokenVersion++
	return stored.TokenVersion, nil
}
