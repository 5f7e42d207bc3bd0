package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/matchroom/internal/server/users"
)

// InMemoryRepositoryManager backs the server with the in-memory user store.
// Useful for tests and for running without a database; nothing survives a
// restart.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
