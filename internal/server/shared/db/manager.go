// Package db wires the credential store behind a repository manager so the
// rest of the server does not care whether it talks to postgres or to the
// in-memory store.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/matchroom/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
