package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/matchroom/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// Create inserts the user and fills in the generated id and initial token
// version. The unique index on username makes concurrent registrations for
// the same name resolve to one winner; losers get common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (username, salt, password_hash)
         VALUES ($1, $2, $3)
		 RETURNING id, token_version, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Salt, user.PasswordHash).Scan(&user.ID, &user.TokenVersion, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	query :=
		`SELECT id, username, salt, password_hash, token_version FROM users
		 WHERE username = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, login).Scan(
		&user.ID, &user.UserName, &user.Salt, &user.PasswordHash, &user.TokenVersion)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) IncrementTokenVersion(ctx context.Context, login string) (int64, error) {
	query :=
		`UPDATE users SET token_version = token_version + 1
		 WHERE username = $1
		 RETURNING token_version
		 `

	var version int64
	err := r.db.QueryRowContext(ctx, query, login).Scan(&version)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return version, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, login string, salt, passwordHash []byte) (int64, error) {
	query :=
		`UPDATE users SET salt = $2, password_hash = $3, token_version = token_version + 1
		 WHERE username = $1
		 RETURNING token_version
		 `

	var version int64
	err := r.db.QueryRowContext(ctx, query, login, salt, passwordHash).Scan(&version)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return version, nil
}
