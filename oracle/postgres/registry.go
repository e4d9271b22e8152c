// Package postgres provides a SQL-backed username registry oracle.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/regkit/usernamer/database"
	"github.com/regkit/usernamer/model"
)

// DBTX is the subset of database/sql used by the registry. *sql.DB and
// *sql.Tx both satisfy it.
type DBTX interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ model.Oracle = (*Registry)(nil)

// Registry answers username-existence probes against the usernames table.
type Registry struct {
	db DBTX
}

// NewRegistry creates a registry over an existing connection.
func NewRegistry(db DBTX) *Registry {
	return &Registry{db: db}
}

// Open connects to the database, verifies the connection and brings the
// registry schema up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return db, nil
}

// CheckUsername returns model.ErrUsernameInUse when the name is taken.
func (r *Registry) CheckUsername(ctx context.Context, username string) error {
	query := `SELECT EXISTS(SELECT 1 FROM usernames WHERE localpart = $1)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&taken); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if taken {
		return model.ErrUsernameInUse
	}
	return nil
}

// Reserve atomically claims a username, failing with model.ErrUsernameInUse
// when another registration holds it already.
func (r *Registry) Reserve(ctx context.Context, username string) error {
	query := `INSERT INTO usernames (localpart) VALUES ($1) ON CONFLICT (localpart) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to reserve username: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read reserve result: %w", err)
	}
	if affected == 0 {
		return model.ErrUsernameInUse
	}

	return nil
}
