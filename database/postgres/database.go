// Package postgres implements the file and user repositories on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/filedock"
)

type database struct {
	pool   *pgxpool.Pool
	tables filedock.Tables
}

// Connect establishes a connection to PostgreSQL.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables filedock.Tables) (*database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &database{
		pool:   pool,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// Migrate runs database migrations to create required tables.
// The users table is created first since the files table references it.
func (d *database) Migrate(ctx context.Context) error {
	if err := createUsersTable(ctx, d.pool, d.tables.Users); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := createFilesTable(ctx, d.pool, d.tables.Files, d.tables.Users); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	validations := getTableValidations(d.tables)

	for _, validation := range validations {
		if err := validateTableSchema(ctx, d.pool, validation.tableName, validation.expectedSchema); err != nil {
			return fmt.Errorf("validate schema %s: %w", validation.tableName, err)
		}
	}

	return nil
}

// FileRepo returns the file repository backed by this connection.
func (d *database) FileRepo() filedock.FileRepo {
	return &fileRepo{pool: d.pool, tableName: d.tables.Files}
}

// UserRepo returns the user repository backed by this connection.
func (d *database) UserRepo() filedock.UserRepo {
	return &userRepo{pool: d.pool, tableName: d.tables.Users}
}

// Close closes the database connection pool.
func (d *database) Close() error {
	d.pool.Close()
	return nil
}
