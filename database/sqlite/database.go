// Package sqlite implements the file and user repositories using SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/filedock"

	_ "modernc.org/sqlite" // SQLite driver
)

// database provides SQLite database operations.
type database struct {
	db     *sql.DB
	tables filedock.Tables
}

// Connect establishes a connection to SQLite.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables filedock.Tables) (*database, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	return &database{
		db:     db,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate runs database migrations to create required tables.
func (d *database) Migrate(ctx context.Context) error {
	return Migrate(ctx, d.db, d.tables)
}

// Validate checks that the database schema matches expected structure.
func (d *database) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.tables)
}

// FileRepo returns the file repository backed by this connection.
func (d *database) FileRepo() filedock.FileRepo {
	return &fileRepo{db: d.db, tableName: d.tables.Files}
}

// UserRepo returns the user repository backed by this connection.
func (d *database) UserRepo() filedock.UserRepo {
	return &userRepo{db: d.db, tableName: d.tables.Users}
}

// Close closes the database connection.
func (d *database) Close() error {
	return d.db.Close()
}
