package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/database/postgres"
	"github.com/sagarc03/filedock/database/sqlite"
)

// Config holds the configuration for connecting to a metadata backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=sqlite postgres"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" yaml:"dsn" validate:"required"`
	// Tables names the file and user tables
	Tables filedock.Tables `mapstructure:"tables" yaml:"tables"`
}

// Repos bundles the repositories a backend provides.
type Repos struct {
	Files filedock.FileRepo
	Users filedock.UserRepo
}

// Connect establishes a connection to the configured database backend,
// runs migrations, validates the schema, and returns the repositories.
// The returned cleanup function should be called to close the connection.
func Connect(ctx context.Context, cfg Config) (Repos, func(), error) {
	if err := cfg.Tables.Validate(); err != nil {
		return Repos{}, nil, fmt.Errorf("connect: %w", err)
	}

	switch cfg.Type {
	case "sqlite":
		return connectSQLite(ctx, cfg.DSN, cfg.Tables)
	case "postgres":
		return connectPostgres(ctx, cfg.DSN, cfg.Tables)
	default:
		return Repos{}, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func connectSQLite(ctx context.Context, dsn string, tables filedock.Tables) (Repos, func(), error) {
	db, err := sqlite.Connect(ctx, dsn, tables)
	if err != nil {
		return Repos{}, nil, fmt.Errorf("connect sqlite: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	if err = db.Validate(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("validate sqlite schema: %w", err)
	}

	cleanup := func() { _ = db.Close() }

	return Repos{Files: db.FileRepo(), Users: db.UserRepo()}, cleanup, nil
}

func connectPostgres(ctx context.Context, dsn string, tables filedock.Tables) (Repos, func(), error) {
	db, err := postgres.Connect(ctx, dsn, tables)
	if err != nil {
		return Repos{}, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("migrate postgres: %w", err)
	}

	if err = db.Validate(ctx); err != nil {
		_ = db.Close()
		return Repos{}, nil, fmt.Errorf("validate postgres schema: %w", err)
	}

	cleanup := func() { _ = db.Close() }

	return Repos{Files: db.FileRepo(), Users: db.UserRepo()}, cleanup, nil
}
