package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DropTables removes the files and users tables. Intended for tests.
// The files table goes first because of its foreign key on users.
func (d *database) DropTables(ctx context.Context) error {
	for _, tableName := range []string{d.tables.Files, d.tables.Users} {
		quotedTable := pgx.Identifier{tableName}.Sanitize()
		if _, err := d.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quotedTable)); err != nil {
			return fmt.Errorf("drop table %s: %w", tableName, err)
		}
	}
	return nil
}

func createUsersTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexUsername := pgx.Identifier{fmt.Sprintf("idx_%s_username_lower", tableName)}.Sanitize()
	indexEmail := pgx.Identifier{fmt.Sprintf("idx_%s_email_lower", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS %s
		ON %s (LOWER(username));

		CREATE UNIQUE INDEX IF NOT EXISTS %s
		ON %s (LOWER(email));
	`,
		quotedTable,
		indexUsername, quotedTable,
		indexEmail, quotedTable,
	)

	_, err := pool.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func createFilesTable(ctx context.Context, pool *pgxpool.Pool, tableName, usersTableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	quotedUsers := pgx.Identifier{usersTableName}.Sanitize()
	indexRecency := pgx.Identifier{fmt.Sprintf("idx_%s_recency", tableName)}.Sanitize()
	indexOwnerRecency := pgx.Identifier{fmt.Sprintf("idx_%s_owner_recency", tableName)}.Sanitize()
	indexName := pgx.Identifier{fmt.Sprintf("idx_%s_file_name", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			file_name TEXT NOT NULL,
			file_type TEXT NOT NULL,
			user_id BIGINT NOT NULL REFERENCES %s (id),
			last_updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (last_updated_on DESC, id DESC);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (user_id, last_updated_on DESC, id DESC);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (file_name text_pattern_ops);
	`,
		quotedTable, quotedUsers,
		indexRecency, quotedTable,
		indexOwnerRecency, quotedTable,
		indexName, quotedTable,
	)

	_, err := pool.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create files table: %w", err)
	}
	return nil
}
