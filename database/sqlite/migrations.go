package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/filedock"
)

// quoteIdentifier safely quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

type TableMigration struct {
	TableName string
	Up        func(ctx context.Context, db *sql.DB) error
	Down      func(ctx context.Context, db *sql.DB) error
}

// getTableMigrations returns all table migrations for the app. Users come
// first: the files table references them.
func getTableMigrations(tables filedock.Tables) []TableMigration {
	return []TableMigration{
		{
			TableName: tables.Users,
			Up:        createUsersTable(tables.Users),
			Down:      dropTable(tables.Users),
		},
		{
			TableName: tables.Files,
			Up:        createFilesTable(tables.Files, tables.Users),
			Down:      dropTable(tables.Files),
		},
	}
}

func Migrate(ctx context.Context, db *sql.DB, tables filedock.Tables) error {
	migrations := getTableMigrations(tables)

	for _, migration := range migrations {
		if err := migration.Up(ctx, db); err != nil {
			return fmt.Errorf("migrate up %s: %w", migration.TableName, err)
		}
	}

	return nil
}

func DropTables(ctx context.Context, db *sql.DB, tables filedock.Tables) error {
	migrations := getTableMigrations(tables)

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if err := migration.Down(ctx, db); err != nil {
			return fmt.Errorf("migrate down %s: %w", migration.TableName, err)
		}
	}

	return nil
}

func createUsersTable(tableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		quotedTable := quoteIdentifier(tableName)
		indexUsername := quoteIdentifier(fmt.Sprintf("idx_%s_username_lower", tableName))
		indexEmail := quoteIdentifier(fmt.Sprintf("idx_%s_email_lower", tableName))

		query := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
				username TEXT NOT NULL,
				email TEXT NOT NULL
			);

			CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (LOWER(username));
			CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (LOWER(email));
		`,
			quotedTable,
			indexUsername, quotedTable,
			indexEmail, quotedTable,
		)

		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create users table: %w", err)
		}
		return nil
	}
}

func createFilesTable(tableName, usersTableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		quotedTable := quoteIdentifier(tableName)
		quotedUsers := quoteIdentifier(usersTableName)
		indexOwnerRecency := quoteIdentifier(fmt.Sprintf("idx_%s_owner_recency", tableName))
		indexName := quoteIdentifier(fmt.Sprintf("idx_%s_file_name", tableName))

		query := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
				file_name TEXT NOT NULL,
				file_type TEXT NOT NULL,
				user_id INTEGER NOT NULL REFERENCES %s (id),
				last_updated_on TEXT NOT NULL
			);

			CREATE INDEX IF NOT EXISTS %s ON %s (user_id, last_updated_on DESC, id DESC);
			CREATE INDEX IF NOT EXISTS %s ON %s (file_name);
		`,
			quotedTable, quotedUsers,
			indexOwnerRecency, quotedTable,
			indexName, quotedTable,
		)

		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create files table: %w", err)
		}
		return nil
	}
}

func dropTable(tableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		query := fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdentifier(tableName))
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("drop table %s: %w", tableName, err)
		}
		return nil
	}
}
