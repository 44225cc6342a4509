package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/database/sqlite"
	"github.com/stretchr/testify/require"
)

type testDB struct {
	Files filedock.FileRepo
	Users filedock.UserRepo
}

// setupTestRepos connects to a fresh file-backed database under t.TempDir,
// migrates it, and returns ready repositories.
func setupTestRepos(t *testing.T) testDB {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "filedock_test.db")
	tables := filedock.Tables{Files: "file_data", Users: "users"}

	db, err := sqlite.Connect(ctx, dsn, tables)
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx), "failed to migrate")
	require.NoError(t, db.Validate(ctx), "failed to validate schema")

	return testDB{Files: db.FileRepo(), Users: db.UserRepo()}
}

// mustCreateUser inserts a user record and fails the test on error.
func mustCreateUser(t *testing.T, users filedock.UserRepo, username, email string) filedock.User {
	t.Helper()
	u, err := users.Create(context.Background(), filedock.User{Username: username, Email: email})
	require.NoError(t, err)
	return u
}

// mustCreateFile inserts a file record owned by userID with the given
// timestamp and fails the test on error.
func mustCreateFile(t *testing.T, files filedock.FileRepo, name string, userID int64, updatedOn time.Time) filedock.File {
	t.Helper()
	f, err := files.Create(context.Background(), filedock.File{
		FileName:      name,
		FileType:      "image/png",
		UserID:        userID,
		LastUpdatedOn: updatedOn,
	})
	require.NoError(t, err)
	return f
}
