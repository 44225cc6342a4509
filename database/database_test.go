package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/database"
)

func TestConnect_SQLite(t *testing.T) {
	ctx := context.Background()

	cfg := database.Config{
		Type: "sqlite",
		DSN:  filepath.Join(t.TempDir(), "filedock.db"),
		Tables: filedock.Tables{
			Files: "file_data",
			Users: "users",
		},
	}

	repos, cleanup, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NotNil(t, repos.Files)
	require.NotNil(t, repos.Users)

	// Schema is migrated and usable after Connect returns.
	user, err := repos.Users.Create(ctx, filedock.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Positive(t, user.ID)

	file, err := repos.Files.Create(ctx, filedock.File{
		FileName:      "report.docx",
		FileType:      filedock.ContentTypeDOCX,
		UserID:        user.ID,
		LastUpdatedOn: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Positive(t, file.ID)
}

func TestConnect_UnsupportedType(t *testing.T) {
	cfg := database.Config{
		Type:   "mysql",
		DSN:    "dsn",
		Tables: filedock.Tables{Files: "file_data", Users: "users"},
	}

	_, _, err := database.Connect(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestConnect_InvalidTableName(t *testing.T) {
	cfg := database.Config{
		Type:   "sqlite",
		DSN:    filepath.Join(t.TempDir(), "filedock.db"),
		Tables: filedock.Tables{Files: "file-data; drop", Users: "users"},
	}

	_, _, err := database.Connect(context.Background(), cfg)
	require.Error(t, err)
}
