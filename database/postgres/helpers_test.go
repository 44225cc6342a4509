package postgres_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testConnStr  string
	testConnOnce sync.Once
)

// getSharedConnectionString starts a single PostgreSQL container shared by all
// tests and returns its connection string. Tests isolate themselves with
// unique table names instead of separate containers.
func getSharedConnectionString(t *testing.T) string {
	t.Helper()

	testConnOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			if terr := testcontainers.TerminateContainer(pgContainer); terr != nil {
				t.Logf("failed to terminate container: %s", terr)
			}
			t.Fatalf("failed to get connection string: %v", err)
		}

		testConnStr = connectionStr
	})

	return testConnStr
}

type testDB struct {
	Files filedock.FileRepo
	Users filedock.UserRepo
}

// setupTestRepos connects to the shared container with unique table names,
// migrates them, and returns ready repositories. Tables are dropped when the
// test finishes.
func setupTestRepos(t *testing.T) testDB {
	t.Helper()

	ctx := context.Background()
	suffix := getRandomString(t)
	tables := filedock.Tables{
		Files: fmt.Sprintf("file_data_%s", suffix),
		Users: fmt.Sprintf("users_%s", suffix),
	}

	db, err := postgres.Connect(ctx, getSharedConnectionString(t), tables)
	require.NoError(t, err, "failed to connect")

	t.Cleanup(func() {
		_ = db.DropTables(context.Background())
		_ = db.Close()
	})

	require.NoError(t, db.Ping(ctx), "failed to ping")
	require.NoError(t, db.Migrate(ctx), "failed to migrate")
	require.NoError(t, db.Validate(ctx), "failed to validate schema")

	return testDB{Files: db.FileRepo(), Users: db.UserRepo()}
}

// getRandomString generates a random string for unique test identifiers.
func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

func mustCreateUser(t *testing.T, users filedock.UserRepo, username, email string) filedock.User {
	t.Helper()
	u, err := users.Create(context.Background(), filedock.User{Username: username, Email: email})
	require.NoError(t, err)
	return u
}

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
