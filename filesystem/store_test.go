package filesystem_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/filedock"
	"github.com/sagarc03/filedock/filesystem"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()

	tempDir := t.TempDir()
	root, err := os.OpenRoot(tempDir)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	return filesystem.NewFileStorage(root), tempDir
}

func TestStore_Get_Success(t *testing.T) {
	store, tempDir := newTestStore(t)

	content := []byte("png bytes")
	err := os.WriteFile(filepath.Join(tempDir, "7_photo.png"), content, 0o644)
	assert.NoError(t, err)

	ctx := context.Background()
	result, err := store.Get(ctx, "7_photo.png")

	assert.NoError(t, err)
	assert.NotNil(t, result)

	readContent, err := io.ReadAll(result)
	assert.NoError(t, err)
	assert.Equal(t, content, readContent)

	err = result.Close()
	assert.NoError(t, err)
}

func TestStore_Get_ContextCanceled(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := store.Get(ctx, "7_photo.png")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	ctx := context.Background()
	result, err := store.Get(ctx, "missing.png")

	assert.ErrorIs(t, err, filedock.ErrNotFound)
	assert.Nil(t, result)
}

func TestStore_Put_Success(t *testing.T) {
	store, tempDir := newTestStore(t)

	content := []byte("document content")
	ctx := context.Background()

	err := store.Put(ctx, "3_report.docx", bytes.NewReader(content), int64(len(content)), filedock.ContentTypeDOCX)
	assert.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(tempDir, "3_report.docx"))
	assert.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestStore_Put_Overwrites(t *testing.T) {
	store, tempDir := newTestStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "1_a.png", bytes.NewReader([]byte("old")), 3, filedock.ContentTypePNG)
	assert.NoError(t, err)

	err = store.Put(ctx, "1_a.png", bytes.NewReader([]byte("new")), 3, filedock.ContentTypePNG)
	assert.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(tempDir, "1_a.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), written)
}

func TestStore_Put_ContextCanceled(t *testing.T) {
	store, tempDir := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "1_a.png", bytes.NewReader([]byte("data")), 4, filedock.ContentTypePNG)
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(tempDir, "1_a.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Put_LeavesNoTempFileOnFailure(t *testing.T) {
	store, tempDir := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = store.Put(ctx, "1_a.png", bytes.NewReader([]byte("data")), 4, filedock.ContentTypePNG)

	entries, err := os.ReadDir(tempDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Delete_Success(t *testing.T) {
	store, tempDir := newTestStore(t)

	err := os.WriteFile(filepath.Join(tempDir, "7_photo.png"), []byte("x"), 0o644)
	assert.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, store.Delete(ctx, "7_photo.png"))

	_, statErr := os.Stat(filepath.Join(tempDir, "7_photo.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Delete_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	ctx := context.Background()
	assert.ErrorIs(t, store.Delete(ctx, "missing.png"), filedock.ErrNotFound)
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	content := []byte("round trip body")
	err := store.Put(ctx, "9_notes.docx", bytes.NewReader(content), int64(len(content)), filedock.ContentTypeDOCX)
	assert.NoError(t, err)

	rc, err := store.Get(ctx, "9_notes.docx")
	assert.NoError(t, err)

	got, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, content, got)
	assert.NoError(t, rc.Close())
}
