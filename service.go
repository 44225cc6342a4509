package filedock

import (
	"context"
	"fmt"
	"io"
	"time"
)

// FileRepo defines the interface for file metadata persistence.
// Implementations must handle concurrent access safely.
//
// All methods accept a context for cancellation and timeout control.
type FileRepo interface {
	// Create inserts a new file record and returns it with the generated
	// identifier populated.
	Create(ctx context.Context, file File) (File, error)

	// Rename updates the stored file name of an existing record.
	// Returns ErrNotFound if no record has the given identifier.
	Rename(ctx context.Context, id int64, fileName string) error

	// Delete removes a file record. Returns ErrNotFound if absent.
	// Used to compensate a failed blob write after the metadata insert.
	Delete(ctx context.Context, id int64) error

	// FindByID retrieves a file record by identifier.
	// Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id int64) (File, error)

	// FindByNamePrefix retrieves all records whose stored name starts with
	// the given prefix, newest first.
	FindByNamePrefix(ctx context.Context, prefix string) ([]File, error)

	// List retrieves one page of file records matching the query, ordered
	// by last_updated_on descending with id descending as tie-break. The
	// query must already be normalized.
	List(ctx context.Context, q FileListQuery) (FileListResult, error)
}

// UserRepo defines the interface for user record persistence. Email and
// username lookups are case-insensitive.
type UserRepo interface {
	// Create inserts a new user and returns it with the generated
	// identifier populated.
	Create(ctx context.Context, user User) (User, error)

	// UpdateEmail replaces an existing user's email.
	// Returns ErrNotFound if no record has the given identifier.
	UpdateEmail(ctx context.Context, id int64, email string) error

	// FindByID retrieves a user by identifier. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id int64) (User, error)

	// FindByEmail retrieves a user by email, ignoring case.
	// Returns ErrNotFound if absent.
	FindByEmail(ctx context.Context, email string) (User, error)

	// FindByUsername retrieves a user by username, ignoring case.
	// Returns ErrNotFound if absent.
	FindByUsername(ctx context.Context, username string) (User, error)
}

// BlobStore defines the interface for file content storage. Implementations
// can use an S3-compatible object store or a local directory; the bucket (or
// root directory) is fixed at adapter construction.
type BlobStore interface {
	// Put stores content under the given key, overwriting any existing
	// object. Size may be -1 when unknown.
	Put(ctx context.Context, key string, content io.Reader, size int64, contentType string) error

	// Get opens the object stored under the given key for reading.
	// Returns ErrNotFound if no such object exists. The caller is
	// responsible for closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// FileService orchestrates upload, download, and listing of files across the
// metadata store and the blob store.
type FileService struct {
	files          FileRepo
	users          UserRepo
	blobs          BlobStore
	cleanupTimeout time.Duration
}

// FileServiceConfig holds configuration options for FileService.
type FileServiceConfig struct {
	CleanupTimeout time.Duration // timeout for compensating cleanup (default: 30s)
}

func NewFileService(files FileRepo, users UserRepo, blobs BlobStore, cfg FileServiceConfig) *FileService {
	cleanupTimeout := cfg.CleanupTimeout
	if cleanupTimeout <= 0 {
		cleanupTimeout = 30 * time.Second
	}
	return &FileService{
		files:          files,
		users:          users,
		blobs:          blobs,
		cleanupTimeout: cleanupTimeout,
	}
}

// Upload validates the input, stores the file's metadata and content, and
// returns the persisted record.
//
// The metadata record is created first so its generated identifier can drive
// the storage key: insert with the original name, derive "<id>_<name>",
// rename the record to the key, then write the blob under it. If the blob
// write fails the record is deleted again, so a failed upload never leaves
// metadata pointing at a missing blob. Cleanup runs on a background context
// with the configured timeout so it completes even if the request context
// was cancelled.
//
// Error kinds: ErrInvalidInput for a disallowed content type, empty
// filename, or non-positive user id; ErrNotFound if the user does not
// exist; ErrInternal wrapping the storage detail if a backing store fails.
func (s *FileService) Upload(ctx context.Context, in UploadInput, content io.Reader) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, fmt.Errorf("upload: %w", err)
	}

	if !AllowedContentType(in.ContentType) {
		return File{}, fmt.Errorf("%w: invalid file type, only JPG, PNG, and DOCX files are allowed", ErrInvalidInput)
	}

	if in.FileName == "" {
		return File{}, fmt.Errorf("%w: file name is invalid", ErrInvalidInput)
	}

	if in.UserID <= 0 {
		return File{}, fmt.Errorf("%w: user id must be a positive integer", ErrInvalidInput)
	}

	owner, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return File{}, fmt.Errorf("upload: find user %d: %w", in.UserID, err)
	}

	file, err := s.files.Create(ctx, File{
		FileName:      in.FileName,
		FileType:      in.ContentType,
		UserID:        owner.ID,
		LastUpdatedOn: time.Now().UTC(),
	})
	if err != nil {
		return File{}, fmt.Errorf("upload %s: create metadata: %w", in.FileName, err)
	}

	key := StorageKey(file.ID, in.FileName)
	if err := s.files.Rename(ctx, file.ID, key); err != nil {
		s.compensate(file.ID)
		return File{}, fmt.Errorf("upload %s: store key: %w", in.FileName, err)
	}
	file.FileName = key

	if err := s.blobs.Put(ctx, key, content, in.Size, in.ContentType); err != nil {
		s.compensate(file.ID)
		return File{}, fmt.Errorf("upload %s: write blob: %w: %v", in.FileName, ErrInternal, err)
	}

	return file, nil
}

// compensate removes a metadata record whose blob never made it to storage.
// Uses a background context since the request context may be cancelled.
func (s *FileService) compensate(id int64) {
	cleanupCtx, cancel := context.WithTimeout(context.Background(), s.cleanupTimeout)
	defer cancel()
	_ = s.files.Delete(cleanupCtx, id)
}

// Download authorizes the requesting user against the file record and opens
// the blob for reading. It returns the content stream together with a
// content type inferred from the filename suffix; the declared type stored
// at upload time is not consulted.
//
// Error kinds: ErrInvalidInput for a non-positive user id; ErrNotFound if
// the file record or the user is absent; ErrAccessDenied if the requester
// does not own the file; ErrInternal wrapping the storage detail if the
// blob fetch fails.
func (s *FileService) Download(ctx context.Context, filename string, fileID, userID int64) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("download: %w", err)
	}

	if userID <= 0 {
		return nil, "", fmt.Errorf("%w: user id must be a positive integer", ErrInvalidInput)
	}

	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: find file %d: %w", filename, fileID, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: find user %d: %w", filename, userID, err)
	}

	if file.UserID != user.ID {
		return nil, "", fmt.Errorf("download %s: %w: user does not have access to the file", filename, ErrAccessDenied)
	}

	key := StorageKey(fileID, filename)
	rc, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: read blob: %w: %v", filename, ErrInternal, err)
	}

	return rc, ContentTypeForFilename(filename), nil
}

// List returns one page of file records, newest first, optionally filtered
// by owner and stored-name prefix. Non-positive page or size values fall
// back to page 1 and DefaultPageSize. An explicitly negative owner filter
// is rejected as invalid input.
func (s *FileService) List(ctx context.Context, q FileListQuery) (FileListResult, error) {
	if err := ctx.Err(); err != nil {
		return FileListResult{}, fmt.Errorf("list files: %w", err)
	}

	if q.UserID < 0 {
		return FileListResult{}, fmt.Errorf("%w: user id must be a positive integer", ErrInvalidInput)
	}

	result, err := s.files.List(ctx, q.Normalize())
	if err != nil {
		return FileListResult{}, fmt.Errorf("list files: %w", err)
	}

	return result, nil
}
