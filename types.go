package filedock

import "time"

// File is a stored file's metadata record. FileName holds the resolved
// storage key ("<id>_<originalName>") once the upload has completed; the
// blob is stored under that same key.
type File struct {
	ID            int64     `json:"id"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	UserID        int64     `json:"user_id"`
	LastUpdatedOn time.Time `json:"last_updated_on"`
}

// User is an identity record. Usernames and emails are unique
// case-insensitively.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UploadInput carries everything needed to store a new file.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	UserID      int64
}

// DefaultPageSize is used when a list request asks for a non-positive size.
const DefaultPageSize = 15

// FileListQuery selects a page of file records, newest first.
// UserID filters by owner when > 0; NamePrefix filters by stored name prefix
// when non-empty.
type FileListQuery struct {
	UserID     int64
	NamePrefix string
	Page       int
	Size       int
}

// Normalize clamps the page to 1 and the size to DefaultPageSize, matching
// how list requests are interpreted at the API boundary.
func (q FileListQuery) Normalize() FileListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = DefaultPageSize
	}
	return q
}

// FileListResult is one page of file records plus pagination totals.
// Page is 1-based.
type FileListResult struct {
	Items      []File `json:"items"`
	TotalCount int64  `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// MIME types accepted for upload.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedContentType reports whether the declared content type is one of the
// accepted upload types (JPEG, PNG, DOCX).
func AllowedContentType(ct string) bool {
	switch ct {
	case ContentTypeJPEG, ContentTypePNG, ContentTypeDOCX:
		return true
	default:
		return false
	}
}
