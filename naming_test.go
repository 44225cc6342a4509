package filedock_test

import (
	"testing"

	"github.com/sagarc03/filedock"
	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "7_photo.png", filedock.StorageKey(7, "photo.png"))
	assert.Equal(t, "123_report", filedock.StorageKey(123, "report"))
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantExt  string
	}{
		{"simple extension", "photo.png", "photo", ".png"},
		{"multiple dots", "archive.tar.gz", "archive.tar", ".gz"},
		{"no extension", "README", "README", ""},
		{"leading dot only", ".gitignore", ".gitignore", ""},
		{"trailing dot", "name.", "name", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, ext := filedock.SplitExt(tt.input)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestContentTypeForFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"PHOTO.JPG", "image/jpeg"},
		{"diagram.png", "image/png"},
		{"report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"paper.pdf", "application/pdf"},
		{"archive.zip", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, filedock.ContentTypeForFilename(tt.filename))
		})
	}
}

func TestAllowedContentType(t *testing.T) {
	assert.True(t, filedock.AllowedContentType("image/jpeg"))
	assert.True(t, filedock.AllowedContentType("image/png"))
	assert.True(t, filedock.AllowedContentType("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))

	assert.False(t, filedock.AllowedContentType("application/pdf"))
	assert.False(t, filedock.AllowedContentType("text/plain"))
	assert.False(t, filedock.AllowedContentType(""))
}
