package filedock

import (
	"fmt"
	"strings"
)

// StorageKey derives the blob key for a file record: "<id>_<name>". The
// record identifier is generated before the blob write, so two uploads of
// the same name can never produce the same key. This replaces suffix-counting
// schemes ("name_2.png"), which race between counting existing rows and
// inserting the new one.
func StorageKey(id int64, name string) string {
	return fmt.Sprintf("%d_%s", id, name)
}

// SplitExt splits a filename into base and extension at the last dot.
// A name with no dot, or a leading dot only, is all base with an empty
// extension.
func SplitExt(name string) (base, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// ContentTypeForFilename infers a download content type from the filename
// suffix, independent of the declared type stored at upload time. Unknown
// extensions fall back to application/octet-stream.
func ContentTypeForFilename(name string) string {
	_, ext := SplitExt(name)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	case ".png":
		return ContentTypePNG
	case ".docx":
		return ContentTypeDOCX
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
