package entity

import (
	"fmt"
	"strings"
)

// MaxImageSize is the maximum allowed service image size (5 MB).
const MaxImageSize = 5 << 20

// FileTooLargeError wraps ErrFileTooLarge with details about the offending file.
func FileTooLargeError(filename string, size int64) error {
	return fmt.Errorf("%w: %q is %d bytes, limit is %d MB", ErrFileTooLarge, filename, size, MaxImageSize>>20)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}

// FileMetadata holds GridFS metadata for an uploaded image.
type FileMetadata struct {
	MIMEType  string `bson:"mime_type"`
	ServiceID string `bson:"service_id"`
	Uploader  string `bson:"uploader"`
}
