package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUploadFailed = errors.New("upload to blob storage failed")

// FileUpload is an in-flight multipart file handed down from a handler.
type FileUpload struct {
	Reader      io.Reader
	ContentType string
}

// UploadResult describes a stored object. Duration is only populated by
// backends that can probe media metadata; the S3 backend leaves it zero
// and callers supply it out of band.
type UploadResult struct {
	URL      string
	Duration float64
}

// BlobStore is the opaque media store the rest of the system talks to.
// Delete reports whether the object addressed by url was removed.
type BlobStore interface {
	Upload(ctx context.Context, r io.Reader, contentType, folder string) (*UploadResult, error)
	Delete(ctx context.Context, url string) bool
}
