package port

import (
	"context"
	"io"
	"time"
)

// ArchiveObject is one rendered report to store.
type ArchiveObject struct {
	Key                string
	Body               io.Reader
	ContentType        string
	ContentDisposition string
	Metadata           map[string]string
}

// StoredObject describes an object after it was written.
type StoredObject struct {
	Key      string
	Location string
	ETag     string
}

// ReportArchive stores comparison reports in a single bucket and hands out
// time-limited download links.
type ReportArchive interface {
	Put(ctx context.Context, obj ArchiveObject) (*StoredObject, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
