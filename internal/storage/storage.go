// Package storage archives uploaded files in an S3-compatible object store.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; set it to -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under key, streaming from r.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get returns the object's content alongside its info. Callers close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL that needs no credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}

// Key prefixes.
const (
	ImportPrefix = "imports"
	AvatarPrefix = "avatars"
)

// ImportKey returns a fresh object key for an uploaded import file,
// keeping the lower-cased extension of the original name.
func ImportKey(filename string) string {
	return fmt.Sprintf("%s/%s%s", ImportPrefix, uuid.NewString(), ext(filename))
}

// AvatarKey returns a fresh object key for a broker avatar.
func AvatarKey(brokerID int64, filename string) string {
	return fmt.Sprintf("%s/%d/%s%s", AvatarPrefix, brokerID, uuid.NewString(), ext(filename))
}

func ext(filename string) string {
	return strings.ToLower(path.Ext(filename))
}
