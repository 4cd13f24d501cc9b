package storage

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// PublicPathPrefix is where stored images are served from.
const PublicPathPrefix = "/api/image/"

// Object is one stored binary plus its metadata. RemoteURL is set when the
// bytes live with an external provider and Data is empty.
type Object struct {
	Key          string
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
	RemoteURL    string
	CreatedAt    time.Time
}

// ObjectStorage stores uploaded binaries by key.
type ObjectStorage interface {
	// Put persists obj and returns the URL clients use to fetch it.
	Put(ctx context.Context, obj *Object) (string, error)
	// Get returns ErrObjectNotFound for a missing or unreadable key.
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// Index records object metadata for providers that keep the bytes elsewhere.
type Index interface {
	Save(ctx context.Context, obj *Object) error
	Find(ctx context.Context, key string) (*Object, error)
	Remove(ctx context.Context, key string) error
}

func PublicURL(key string) string {
	return PublicPathPrefix + key
}
