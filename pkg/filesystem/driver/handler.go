package driver

import (
	"context"
	"io"
	"time"
)

// Handler adapts an object store.
type Handler interface {
	// Put stores size bytes read from file under dst. The upload is
	// aborted when ctx is done.
	Put(ctx context.Context, file io.Reader, dst string, size uint64) error

	// Copy duplicates the object at src into dst within the same bucket.
	Copy(ctx context.Context, src, dst string) error

	// Delete removes the given keys, returning the keys that could not be
	// removed and the last error met. Missing keys count as removed.
	Delete(ctx context.Context, keys []string) ([]string, error)

	// List walks every object under prefix, handing each page to fn.
	// Walking stops at the first error returned by fn.
	List(ctx context.Context, prefix string, fn func([]Object) error) error
}

// Object is an entry found by List.
type Object struct {
	Key          string
	Size         uint64
	LastModified time.Time
}

// CopyOp copies one object.
type CopyOp struct {
	Src  string
	Dst  string
	Size uint64
}
