package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Delete when the path has no stored file.
// Callers that tolerate missing files check for it with errors.Is.
var ErrNotExist = errors.New("storage: file does not exist")

// Storage is the file backend used for uploaded assets. Implementations must
// make Put and Delete atomic per path; concurrent callers are not coordinated
// beyond that.
type Storage interface {
	Put(ctx context.Context, path string, content []byte) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	URL(path string) string
}
