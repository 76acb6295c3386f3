// Package storage provides a unified file storage API over pluggable disks.
//
//	mgr, _ := storage.NewManager(ctx)
//	_ = mgr.Default().Put(ctx, "exports/orders.json", data)
//	url := mgr.Default().URL("exports/orders.json")
package storage

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when the object does not exist.
var ErrNotFound = errors.New("storage: not found")

// Disk is the storage driver contract. Paths are slash-separated and
// relative to the disk root.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Delete(ctx context.Context, path string) error

	// Files lists the objects directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)

	// URL returns the public address of path.
	URL(path string) string
}
