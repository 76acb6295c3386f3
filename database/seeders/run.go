// Package seeders fills a fresh store with starter data.
//
// A seeder registers itself from init():
//
//	func init() {
//	    seeders.Register("users", SeedUsers)
//	}
//
// Seeders go through the services, so validation and hashing apply, and
// must be safe to run more than once. Run them via: shopdesk seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/app/services"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

// Deps is what a seeder writes through.
type Deps struct {
	Users    *services.UserService
	Products *services.ProductService
}

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, d Deps) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists registered seeders in run order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// RunAll executes every registered seeder in registration order and stops
// on the first error. Progress is written to out.
func RunAll(ctx context.Context, out io.Writer, d Deps) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, d); err != nil {
			fmt.Fprintln(out, "FAILED")
			return errors.Wrapf(err, "seeder %q", e.name)
		}
		fmt.Fprintln(out, "done")
		logger.Info("seeder: done", "name", e.name)
	}
	return nil
}
