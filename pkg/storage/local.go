package storage

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// LocalDisk stores files under a directory on the local filesystem.
type LocalDisk struct {
	root    string
	baseURL string
}

// NewLocalDisk roots a disk at root, made absolute against the working
// directory when relative.
func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrap(err, "storage/local: resolve root")
		}
		root = abs
	}
	return &LocalDisk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// abs maps a disk path to a filesystem path that cannot escape root.
func (d *LocalDisk) abs(p string) string {
	clean := path.Clean("/" + p)
	return filepath.Join(d.root, filepath.FromSlash(clean))
}

func (d *LocalDisk) Put(_ context.Context, p string, content []byte) error {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "storage/local: mkdir")
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return errors.Wrapf(err, "storage/local: put %s", p)
	}
	return nil
}

func (d *LocalDisk) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage/local: get %s", p)
	}
	return data, nil
}

func (d *LocalDisk) Exists(_ context.Context, p string) bool {
	_, err := os.Stat(d.abs(p))
	return err == nil
}

// Delete removes p. Deleting a missing file is not an error.
func (d *LocalDisk) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "storage/local: delete %s", p)
	}
	return nil
}

func (d *LocalDisk) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage/local: files %s", directory)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(strings.Trim(directory, "/"), e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (d *LocalDisk) URL(p string) string {
	return d.baseURL + "/" + strings.TrimLeft(p, "/")
}
