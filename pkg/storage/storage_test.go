package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdesk/pkg/storage"
)

func TestLocalDisk_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := storage.NewLocalDisk(t.TempDir(), "http://files.test/storage/")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "exports/a.json", []byte(`{"a":1}`)))
	require.NoError(t, d.Put(ctx, "exports/b.json", []byte(`{"b":2}`)))

	assert.True(t, d.Exists(ctx, "exports/a.json"))
	data, err := d.Get(ctx, "exports/a.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	files, err := d.Files(ctx, "exports")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/a.json", "exports/b.json"}, files)

	assert.Equal(t, "http://files.test/storage/exports/a.json", d.URL("exports/a.json"))

	require.NoError(t, d.Delete(ctx, "exports/a.json"))
	assert.False(t, d.Exists(ctx, "exports/a.json"))
	require.NoError(t, d.Delete(ctx, "exports/a.json"))
}

func TestLocalDisk_Missing(t *testing.T) {
	ctx := context.Background()
	d, err := storage.NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)

	_, err = d.Get(ctx, "nope.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	files, err := d.Files(ctx, "nowhere")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocalDisk_PathsStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := storage.NewLocalDisk(root, "")
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "../../escape.txt", []byte("x")))
	assert.True(t, d.Exists(ctx, "escape.txt"))
}

func TestManager_Disks(t *testing.T) {
	d, err := storage.NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)

	m := storage.NewManagerWith("local", map[string]storage.Disk{"local": d})
	assert.Same(t, d, m.Default())

	_, err = m.Disk("s3")
	assert.Error(t, err)

	m.Register("backup", d)
	got, err := m.Disk("backup")
	require.NoError(t, err)
	assert.Same(t, d, got)
}
