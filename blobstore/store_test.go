package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stabgo/internal/fs"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("hello world, this is a snapshot blob")
	require.NoError(t, store.Put(ctx, "snapshots/a.stab", data))
	require.NoError(t, store.Put(ctx, "snapshots/b.stab", []byte("b")))
	require.NoError(t, store.Put(ctx, "CURRENT", []byte("snapshots/a.stab")))

	blob, err := store.Open(ctx, "snapshots/a.stab")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))

	buf = make([]byte, 10)
	n, err = blob.ReadAt(ctx, buf, int64(len(data))-4)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 4, n)
	require.NoError(t, blob.Close())

	all, err := ReadAll(ctx, store, "snapshots/a.stab")
	require.NoError(t, err)
	assert.Equal(t, data, all)

	// Put replaces.
	require.NoError(t, store.Put(ctx, "snapshots/b.stab", []byte("bb")))
	all, err = ReadAll(ctx, store, "snapshots/b.stab")
	require.NoError(t, err)
	assert.Equal(t, []byte("bb"), all)

	names, err := store.List(ctx, "snapshots/")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshots/a.stab", "snapshots/b.stab"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CURRENT", "snapshots/a.stab", "snapshots/b.stab"}, names)

	require.NoError(t, store.Delete(ctx, "snapshots/a.stab"))
	require.NoError(t, store.Delete(ctx, "snapshots/a.stab"), "deleting twice is fine")
	_, err = ReadAll(ctx, store, "snapshots/a.stab")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesInput(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, s, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_MissingRoot(t *testing.T) {
	s := NewLocalStore(t.TempDir() + "/does/not/exist")
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewLocalStore(t.TempDir())
	assert.ErrorIs(t, s.Put(ctx, "x", []byte("x")), context.Canceled)
}

func TestLocalStore_PutFaults(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	s := newLocalStore(root, ffs)

	require.NoError(t, s.Put(ctx, "snap", []byte("v1")))

	faults := map[string]fs.Fault{
		"write":  {FailAfterBytes: 1},
		"sync":   {FailAfterBytes: -1, FailOnSync: true},
		"close":  {FailAfterBytes: -1, FailOnClose: true},
		"rename": {FailAfterBytes: -1, FailOnRename: true},
	}
	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			ffs.ClearRules()
			ffs.AddRule(".tmp-", fault)
			defer ffs.ClearRules()

			assert.ErrorIs(t, s.Put(ctx, "snap", []byte("v2")), fs.ErrInjected)

			got, err := ReadAll(ctx, s, "snap")
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), got)

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			require.Len(t, entries, 1, "temporary file must be removed")
			assert.Equal(t, "snap", entries[0].Name())
		})
	}
}

func TestLocalStore_ListSkipsTemp(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)
	require.NoError(t, s.Put(ctx, "a/b/c", []byte("c")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".tmp-x-1"), []byte("x"), 0o644))

	names, err := s.List(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/c"}, names)

	names, err = s.List(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadAll_Empty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "empty", nil))
	got, err := ReadAll(ctx, s, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
