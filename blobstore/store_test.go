package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/osmcache/internal/fs"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("segment bytes")
		require.NoError(t, PutBytes(ctx, store, "snap/nodes/0.seg", data))

		got, err := ReadAll(ctx, store, "snap/nodes/0.seg")
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, PutBytes(ctx, store, "snap/manifest.json", []byte("v1")))
		require.NoError(t, store.Put(ctx, "snap/manifest.json", strings.NewReader("v2")))

		got, err := ReadAll(ctx, store, "snap/manifest.json")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "snap/missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, PutBytes(ctx, store, "snap/nodes/1.seg", []byte{1}))
		require.NoError(t, PutBytes(ctx, store, "other/x", []byte{2}))

		names, err := store.List(ctx, "snap/nodes/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/nodes/0.seg", "snap/nodes/1.seg"}, names)

		names, err = store.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/manifest.json", "snap/nodes/0.seg", "snap/nodes/1.seg"}, names)

		names, err = store.List(ctx, "none/")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "other/x"))
		require.NoError(t, store.Delete(ctx, "other/x"))

		_, err := store.Get(ctx, "other/x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InvalidName", func(t *testing.T) {
		assert.ErrorIs(t, PutBytes(ctx, store, "", []byte{1}), ErrInvalidName)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := store.Put(cctx, "snap/canceled", bytes.NewReader(make([]byte, 1<<16)))
		assert.ErrorIs(t, err, context.Canceled)

		_, err = store.Get(ctx, "snap/canceled")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, PutBytes(ctx, store, "a", []byte{0x0f}))

	assert.True(t, store.Corrupt("a", 0))
	assert.False(t, store.Corrupt("a", 1))
	assert.False(t, store.Corrupt("b", 0))

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xf0}, got)
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_Layout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, PutBytes(ctx, store, "snap/ways/3.seg", []byte("ways")))

	data, err := os.ReadFile(filepath.Join(root, "snap", "ways", "3.seg"))
	require.NoError(t, err)
	assert.Equal(t, "ways", string(data))

	assert.ErrorIs(t, PutBytes(ctx, store, "../escape", []byte{1}), ErrInvalidName)
	_, err = store.Get(ctx, "/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestLocalStore_FailedPutLeavesNoBlob(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	faulty := fs.NewFaultyFS(nil)
	faulty.AddRule("0.seg", fs.Fault{FailAfterBytes: 16})
	store := NewLocalStore(root, WithFileSystem(faulty))

	err := PutBytes(ctx, store, "snap/0.seg", make([]byte, 64))
	require.ErrorIs(t, err, fs.ErrInjected)

	_, err = store.Get(ctx, "snap/0.seg")
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(filepath.Join(root, "snap"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	faulty.ClearRules()
	require.NoError(t, PutBytes(ctx, store, "snap/0.seg", make([]byte, 64)))
	rc, err := store.Get(ctx, "snap/0.seg")
	require.NoError(t, err)
	n, err := io.Copy(io.Discard, rc)
	require.NoError(t, err)
	assert.Equal(t, int64(64), n)
	require.NoError(t, rc.Close())
}
