package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Put(ctx, "db.json", []byte(`{"a":1}`)))

	data, err := store.Get(ctx, "db.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	// Overwrites replace the previous value.
	assert.NoError(t, store.Put(ctx, "db.json", []byte(`{"a":2}`)))
	data, err = store.Get(ctx, "db.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), data)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	original := []byte("payload")
	assert.NoError(t, store.Put(ctx, "k", original))
	original[0] = 'X'

	data, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestFilesystemStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystem(root)
	assert.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "db.json")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Put(ctx, "db.json", []byte("first")))
	assert.NoError(t, store.Put(ctx, "db.json", []byte("second")))

	data, err := store.Get(ctx, "db.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// No temp files left behind after the atomic rename.
	entries, err := os.ReadDir(root)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFilesystemStoreNestedKey(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystem(root)
	assert.NoError(t, err)

	assert.NoError(t, store.Put(context.Background(), "shortboard/db.json", []byte("doc")))

	_, statErr := os.Stat(filepath.Join(root, "shortboard", "db.json"))
	assert.NoError(t, statErr)
}

func TestFilesystemStoreRejectsBadKeys(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "   ", "../escape", "/absolute"} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, key, []byte("x")))
		})
	}
}
