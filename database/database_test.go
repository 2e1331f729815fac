package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCache(t *testing.T) {
	db, err := ConnectMemory()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	mod := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	_, ok, err := db.GetText(ctx, "a.pdf", 10, mod)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.PutText(ctx, Document{Name: "a.pdf", Size: 10, ModTime: mod, Text: "hola"}))

	text, ok, err := db.GetText(ctx, "a.pdf", 10, mod)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hola", text)

	// A changed file misses the cache.
	_, ok, err = db.GetText(ctx, "a.pdf", 11, mod)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = db.GetText(ctx, "a.pdf", 10, mod.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, ok)

	// Replacing updates in place.
	require.NoError(t, db.PutText(ctx, Document{Name: "a.pdf", Size: 11, ModTime: mod, Text: "adiós"}))
	text, ok, err = db.GetText(ctx, "a.pdf", 11, mod)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "adiós", text)

	names, err := db.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, names)
}

func TestPruneAndDelete(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "cache", "docs.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for _, name := range []string{"a.pdf", "b.pdf", "c.docx"} {
		require.NoError(t, db.PutText(ctx, Document{Name: name, Size: 1, ModTime: time.Now(), Text: name}))
	}

	removed, err := db.Prune(ctx, []string{"b.pdf"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	require.NoError(t, db.Delete(ctx, "b.pdf"))
	names, err := db.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}
