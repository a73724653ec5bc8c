package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/storage"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	doc := map[string]int{"SL": 10, "3A": 8}
	require.NoError(t, store.Save("seats.json", doc))

	var loaded map[string]int
	require.NoError(t, store.Load("seats.json", &loaded))
	assert.Equal(t, doc, loaded)
}

func TestFileStoreMissingDocumentLoadsEmpty(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	loaded := map[string]int{}
	require.NoError(t, store.Load("absent.json", &loaded))
	assert.Empty(t, loaded)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	var loaded map[string]int
	assert.Error(t, store.Load("bad.json", &loaded))
}

func TestFileStoreSaveRewritesWholeDocument(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("doc.json", map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, store.Save("doc.json", map[string]string{"c": "3"}))

	var loaded map[string]string
	require.NoError(t, store.Load("doc.json", &loaded))
	assert.Equal(t, map[string]string{"c": "3"}, loaded, "save replaces, never merges")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()

	require.NoError(t, store.Save("doc.json", map[string]string{"k": "v"}))

	var loaded map[string]string
	require.NoError(t, store.Load("doc.json", &loaded))
	assert.Equal(t, "v", loaded["k"])
}
