package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-textpad/pkg/filesystem"
	"github.com/mattsolo1/grove-textpad/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestBackends(t *testing.T) {
	kinds := []string{KindMemory, KindSQLite, KindFile}

	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			backend, err := Open(Options{Kind: kind, Dir: t.TempDir(), BackupCount: 2}, quietLogger())
			require.NoError(t, err)
			defer backend.Close()

			_, ok, err := backend.GetItem("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, backend.SetItem("k", "v1"))
			require.NoError(t, backend.SetItem("k", "v2"))
			value, ok, err := backend.GetItem("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", value)

			require.NoError(t, backend.RemoveItem("k"))
			_, ok, err = backend.GetItem("k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, backend.RemoveItem("never-set"))
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Kind: "redis", Dir: t.TempDir()}, quietLogger())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	b, err := NewSQLiteBackend(dbPath)
	require.NoError(t, err)
	require.NoError(t, b.SetItem(ThemeKey, "dark"))
	require.NoError(t, b.Close())

	b, err = NewSQLiteBackend(dbPath)
	require.NoError(t, err)
	defer b.Close()
	value, ok, err := b.GetItem(ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestFileBackendPersistsAndRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textpad.json")

	b, err := NewFileBackend(path, 2, quietLogger())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.SetItem("k", fmt.Sprintf("v%d", i)))
	}

	backups, err := b.Backups()
	require.NoError(t, err)
	assert.Len(t, backups, 2)

	reopened, err := NewFileBackend(path, 2, quietLogger())
	require.NoError(t, err)
	value, ok, err := reopened.GetItem("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v4", value)
}

func TestFileBackendCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textpad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	b, err := NewFileBackend(path, 0, quietLogger())
	require.NoError(t, err)
	_, ok, err := b.GetItem(RootKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.SetItem("k", "v"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(raw))
}

func sampleSnapshot() Snapshot {
	snap := EmptySnapshot()
	store := filesystem.NewStore(snap.FileSystem)
	folder := store.CreateFolder("docs", models.NoParent)
	file := store.CreateFile("draft", folder)
	store.UpdateFileContent(file, "hello")
	snap.FileSystem = store.State()
	snap.Editor.OpenFile(file)
	return snap
}

func TestPersisterRoundTrip(t *testing.T) {
	p := NewPersister(NewMemoryBackend(), quietLogger())

	snap := sampleSnapshot()
	require.NoError(t, p.Save(snap))

	loaded, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestPersisterLoadFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
	}{
		{name: "absent"},
		{name: "garbage", raw: strPtr("{{{")},
		{name: "wrong shape", raw: strPtr(`{"fileSystem": 12}`)},
		{name: "unknown item type", raw: strPtr(`{"fileSystem":{"items":{"a":{"id":"a","name":"a","type":"link","parentId":null}},"rootItems":["a"]},"editor":{"openFiles":[],"activeFileId":null}}`)},
		{name: "dangling parent", raw: strPtr(`{"fileSystem":{"items":{"a":{"id":"a","name":"a.txt","type":"file","parentId":"x","content":""}},"rootItems":[]},"editor":{"openFiles":[],"activeFileId":null}}`)},
		{name: "duplicate tabs", raw: strPtr(`{"fileSystem":{"items":{},"rootItems":[]},"editor":{"openFiles":["a","a"],"activeFileId":"a"}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend()
			if tt.raw != nil {
				require.NoError(t, backend.SetItem(RootKey, *tt.raw))
			}
			p := NewPersister(backend, quietLogger())

			loaded, err := p.Load()
			require.NoError(t, err)
			assert.Equal(t, EmptySnapshot(), loaded)
		})
	}
}

func TestPersisterLoadsPartialRecord(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(RootKey, `{"fileSystem":{}}`))
	p := NewPersister(backend, quietLogger())

	loaded, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, EmptySnapshot(), loaded)
}

func TestTheme(t *testing.T) {
	backend := NewMemoryBackend()
	p := NewPersister(backend, quietLogger())

	theme, err := p.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeSystem, theme)

	require.NoError(t, p.SaveTheme(models.ThemeDark))
	raw, ok, _ := backend.GetItem(ThemeKey)
	assert.True(t, ok)
	assert.Equal(t, "dark", raw)

	theme, err = p.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)

	require.NoError(t, backend.SetItem(ThemeKey, "neon"))
	theme, err = p.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeSystem, theme)
}

func strPtr(s string) *string { return &s }
