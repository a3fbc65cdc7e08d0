package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Mirror {
	dir := t.TempDir()

	fm, err := Open(Config{Backend: BackendFile, Path: filepath.Join(dir, "files")})
	require.NoError(t, err)

	sm, err := Open(Config{Backend: BackendSQLite, Path: filepath.Join(dir, "mirror.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(sm) })

	mm, err := Open(Config{Backend: BackendMemory})
	require.NoError(t, err)

	return map[string]Mirror{"file": fm, "sqlite": sm, "memory": mm}
}

func TestMirrorReadWriteClear(t *testing.T) {
	ctx := context.Background()
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := m.Read(ctx, "moodHistory")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, m.Write(ctx, "moodHistory", []byte(`[{"date":"2024-01-01"}]`)))
			require.NoError(t, m.Write(ctx, "moodHistory", []byte(`[{"date":"2024-01-02"}]`)))

			got, ok, err := m.Read(ctx, "moodHistory")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `[{"date":"2024-01-02"}]`, string(got))

			require.NoError(t, m.Clear(ctx, "moodHistory"))
			require.NoError(t, m.Clear(ctx, "moodHistory"))
			_, ok, err = m.Read(ctx, "moodHistory")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMirrorRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	for name, m := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", `a\b`, "a/b"} {
				assert.ErrorIs(t, m.Write(ctx, key, []byte("{}")), ErrInvalidKey)
				_, _, err := m.Read(ctx, key)
				assert.ErrorIs(t, err, ErrInvalidKey)
			}
		})
	}
}

func TestFileMirrorLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFileMirror(dir)
	require.NoError(t, err)

	require.NoError(t, m.Write(context.Background(), "reminders", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "reminders.json", entries[0].Name())
}

func TestSQLiteMirrorPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.db")
	ctx := context.Background()

	m, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, m.Write(ctx, "authToken", []byte(`"tok"`)))
	require.NoError(t, m.Close())

	m, err = OpenSQLite(path)
	require.NoError(t, err)
	defer m.Close()

	got, ok, err := m.Read(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"tok"`, string(got))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Config{Backend: "cloud"})
	assert.Error(t, err)
}
