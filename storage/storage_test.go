package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(StorageConfig{Type: StorageTypeLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)

	owner, object := uuid.New(), uuid.New()
	path, err := st.Upload(ctx, owner, object, "user data export.json", strings.NewReader(`{"mood":{}}`))
	require.NoError(t, err)
	assert.True(t, OwnedBy(path, owner))
	assert.False(t, OwnedBy(path, uuid.New()))
	assert.Contains(t, path, "user_data_export.json")

	rc, err := st.Download(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, `{"mood":{}}`, string(body))

	require.NoError(t, st.Delete(ctx, path))
	_, err = st.Download(ctx, path)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.NoError(t, st.Delete(ctx, path))
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	st, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = st.Download(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectNotFound)
}

func TestOwnedByRejectsTraversal(t *testing.T) {
	owner := uuid.New()
	assert.False(t, OwnedBy(owner.String()+"/../other/x.json", owner))
	assert.False(t, OwnedBy(owner.String(), owner))
}

func TestNewStorageUnknownType(t *testing.T) {
	_, err := NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", getContentType("export.json"))
	assert.Equal(t, "application/octet-stream", getContentType("export.bin"))
}
