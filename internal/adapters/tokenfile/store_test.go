package tokenfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/userdir-cli/internal/domain"
)

func TestSetAndGetTokenRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "credentials.toml")
	store := NewStore(path)

	require.NoError(t, store.SetToken(context.Background(), "tok-abc"))

	token, err := store.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Token("tok-abc"), token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestGetTokenMissingFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.toml"))

	_, err := store.GetToken(context.Background())
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestSetTokenRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.toml"))

	require.Error(t, store.SetToken(context.Background(), ""))
}

func TestClearTokenRemovesFileAndIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "credentials.toml")
	store := NewStore(path)
	require.NoError(t, store.SetToken(context.Background(), "tok-abc"))

	require.NoError(t, store.ClearToken(context.Background()))
	require.NoError(t, store.ClearToken(context.Background()))

	_, err := store.GetToken(context.Background())
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestGetTokenHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "credentials.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetToken(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
