package candidate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purabshah12/beacon/internal/common/logger"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRepository_List(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wallet__40_-75__Library_Desk.jpg", "fake image data")
	writeFile(t, dir, "keys__NoGPS__Front_Office.png", "fake image data")
	writeFile(t, dir, "notes.txt", "not an image")
	writeFile(t, dir, "half-written.jpg", "")

	repo := NewRepository(dir, logger.NewTestLogger(t))
	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	byID := make(map[string]Candidate)
	for _, c := range candidates {
		byID[c.Identifier] = c
	}

	wallet, ok := byID["wallet__40_-75__Library_Desk.jpg"]
	require.True(t, ok)
	require.NotNil(t, wallet.FoundCoordinates)
	assert.InDelta(t, 40.0, wallet.FoundCoordinates.Latitude, 1e-9)
	assert.InDelta(t, -75.0, wallet.FoundCoordinates.Longitude, 1e-9)
	assert.Equal(t, "Library Desk", wallet.PickupLocation)

	keys, ok := byID["keys__NoGPS__Front_Office.png"]
	require.True(t, ok)
	assert.Nil(t, keys.FoundCoordinates)
	assert.Equal(t, "Front Office", keys.PickupLocation)
}

func TestRepository_List_EmptyDirectory(t *testing.T) {
	repo := NewRepository(t.TempDir(), logger.NewTestLogger(t))

	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRepository_List_MissingDirectory(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "nope"), logger.NewTestLogger(t))

	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRepository_List_GifExcludedFromListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sticker__NoGPS__Lobby.gif", "fake image data")

	repo := NewRepository(dir, logger.NewTestLogger(t))
	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRepository_List_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wallet__NoGPS__Desk.jpg", "fake image data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewRepository(dir, logger.NewTestLogger(t))
	_, err := repo.List(ctx)
	assert.Error(t, err)
}
