package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc95kc/music-map/pkg/types"
)

func TestSeedInstallsAbbeyRoad(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Seed(ctx))

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)

	pin := pins[0]
	assert.Equal(t, types.SubmissionAlbumCover, pin.SubmissionType)
	assert.Equal(t, "The Beatles", pin.ArtistName)
	assert.Equal(t, "Abbey Road", pin.Title)
	assert.Equal(t, seedUsername, pin.DisplayName)
	assert.True(t, pin.HasLocation(), "seed pin must be renderable")
	assert.Equal(t, types.StreetViewURL(abbeyRoadLat, abbeyRoadLon), pin.StreetViewURL)
}

func TestSeedIdempotent(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Seed(ctx))
	require.NoError(t, b.Seed(ctx))

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	assert.Len(t, pins, 1, "seeding twice installs one pin")
}

func TestSeedSkipsNonEmptyMap(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()
	userID := newTestUser(t, b, "first@example.com", "first")

	_, err := b.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID,
		ArtistName:     "Pink Floyd",
		Title:          "Animals",
	})
	require.NoError(t, err)

	require.NoError(t, b.Seed(ctx))

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	assert.Len(t, pins, 1, "seed leaves an already-populated map untouched")
	assert.Equal(t, "Pink Floyd", pins[0].ArtistName)
}
