package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc95kc/music-map/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := attachTestBackend(t)
	userID := newTestUser(t, src, "exporter@example.com", "exporter")

	lat, lon := 51.5, -0.17
	year := 1969
	_, err := src.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID,
		ArtistName:     "The Beatles",
		Title:          "Abbey Road",
		CoverType:      types.CoverAlbum,
		ReleaseYear:    &year,
		Latitude:       &lat,
		Longitude:      &lon,
	})
	require.NoError(t, err)
	_, err = src.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionMusicVideo,
		UserID:         userID,
		ArtistName:     "a-ha",
		SongName:       "Take On Me",
		YouTubeURL:     "https://youtube.com/watch?v=djV11Xbc914",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pins.jsonl")
	exported, err := src.ExportPins(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	dst := attachTestBackend(t)
	imported, err := dst.ImportPins(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	srcPins, err := src.Records().ListPins(ctx)
	require.NoError(t, err)
	dstPins, err := dst.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, dstPins, 2)

	byID := make(map[string]types.Pin, len(dstPins))
	for _, p := range dstPins {
		// Display names come from profiles, which are not exported.
		p.DisplayName = ""
		byID[p.PinID] = p
	}
	for _, want := range srcPins {
		want.DisplayName = ""
		got, ok := byID[want.PinID]
		require.True(t, ok, "pin %s survives the round trip", want.PinID)
		assert.Equal(t, want, got)
	}
}

func TestImportSkipsExistingAndMalformed(t *testing.T) {
	ctx := context.Background()
	b := attachTestBackend(t)
	userID := newTestUser(t, b, "importer@example.com", "importer")

	id, err := b.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID,
		ArtistName:     "Blur",
		Title:          "Parklife",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pins.jsonl")
	_, err = b.ExportPins(ctx, path)
	require.NoError(t, err)

	// Append garbage and a record missing required fields.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n{\"id\":\"orphan\"}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Re-importing into the same backend inserts nothing.
	imported, err := b.ImportPins(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, imported)

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, id, pins[0].PinID)
}

func TestExportDetachedFails(t *testing.T) {
	b := NewBackend()
	_, err := b.ExportPins(context.Background(), filepath.Join(t.TempDir(), "pins.jsonl"))
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
