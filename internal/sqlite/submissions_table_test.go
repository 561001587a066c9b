package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc95kc/music-map/pkg/types"
)

func newTestUser(t *testing.T, b *Backend, email, username string) string {
	t.Helper()
	ctx := context.Background()
	id, err := b.Accounts().CreateUser(ctx, email, "hash")
	require.NoError(t, err)
	require.NoError(t, b.Accounts().CreateProfile(ctx, id, username))
	return id
}

func TestInsertPinValidation(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		pin     types.Pin
		wantErr error
	}{
		{
			name:    "unknown submission type",
			pin:     types.Pin{SubmissionType: "mixtape", UserID: "u", ArtistName: "x"},
			wantErr: types.ErrInvalidSubmissionType,
		},
		{
			name:    "missing user",
			pin:     types.Pin{SubmissionType: types.SubmissionAlbumCover, ArtistName: "x"},
			wantErr: types.ErrInvalidData,
		},
		{
			name:    "missing artist",
			pin:     types.Pin{SubmissionType: types.SubmissionAlbumCover, UserID: "u"},
			wantErr: types.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Records().InsertPin(ctx, tt.pin)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInsertAndListPins(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()
	userID := newTestUser(t, b, "beatle@example.com", "beatlefan")

	lat, lon := 51.53205203427031, -0.17733518220901687
	year := 1969
	id, err := b.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID,
		ArtistName:     "The Beatles",
		Title:          "Abbey Road",
		CoverType:      types.CoverAlbum,
		ReleaseYear:    &year,
		WikipediaLink:  "https://en.wikipedia.org/wiki/Abbey_Road_(album)",
		StreetViewURL:  types.StreetViewURL(lat, lon),
		Latitude:       &lat,
		Longitude:      &lon,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)

	pin := pins[0]
	assert.Equal(t, id, pin.PinID)
	assert.Equal(t, types.SubmissionAlbumCover, pin.SubmissionType)
	assert.Equal(t, "The Beatles", pin.ArtistName)
	assert.Equal(t, "Abbey Road", pin.Title)
	assert.Equal(t, types.CoverAlbum, pin.CoverType)
	assert.Equal(t, "beatlefan", pin.DisplayName, "display name joined from profiles")
	require.NotNil(t, pin.ReleaseYear)
	assert.Equal(t, 1969, *pin.ReleaseYear)
	require.NotNil(t, pin.Latitude)
	require.NotNil(t, pin.Longitude)
	assert.Equal(t, lat, *pin.Latitude)
	assert.Equal(t, lon, *pin.Longitude)
	assert.False(t, pin.CreatedAt.IsZero())
}

func TestListPinsRetainsRecordsWithoutCoordinates(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()
	userID := newTestUser(t, b, "video@example.com", "vjay")

	lat := 40.7589
	_, err := b.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionMusicVideo,
		UserID:         userID,
		ArtistName:     "a-ha",
		SongName:       "Take On Me",
		YouTubeURL:     "https://www.youtube.com/watch?v=djV11Xbc914",
		Latitude:       &lat,
		// Longitude deliberately absent.
	})
	require.NoError(t, err)

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1, "records without full coordinates stay in the collection")
	assert.Nil(t, pins[0].Longitude)
	assert.False(t, pins[0].HasLocation())
	assert.Empty(t, pins[0].Title, "music_video pins carry no title")
	assert.Equal(t, "Take On Me", pins[0].SongName)
}

func TestListPinsDisplayNameAbsentWithoutProfile(t *testing.T) {
	b := attachTestBackend(t)
	ctx := context.Background()

	// Credential exists but no profile row was ever written.
	userID, err := b.Accounts().CreateUser(ctx, "ghost@example.com", "hash")
	require.NoError(t, err)

	_, err = b.Records().InsertPin(ctx, types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID,
		ArtistName:     "Unknown Artist",
		Title:          "Untitled",
	})
	require.NoError(t, err)

	pins, err := b.Records().ListPins(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Empty(t, pins[0].DisplayName, "join miss yields absent display name, not an error")
}
