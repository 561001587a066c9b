package submit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc95kc/music-map/pkg/types"
)

// fakeSessions serves a settable current session.
type fakeSessions struct {
	session *types.Session
}

func (f *fakeSessions) Current() *types.Session { return f.session }

// fakeRecords captures inserted pins.
type fakeRecords struct {
	inserted  []types.Pin
	insertErr error
}

func (f *fakeRecords) ListPins(context.Context) ([]types.Pin, error) { return nil, nil }

func (f *fakeRecords) InsertPin(_ context.Context, pin types.Pin) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, pin)
	return "pin-1", nil
}

// fakeBlobs records uploads, optionally failing, and optionally running
// a hook before answering.
type fakeBlobs struct {
	uploads  []string
	err      error
	onUpload func()
}

func (f *fakeBlobs) Upload(_ context.Context, path string, _ []byte) (string, error) {
	if f.onUpload != nil {
		f.onUpload()
	}
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, path)
	return "https://blobs.example.com/" + path, nil
}

func newTestBuilder(session *types.Session) (*Builder, *fakeSessions, *fakeRecords, *fakeBlobs) {
	sessions := &fakeSessions{session: session}
	records := &fakeRecords{}
	blobs := &fakeBlobs{}
	return NewBuilder(sessions, records, blobs), sessions, records, blobs
}

func signedIn() *types.Session {
	return &types.Session{UserID: "user-1", Email: "fan@example.com", DisplayName: "vinylfan"}
}

func TestValidateReportsEverythingMissing(t *testing.T) {
	b, _, _, _ := newTestBuilder(nil)
	draft := types.NewDraft(types.SubmissionAlbumCover)

	err := b.Validate(draft)
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t,
		[]string{types.FieldArtistName, types.FieldTitle, "location", "session"},
		vErr.Missing)
}

func TestValidateAlbumCoverAlwaysNeedsTitle(t *testing.T) {
	b, _, _, _ := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "The Beatles")
	draft.SetCandidateLocation(51.5320, -0.1773)

	err := b.Validate(draft)
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Missing, types.FieldTitle)

	draft.SetField(types.FieldTitle, "Abbey Road")
	assert.NoError(t, b.Validate(draft))
}

func TestFinalizeRequiresValidation(t *testing.T) {
	b, _, records, _ := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionMusicVideo)
	draft.SetField(types.FieldArtistName, "a-ha")
	draft.SetCandidateLocation(59.9139, 10.7522)
	// song_name and youtube_url still missing.

	_, err := b.Finalize(context.Background(), draft)
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{types.FieldSongName, types.FieldYouTubeURL}, vErr.Missing)
	assert.Empty(t, records.inserted, "nothing inserted for an invalid draft")
}

func TestFinalizeAlbumCover(t *testing.T) {
	b, _, records, _ := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "X")
	draft.SetCandidateLocation(10, 20)
	draft.SetField(types.FieldTitle, "Y")
	draft.SetField(types.FieldReleaseYear, "1969")
	require.NoError(t, b.Validate(draft))

	pin, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "pin-1", pin.PinID)
	assert.Equal(t, types.SubmissionAlbumCover, pin.SubmissionType)
	assert.Equal(t, "X", pin.ArtistName)
	assert.Equal(t, "Y", pin.Title)
	assert.Equal(t, types.CoverAlbum, pin.CoverType)
	assert.Equal(t, "user-1", pin.UserID)
	require.NotNil(t, pin.Latitude)
	require.NotNil(t, pin.Longitude)
	assert.Equal(t, 10.0, *pin.Latitude)
	assert.Equal(t, 20.0, *pin.Longitude)
	require.NotNil(t, pin.ReleaseYear)
	assert.Equal(t, 1969, *pin.ReleaseYear)
	assert.Equal(t, types.StreetViewURL(10, 20), pin.StreetViewURL)
	require.Len(t, records.inserted, 1)
	assert.Empty(t, pin.SongName, "album covers carry no music-video fields")
}

func TestFinalizeMusicVideoCarriesOnlyItsFields(t *testing.T) {
	b, _, _, _ := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionMusicVideo)
	draft.SetField(types.FieldArtistName, "a-ha")
	draft.SetField(types.FieldSongName, "Take On Me")
	draft.SetField(types.FieldAlbumName, "Hunting High and Low")
	draft.SetField(types.FieldYouTubeURL, "https://www.youtube.com/watch?v=djV11Xbc914")
	draft.SetField(types.FieldTimestamp, "1:23")
	// A stray title from a kind switch must not leak into the record.
	draft.SetField(types.FieldTitle, "leftover")
	draft.SetCandidateLocation(59.9139, 10.7522)

	pin, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "Take On Me", pin.SongName)
	assert.Equal(t, "Hunting High and Low", pin.AlbumName)
	assert.Equal(t, "1:23", pin.Timestamp)
	assert.Empty(t, pin.Title)
	assert.Empty(t, pin.CoverType)
}

func TestFinalizeRejectsNonNumericYear(t *testing.T) {
	b, _, records, _ := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "X")
	draft.SetField(types.FieldTitle, "Y")
	draft.SetField(types.FieldReleaseYear, "nineteen sixty-nine")
	draft.SetCandidateLocation(10, 20)

	_, err := b.Finalize(context.Background(), draft)
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{types.FieldReleaseYear}, vErr.Missing)
	assert.Empty(t, records.inserted)
}

func TestFinalizeUploadsImageFirst(t *testing.T) {
	b, _, records, blobs := newTestBuilder(signedIn())
	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "X")
	draft.SetField(types.FieldTitle, "Y")
	draft.SetCandidateLocation(10, 20)
	draft.AttachImage("cover.jpg", []byte("jpeg-bytes"))

	pin, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err)

	require.Len(t, blobs.uploads, 1)
	assert.True(t, strings.HasPrefix(blobs.uploads[0], "covers/"))
	assert.True(t, strings.HasSuffix(blobs.uploads[0], "_cover.jpg"))
	assert.Equal(t, "https://blobs.example.com/"+blobs.uploads[0], pin.ImageURL)
	require.Len(t, records.inserted, 1)
	assert.Equal(t, pin.ImageURL, records.inserted[0].ImageURL)
}

func TestFinalizeUploadFailureAbortsWithoutInsert(t *testing.T) {
	b, _, records, blobs := newTestBuilder(signedIn())
	blobs.err = errors.New("bucket unavailable")

	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "X")
	draft.SetField(types.FieldTitle, "Y")
	draft.SetCandidateLocation(10, 20)
	draft.AttachImage("cover.jpg", []byte("jpeg-bytes"))

	_, err := b.Finalize(context.Background(), draft)
	var upErr *types.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Empty(t, records.inserted, "never create a pin referencing a missing image")

	// Draft survives untouched for a retry.
	assert.NotNil(t, draft.Image)
	assert.Equal(t, "X", draft.Field(types.FieldArtistName))
}

func TestFinalizeCapturesSessionAtInvocation(t *testing.T) {
	b, sessions, records, blobs := newTestBuilder(signedIn())

	// The session ends while the image upload is in flight.
	blobs.onUpload = func() { sessions.session = nil }

	draft := types.NewDraft(types.SubmissionAlbumCover)
	draft.SetField(types.FieldArtistName, "X")
	draft.SetField(types.FieldTitle, "Y")
	draft.SetCandidateLocation(10, 20)
	draft.AttachImage("cover.jpg", []byte("jpeg-bytes"))

	pin, err := b.Finalize(context.Background(), draft)
	require.NoError(t, err, "an in-flight finalize completes once started")
	assert.Equal(t, "user-1", pin.UserID)
	require.Len(t, records.inserted, 1)

	// The next attempt re-checks the gate and fails.
	_, err = b.Finalize(context.Background(), draft)
	var vErr *types.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Missing, "session")
}
