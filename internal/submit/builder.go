// Package submit implements the submission draft builder: it validates
// an in-progress draft and finalizes it into a stored pin, uploading any
// attached image first.
package submit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kc95kc/music-map/pkg/types"
)

// SessionSource yields the current session for gate checks. The
// process-wide session store satisfies it.
type SessionSource interface {
	Current() *types.Session
}

// Builder finalizes drafts against the records and blob collaborators.
// One builder serves the whole submission workflow; the draft itself is
// owned by the submitting mode.
type Builder struct {
	sessions SessionSource
	records  types.Records
	blobs    types.BlobStore
}

// NewBuilder creates a builder over the given collaborators.
func NewBuilder(sessions SessionSource, records types.Records, blobs types.BlobStore) *Builder {
	return &Builder{sessions: sessions, records: records, blobs: blobs}
}

// Validate reports whether the draft is submittable. A nil return means
// it is; otherwise the ValidationError lists the missing kind-specific
// fields plus "location" if no candidate was picked and "session" if
// nobody is signed in.
func (b *Builder) Validate(draft *types.Draft) error {
	return b.validate(draft, b.sessions.Current())
}

// validate checks the draft against an explicit session value so
// Finalize can use the session captured at invocation time.
func (b *Builder) validate(draft *types.Draft, session *types.Session) error {
	missing := draft.Missing()
	if draft.Candidate == nil {
		missing = append(missing, "location")
	}
	if session == nil {
		missing = append(missing, "session")
	}
	if len(missing) > 0 {
		return &types.ValidationError{Missing: missing}
	}
	return nil
}

// Finalize turns the draft into a stored pin and returns it with its
// generated ID.
//
// The session is captured once, here at invocation: a sign-out that
// lands while the finalize is in flight does not abort it, but the next
// attempt re-checks the gate. An attached image is uploaded before
// anything else; upload failure aborts with an UploadError and no record
// is inserted. The draft is left intact on every failure path so the
// submitting mode can retry.
func (b *Builder) Finalize(ctx context.Context, draft *types.Draft) (types.Pin, error) {
	session := b.sessions.Current()
	if err := b.validate(draft, session); err != nil {
		return types.Pin{}, err
	}

	pin, err := b.assemble(draft, session)
	if err != nil {
		return types.Pin{}, err
	}

	if draft.Image != nil {
		path := fmt.Sprintf("covers/%d_%s", time.Now().UnixMilli(), draft.Image.Filename)
		url, err := b.blobs.Upload(ctx, path, draft.Image.Content)
		if err != nil {
			return types.Pin{}, &types.UploadError{Path: path, Err: err}
		}
		pin.ImageURL = url
	}

	id, err := b.records.InsertPin(ctx, pin)
	if err != nil {
		return types.Pin{}, fmt.Errorf("inserting submission: %w", err)
	}
	pin.PinID = id
	return pin, nil
}

// assemble maps draft fields onto a pin record, coercing numerics and
// deriving the street-view link from the candidate coordinate. Only the
// fields belonging to the draft's kind are carried over.
func (b *Builder) assemble(draft *types.Draft, session *types.Session) (types.Pin, error) {
	lat, lon := draft.Candidate.Lat, draft.Candidate.Lon
	pin := types.Pin{
		SubmissionType: draft.SubmissionType,
		UserID:         session.UserID,
		ArtistName:     draft.Field(types.FieldArtistName),
		Description:    draft.Field(types.FieldDescription),
		WikipediaLink:  draft.Field(types.FieldWikipediaLink),
		StreetViewURL:  types.StreetViewURL(lat, lon),
		Latitude:       &lat,
		Longitude:      &lon,
	}

	if raw := draft.Field(types.FieldReleaseYear); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return types.Pin{}, &types.ValidationError{Missing: []string{types.FieldReleaseYear}}
		}
		pin.ReleaseYear = &year
	}

	switch draft.SubmissionType {
	case types.SubmissionAlbumCover:
		pin.Title = draft.Field(types.FieldTitle)
		pin.CoverType = draft.Field(types.FieldCoverType)
	case types.SubmissionMusicVideo:
		pin.SongName = draft.Field(types.FieldSongName)
		pin.AlbumName = draft.Field(types.FieldAlbumName)
		pin.YouTubeURL = draft.Field(types.FieldYouTubeURL)
		pin.Timestamp = draft.Field(types.FieldTimestamp)
	default:
		return types.Pin{}, types.ErrInvalidSubmissionType
	}

	return pin, nil
}
