package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(SubmissionAlbumCover)
	assert.Equal(t, SubmissionAlbumCover, d.SubmissionType)
	assert.Equal(t, CoverAlbum, d.Field(FieldCoverType), "cover subtype defaults to album")
	assert.Nil(t, d.Candidate)
	assert.Nil(t, d.Image)

	d = NewDraft(SubmissionMusicVideo)
	assert.Empty(t, d.Field(FieldCoverType), "music_video drafts have no cover subtype")
}

func TestDraftMissing(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		fields  map[string]string
		missing []string
	}{
		{
			name:    "album cover empty",
			kind:    SubmissionAlbumCover,
			missing: []string{FieldArtistName, FieldTitle},
		},
		{
			name:    "album cover missing title",
			kind:    SubmissionAlbumCover,
			fields:  map[string]string{FieldArtistName: "The Beatles"},
			missing: []string{FieldTitle},
		},
		{
			name: "album cover complete",
			kind: SubmissionAlbumCover,
			fields: map[string]string{
				FieldArtistName: "The Beatles",
				FieldTitle:      "Abbey Road",
			},
		},
		{
			name:    "music video empty",
			kind:    SubmissionMusicVideo,
			missing: []string{FieldArtistName, FieldSongName, FieldYouTubeURL},
		},
		{
			name: "music video missing url",
			kind: SubmissionMusicVideo,
			fields: map[string]string{
				FieldArtistName: "a-ha",
				FieldSongName:   "Take On Me",
			},
			missing: []string{FieldYouTubeURL},
		},
		{
			name: "music video complete without optional fields",
			kind: SubmissionMusicVideo,
			fields: map[string]string{
				FieldArtistName: "a-ha",
				FieldSongName:   "Take On Me",
				FieldYouTubeURL: "https://www.youtube.com/watch?v=djV11Xbc914",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(tt.kind)
			for name, value := range tt.fields {
				d.SetField(name, value)
			}
			assert.Equal(t, tt.missing, d.Missing())
		})
	}
}

func TestDraftSetCandidateLocationOverwrites(t *testing.T) {
	d := NewDraft(SubmissionAlbumCover)
	d.SetCandidateLocation(1, 2)
	d.SetCandidateLocation(10, 20)

	assert.Equal(t, &Coordinate{Lat: 10, Lon: 20}, d.Candidate)
}

func TestDraftAttachImageReplaces(t *testing.T) {
	d := NewDraft(SubmissionAlbumCover)
	d.AttachImage("first.jpg", []byte("aaa"))
	d.AttachImage("second.jpg", []byte("bbb"))

	assert.Equal(t, "second.jpg", d.Image.Filename)
	assert.Equal(t, []byte("bbb"), d.Image.Content)
}
