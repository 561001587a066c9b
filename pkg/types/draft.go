package types

// Draft field names, matching the stored record's column names. SetField
// accepts any of these; which ones are required depends on the draft's
// submission type.
const (
	FieldArtistName    = "artist_name"
	FieldTitle         = "title"
	FieldCoverType     = "cover_type"
	FieldSongName      = "song_name"
	FieldAlbumName     = "album_name"
	FieldYouTubeURL    = "youtube_url"
	FieldTimestamp     = "timestamp"
	FieldReleaseYear   = "release_year"
	FieldWikipediaLink = "wikipedia_link"
	FieldDescription   = "description"
)

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ImageAttachment is a pending image payload on a draft. At most one per
// draft; attaching a second replaces the first.
type ImageAttachment struct {
	Filename string
	Content  []byte
}

// Draft is an in-progress, unvalidated submission. It exists only inside
// an active submitting mode and is discarded on mode exit.
type Draft struct {
	SubmissionType string
	Fields         map[string]string
	Candidate      *Coordinate
	Image          *ImageAttachment
}

// NewDraft creates an empty draft of the given submission type. The cover
// subtype defaults to "album", matching the submit form's initial state.
func NewDraft(submissionType string) *Draft {
	d := &Draft{
		SubmissionType: submissionType,
		Fields:         make(map[string]string),
	}
	if submissionType == SubmissionAlbumCover {
		d.Fields[FieldCoverType] = CoverAlbum
	}
	return d
}

// SetSubmissionType switches the draft's kind. Entered field values are
// kept, mirroring the submit form, which preserves its inputs when the
// type selector changes. Requirements are re-evaluated against the new
// kind at validate time.
func (d *Draft) SetSubmissionType(submissionType string) {
	d.SubmissionType = submissionType
	if submissionType == SubmissionAlbumCover && d.Field(FieldCoverType) == "" {
		d.Fields[FieldCoverType] = CoverAlbum
	}
}

// SetField records a field value. No validation happens at write time;
// Missing reports requirement violations at validate time instead.
func (d *Draft) SetField(name, value string) {
	d.Fields[name] = value
}

// Field returns the recorded value for name, or empty string.
func (d *Draft) Field(name string) string {
	return d.Fields[name]
}

// SetCandidateLocation sets the draft's candidate coordinate, overwriting
// any previous candidate.
func (d *Draft) SetCandidateLocation(lat, lon float64) {
	d.Candidate = &Coordinate{Lat: lat, Lon: lon}
}

// AttachImage attaches a pending image payload, replacing any previously
// attached image.
func (d *Draft) AttachImage(filename string, content []byte) {
	d.Image = &ImageAttachment{Filename: filename, Content: content}
}

// Missing returns the kind-specific required fields that are still empty.
// Artist name is always required; album_cover additionally requires a
// title; music_video requires song name and video URL. Location and
// session checks belong to the builder, not the draft.
func (d *Draft) Missing() []string {
	var missing []string
	if d.Field(FieldArtistName) == "" {
		missing = append(missing, FieldArtistName)
	}
	switch d.SubmissionType {
	case SubmissionAlbumCover:
		if d.Field(FieldTitle) == "" {
			missing = append(missing, FieldTitle)
		}
	case SubmissionMusicVideo:
		if d.Field(FieldSongName) == "" {
			missing = append(missing, FieldSongName)
		}
		if d.Field(FieldYouTubeURL) == "" {
			missing = append(missing, FieldYouTubeURL)
		}
	}
	return missing
}
