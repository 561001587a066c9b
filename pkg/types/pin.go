package types

import (
	"fmt"
	"time"
)

// Submission types. Each pin is exactly one of these; the kind-specific
// field set is fixed at creation.
const (
	SubmissionAlbumCover = "album_cover"
	SubmissionMusicVideo = "music_video"
)

// validSubmissionTypes is the set of recognized submission type values.
var validSubmissionTypes = map[string]bool{
	SubmissionAlbumCover: true,
	SubmissionMusicVideo: true,
}

// ValidSubmissionType reports whether t is a recognized submission type.
func ValidSubmissionType(t string) bool {
	return validSubmissionTypes[t]
}

// Cover subtypes for album_cover pins.
const (
	CoverAlbum  = "album"
	CoverSingle = "single"
)

// Pin represents a persisted geotagged music-location entry.
//
// Latitude and Longitude are pointers because a stored record may lack one
// or both; such a pin stays in the repository collection but is excluded
// from marker rendering. Music-video pins have no Title, only SongName.
type Pin struct {
	PinID          string    `json:"id"`
	SubmissionType string    `json:"submission_type"`
	ArtistName     string    `json:"artist_name"`
	Title          string    `json:"title,omitempty"`
	CoverType      string    `json:"cover_type,omitempty"`
	SongName       string    `json:"song_name,omitempty"`
	AlbumName      string    `json:"album_name,omitempty"`
	YouTubeURL     string    `json:"youtube_url,omitempty"`
	Timestamp      string    `json:"timestamp,omitempty"`
	Description    string    `json:"description,omitempty"`
	ReleaseYear    *int      `json:"release_year,omitempty"`
	WikipediaLink  string    `json:"wikipedia_link,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	StreetViewURL  string    `json:"street_view_url,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasLocation reports whether the pin carries both coordinates and is
// therefore renderable as a marker.
func (p *Pin) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// StreetViewURL derives the street-level-view link for a coordinate.
// Pure function of geometry; the repository applies it during
// normalization so renderers never re-derive it.
func StreetViewURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=&layer=c&cbll=%v,%v", lat, lon)
}
