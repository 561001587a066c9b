// This file implements the submissions table accessor, the concrete form
// of the Records interface. Each operation hydrates between SQLite rows
// and types.Pin, joining the submitter's display name from profiles.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kc95kc/music-map/pkg/types"
)

// Compile-time interface check: submissionsTable must implement Records.
var _ types.Records = (*submissionsTable)(nil)

// submissionsTable implements the Records interface over the submissions
// and profiles tables.
type submissionsTable struct {
	backend *Backend
}

const listPinsQuery = `SELECT
    s.id, s.submission_type, s.user_id, s.artist_name,
    s.title, s.cover_type, s.song_name, s.album_name, s.youtube_url, s.timestamp,
    s.description, s.release_year, s.wikipedia_link, s.image_url, s.street_view_url,
    s.latitude, s.longitude, s.created_at,
    p.username
FROM submissions s
LEFT JOIN profiles p ON p.id = s.user_id`

// ListPins returns every stored submission joined with the submitter's
// display name. A submission without a matching profile row gets an empty
// display name, not an error. Order is unspecified.
func (st *submissionsTable) ListPins(ctx context.Context) ([]types.Pin, error) {
	if err := st.backend.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := st.backend.db.QueryContext(ctx, listPinsQuery)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var pins []types.Pin
	for rows.Next() {
		pin, err := hydratePin(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating submission: %w", err)
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return pins, nil
}

// InsertPin stores a new submission. Generates a UUID v7 ID and the
// creation timestamp; the caller's values for both are ignored.
func (st *submissionsTable) InsertPin(ctx context.Context, pin types.Pin) (string, error) {
	if err := st.backend.checkAttached(); err != nil {
		return "", err
	}
	if !types.ValidSubmissionType(pin.SubmissionType) {
		return "", types.ErrInvalidSubmissionType
	}
	if pin.UserID == "" || pin.ArtistName == "" {
		return "", types.ErrInvalidData
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}

	_, err = st.backend.db.ExecContext(ctx, `INSERT INTO submissions (
    id, submission_type, user_id, artist_name,
    title, cover_type, song_name, album_name, youtube_url, timestamp,
    description, release_year, wikipedia_link, image_url, street_view_url,
    latitude, longitude, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), pin.SubmissionType, pin.UserID, pin.ArtistName,
		nullString(pin.Title), nullString(pin.CoverType), nullString(pin.SongName),
		nullString(pin.AlbumName), nullString(pin.YouTubeURL), nullString(pin.Timestamp),
		nullString(pin.Description), nullInt(pin.ReleaseYear), nullString(pin.WikipediaLink),
		nullString(pin.ImageURL), nullString(pin.StreetViewURL),
		nullFloat(pin.Latitude), nullFloat(pin.Longitude),
		time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return "", fmt.Errorf("inserting submission: %w", err)
	}
	return id.String(), nil
}

// hydratePin scans one row of listPinsQuery into a Pin.
func hydratePin(rows *sql.Rows) (types.Pin, error) {
	var (
		pin        types.Pin
		title      sql.NullString
		coverType  sql.NullString
		songName   sql.NullString
		albumName  sql.NullString
		youtubeURL sql.NullString
		timestamp  sql.NullString
		descr      sql.NullString
		year       sql.NullInt64
		wikiLink   sql.NullString
		imageURL   sql.NullString
		streetView sql.NullString
		lat        sql.NullFloat64
		lon        sql.NullFloat64
		createdAt  string
		username   sql.NullString
	)

	err := rows.Scan(
		&pin.PinID, &pin.SubmissionType, &pin.UserID, &pin.ArtistName,
		&title, &coverType, &songName, &albumName, &youtubeURL, &timestamp,
		&descr, &year, &wikiLink, &imageURL, &streetView,
		&lat, &lon, &createdAt,
		&username,
	)
	if err != nil {
		return types.Pin{}, err
	}

	pin.Title = title.String
	pin.CoverType = coverType.String
	pin.SongName = songName.String
	pin.AlbumName = albumName.String
	pin.YouTubeURL = youtubeURL.String
	pin.Timestamp = timestamp.String
	pin.Description = descr.String
	pin.WikipediaLink = wikiLink.String
	pin.ImageURL = imageURL.String
	pin.StreetViewURL = streetView.String
	pin.DisplayName = username.String
	if year.Valid {
		y := int(year.Int64)
		pin.ReleaseYear = &y
	}
	if lat.Valid {
		v := lat.Float64
		pin.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		pin.Longitude = &v
	}
	if t, err := time.Parse(timeFormat, createdAt); err == nil {
		pin.CreatedAt = t
	}
	return pin, nil
}

// nullString maps empty strings to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt maps nil to SQL NULL.
func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullFloat maps nil to SQL NULL.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
