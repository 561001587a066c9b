// This file implements first-run seeding. A fresh map gets the Abbey Road
// crossing pin so the surface is never empty before the first submission.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kc95kc/music-map/pkg/types"
)

// seedUsername is the display name attached to seeded pins.
const seedUsername = "musicmap"

// abbeyRoadLat and abbeyRoadLon locate the crosswalk on the Abbey Road
// album cover.
const (
	abbeyRoadLat = 51.53205203427031
	abbeyRoadLon = -0.17733518220901687
)

// Seed installs the built-in Abbey Road pin if the submissions table is
// empty. Idempotent: a map with any submission is left untouched.
func (b *Backend) Seed(ctx context.Context) error {
	if err := b.checkAttached(); err != nil {
		return err
	}

	var count int
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count); err != nil {
		return fmt.Errorf("counting submissions: %w", err)
	}
	if count > 0 {
		return nil
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating UUID v7: %w", err)
	}
	if err := b.accounts.CreateProfile(ctx, userID.String(), seedUsername); err != nil {
		return err
	}

	lat, lon := abbeyRoadLat, abbeyRoadLon
	year := 1969
	pin := types.Pin{
		SubmissionType: types.SubmissionAlbumCover,
		UserID:         userID.String(),
		ArtistName:     "The Beatles",
		Title:          "Abbey Road",
		CoverType:      types.CoverAlbum,
		Description:    "The iconic Abbey Road crosswalk, where The Beatles shot their legendary album cover in 1969.",
		ReleaseYear:    &year,
		WikipediaLink:  "https://en.wikipedia.org/wiki/Abbey_Road_(album)",
		ImageURL:       "https://upload.wikimedia.org/wikipedia/en/4/42/Beatles_-_Abbey_Road.jpg",
		StreetViewURL:  types.StreetViewURL(lat, lon),
		Latitude:       &lat,
		Longitude:      &lon,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := b.records.InsertPin(ctx, pin); err != nil {
		return err
	}
	return nil
}
