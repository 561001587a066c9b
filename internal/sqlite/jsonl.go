// This file provides JSONL export and import of the pin dataset with
// atomic persistence.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kc95kc/music-map/pkg/types"
)

// ExportPins writes every submission to path as JSONL, one pin per line.
// The write is atomic; an existing file is only replaced on success.
// Returns the number of pins written.
func (b *Backend) ExportPins(ctx context.Context, path string) (int, error) {
	pins, err := b.records.ListPins(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(pins))
	for _, pin := range pins {
		raw, err := json.Marshal(pin)
		if err != nil {
			return 0, fmt.Errorf("marshaling pin %s: %w", pin.PinID, err)
		}
		records = append(records, raw)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ImportPins reads a JSONL export from path and restores its pins,
// preserving IDs and creation times. Malformed lines and pins whose ID
// already exists are skipped. Returns the number of pins inserted.
func (b *Backend) ImportPins(ctx context.Context, path string) (int, error) {
	if err := b.checkAttached(); err != nil {
		return 0, err
	}

	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, raw := range records {
		var pin types.Pin
		if err := json.Unmarshal(raw, &pin); err != nil {
			continue
		}
		if pin.PinID == "" || pin.UserID == "" || pin.ArtistName == "" ||
			!types.ValidSubmissionType(pin.SubmissionType) {
			continue
		}
		ok, err := b.records.restorePin(ctx, pin)
		if err != nil {
			return inserted, fmt.Errorf("restoring pin %s: %w", pin.PinID, err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// restorePin inserts a previously exported submission keeping its ID and
// creation time. An existing ID leaves the stored row untouched.
func (st *submissionsTable) restorePin(ctx context.Context, pin types.Pin) (bool, error) {
	createdAt := pin.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := st.backend.db.ExecContext(ctx, `INSERT OR IGNORE INTO submissions (
    id, submission_type, user_id, artist_name,
    title, cover_type, song_name, album_name, youtube_url, timestamp,
    description, release_year, wikipedia_link, image_url, street_view_url,
    latitude, longitude, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pin.PinID, pin.SubmissionType, pin.UserID, pin.ArtistName,
		nullString(pin.Title), nullString(pin.CoverType), nullString(pin.SongName),
		nullString(pin.AlbumName), nullString(pin.YouTubeURL), nullString(pin.Timestamp),
		nullString(pin.Description), nullInt(pin.ReleaseYear), nullString(pin.WikipediaLink),
		nullString(pin.ImageURL), nullString(pin.StreetViewURL),
		nullFloat(pin.Latitude), nullFloat(pin.Longitude),
		createdAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable
// line. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the
// temp-file, fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
