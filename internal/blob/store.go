// Package blob implements the image storage collaborator on the local
// filesystem. Uploads land under the blob directory and are addressed by
// a public-style URL; image uploads additionally get a JPEG thumbnail
// for marker popups.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/kc95kc/music-map/pkg/types"
)

// thumbnail bounds, matching the sidebar image slot.
const (
	thumbMaxWidth  = 300
	thumbMaxHeight = 300
	thumbQuality   = 85
)

// Store implements the BlobStore interface over a directory tree.
type Store struct {
	dir     string
	baseURL string
}

// Compile-time interface check: Store must implement BlobStore.
var _ types.BlobStore = (*Store)(nil)

// NewStore creates a blob store rooted at dir. baseURL prefixes the
// returned reference URLs, e.g. "http://localhost:8473/images".
func NewStore(dir, baseURL string) *Store {
	return &Store{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Upload stores content under path and returns its reference URL. The
// write goes through a temp file and rename, so a failed upload leaves
// no partial object for a later finalize to reference. Decodable images
// get a sibling thumbnail; thumbnail failure is not an upload failure.
func (s *Store) Upload(ctx context.Context, path string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := s.cleanPath(path)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp blob: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("placing blob: %w", err)
	}

	if thumb, ok := makeThumbnail(content); ok {
		_ = os.WriteFile(thumbPath(dst), thumb, 0o644)
	}

	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}

// URLFor returns the reference URL a given path would upload to.
func (s *Store) URLFor(path string) (string, error) {
	clean, err := s.cleanPath(path)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}

// cleanPath normalizes and confines path to the store root.
func (s *Store) cleanPath(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return clean, nil
}

// thumbPath names the thumbnail file next to the original.
func thumbPath(dst string) string {
	ext := filepath.Ext(dst)
	return strings.TrimSuffix(dst, ext) + "_thumb.jpg"
}

// makeThumbnail downscales a decodable image to the popup bounds. The
// second return is false for content that is not an image.
func makeThumbnail(content []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, false
	}

	thumb := resize.Thumbnail(thumbMaxWidth, thumbMaxHeight, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
