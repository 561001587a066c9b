package blob

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, "http://localhost:8473/images/"), dir
}

// testJPEG returns an encoded image of the given size.
func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestUploadReturnsReferenceURL(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Upload(context.Background(), "covers/123_cover.jpg", []byte("not an image"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8473/images/covers/123_cover.jpg", url)

	stored, err := os.ReadFile(filepath.Join(dir, "covers", "123_cover.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("not an image"), stored)
}

func TestUploadWritesThumbnailForImages(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Upload(context.Background(), "covers/1_big.jpg", testJPEG(t, 900, 600))
	require.NoError(t, err)

	thumbFile := filepath.Join(dir, "covers", "1_big_thumb.jpg")
	raw, err := os.ReadFile(thumbFile)
	require.NoError(t, err, "image uploads get a sibling thumbnail")

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 300)
	assert.LessOrEqual(t, cfg.Height, 300)
}

func TestUploadSkipsThumbnailForNonImages(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Upload(context.Background(), "covers/2_notes.txt", []byte("plain text"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "covers", "2_notes_thumb.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadRejectsEscapingPaths(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, path := range []string{"../outside.jpg", "/etc/passwd", "covers/../../up.jpg", "."} {
		_, err := store.Upload(ctx, path, []byte("x"))
		assert.Error(t, err, "path %q must be rejected", path)
	}
}

func TestUploadHonorsCancelledContext(t *testing.T) {
	store, dir := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "covers/3_late.jpg", []byte("x"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "covers", "3_late.jpg"))
	assert.True(t, os.IsNotExist(statErr), "no partial object after a failed upload")
}

func TestURLFor(t *testing.T) {
	store, _ := newTestStore(t)

	url, err := store.URLFor("covers/9_x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8473/images/covers/9_x.jpg", url)
}
