// Submit command walks the submission workflow from the command line.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kc95kc/music-map/internal/blob"
	"github.com/kc95kc/music-map/internal/identity"
	"github.com/kc95kc/music-map/internal/submit"
	"github.com/kc95kc/music-map/pkg/types"
)

var (
	submitType        string
	submitArtist      string
	submitTitle       string
	submitCoverType   string
	submitSong        string
	submitAlbum       string
	submitYouTube     string
	submitTimestamp   string
	submitYear        string
	submitWiki        string
	submitDescription string
	submitLat         float64
	submitLon         float64
	submitImage       string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new pin",
	Long: `Submit a new pin at the given coordinates. Requires a signed-in
session (see 'musicmap login').

Album covers need --artist and --title; music videos need --artist,
--song, and --youtube.

Example:
  musicmap submit --artist "The Beatles" --title "Abbey Road" \
    --lat 51.532052 --lon -0.177335 --image ./abbey-road.jpg`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitType, "type", types.SubmissionAlbumCover, "submission type: album_cover or music_video")
	submitCmd.Flags().StringVar(&submitArtist, "artist", "", "artist name (required)")
	submitCmd.Flags().StringVar(&submitTitle, "title", "", "album title (album covers)")
	submitCmd.Flags().StringVar(&submitCoverType, "cover-type", "", "album or single (album covers)")
	submitCmd.Flags().StringVar(&submitSong, "song", "", "song name (music videos)")
	submitCmd.Flags().StringVar(&submitAlbum, "album", "", "album the song appears on (music videos)")
	submitCmd.Flags().StringVar(&submitYouTube, "youtube", "", "video URL (music videos)")
	submitCmd.Flags().StringVar(&submitTimestamp, "timestamp", "", "timestamp of the scene in the video (music videos)")
	submitCmd.Flags().StringVar(&submitYear, "year", "", "release year")
	submitCmd.Flags().StringVar(&submitWiki, "wiki", "", "wikipedia link")
	submitCmd.Flags().StringVar(&submitDescription, "description", "", "free-form description")
	submitCmd.Flags().Float64Var(&submitLat, "lat", 0, "pin latitude (required)")
	submitCmd.Flags().Float64Var(&submitLon, "lon", 0, "pin longitude (required)")
	submitCmd.Flags().StringVar(&submitImage, "image", "", "cover image file to upload")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if !types.ValidSubmissionType(submitType) {
		fmt.Fprintf(os.Stderr, "submit: unknown type %q (valid: %s, %s)\n",
			submitType, types.SubmissionAlbumCover, types.SubmissionMusicVideo)
		os.Exit(exitUserError)
	}
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		fmt.Fprintln(os.Stderr, "submit: --lat and --lon are required")
		os.Exit(exitUserError)
	}

	backend, cfg, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "submit:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	svc, err := newIdentity(cmd.Context(), backend, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "submit:", err)
		os.Exit(exitSysError)
	}

	store := identity.NewStore(svc, backend.Accounts())
	if err := store.Init(cmd.Context()); err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	defer store.Dispose()

	gate := identity.NewGate(store)
	if !gate.CanEnterSubmission() {
		fmt.Fprintln(os.Stderr, "submit: sign in first (musicmap login)")
		os.Exit(exitUserError)
	}

	draft := buildDraft()
	if submitImage != "" {
		content, err := os.ReadFile(submitImage)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		draft.AttachImage(filepath.Base(submitImage), content)
	}

	blobs := blob.NewStore(cfg.BlobDir, "/images")
	builder := submit.NewBuilder(store, backend.Records(), blobs)

	pin, err := builder.Finalize(cmd.Context(), draft)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, "submit: missing:", verr.Missing)
			os.Exit(exitUserError)
		}
		return fmt.Errorf("finalize: %w", err)
	}

	if flagJSON {
		return printJSON(pin)
	}
	fmt.Println("pin created:", pin.PinID)
	return nil
}

// buildDraft translates the submit flags into a draft the same way the
// map page's submission form would.
func buildDraft() *types.Draft {
	draft := types.NewDraft(submitType)
	draft.SetCandidateLocation(submitLat, submitLon)

	set := func(name, value string) {
		if value != "" {
			draft.SetField(name, value)
		}
	}
	set(types.FieldArtistName, submitArtist)
	set(types.FieldTitle, submitTitle)
	set(types.FieldCoverType, submitCoverType)
	set(types.FieldSongName, submitSong)
	set(types.FieldAlbumName, submitAlbum)
	set(types.FieldYouTubeURL, submitYouTube)
	set(types.FieldTimestamp, submitTimestamp)
	set(types.FieldReleaseYear, submitYear)
	set(types.FieldWikipediaLink, submitWiki)
	set(types.FieldDescription, submitDescription)
	return draft
}
