// Pins command lists the pin dataset.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kc95kc/music-map/internal/pins"
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List all pins",
	Long: `List every pin on the map, newest first.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "pins:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		repo := pins.NewRepository(backend.Records())
		all, err := repo.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load pins: %w", err)
		}

		if flagJSON {
			return printJSON(all)
		}

		if len(all) == 0 {
			fmt.Println("no pins yet; run 'musicmap init' to place the starter pin")
			return nil
		}
		for _, p := range all {
			title := p.Title
			if title == "" {
				title = p.SongName
			}
			loc := "(no location)"
			if p.HasLocation() {
				loc = fmt.Sprintf("%.5f, %.5f", *p.Latitude, *p.Longitude)
			}
			fmt.Printf("%s  %-12s  %s - %s  %s\n", p.PinID, p.SubmissionType, p.ArtistName, title, loc)
		}
		return nil
	},
}
