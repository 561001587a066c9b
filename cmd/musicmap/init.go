// Init command for the musicmap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize musicmap storage",
	Long:  "Initialize the configuration directory, the storage backend, and the\nstarter pin at the Abbey Road crossing when the map is empty.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		// Attach backend (creates the data directory and schema).
		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := backend.Seed(cmd.Context()); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("musicmap initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", cfg.DataDir)
		fmt.Println("  blobs: ", cfg.BlobDir)
		return nil
	},
}
