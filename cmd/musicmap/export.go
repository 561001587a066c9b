// Export and import commands move the pin dataset as JSONL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all pins to a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		n, err := backend.ExportPins(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("export pins: %w", err)
		}
		fmt.Printf("exported %d pins to %s\n", n, args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import pins from a JSONL export",
	Long: `Import pins from a JSONL export, keeping their IDs and creation
times. Pins whose ID already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		n, err := backend.ImportPins(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("import pins: %w", err)
		}
		fmt.Printf("imported %d pins from %s\n", n, args[0])
		return nil
	},
}
