// Root command for the musicmap CLI.
package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kc95kc/music-map/internal/paths"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// loadedConfig holds the viper instance read from config.yaml. Set by
// PersistentPreRunE so all subcommands can use it.
var loadedConfig configValues

var rootCmd = &cobra.Command{
	Use:     "musicmap",
	Short:   "musicmap is a map of music history",
	Long:    "musicmap keeps a map of places where album covers and music videos were made,\nand serves an interactive map page for browsing and submitting them.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file in the working directory may carry overrides
		// such as MUSICMAP_JWT_SECRET. Absence is not an error.
		_ = godotenv.Load()

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		loadedConfig = cfg
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.musicmap-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pinsCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > MUSICMAP_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, loadedConfig.dataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > MUSICMAP_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
