// Shared helpers for musicmap CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/kc95kc/music-map/internal/identity"
	"github.com/kc95kc/music-map/internal/sqlite"
	"github.com/kc95kc/music-map/pkg/types"
)

// credentialFileName is where the signed-in credential persists between
// CLI invocations, inside the config directory.
const credentialFileName = "credential.jwt"

// buildConfig assembles the backend Config from config.yaml, flags, and
// environment. Defaults are filled and the result validated.
func buildConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	blobDir := loadedConfig.blobDir
	if blobDir == "" {
		blobDir = filepath.Join(dataDir, "blobs")
	}

	cfg := types.Config{
		Backend:   loadedConfig.backend,
		DataDir:   dataDir,
		BlobDir:   blobDir,
		Listen:    loadedConfig.listen,
		JWTSecret: loadedConfig.secret,
		Default: types.Viewset{
			Lat:  loadedConfig.viewLat,
			Lon:  loadedConfig.viewLon,
			Zoom: loadedConfig.viewZoom,
		},
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// attachBackend builds the Config, creates a SQLite backend, and attaches
// it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, types.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, types.Config{}, err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, types.Config{}, fmt.Errorf("attach backend: %w", err)
	}

	return backend, cfg, nil
}

// newIdentity builds the identity service backed by the attached store's
// accounts and the credential file in the config directory, restoring any
// persisted session.
func newIdentity(ctx context.Context, backend types.Store, cfg types.Config) (*identity.Service, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	svc := identity.NewService(backend.Accounts(), filepath.Join(configDir, credentialFileName), cfg.JWTSecret)
	if err := svc.Init(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return svc, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
