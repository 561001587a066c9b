// Serve command runs the interactive map server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kc95kc/music-map/internal/blob"
	"github.com/kc95kc/music-map/internal/identity"
	"github.com/kc95kc/music-map/internal/mapview"
	"github.com/kc95kc/music-map/internal/pins"
	"github.com/kc95kc/music-map/internal/submit"
	"github.com/kc95kc/music-map/internal/surface"
	"github.com/kc95kc/music-map/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive map page",
	Long: `Serve the map page, its WebSocket surface, and uploaded cover
images on the configured listen address.

Submissions from the page run under the credential stored by
'musicmap login'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, cfg, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, backend, cfg)
	},
}

// runServer wires the repository, identity, map surface, and submission
// builder together and serves until ctx is cancelled.
func runServer(ctx context.Context, backend types.Store, cfg types.Config) error {
	svc, err := newIdentity(ctx, backend, cfg)
	if err != nil {
		return err
	}

	store := identity.NewStore(svc, backend.Accounts())
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	defer store.Dispose()

	hub := surface.NewHub()
	go hub.Run()

	viewport := mapview.NewViewport(hub, cfg.Default)
	gate := identity.NewGate(store)
	controller := mapview.NewController(gate, viewport, func() {
		hub.Publish("signin", nil)
	})

	repo := pins.NewRepository(backend.Records())
	if _, err := repo.LoadAll(ctx); err != nil {
		// The map opens empty when the initial fetch fails; a later
		// refresh can still populate it.
		log.Printf("serve: initial pin load: %v", err)
	}

	blobs := blob.NewStore(cfg.BlobDir, "/images")
	builder := submit.NewBuilder(store, backend.Records(), blobs)

	selectPin := func(pinID string) {
		pin, ok := repo.Get(pinID)
		if !ok {
			return
		}
		controller.SelectPin(pin)
		hub.Publish("detail", pin)
	}

	// Client commands arrive on per-connection read goroutines; one lock
	// keeps draft edits and finalize ordered.
	var mu sync.Mutex
	hub.OnCommand(func(cmd surface.Command) {
		mu.Lock()
		defer mu.Unlock()
		handleCommand(ctx, cmd, controller, builder, repo, hub, selectPin)
	})
	hub.OnClick(func(lat, lon float64) {
		mu.Lock()
		defer mu.Unlock()
		controller.MapSurfaceClicked(lat, lon)
		if m := controller.Mode(); m.Kind == mapview.ModeSubmitting && m.Draft.Candidate != nil {
			hub.Publish("candidate", m.Draft.Candidate)
		}
	})

	viewport.ApplyDefault()
	hub.RenderMarkers(repo.Renderable(), selectPin)

	mux := http.NewServeMux()
	mux.Handle("/", surface.PageHandler())
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.BlobDir))))

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serve: listening on %s", cfg.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// handleCommand applies one page command to the view-model. Commands
// that do not match the current mode are dropped.
func handleCommand(
	ctx context.Context,
	cmd surface.Command,
	controller *mapview.Controller,
	builder *submit.Builder,
	repo *pins.Repository,
	hub *surface.Hub,
	selectPin func(pinID string),
) {
	switch cmd.Type {
	case surface.CmdSubmissionEnter:
		if draft := controller.EnterSubmission(); draft != nil {
			hub.Publish("submission.open", draft.SubmissionType)
		}

	case surface.CmdSubmissionType:
		if m := controller.Mode(); m.Kind == mapview.ModeSubmitting {
			m.Draft.SetSubmissionType(cmd.Value)
		}

	case surface.CmdSubmissionField:
		if m := controller.Mode(); m.Kind == mapview.ModeSubmitting {
			m.Draft.SetField(cmd.Name, cmd.Value)
		}

	case surface.CmdSubmissionImage:
		if m := controller.Mode(); m.Kind == mapview.ModeSubmitting {
			m.Draft.AttachImage(cmd.Filename, cmd.Content)
		}

	case surface.CmdSubmissionCancel:
		controller.CancelSubmission()
		hub.Publish("submission.closed", nil)

	case surface.CmdSubmissionFinalize:
		m := controller.Mode()
		if m.Kind != mapview.ModeSubmitting {
			return
		}
		pin, err := builder.Finalize(ctx, m.Draft)
		if err != nil {
			var verr *types.ValidationError
			if errors.As(err, &verr) {
				hub.Publish("submission.invalid", verr.Missing)
				return
			}
			log.Printf("serve: finalize: %v", err)
			hub.Publish("submission.failed", err.Error())
			return
		}
		controller.SubmissionSucceeded()
		if err := repo.Refresh(ctx); err != nil {
			log.Printf("serve: refresh after submit: %v", err)
		}
		hub.RenderMarkers(repo.Renderable(), selectPin)
		hub.Publish("submission.saved", pin)

	case surface.CmdDetailClose:
		controller.ExitViewing()
		hub.Publish("detail", nil)

	case surface.CmdPanelCollapse:
		controller.SetCollapsed(cmd.Value == "true")
	}
}
