package mapview

import (
	"sync"

	"github.com/kc95kc/music-map/pkg/types"
)

// detailZoom is the fixed close zoom applied when a pin is selected.
const detailZoom = 17

// SubmissionGate guards entry into submission mode.
type SubmissionGate interface {
	CanEnterSubmission() bool
}

// Controller is the selection and mode state machine. Every external
// event runs to completion under one lock, so transitions never
// interleave: the single-threaded, event-driven model of the UI.
type Controller struct {
	gate     SubmissionGate
	viewport *Viewport

	// promptSignIn is invoked instead of entering submission mode when
	// no session is active.
	promptSignIn func()

	mu        sync.Mutex
	mode      Mode
	collapsed bool
}

// NewController creates a controller starting in idle mode with the
// sidebar expanded.
func NewController(gate SubmissionGate, viewport *Viewport, promptSignIn func()) *Controller {
	if promptSignIn == nil {
		promptSignIn = func() {}
	}
	return &Controller{
		gate:         gate,
		viewport:     viewport,
		promptSignIn: promptSignIn,
		mode:         Idle(),
	}
}

// Mode returns the active UI mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Collapsed reports whether the sidebar is collapsed. Collapse is
// orthogonal to mode: it hides the panel without touching its content.
func (c *Controller) Collapsed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed
}

// SetCollapsed toggles sidebar visibility. It never clears viewing or
// submitting content; re-expanding shows whatever was active before.
func (c *Controller) SetCollapsed(collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collapsed = collapsed
}

// SelectPin activates viewing mode for the pin from any prior state and
// recenters the viewport on it at the detail zoom. A submission draft in
// progress is silently discarded. A collapsed sidebar is expanded so the
// detail panel becomes visible.
func (c *Controller) SelectPin(pin types.Pin) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = Viewing(pin)
	c.collapsed = false
	if pin.HasLocation() {
		c.viewport.Recenter(*pin.Latitude, *pin.Longitude, detailZoom)
	}
}

// EnterSubmission switches to submitting mode with a fresh album-cover
// draft and returns it. Without an active session no mode change
// happens: the sign-in prompt is surfaced and nil is returned. When a
// submission does start, any previously viewed pin is discarded and is
// not restored when submission ends.
func (c *Controller) EnterSubmission() *types.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.gate.CanEnterSubmission() {
		c.promptSignIn()
		return nil
	}

	draft := types.NewDraft(types.SubmissionAlbumCover)
	c.mode = Submitting(draft)
	return draft
}

// MapSurfaceClicked handles a click on the map surface. In submitting
// mode the click picks the draft's candidate location, overwriting any
// previous pick. In viewing or idle mode the click falls through: no
// mode change, no draft change.
func (c *Controller) MapSurfaceClicked(lat, lon float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.Kind != ModeSubmitting {
		return
	}
	c.mode.Draft.SetCandidateLocation(lat, lon)
}

// SubmissionSucceeded returns to idle after a finalized submission. The
// draft is discarded.
func (c *Controller) SubmissionSucceeded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.Kind == ModeSubmitting {
		c.mode = Idle()
	}
}

// CancelSubmission abandons the draft and returns to idle.
func (c *Controller) CancelSubmission() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.Kind == ModeSubmitting {
		c.mode = Idle()
	}
}

// ExitViewing closes the detail panel and returns to idle.
func (c *Controller) ExitViewing() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.Kind == ModeViewing {
		c.mode = Idle()
	}
}
