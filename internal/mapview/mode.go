// Package mapview implements the interactive core: the UI mode state
// machine governing sidebar content and click semantics, and the
// viewport controller.
package mapview

import "github.com/kc95kc/music-map/pkg/types"

// ModeKind discriminates the UI mode variants.
type ModeKind int

const (
	// ModeIdle shows no detail panel content.
	ModeIdle ModeKind = iota

	// ModeViewing shows a selected pin's details.
	ModeViewing

	// ModeSubmitting shows the submission form for an in-progress draft.
	ModeSubmitting
)

// String returns the mode kind's name.
func (k ModeKind) String() string {
	switch k {
	case ModeIdle:
		return "idle"
	case ModeViewing:
		return "viewing"
	case ModeSubmitting:
		return "submitting"
	}
	return "unknown"
}

// Mode is the tagged UI mode variant. Exactly one mode is active at a
// time; Pin is set only for ModeViewing and Draft only for
// ModeSubmitting. Constructing through Idle, Viewing, and Submitting
// keeps invalid combinations unrepresentable.
type Mode struct {
	Kind  ModeKind
	Pin   *types.Pin
	Draft *types.Draft
}

// Idle returns the idle mode.
func Idle() Mode {
	return Mode{Kind: ModeIdle}
}

// Viewing returns a viewing mode holding the selected pin.
func Viewing(pin types.Pin) Mode {
	return Mode{Kind: ModeViewing, Pin: &pin}
}

// Submitting returns a submitting mode holding the active draft.
func Submitting(draft *types.Draft) Mode {
	return Mode{Kind: ModeSubmitting, Draft: draft}
}
