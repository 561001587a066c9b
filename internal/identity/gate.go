package identity

// Gate guards the submission workflow: entering submission mode and
// finalizing a draft both require an active session.
type Gate struct {
	store *Store
}

// NewGate creates a gate over the session store.
func NewGate(store *Store) *Gate {
	return &Gate{store: store}
}

// CanEnterSubmission reports whether a session is active. The state
// machine consults this before entering submission mode, and the draft
// builder re-checks it at finalize time since a session may end between
// the two.
func (g *Gate) CanEnterSubmission() bool {
	return g.store.Current() != nil
}
