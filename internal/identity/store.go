package identity

import (
	"context"
	"sync"

	"github.com/kc95kc/music-map/pkg/types"
)

// Store is the process-wide session store. It tracks the current session
// and the display name resolved from the profile record, updating both
// whenever the identity service reports a change. Session and display
// name are swapped under one lock, so readers never observe a session
// paired with a stale name.
type Store struct {
	identity types.Identity
	accounts types.Accounts

	mu      sync.RWMutex
	current *types.Session
}

// NewStore creates a session store over the given collaborators. Call
// Init to populate it and subscribe to change notifications.
func NewStore(identity types.Identity, accounts types.Accounts) *Store {
	return &Store{identity: identity, accounts: accounts}
}

// Init pulls the current session and subscribes to session changes.
func (st *Store) Init(ctx context.Context) error {
	st.identity.OnSessionChange(func(session *types.Session) {
		st.apply(context.Background(), session)
	})

	session, err := st.identity.CurrentSession(ctx)
	if err != nil {
		return err
	}
	st.apply(ctx, session)
	return nil
}

// Current returns the active session with its resolved display name, or
// nil if anonymous. Callers must not mutate the returned value.
func (st *Store) Current() *types.Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Dispose clears the store. Further change notifications are still
// applied if the identity service outlives the store; teardown order is
// the caller's concern.
func (st *Store) Dispose() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = nil
}

// apply resolves the display name for the new session and swaps the
// stored value. Resolution failure leaves the session valid with an
// empty display name; it never blocks login.
func (st *Store) apply(ctx context.Context, session *types.Session) {
	var next *types.Session
	if session != nil {
		resolved := *session
		if name, err := st.accounts.ProfileName(ctx, session.UserID); err == nil {
			resolved.DisplayName = name
		}
		next = &resolved
	}

	st.mu.Lock()
	st.current = next
	st.mu.Unlock()
}
