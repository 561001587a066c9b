// Package identity implements the authentication collaborator, the
// process-wide session store, and the submission auth gate.
package identity

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/kc95kc/music-map/pkg/types"
)

// Service implements the Identity interface against the Accounts surface
// of the attached store. Credentials are bcrypt-hashed; an established
// session is persisted to disk as a signed token so it survives restarts.
type Service struct {
	accounts types.Accounts
	creds    *credentialFile

	mu        sync.Mutex
	current   *types.Session
	listeners []func(*types.Session)
}

// Compile-time interface check: Service must implement Identity.
var _ types.Identity = (*Service)(nil)

// NewService creates an identity service. credentialPath is where the
// persisted session token lives; secret signs it.
func NewService(accounts types.Accounts, credentialPath, secret string) *Service {
	return &Service{
		accounts: accounts,
		creds:    newCredentialFile(credentialPath, secret),
	}
}

// Init re-establishes a session from the persisted credential, if one
// exists and still parses. A missing or invalid credential is not an
// error; the service starts anonymous.
func (s *Service) Init(ctx context.Context) error {
	userID, email, err := s.creds.load()
	if err != nil {
		return nil
	}
	s.establish(&types.Session{UserID: userID, Email: email})
	return nil
}

// CurrentSession returns the active session, or nil if anonymous.
func (s *Service) CurrentSession(ctx context.Context) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// OnSessionChange registers a callback invoked with the new session (or
// nil) after every sign-in, sign-up, and sign-out.
func (s *Service) OnSessionChange(fn func(*types.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SignIn authenticates against the stored credential and establishes a
// session. Bad email and bad password are indistinguishable to the
// caller; both yield an AuthError wrapping ErrBadCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	userID, hash, err := s.accounts.UserByEmail(ctx, email)
	if errors.Is(err, types.ErrNotFound) {
		return nil, &types.AuthError{Op: "sign-in", Err: types.ErrBadCredentials}
	}
	if err != nil {
		return nil, &types.AuthError{Op: "sign-in", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, &types.AuthError{Op: "sign-in", Err: types.ErrBadCredentials}
	}

	session := &types.Session{UserID: userID, Email: email}
	// Persistence is best effort; the in-memory session still stands.
	_ = s.creds.save(userID, email)
	s.establish(session)
	return session, nil
}

// SignUp creates a credential record, writes the profile row, and
// establishes a session. A profile-write failure surfaces as an
// AuthError but leaves the created credential in place, matching the
// original sign-up flow.
func (s *Service) SignUp(ctx context.Context, email, password, username string) (*types.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &types.AuthError{Op: "sign-up", Err: err}
	}

	userID, err := s.accounts.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, &types.AuthError{Op: "sign-up", Err: err}
	}

	if err := s.accounts.CreateProfile(ctx, userID, username); err != nil {
		return nil, &types.AuthError{Op: "sign-up", Err: err}
	}

	session := &types.Session{UserID: userID, Email: email}
	_ = s.creds.save(userID, email)
	s.establish(session)
	return session, nil
}

// SignOut destroys the current session and removes the persisted
// credential.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.creds.clear(); err != nil {
		return &types.AuthError{Op: "sign-out", Err: err}
	}
	s.establish(nil)
	return nil
}

// establish swaps the current session and notifies listeners. Listeners
// run outside the lock so they can call back into the service.
func (s *Service) establish(session *types.Session) {
	s.mu.Lock()
	s.current = session
	listeners := make([]func(*types.Session), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
