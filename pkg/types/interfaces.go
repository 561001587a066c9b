package types

import "context"

// Records is the narrow CRUD surface of the remote data store. The
// returned pins are already joined with the submitter's display name.
type Records interface {
	// ListPins returns every stored pin in no particular order. Pins
	// missing coordinates are included; renderers filter them out.
	ListPins(ctx context.Context) ([]Pin, error)

	// InsertPin stores a new pin and returns its generated ID.
	InsertPin(ctx context.Context, pin Pin) (string, error)
}

// Accounts is the credential and profile surface of the remote data
// store, consumed by the identity service.
type Accounts interface {
	// CreateUser stores a credential record and returns the new user ID.
	// Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, email, passwordHash string) (string, error)

	// UserByEmail returns the user ID and stored password hash.
	// Returns ErrNotFound for an unknown email.
	UserByEmail(ctx context.Context, email string) (id, passwordHash string, err error)

	// CreateProfile stores the public profile row for a user.
	CreateProfile(ctx context.Context, userID, username string) error

	// ProfileName resolves the display name for a user ID.
	// Returns ErrNotFound if no profile row exists.
	ProfileName(ctx context.Context, userID string) (string, error)
}

// Store is the backend lifecycle interface. Callers attach to a backend,
// use its record surfaces, and detach when done.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, record operations return ErrStoreDetached.
	Detach() error

	// Records returns the pin CRUD surface.
	Records() Records

	// Accounts returns the credential/profile surface.
	Accounts() Accounts
}

// Identity is the authentication collaborator.
type Identity interface {
	// CurrentSession returns the active session, or nil if anonymous.
	CurrentSession(ctx context.Context) (*Session, error)

	// OnSessionChange registers a callback invoked with the new session
	// (or nil) after every sign-in, sign-up, and sign-out.
	OnSessionChange(fn func(*Session))

	// SignIn authenticates and establishes a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignUp creates a credential, writes the profile row, and
	// establishes a session.
	SignUp(ctx context.Context, email, password, username string) (*Session, error)

	// SignOut destroys the current session.
	SignOut(ctx context.Context) error
}

// BlobStore is the image storage collaborator.
type BlobStore interface {
	// Upload stores content under path and returns a public reference
	// URL. Failure must not leave a partial object behind.
	Upload(ctx context.Context, path string, content []byte) (string, error)
}

// MapSurface is the rendering engine's capability surface. The core
// never draws; it places markers, receives click coordinates, and pans
// the viewport through this interface.
type MapSurface interface {
	// OnClick registers the handler for map-surface clicks.
	OnClick(fn func(lat, lon float64))

	// SetView pans and zooms the viewport.
	SetView(lat, lon float64, zoom int)

	// RenderMarkers replaces the marker set. Pins without both
	// coordinates must be skipped by the implementation.
	RenderMarkers(pins []Pin, onMarkerClick func(pinID string))
}
