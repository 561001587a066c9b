package types

import (
	"errors"
	"fmt"
	"strings"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrZoomOutOfRange = errors.New("default zoom out of range")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)

// Submission errors.
var (
	ErrInvalidSubmissionType = errors.New("invalid submission type")
	ErrNoSession             = errors.New("no active session")
	ErrNoCandidateLocation   = errors.New("no candidate location selected")
)

// Identity errors, wrapped in AuthError by the identity service.
var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
)

// AuthError reports a sign-in or sign-up failure. Recovered locally and
// surfaced inline; never changes the active UI mode.
type AuthError struct {
	Op  string // "sign-in", "sign-up", "sign-out"
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a pin-list or profile load failure. An initial load
// failure leaves the collection empty rather than failing startup.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UploadError reports an image storage failure. It aborts finalize before
// any record is inserted.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %s", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ValidationError lists what a draft is missing before it can be
// finalized. Missing entries are field names plus the pseudo-entries
// "location" and "session".
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "submission incomplete: missing " + strings.Join(e.Missing, ", ")
}
