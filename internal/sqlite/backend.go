// Package sqlite implements the SQLite storage backend for the music map.
// It is the concrete form of the remote data store the core talks to
// through the Records and Accounts interfaces.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kc95kc/music-map/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "musicmap.db"

// timeFormat is how timestamps are stored in TEXT columns.
const timeFormat = time.RFC3339Nano

// Backend implements the Store interface using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	records  *submissionsTable
	accounts *accountsTable
}

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	b := &Backend{}
	b.records = &submissionsTable{backend: b}
	b.accounts = &accountsTable{backend: b}
	return b
}

// Attach opens the database file under config.DataDir, creating the
// directory and schema as needed. Existing data is preserved.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	// A concurrently attached process can hold the file briefly; retry
	// the first contact a few times before giving up.
	if err := pingWithBackoff(db, 3); err != nil {
		db.Close()
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return err
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: multiple calls succeed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.attached = false
	return err
}

// Records returns the pin CRUD surface.
func (b *Backend) Records() types.Records { return b.records }

// Accounts returns the credential/profile surface.
func (b *Backend) Accounts() types.Accounts { return b.accounts }

// checkAttached returns ErrStoreDetached unless the backend is attached.
// Callers must not hold the lock.
func (b *Backend) checkAttached() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// pingWithBackoff pings the database up to attempts times with doubling
// delay between attempts.
func pingWithBackoff(db *sql.DB, attempts int) error {
	var err error
	delay := 50 * time.Millisecond
	for i := 0; i < attempts; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(delay)
		delay *= 2
	}
	return err
}
