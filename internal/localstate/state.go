// Package localstate persists the app state to a local SQLite database, one
// row per identity so multiple accounts on a device never collide. Persisted
// blobs carry an integer version and are migrated forward on load.
package localstate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// AnonymousIdentity namespaces state saved while no user is signed in.
const AnonymousIdentity = "anonymous"

// DB stores per-identity state blobs.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the state database at dir/state.db.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		identity   TEXT PRIMARY KEY,
		version    INTEGER NOT NULL,
		state      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Save persists the state for an identity at the current blob version.
func (d *DB) Save(identity string, state models.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return d.save(identity, CurrentVersion, raw)
}

func (d *DB) save(identity string, version int, raw []byte) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO app_state (identity, version, state) VALUES (?, ?, ?)`,
		identity, version, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving state for %s: %w", identity, err)
	}
	return nil
}

// Load reads and migrates the state for an identity. The second return is
// false when the identity has no persisted state yet.
func (d *DB) Load(identity string) (models.AppState, bool, error) {
	var version int
	var raw string
	err := d.db.QueryRow(
		`SELECT version, state FROM app_state WHERE identity = ?`, identity,
	).Scan(&version, &raw)
	if err == sql.ErrNoRows {
		return models.AppState{}, false, nil
	}
	if err != nil {
		return models.AppState{}, false, fmt.Errorf("loading state for %s: %w", identity, err)
	}

	// Decoding over defaults merges the stored profile over the default one:
	// fields absent from old blobs keep their default values.
	state := models.AppState{Profile: models.DefaultProfile()}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.AppState{}, false, fmt.Errorf("decoding state for %s: %w", identity, err)
	}

	return Migrate(version, state, d.now()), true, nil
}

// Delete removes the persisted state for an identity.
func (d *DB) Delete(identity string) error {
	_, err := d.db.Exec(`DELETE FROM app_state WHERE identity = ?`, identity)
	if err != nil {
		return fmt.Errorf("deleting state for %s: %w", identity, err)
	}
	return nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}
