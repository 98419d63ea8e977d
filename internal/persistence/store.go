// SQLite snapshot store — save slots, the event log, and metadata.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/seralo/citysim/internal/city"
)

// Store wraps a SQLite connection for city snapshots.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		slot TEXT PRIMARY KEY,
		saved_at TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		week INTEGER NOT NULL,
		blob TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		week INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS city_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_week ON events(week);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// AutosaveSlot is the slot the run loop writes on its save interval.
const AutosaveSlot = "autosave"

// SaveSnapshot encodes the state and writes it to a named slot.
func (s *Store) SaveSnapshot(slot string, st *city.State) error {
	blob, err := Encode(st)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(`INSERT OR REPLACE INTO snapshots
		(slot, saved_at, year, month, week, blob) VALUES (?, ?, ?, ?, ?, ?)`,
		slot, time.Now().UTC().Format(time.RFC3339),
		st.Date.Year, st.Date.Month, st.Date.Week, string(blob))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", slot, err)
	}
	slog.Info("snapshot saved", "slot", slot, "date", st.Date)
	return nil
}

// LoadSnapshot reads and decodes a named slot.
func (s *Store) LoadSnapshot(slot string) (*city.State, error) {
	blob, err := s.LoadSnapshotBlob(slot)
	if err != nil {
		return nil, err
	}
	return Decode(blob)
}

// LoadSnapshotBlob reads the raw blob for a slot.
func (s *Store) LoadSnapshotBlob(slot string) ([]byte, error) {
	var blob string
	if err := s.conn.Get(&blob, "SELECT blob FROM snapshots WHERE slot = ?", slot); err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", slot, err)
	}
	return []byte(blob), nil
}

// HasSnapshot reports whether a slot exists.
func (s *Store) HasSnapshot(slot string) bool {
	var n int
	if err := s.conn.Get(&n, "SELECT COUNT(*) FROM snapshots WHERE slot = ?", slot); err != nil {
		return false
	}
	return n > 0
}

// SnapshotSlot summarizes one save slot for listing.
type SnapshotSlot struct {
	Slot    string `db:"slot" json:"slot"`
	SavedAt string `db:"saved_at" json:"saved_at"`
	Year    int    `db:"year" json:"year"`
	Month   int    `db:"month" json:"month"`
	Week    int    `db:"week" json:"week"`
}

// ListSnapshots returns all save slots, most recent first.
func (s *Store) ListSnapshots() ([]SnapshotSlot, error) {
	var slots []SnapshotSlot
	err := s.conn.Select(&slots,
		"SELECT slot, saved_at, year, month, week FROM snapshots ORDER BY saved_at DESC")
	return slots, err
}

// Event is one persisted notification row.
type Event struct {
	Week    int    `db:"week" json:"week"`
	Kind    string `db:"kind" json:"kind"`
	Message string `db:"message" json:"message"`
}

// SaveEvents appends notification rows to the event log.
func (s *Store) SaveEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		if _, err := tx.Exec(
			"INSERT INTO events (week, kind, message) VALUES (?, ?, ?)",
			e.Week, e.Kind, e.Message,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentEvents returns the most recent N event rows.
func (s *Store) RecentEvents(limit int) ([]Event, error) {
	var events []Event
	err := s.conn.Select(&events,
		"SELECT week, kind, message FROM events ORDER BY id DESC LIMIT ?", limit)
	return events, err
}

// SaveMeta stores a key-value pair.
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO city_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM city_meta WHERE key = ?", key)
	return value, err
}
