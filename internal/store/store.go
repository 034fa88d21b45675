// Package store provides a SQLite-backed library of named settings
// snapshots. Persistence stays outside the projection engine; the store
// only reads and writes snapshots around the pure projection call.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/nlplan/finance-planner/internal/domain"
)

// ErrSnapshotNotFound is returned when no snapshot exists under the
// requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotInfo describes one stored snapshot without its payload.
type SnapshotInfo struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store provides SQLite-backed snapshot persistence.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores the settings under the given name, replacing any
// existing snapshot with that name.
func (s *Store) SaveSnapshot(name string, settings *domain.Settings) error {
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if settings == nil {
		return fmt.Errorf("nil settings")
	}

	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`INSERT INTO snapshots (name, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", name, err)
	}
	return nil
}

// LoadSnapshot fetches and decodes the named snapshot.
func (s *Store) LoadSnapshot(name string) (*domain.Settings, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM snapshots WHERE name = ?", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %q: %w", name, err)
	}

	var settings domain.Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return nil, fmt.Errorf("decoding snapshot %q: %w", name, err)
	}
	return &settings, nil
}

// ListSnapshots returns all stored snapshots sorted by name.
func (s *Store) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := s.db.Query("SELECT name, created_at, updated_at FROM snapshots ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var created, updated string
		if err := rows.Scan(&info.Name, &created, &updated); err != nil {
			return nil, err
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339, created)
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		result = append(result, info)
	}
	return result, rows.Err()
}

// DeleteSnapshot removes the named snapshot.
func (s *Store) DeleteSnapshot(name string) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	return nil
}
