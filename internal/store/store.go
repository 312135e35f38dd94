// Package store persists parsed record sequences as named snapshots in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

// ErrSnapshotNotFound is returned for unknown snapshot IDs.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot describes a stored record sequence.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Source    string    `json:"source" yaml:"source"`
	Records   int       `json:"records" yaml:"records"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store is a SQLite snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path with WAL mode and
// foreign keys enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	source TEXT,
	records INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_records (
	snapshot_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	cite_key TEXT,
	entry_type TEXT,
	raw TEXT NOT NULL,
	fields_json TEXT,
	order_field TEXT,
	order_value TEXT,
	PRIMARY KEY(snapshot_id, position),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshot_records_key ON snapshot_records(cite_key);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveSnapshot stores recs in order and returns the new snapshot ID.
func (s *Store) SaveSnapshot(ctx context.Context, name, source string, recs []*parser.Record) (string, error) {
	id := uuid.New().String()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	created := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, source, records, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, source, len(recs), created); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_records
		(snapshot_id, position, cite_key, entry_type, raw, fields_json, order_field, order_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, r := range recs {
		var fields sql.NullString
		if r.Fields != nil {
			b, err := json.Marshal(r.Fields)
			if err != nil {
				return "", fmt.Errorf("marshal fields of %s: %w", r.Key, err)
			}
			fields = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, i, r.Key, r.EntryType, r.Raw, fields, r.OrderField, r.OrderValue); err != nil {
			return "", fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *Store) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source, records, created_at FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(sc scanner) (Snapshot, error) {
	var (
		snap    Snapshot
		source  sql.NullString
		created string
	)
	if err := sc.Scan(&snap.ID, &snap.Name, &source, &snap.Records, &created); err != nil {
		return Snapshot{}, err
	}
	snap.Source = source.String
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse created_at of %s: %w", snap.ID, err)
	}
	snap.CreatedAt = t
	return snap, nil
}

// GetSnapshot returns the metadata of one snapshot.
func (s *Store) GetSnapshot(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, source, records, created_at FROM snapshots WHERE id=?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap, err
}

// LoadSnapshot returns the records of a snapshot in their saved order.
func (s *Store) LoadSnapshot(ctx context.Context, id string) ([]*parser.Record, error) {
	if _, err := s.GetSnapshot(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT cite_key, entry_type, raw, fields_json, order_field, order_value
		FROM snapshot_records WHERE snapshot_id=? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*parser.Record{}
	for rows.Next() {
		var (
			r                        parser.Record
			key, typ, fields, of, ov sql.NullString
		)
		if err := rows.Scan(&key, &typ, &r.Raw, &fields, &of, &ov); err != nil {
			return nil, err
		}
		r.Key, r.EntryType, r.OrderField, r.OrderValue = key.String, typ.String, of.String, ov.String
		if fields.Valid {
			if err := json.Unmarshal([]byte(fields.String), &r.Fields); err != nil {
				return nil, fmt.Errorf("decode fields of %s: %w", r.Key, err)
			}
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// DeleteSnapshot removes a snapshot and its records.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}
