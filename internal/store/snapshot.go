package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vacmap/vacmap/mapdata"
)

// ErrSnapshotNotFound is returned when a snapshot ID does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one saved map state.
type Snapshot struct {
	ID          string    `json:"id"`
	MapName     string    `json:"map_name"`
	ContentHash string    `json:"content_hash"`
	Payload     []byte    `json:"-"`
	PNG         []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveSnapshot persists a parsed map, keyed by its content hash.
// Saving the same map state twice is a no-op that returns the
// existing row, so callers can save unconditionally after every parse.
func (s *Store) SaveSnapshot(ctx context.Context, m *mapdata.MapData, png []byte) (*Snapshot, error) {
	hash, err := mapdata.SnapshotHash(m)
	if err != nil {
		return nil, fmt.Errorf("hash snapshot: %w", err)
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	snap := &Snapshot{
		ID:          uuid.NewString(),
		MapName:     m.MapName,
		ContentHash: hash,
		Payload:     payload,
		PNG:         png,
		CreatedAt:   time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, map_name, content_hash, payload, png, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(map_name, content_hash) DO NOTHING`,
		snap.ID, snap.MapName, snap.ContentHash, string(snap.Payload), snap.PNG,
		snap.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	// The insert may have hit the dedup constraint; read back the
	// canonical row either way.
	return s.snapshotByHash(ctx, snap.MapName, snap.ContentHash)
}

// GetSnapshot loads a snapshot by ID, including payload and image.
func (s *Store) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, map_name, content_hash, payload, png, created_at
		FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap, err
}

// ListSnapshots returns snapshot metadata for a map, newest first.
// Payload and PNG columns are not loaded. A limit <= 0 means no limit.
func (s *Store) ListSnapshots(ctx context.Context, mapName string, limit int) ([]Snapshot, error) {
	query := `
		SELECT id, map_name, content_hash, created_at
		FROM snapshots WHERE map_name = ?
		ORDER BY created_at DESC, id`
	args := []any{mapName}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.MapName, &snap.ContentHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Prune deletes all but the newest keep snapshots for a map and
// returns the number of rows removed. keep <= 0 deletes everything.
func (s *Store) Prune(ctx context.Context, mapName string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE map_name = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE map_name = ?
			ORDER BY created_at DESC, id LIMIT ?
		)`, mapName, mapName, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) snapshotByHash(ctx context.Context, mapName, hash string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, map_name, content_hash, payload, png, created_at
		FROM snapshots WHERE map_name = ? AND content_hash = ?`, mapName, hash)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var payload, createdAt string
	var png []byte
	if err := row.Scan(&snap.ID, &snap.MapName, &snap.ContentHash, &payload, &png, &createdAt); err != nil {
		return nil, err
	}
	snap.Payload = []byte(payload)
	snap.PNG = png
	var err error
	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &snap, nil
}
