package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/entrykit/internal/domain"
)

// SaveSnapshot stores an encoded ingredient list under name. The payload
// is compressed at rest; Size records the uncompressed length.
func (s *Store) SaveSnapshot(name string, ingredients int, data []byte) (*domain.Snapshot, error) {
	packed, err := compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	id := uuid.New().String()
	now := time.Now()

	_, err = s.db.Exec(
		"INSERT INTO snapshots (id, name, ingredients, size, data, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, ingredients, len(data), packed, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	return &domain.Snapshot{
		ID:          id,
		Name:        name,
		Ingredients: ingredients,
		Size:        len(data),
		Data:        data,
		CreatedAt:   now,
	}, nil
}

// GetSnapshot loads a snapshot by id or unambiguous id prefix
func (s *Store) GetSnapshot(idPrefix string) (*domain.Snapshot, error) {
	if idPrefix == "" {
		return nil, fmt.Errorf("get snapshot: empty id")
	}
	pattern := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(idPrefix) + "%"
	rows, err := s.db.Query(
		`SELECT id, name, ingredients, size, data, created_at FROM snapshots WHERE id LIKE ? ESCAPE '\' LIMIT 2`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer rows.Close()

	var found []domain.Snapshot
	for rows.Next() {
		var snap domain.Snapshot
		var packed []byte
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Ingredients, &snap.Size, &packed, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Data = packed
		found = append(found, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("snapshot %s: %w", idPrefix, ErrNotFound)
	case 1:
	default:
		return nil, fmt.Errorf("snapshot prefix %s is ambiguous", idPrefix)
	}

	snap := &found[0]
	data, err := decompress(snap.Data)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %s: %w", snap.ID, err)
	}
	snap.Data = data
	return snap, nil
}

// ListSnapshots returns snapshots newest first, without their payloads
func (s *Store) ListSnapshots(limit, offset int) ([]domain.Snapshot, error) {
	rows, err := s.db.Query(
		"SELECT id, name, ingredients, size, created_at FROM snapshots ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.Snapshot
	for rows.Next() {
		var snap domain.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.Ingredients, &snap.Size, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteSnapshot removes a snapshot by exact id
func (s *Store) DeleteSnapshot(id string) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

