package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbaille/entrykit/internal/domain"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a lookup matches nothing
var ErrNotFound = errors.New("not found")

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath and applies the schema
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetTag finds a tag of kind by name
func (s *Store) GetTag(kind string, name domain.Identifier) (*domain.Tag, error) {
	row := s.db.QueryRow(`
		SELECT t.id, t.kind, t.name, t.created_at, COUNT(m.member)
		FROM tags t
		LEFT JOIN tag_members m ON m.tag_id = t.id
		WHERE t.kind = ? AND t.name = ?
		GROUP BY t.id
	`, kind, name.String())

	tag, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tag %s %s: %w", kind, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// AddTagMembers appends members to a tag, creating it if needed. Members
// already in the tag keep their position.
func (s *Store) AddTagMembers(kind string, name domain.Identifier, members []domain.Identifier) (*domain.Tag, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow("SELECT id FROM tags WHERE kind = ? AND name = ?", kind, name.String()).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		id = uuid.New().String()
		_, err = tx.Exec(
			"INSERT INTO tags (id, kind, name, created_at) VALUES (?, ?, ?, ?)",
			id, kind, name.String(), time.Now(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert tag: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}

	var next int
	if err := tx.QueryRow("SELECT COALESCE(MAX(position) + 1, 0) FROM tag_members WHERE tag_id = ?", id).Scan(&next); err != nil {
		return nil, fmt.Errorf("next position: %w", err)
	}
	for _, m := range members {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO tag_members (tag_id, position, member) VALUES (?, ?, ?)",
			id, next, m.String(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert member %s: %w", m, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetTag(kind, name)
}

// TagMembers returns the members of a tag in insertion order. An unknown
// tag has no members.
func (s *Store) TagMembers(kind string, name domain.Identifier) ([]domain.Identifier, error) {
	rows, err := s.db.Query(`
		SELECT m.member
		FROM tag_members m
		JOIN tags t ON t.id = m.tag_id
		WHERE t.kind = ? AND t.name = ?
		ORDER BY m.position
	`, kind, name.String())
	if err != nil {
		return nil, fmt.Errorf("tag members: %w", err)
	}
	defer rows.Close()

	var members []domain.Identifier
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		id, err := domain.ParseIdentifier(raw)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", raw, err)
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

// ListTags returns all tags ordered by kind and name
func (s *Store) ListTags() ([]domain.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.kind, t.name, t.created_at, COUNT(m.member)
		FROM tags t
		LEFT JOIN tag_members m ON m.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.kind, t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTag(row scanner) (*domain.Tag, error) {
	var t domain.Tag
	var name string
	if err := row.Scan(&t.ID, &t.Kind, &name, &t.CreatedAt, &t.Members); err != nil {
		return nil, err
	}
	id, err := domain.ParseIdentifier(name)
	if err != nil {
		return nil, fmt.Errorf("tag name %q: %w", name, err)
	}
	t.Name = id
	return &t, nil
}
