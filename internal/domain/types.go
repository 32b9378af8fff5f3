package domain

import "time"

// Tag is a named group of values of one kind, stored as member identifiers
type Tag struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Name      Identifier `json:"name"`
	Members   int        `json:"members"`
	CreatedAt time.Time  `json:"created_at"`
}

// TagMember links a member value to a tag, in insertion order
type TagMember struct {
	TagID    string     `json:"tag_id"`
	Position int        `json:"position"`
	Member   Identifier `json:"member"`
}

// Snapshot is a persisted, encoded list of ingredients
type Snapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ingredients int       `json:"ingredients"`
	Size        int       `json:"size"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
