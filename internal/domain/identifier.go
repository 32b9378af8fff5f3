package domain

import (
	"fmt"
	"strings"
)

// DefaultNamespace is assumed when an identifier is written without one
const DefaultNamespace = "minecraft"

// Identifier names a value or a kind as namespace:path
type Identifier struct {
	Namespace string
	Path      string
}

// ID builds an identifier from explicit parts
func ID(namespace, path string) Identifier {
	return Identifier{Namespace: namespace, Path: path}
}

// ParseIdentifier parses "namespace:path", defaulting the namespace
func ParseIdentifier(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, fmt.Errorf("empty identifier")
	}

	namespace, path, found := strings.Cut(s, ":")
	if !found {
		namespace, path = DefaultNamespace, s
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if path == "" {
		return Identifier{}, fmt.Errorf("identifier %q has no path", s)
	}
	if !validPart(namespace, false) || !validPart(path, true) {
		return Identifier{}, fmt.Errorf("identifier %q has invalid characters", s)
	}

	return Identifier{Namespace: namespace, Path: path}, nil
}

// MustParseIdentifier is ParseIdentifier for literals known to be valid
func MustParseIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the identifier was never set
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Path == ""
}

func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Namespace + ":" + id.Path
}

// Compare orders by namespace, then path
func (id Identifier) Compare(other Identifier) int {
	if c := strings.Compare(id.Namespace, other.Namespace); c != 0 {
		return c
	}
	return strings.Compare(id.Path, other.Path)
}

func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// validPart accepts [a-z0-9_.-], plus '/' in paths
func validPart(s string, path bool) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		case r == '/' && path:
		default:
			return false
		}
	}
	return true
}
