package entry

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// Registry maps entry types to their definitions. It is filled during
// startup, then locked; lookups never take a lock.
type Registry struct {
	kinds  map[Type]Kind
	locked atomic.Bool
}

// NewRegistry creates an empty, open registry
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[Type]Kind)}
}

// Register binds def to its type. Registering after Lock panics.
func Register[T any](r *Registry, def Definition[T]) error {
	return r.RegisterKind(KindOf(def))
}

// RegisterKind binds an untyped kind to its type
func (r *Registry) RegisterKind(kind Kind) error {
	if r.locked.Load() {
		panic(fmt.Sprintf("entry: register %s after registry lock", kind.Type()))
	}
	t := kind.Type()
	if _, exists := r.kinds[t]; exists {
		return &DuplicateTypeError{Type: t}
	}
	r.kinds[t] = kind
	return nil
}

// Lookup returns the kind bound to t
func (r *Registry) Lookup(t Type) (Kind, error) {
	kind, ok := r.kinds[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return kind, nil
}

// LookupAs returns the typed definition bound to t
func LookupAs[T any](r *Registry, t Type) (Definition[T], error) {
	kind, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	typed, ok := kind.(kindOf[T])
	if !ok {
		var zero T
		return nil, &InvalidValueError{Type: t, Value: zero, Reason: "definition holds another value type"}
	}
	return typed.def, nil
}

// Types lists registered types ordered by namespace, then path
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.kinds))
	for t := range r.kinds {
		types = append(types, t)
	}
	slices.SortFunc(types, Type.Compare)
	return types
}

// Lock closes the registration window
func (r *Registry) Lock() {
	r.locked.Store(true)
}

func (r *Registry) Locked() bool {
	return r.locked.Load()
}
