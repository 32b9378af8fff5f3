package comparison

import (
	"fmt"
	"sync/atomic"
)

type override[T any] struct {
	match      Predicate[T]
	comparator Comparator[T]
}

// Registry dispatches hashing for one kind: overrides in registration
// order, first match wins, then the default comparator.
//
// Registration happens during startup; after Lock the registry is read-only
// and safe for concurrent readers.
type Registry[T any] struct {
	def       Comparator[T]
	overrides []override[T]
	equality  func(ctx Context, a, b T) bool
	locked    atomic.Bool
}

// NewRegistry creates a registry with def as the fallback comparator. A nil
// def falls back to Noop.
func NewRegistry[T any](def Comparator[T]) *Registry[T] {
	if def == nil {
		def = Noop[T]()
	}
	return &Registry[T]{def: def}
}

// SetDefault replaces the fallback comparator.
func (r *Registry[T]) SetDefault(c Comparator[T]) {
	r.mustBeOpen("SetDefault")
	if c == nil {
		c = Noop[T]()
	}
	r.def = c
}

// Default returns the fallback comparator.
func (r *Registry[T]) Default() Comparator[T] {
	return r.def
}

// RegisterOverride appends an override. Earlier registrations win.
func (r *Registry[T]) RegisterOverride(match Predicate[T], c Comparator[T]) {
	r.mustBeOpen("RegisterOverride")
	if match == nil || c == nil {
		panic("comparison: RegisterOverride with nil predicate or comparator")
	}
	r.overrides = append(r.overrides, override[T]{match: match, comparator: c})
}

// SetEquality installs a structural equality that replaces hash comparison
// in Equals.
func (r *Registry[T]) SetEquality(eq func(ctx Context, a, b T) bool) {
	r.mustBeOpen("SetEquality")
	r.equality = eq
}

// Lock ends the registration window.
func (r *Registry[T]) Lock() {
	r.locked.Store(true)
}

func (r *Registry[T]) Locked() bool {
	return r.locked.Load()
}

// Overrides reports how many overrides are registered.
func (r *Registry[T]) Overrides() int {
	return len(r.overrides)
}

// ComparatorFor returns the comparator that applies to value.
func (r *Registry[T]) ComparatorFor(value T) Comparator[T] {
	for _, o := range r.overrides {
		if o.match(value) {
			return o.comparator
		}
	}
	return r.def
}

// Hash evaluates the applicable comparator. Panics raised by host
// comparators propagate; see TryHash.
func (r *Registry[T]) Hash(ctx Context, value T) uint64 {
	return r.ComparatorFor(value).Hash(ctx, value)
}

// Equals compares two values of this kind under ctx.
func (r *Registry[T]) Equals(ctx Context, a, b T) bool {
	if r.equality != nil {
		return r.equality(ctx, a, b)
	}
	return r.Hash(ctx, a) == r.Hash(ctx, b)
}

// TryHash is Hash for callers that degrade on comparator failure instead of
// crashing.
func (r *Registry[T]) TryHash(ctx Context, value T) (h uint64, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &EvaluationError{Context: ctx, Values: []any{value}, Cause: p}
		}
	}()
	return r.Hash(ctx, value), nil
}

// TryEquals is Equals with comparator panics turned into an error. The
// error carries both operands; either may have raised the panic.
func (r *Registry[T]) TryEquals(ctx Context, a, b T) (eq bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &EvaluationError{Context: ctx, Values: []any{a, b}, Cause: p}
		}
	}()
	return r.Equals(ctx, a, b), nil
}

func (r *Registry[T]) mustBeOpen(op string) {
	if r.locked.Load() {
		panic(fmt.Sprintf("comparison: %s after registry lock", op))
	}
}

// RegisterFor overrides the comparator for values whose key is one of keys,
// e.g. a comparator for a handful of item ids.
func RegisterFor[T any, K comparable](r *Registry[T], key func(T) K, c Comparator[T], keys ...K) {
	if len(keys) == 0 {
		return
	}
	set := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	r.RegisterOverride(func(value T) bool {
		_, ok := set[key(value)]
		return ok
	}, c)
}

// EvaluationError carries a panic raised by a host-supplied comparator,
// with the values being compared.
type EvaluationError struct {
	Context Context
	Values  []any
	Cause   any
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("comparator failed in %s context for %v: %v", e.Context, e.Values, e.Cause)
}

func (e *EvaluationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
