// Package comparison holds the two comparison regimes and the per-kind
// comparator registries that hash values under them.
//
// Equality of two values of one kind is hash equality under the same
// context, unless the registry carries a structural equality function.
package comparison

// Context selects the comparison regime. The zero value is Fuzzy.
type Context struct {
	exact bool
}

var (
	// Exact distinguishes every piece of embedded data.
	Exact = Context{exact: true}
	// Fuzzy collapses auxiliary data for coarse grouping.
	Fuzzy = Context{exact: false}
)

func (c Context) IsExact() bool { return c.exact }

func (c Context) IsFuzzy() bool { return !c.exact }

func (c Context) String() string {
	if c.exact {
		return "exact"
	}
	return "fuzzy"
}

// Comparator hashes a value under a context. Two values compare equal when
// their hashes do.
type Comparator[T any] func(ctx Context, value T) uint64

// Hash calls the comparator; a nil comparator behaves like Noop.
func (c Comparator[T]) Hash(ctx Context, value T) uint64 {
	if c == nil {
		return 1
	}
	return c(ctx, value)
}

// Then folds a second comparator into this one.
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] {
	return func(ctx Context, value T) uint64 {
		return Combine(c.Hash(ctx, value), next.Hash(ctx, value))
	}
}

// Noop hashes every value to 1.
func Noop[T any]() Comparator[T] {
	return func(Context, T) uint64 { return 1 }
}

// ExactOnly applies c in the exact context and returns 1 otherwise, so
// every value fuzzy-collapses together.
func ExactOnly[T any](c Comparator[T]) Comparator[T] {
	return func(ctx Context, value T) uint64 {
		if ctx.IsExact() {
			return c.Hash(ctx, value)
		}
		return 1
	}
}

// Predicate selects the values an override applies to.
type Predicate[T any] func(value T) bool
