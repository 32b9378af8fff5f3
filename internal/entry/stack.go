package entry

import (
	"fmt"
	"sync/atomic"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
)

// Stack is one value of a kind plus its amount. Stacks are immutable; the
// per-context hash is computed once and cached.
type Stack struct {
	kind   Kind
	value  any
	amount domain.Fraction

	// fuzzy, exact; zero means not computed yet
	hashes [2]atomic.Uint64
}

// StackOf wraps value with its definition. Construction never fails;
// emptiness is a property of the stack.
func StackOf[T any](def Definition[T], value T) *Stack {
	return NewStack(KindOf(def), value)
}

// Construct converts raw through def and wraps the result
func Construct[T any](def Definition[T], raw any) (*Stack, error) {
	value, err := def.Construct(raw)
	if err != nil {
		return nil, err
	}
	return StackOf(def, value), nil
}

// NewStack wraps an untyped value with its kind
func NewStack(kind Kind, value any) *Stack {
	return &Stack{
		kind:   kind,
		value:  value,
		amount: kind.Amount(value),
	}
}

// ValueAs returns the stack value as T
func ValueAs[T any](s *Stack) (T, bool) {
	v, ok := s.value.(T)
	return v, ok
}

func (s *Stack) Kind() Kind { return s.kind }

func (s *Stack) Type() Type { return s.kind.Type() }

func (s *Stack) Value() any { return s.value }

func (s *Stack) Amount() domain.Fraction { return s.amount }

func (s *Stack) IsEmpty() bool {
	return s.kind.IsEmpty(s.value)
}

// Hash folds the type into the kind's hash under ctx
func (s *Stack) Hash(ctx comparison.Context) uint64 {
	slot := &s.hashes[0]
	if ctx.IsExact() {
		slot = &s.hashes[1]
	}
	if h := slot.Load(); h != 0 {
		return h
	}

	t := s.kind.Type()
	h := comparison.Combine(
		comparison.HashStrings(t.Namespace, t.Path),
		s.kind.Hash(ctx, s.value),
	)
	slot.Store(h)
	return h
}

// Equals is false across types and defers to the kind otherwise
func (s *Stack) Equals(ctx comparison.Context, other *Stack) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s == other {
		return true
	}
	if s.Type() != other.Type() {
		return false
	}
	return s.kind.Equals(ctx, s.value, other.value)
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s[%v x%s]", s.Type(), s.value, s.amount)
}

// EqualsExact compares under the exact context
func EqualsExact(a, b *Stack) bool {
	return a.Equals(comparison.Exact, b)
}

// EqualsFuzzy compares under the fuzzy context
func EqualsFuzzy(a, b *Stack) bool {
	return a.Equals(comparison.Fuzzy, b)
}
