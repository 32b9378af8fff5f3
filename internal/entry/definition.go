package entry

import (
	"github.com/Tnze/go-mc/nbt"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
)

// Type identifies one entity kind, e.g. minecraft:item
type Type = domain.Identifier

// Definition is the behavior bundle for one kind of value
type Definition[T any] interface {
	Type() Type
	// Construct converts a raw host value (an id, a stack, ...) into T
	Construct(raw any) (T, error)
	IsEmpty(value T) bool
	Equals(ctx comparison.Context, a, b T) bool
	Hash(ctx comparison.Context, value T) uint64
	Amount(value T) domain.Fraction
	Serialize(value T) (nbt.RawMessage, error)
	Deserialize(raw nbt.RawMessage) (T, error)
}

// Kind is the untyped view of a Definition the registry stores
type Kind interface {
	Type() Type
	Construct(raw any) (any, error)
	IsEmpty(value any) bool
	Equals(ctx comparison.Context, a, b any) bool
	Hash(ctx comparison.Context, value any) uint64
	Amount(value any) domain.Fraction
	Serialize(value any) (nbt.RawMessage, error)
	Deserialize(raw nbt.RawMessage) (any, error)
}

// KindOf erases the value type of def
func KindOf[T any](def Definition[T]) Kind {
	return kindOf[T]{def: def}
}

type kindOf[T any] struct {
	def Definition[T]
}

func (k kindOf[T]) Type() Type { return k.def.Type() }

func (k kindOf[T]) Construct(raw any) (any, error) {
	v, err := k.def.Construct(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Values of a foreign type count as empty and never equal anything
func (k kindOf[T]) IsEmpty(value any) bool {
	v, ok := value.(T)
	return !ok || k.def.IsEmpty(v)
}

func (k kindOf[T]) Equals(ctx comparison.Context, a, b any) bool {
	va, ok := a.(T)
	if !ok {
		return false
	}
	vb, ok := b.(T)
	if !ok {
		return false
	}
	return k.def.Equals(ctx, va, vb)
}

func (k kindOf[T]) Hash(ctx comparison.Context, value any) uint64 {
	v, ok := value.(T)
	if !ok {
		return 0
	}
	return k.def.Hash(ctx, v)
}

func (k kindOf[T]) Amount(value any) domain.Fraction {
	v, ok := value.(T)
	if !ok {
		return domain.Fraction{}
	}
	return k.def.Amount(v)
}

func (k kindOf[T]) Serialize(value any) (nbt.RawMessage, error) {
	v, ok := value.(T)
	if !ok {
		return nbt.RawMessage{}, &InvalidValueError{Type: k.def.Type(), Value: value, Reason: "wrong value type"}
	}
	return k.def.Serialize(v)
}

func (k kindOf[T]) Deserialize(raw nbt.RawMessage) (any, error) {
	v, err := k.def.Deserialize(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}
