package entry

import (
	"iter"
	"slices"

	"github.com/pbaille/entrykit/internal/comparison"
)

// Ingredient is an ordered set of substitutes: any one stack satisfies the
// slot. An empty ingredient means no valid substitute.
type Ingredient struct {
	stacks []*Stack
}

// EmptyIngredient has no stacks
func EmptyIngredient() Ingredient {
	return Ingredient{}
}

// IngredientOf copies stacks into a new ingredient, dropping nils
func IngredientOf(stacks ...*Stack) Ingredient {
	b := NewBuilder(len(stacks))
	for _, s := range stacks {
		b.Add(s)
	}
	return b.Build()
}

func (i Ingredient) Len() int { return len(i.stacks) }

func (i Ingredient) IsEmpty() bool { return len(i.stacks) == 0 }

func (i Ingredient) At(idx int) *Stack { return i.stacks[idx] }

// Stacks returns a copy of the stacks
func (i Ingredient) Stacks() []*Stack {
	return slices.Clone(i.stacks)
}

func (i Ingredient) All() iter.Seq2[int, *Stack] {
	return func(yield func(int, *Stack) bool) {
		for idx, s := range i.stacks {
			if !yield(idx, s) {
				return
			}
		}
	}
}

// Hashes returns the per-stack hashes in order
func (i Ingredient) Hashes(ctx comparison.Context) []uint64 {
	hashes := make([]uint64, len(i.stacks))
	for idx, s := range i.stacks {
		hashes[idx] = s.Hash(ctx)
	}
	return hashes
}

// Equals compares the stacks as a multiset of hashes; order is ignored.
func (i Ingredient) Equals(ctx comparison.Context, other Ingredient) bool {
	if i.Len() != other.Len() {
		return false
	}
	a := i.Hashes(ctx)
	b := other.Hashes(ctx)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// Builder accumulates stacks for one ingredient
type Builder struct {
	stacks []*Stack
}

// NewBuilder pre-sizes storage for capacity stacks
func NewBuilder(capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{stacks: make([]*Stack, 0, capacity)}
}

// Add appends s; nil stacks are ignored
func (b *Builder) Add(s *Stack) *Builder {
	if s != nil {
		b.stacks = append(b.stacks, s)
	}
	return b
}

func (b *Builder) AddAll(stacks ...*Stack) *Builder {
	for _, s := range stacks {
		b.Add(s)
	}
	return b
}

func (b *Builder) Len() int { return len(b.stacks) }

// Build freezes the accumulated stacks and resets the builder
func (b *Builder) Build() Ingredient {
	if len(b.stacks) == 0 {
		b.stacks = nil
		return EmptyIngredient()
	}
	built := Ingredient{stacks: b.stacks[:len(b.stacks):len(b.stacks)]}
	b.stacks = nil
	return built
}
