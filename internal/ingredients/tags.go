package ingredients

import (
	"fmt"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// TagSource answers tag membership queries. An unknown tag has no members
// and is not an error.
type TagSource[S any] interface {
	TagMembers(tag domain.Identifier) ([]S, error)
}

// TagSourceFunc adapts a function to TagSource
type TagSourceFunc[S any] func(tag domain.Identifier) ([]S, error)

func (f TagSourceFunc[S]) TagMembers(tag domain.Identifier) ([]S, error) {
	return f(tag)
}

// MapTags is an in-memory tag source
type MapTags[S any] map[domain.Identifier][]S

func (m MapTags[S]) TagMembers(tag domain.Identifier) ([]S, error) {
	return m[tag], nil
}

// OfTag maps every member of tag to a stack, dropping empty stacks
func OfTag[S any](src TagSource[S], tag domain.Identifier, mapper func(S) *entry.Stack) (entry.Ingredient, error) {
	members, err := src.TagMembers(tag)
	if err != nil {
		return entry.EmptyIngredient(), fmt.Errorf("tag %s: %w", tag, err)
	}
	if len(members) == 0 {
		return entry.EmptyIngredient(), nil
	}
	b := entry.NewBuilder(len(members))
	for _, m := range members {
		s := mapper(m)
		if s != nil && !s.IsEmpty() {
			b.Add(s)
		}
	}
	return b.Build(), nil
}

// OfTags resolves one ingredient per tag, in order
func OfTags[S any](src TagSource[S], tags []domain.Identifier, mapper func(S) *entry.Stack) ([]entry.Ingredient, error) {
	result := make([]entry.Ingredient, 0, len(tags))
	for _, tag := range tags {
		ing, err := OfTag(src, tag, mapper)
		if err != nil {
			return nil, err
		}
		result = append(result, ing)
	}
	return result, nil
}

// ItemMapper turns an item id into a single-item stack
func ItemMapper(def entry.Definition[vanilla.ItemStack]) func(domain.Identifier) *entry.Stack {
	return func(id domain.Identifier) *entry.Stack {
		return entry.StackOf(def, vanilla.ItemStack{Item: id, Count: 1})
	}
}

// FluidMapper turns a fluid id into a one-bucket stack
func FluidMapper(def entry.Definition[vanilla.FluidStack]) func(domain.Identifier) *entry.Stack {
	return func(id domain.Identifier) *entry.Stack {
		return entry.StackOf(def, vanilla.FluidStack{Fluid: id, Amount: domain.Whole(vanilla.Bucket)})
	}
}

func OfItemTag(src TagSource[domain.Identifier], def entry.Definition[vanilla.ItemStack], tag domain.Identifier) (entry.Ingredient, error) {
	return OfTag(src, tag, ItemMapper(def))
}

func OfFluidTag(src TagSource[domain.Identifier], def entry.Definition[vanilla.FluidStack], tag domain.Identifier) (entry.Ingredient, error) {
	return OfTag(src, tag, FluidMapper(def))
}

func OfItemTags(src TagSource[domain.Identifier], def entry.Definition[vanilla.ItemStack], tags []domain.Identifier) ([]entry.Ingredient, error) {
	return OfTags(src, tags, ItemMapper(def))
}

func OfFluidTags(src TagSource[domain.Identifier], def entry.Definition[vanilla.FluidStack], tags []domain.Identifier) ([]entry.Ingredient, error) {
	return OfTags(src, tags, FluidMapper(def))
}
