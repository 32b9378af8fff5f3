// Package ingredients resolves host sources into entry ingredients.
//
// Every function here is pure. Empty or degenerate input yields the empty
// ingredient (or an empty list), never an error.
package ingredients

import (
	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// Of builds one stack per value, keeping empty values
func Of[T any](def entry.Definition[T], values []T) entry.Ingredient {
	switch len(values) {
	case 0:
		return entry.EmptyIngredient()
	case 1:
		return entry.IngredientOf(entry.StackOf(def, values[0]))
	}
	b := entry.NewBuilder(len(values))
	for _, v := range values {
		b.Add(entry.StackOf(def, v))
	}
	return b.Build()
}

// OfStacks wraps ready-made stacks
func OfStacks(stacks ...*entry.Stack) entry.Ingredient {
	return entry.IngredientOf(stacks...)
}

// OfItems builds item stacks of amount for each item id
func OfItems(def entry.Definition[vanilla.ItemStack], items []domain.Identifier, amount int) entry.Ingredient {
	return mapped(def, items, func(id domain.Identifier) vanilla.ItemStack {
		return vanilla.ItemStack{Item: id, Count: amount}
	})
}

func OfItemStacks(def entry.Definition[vanilla.ItemStack], stacks []vanilla.ItemStack) entry.Ingredient {
	return Of(def, stacks)
}

// OfFluids builds fluid stacks of amount for each fluid id
func OfFluids(def entry.Definition[vanilla.FluidStack], fluids []domain.Identifier, amount domain.Fraction) entry.Ingredient {
	return mapped(def, fluids, func(id domain.Identifier) vanilla.FluidStack {
		return vanilla.FluidStack{Fluid: id, Amount: amount}
	})
}

func OfFluidStacks(def entry.Definition[vanilla.FluidStack], stacks []vanilla.FluidStack) entry.Ingredient {
	return Of(def, stacks)
}

func mapped[S, T any](def entry.Definition[T], sources []S, convert func(S) T) entry.Ingredient {
	switch len(sources) {
	case 0:
		return entry.EmptyIngredient()
	case 1:
		return entry.IngredientOf(entry.StackOf(def, convert(sources[0])))
	}
	b := entry.NewBuilder(len(sources))
	for _, s := range sources {
		b.Add(entry.StackOf(def, convert(s)))
	}
	return b.Build()
}

// Contains reports whether any stack of ing equals stack under ctx
func Contains(ctx comparison.Context, ing entry.Ingredient, stack *entry.Stack) bool {
	for _, s := range ing.All() {
		if s.Equals(ctx, stack) {
			return true
		}
	}
	return false
}

// TestFuzzy reports whether stack fuzzily matches any substitute of ing
func TestFuzzy(ing entry.Ingredient, stack *entry.Stack) bool {
	return Contains(comparison.Fuzzy, ing, stack)
}
