package ingredients

import "github.com/pbaille/entrykit/internal/entry"

// Predicate is a recipe-ingredient style source: any of its matching values
// may fill the slot.
type Predicate[T any] interface {
	IsEmpty() bool
	MatchingValues() []T
}

// OfPredicate expands p into its matching values, dropping empty ones
func OfPredicate[T any](def entry.Definition[T], p Predicate[T]) entry.Ingredient {
	if p.IsEmpty() {
		return entry.EmptyIngredient()
	}
	values := p.MatchingValues()
	switch len(values) {
	case 0:
		return entry.EmptyIngredient()
	case 1:
		if def.IsEmpty(values[0]) {
			return entry.EmptyIngredient()
		}
		return entry.IngredientOf(entry.StackOf(def, values[0]))
	}
	b := entry.NewBuilder(len(values))
	for _, v := range values {
		if !def.IsEmpty(v) {
			b.Add(entry.StackOf(def, v))
		}
	}
	return b.Build()
}

// OfPredicates resolves one ingredient per slot, trimming the trailing run
// of empty slots.
func OfPredicates[T any, P Predicate[T]](def entry.Definition[T], slots []P) []entry.Ingredient {
	return TrimTrailing(slots, func(p P) bool { return p.IsEmpty() }, func(p P) entry.Ingredient {
		return OfPredicate[T](def, p)
	})
}

// TrimTrailing resolves sources in order but drops the trailing run of
// sources for which isEmpty holds. Interior and leading empties are kept.
func TrimTrailing[S any](sources []S, isEmpty func(S) bool, resolve func(S) entry.Ingredient) []entry.Ingredient {
	end := len(sources)
	for end > 0 && isEmpty(sources[end-1]) {
		end--
	}
	if end == 0 {
		return []entry.Ingredient{}
	}
	result := make([]entry.Ingredient, end)
	for i := 0; i < end; i++ {
		result[i] = resolve(sources[i])
	}
	return result
}
