// Package recipes gives the engine read access to host recipes: their slots
// as ingredient predicates, and a lazily sorted view of all recipes.
package recipes

import (
	"slices"
	"sync"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/ingredients"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// Slot is a recipe ingredient: any of its item stacks fills it
type Slot struct {
	Matching []vanilla.ItemStack
}

// SlotOf builds a slot accepting one of each item id
func SlotOf(items ...domain.Identifier) Slot {
	s := Slot{Matching: make([]vanilla.ItemStack, len(items))}
	for i, id := range items {
		s.Matching[i] = vanilla.ItemStack{Item: id, Count: 1}
	}
	return s
}

// IsEmpty holds when no matching stack is a real item
func (s Slot) IsEmpty() bool {
	for _, m := range s.Matching {
		if !m.Item.IsZero() && m.Item != vanilla.Air && m.Count > 0 {
			return false
		}
	}
	return true
}

func (s Slot) MatchingValues() []vanilla.ItemStack {
	return s.Matching
}

// Recipe is a shaped or shapeless recipe in slot order
type Recipe struct {
	ID     domain.Identifier
	Slots  []Slot
	Result vanilla.ItemStack
}

// Inputs resolves the slots, dropping the trailing empty ones
func (r Recipe) Inputs(def entry.Definition[vanilla.ItemStack]) []entry.Ingredient {
	return ingredients.OfPredicates[vanilla.ItemStack](def, r.Slots)
}

// Output is the result as a single-stack ingredient
func (r Recipe) Output(def entry.Definition[vanilla.ItemStack]) entry.Ingredient {
	return ingredients.OfItemStacks(def, []vanilla.ItemStack{r.Result})
}

// Manager is the host's recipe storage
type Manager interface {
	Recipes() []Recipe
}

// ManagerFunc adapts a function to Manager
type ManagerFunc func() []Recipe

func (f ManagerFunc) Recipes() []Recipe { return f() }

// Context caches the host recipes sorted by id until the next reload
type Context struct {
	manager Manager

	mu     sync.Mutex
	sorted []Recipe
}

func NewContext(manager Manager) *Context {
	return &Context{manager: manager}
}

// AllSorted returns every recipe ordered by namespace, then path
func (c *Context) AllSorted() []Recipe {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sorted == nil {
		sorted := slices.Clone(c.manager.Recipes())
		if sorted == nil {
			sorted = []Recipe{}
		}
		slices.SortStableFunc(sorted, func(a, b Recipe) int {
			return a.ID.Compare(b.ID)
		})
		c.sorted = sorted
	}
	return slices.Clone(c.sorted)
}

// Lookup finds a recipe by id in the sorted view
func (c *Context) Lookup(id domain.Identifier) (Recipe, bool) {
	all := c.AllSorted()
	i, found := slices.BinarySearchFunc(all, id, func(r Recipe, target domain.Identifier) int {
		return r.ID.Compare(target)
	})
	if !found {
		return Recipe{}, false
	}
	return all[i], true
}

// StartReload drops the cached order; the next read re-sorts
func (c *Context) StartReload() {
	c.mu.Lock()
	c.sorted = nil
	c.mu.Unlock()
}

// UsesOf lists recipes with an input that fuzzily accepts stack
func (c *Context) UsesOf(def entry.Definition[vanilla.ItemStack], stack *entry.Stack) []Recipe {
	var uses []Recipe
	for _, r := range c.AllSorted() {
		for _, ing := range r.Inputs(def) {
			if ingredients.TestFuzzy(ing, stack) {
				uses = append(uses, r)
				break
			}
		}
	}
	return uses
}
