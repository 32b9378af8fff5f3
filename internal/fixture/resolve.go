package fixture

import (
	"fmt"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/ingredients"
	"github.com/pbaille/entrykit/internal/recipes"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// Resolved holds the engine values described by a document
type Resolved struct {
	Ingredients []entry.Ingredient
	Recipes     []recipes.Recipe
}

// Resolver turns documents into ingredients. Tags not defined inline are
// looked up in the fallback sources, when set.
type Resolver struct {
	Kinds  *vanilla.Kinds
	Items  ingredients.TagSource[domain.Identifier]
	Fluids ingredients.TagSource[domain.Identifier]
}

// InlineTags returns the document's tags of one kind
func (d *Document) InlineTags(kind string) (ingredients.MapTags[domain.Identifier], error) {
	tags := ingredients.MapTags[domain.Identifier]{}
	for name, members := range d.Tags[kind] {
		tag, err := domain.ParseIdentifier(name)
		if err != nil {
			return nil, fmt.Errorf("%s tag %q: %w", kind, name, err)
		}
		ids, err := parseIDs(members)
		if err != nil {
			return nil, fmt.Errorf("%s tag %s: %w", kind, tag, err)
		}
		tags[tag] = ids
	}
	return tags, nil
}

// Resolve builds every ingredient and recipe of d
func (r Resolver) Resolve(d *Document) (*Resolved, error) {
	for kind := range d.Tags {
		if kind != vanilla.ItemKind && kind != vanilla.FluidKind {
			return nil, fmt.Errorf("unknown tag kind %q", kind)
		}
	}
	items, err := r.layer(d, vanilla.ItemKind, r.Items)
	if err != nil {
		return nil, err
	}
	fluids, err := r.layer(d, vanilla.FluidKind, r.Fluids)
	if err != nil {
		return nil, err
	}

	out := &Resolved{
		Ingredients: make([]entry.Ingredient, 0, len(d.Ingredients)),
		Recipes:     make([]recipes.Recipe, 0, len(d.Recipes)),
	}
	for i, spec := range d.Ingredients {
		ing, err := r.ingredient(spec, items, fluids)
		if err != nil {
			return nil, fmt.Errorf("ingredient %d: %w", i, err)
		}
		out.Ingredients = append(out.Ingredients, ing)
	}
	for i, spec := range d.Recipes {
		rec, err := r.recipe(spec)
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		out.Recipes = append(out.Recipes, rec)
	}
	return out, nil
}

func (r Resolver) layer(d *Document, kind string, fallback ingredients.TagSource[domain.Identifier]) (ingredients.TagSource[domain.Identifier], error) {
	inline, err := d.InlineTags(kind)
	if err != nil {
		return nil, err
	}
	return ingredients.TagSourceFunc[domain.Identifier](func(tag domain.Identifier) ([]domain.Identifier, error) {
		if members, ok := inline[tag]; ok {
			return members, nil
		}
		if fallback == nil {
			return nil, nil
		}
		return fallback.TagMembers(tag)
	}), nil
}

func (r Resolver) ingredient(spec IngredientSpec, items, fluids ingredients.TagSource[domain.Identifier]) (entry.Ingredient, error) {
	b := entry.NewBuilder(len(spec.Stacks) + len(spec.Items) + len(spec.Fluids))

	for j, s := range spec.Stacks {
		stack, err := r.stack(s)
		if err != nil {
			return entry.Ingredient{}, fmt.Errorf("stack %d: %w", j, err)
		}
		b.Add(stack)
	}

	if len(spec.Items) > 0 {
		count, err := countOf(spec.Count)
		if err != nil {
			return entry.Ingredient{}, err
		}
		ids, err := parseIDs(spec.Items)
		if err != nil {
			return entry.Ingredient{}, err
		}
		b.AddAll(ingredients.OfItems(r.Kinds.Items, ids, count).Stacks()...)
	}

	if len(spec.Fluids) > 0 {
		amount, err := amountOf(spec.Amount)
		if err != nil {
			return entry.Ingredient{}, err
		}
		ids, err := parseIDs(spec.Fluids)
		if err != nil {
			return entry.Ingredient{}, err
		}
		b.AddAll(ingredients.OfFluids(r.Kinds.Fluids, ids, amount).Stacks()...)
	}

	if spec.Tag != "" {
		tag, err := domain.ParseIdentifier(spec.Tag)
		if err != nil {
			return entry.Ingredient{}, fmt.Errorf("tag: %w", err)
		}
		var ing entry.Ingredient
		switch spec.Kind {
		case "", vanilla.ItemKind:
			ing, err = ingredients.OfItemTag(items, r.Kinds.Items, tag)
		case vanilla.FluidKind:
			ing, err = ingredients.OfFluidTag(fluids, r.Kinds.Fluids, tag)
		default:
			return entry.Ingredient{}, fmt.Errorf("unknown tag kind %q", spec.Kind)
		}
		if err != nil {
			return entry.Ingredient{}, err
		}
		b.AddAll(ing.Stacks()...)
	}

	return b.Build(), nil
}

func (r Resolver) stack(s StackSpec) (*entry.Stack, error) {
	switch {
	case s.Item != "" && s.Fluid != "":
		return nil, fmt.Errorf("stack sets both item and fluid")
	case s.Item != "":
		v, err := r.item(s)
		if err != nil {
			return nil, err
		}
		return entry.StackOf[vanilla.ItemStack](r.Kinds.Items, v), nil
	case s.Fluid != "":
		id, err := domain.ParseIdentifier(s.Fluid)
		if err != nil {
			return nil, fmt.Errorf("fluid: %w", err)
		}
		amount, err := amountOf(s.Amount)
		if err != nil {
			return nil, err
		}
		return entry.StackOf[vanilla.FluidStack](r.Kinds.Fluids, vanilla.NewFluidStack(id, amount, s.Tag)), nil
	}
	return nil, fmt.Errorf("stack sets neither item nor fluid")
}

func (r Resolver) item(s StackSpec) (vanilla.ItemStack, error) {
	id, err := domain.ParseIdentifier(s.Item)
	if err != nil {
		return vanilla.ItemStack{}, fmt.Errorf("item: %w", err)
	}
	count, err := countOf(s.Count)
	if err != nil {
		return vanilla.ItemStack{}, err
	}
	return vanilla.NewItemStack(id, count, s.Tag), nil
}

func (r Resolver) recipe(spec RecipeSpec) (recipes.Recipe, error) {
	id, err := domain.ParseIdentifier(spec.ID)
	if err != nil {
		return recipes.Recipe{}, fmt.Errorf("id: %w", err)
	}
	if spec.Result.Fluid != "" {
		return recipes.Recipe{}, fmt.Errorf("%s: result must be an item", id)
	}
	result, err := r.item(spec.Result)
	if err != nil {
		return recipes.Recipe{}, fmt.Errorf("%s result: %w", id, err)
	}

	slots := make([]recipes.Slot, len(spec.Slots))
	for i, accepted := range spec.Slots {
		ids, err := parseIDs(accepted)
		if err != nil {
			return recipes.Recipe{}, fmt.Errorf("%s slot %d: %w", id, i, err)
		}
		slots[i] = recipes.SlotOf(ids...)
	}
	return recipes.Recipe{ID: id, Slots: slots, Result: result}, nil
}

func parseIDs(raw []string) ([]domain.Identifier, error) {
	ids := make([]domain.Identifier, len(raw))
	for i, s := range raw {
		id, err := domain.ParseIdentifier(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func countOf(n int) (int, error) {
	switch {
	case n < 0:
		return 0, fmt.Errorf("negative count %d", n)
	case n == 0:
		return 1, nil
	}
	return n, nil
}

func amountOf(s string) (domain.Fraction, error) {
	if s == "" {
		return domain.Whole(vanilla.Bucket), nil
	}
	f, err := domain.ParseFraction(s)
	if err != nil {
		return domain.Fraction{}, fmt.Errorf("amount: %w", err)
	}
	return f, nil
}
