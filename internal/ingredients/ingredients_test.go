package ingredients

import (
	"errors"
	"testing"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/vanilla"
)

var (
	stone = domain.ID("minecraft", "stone")
	dirt  = domain.ID("minecraft", "dirt")
	oak   = domain.ID("minecraft", "oak_planks")
	birch = domain.ID("minecraft", "birch_planks")
	water = domain.ID("minecraft", "water")
)

type slot []vanilla.ItemStack

func (s slot) IsEmpty() bool {
	for _, v := range s {
		if v.Count > 0 && v.Item != vanilla.Air {
			return false
		}
	}
	return true
}

func (s slot) MatchingValues() []vanilla.ItemStack { return s }

func one(id domain.Identifier) vanilla.ItemStack { return vanilla.ItemStack{Item: id, Count: 1} }

func TestEmptySourcesYieldEmptyIngredient(t *testing.T) {
	items := vanilla.NewItemDefinition()
	fluids := vanilla.NewFluidDefinition()

	results := map[string]entry.Ingredient{
		"Of":            Of[vanilla.ItemStack](items, nil),
		"OfItems":       OfItems(items, nil, 1),
		"OfItemStacks":  OfItemStacks(items, []vanilla.ItemStack{}),
		"OfFluids":      OfFluids(fluids, nil, domain.Whole(vanilla.Bucket)),
		"OfFluidStacks": OfFluidStacks(fluids, nil),
		"OfStacks":      OfStacks(),
		"OfPredicate":   OfPredicate[vanilla.ItemStack](items, slot{}),
	}
	for name, ing := range results {
		if ing.Len() != 0 {
			t.Fatalf("%s: expected empty ingredient, got %d stacks", name, ing.Len())
		}
	}
}

func TestSingleValueYieldsSingleton(t *testing.T) {
	items := vanilla.NewItemDefinition()
	direct := entry.StackOf[vanilla.ItemStack](items, one(stone))

	ing := OfItems(items, []domain.Identifier{stone}, 1)
	if ing.Len() != 1 {
		t.Fatalf("expected singleton, got %d", ing.Len())
	}
	if !entry.EqualsExact(ing.At(0), direct) {
		t.Fatalf("expected the stack for stone, got %v", ing.At(0))
	}
}

func TestOfKeepsOrderAndAmount(t *testing.T) {
	items := vanilla.NewItemDefinition()
	ing := OfItems(items, []domain.Identifier{stone, dirt, oak}, 4)
	if ing.Len() != 3 {
		t.Fatalf("expected 3 stacks, got %d", ing.Len())
	}
	for i, want := range []domain.Identifier{stone, dirt, oak} {
		v, _ := entry.ValueAs[vanilla.ItemStack](ing.At(i))
		if v.Item != want || v.Count != 4 {
			t.Fatalf("stack %d: expected 4 %s, got %v", i, want, v)
		}
	}
}

func TestOfPredicateDropsEmptyMatches(t *testing.T) {
	items := vanilla.NewItemDefinition()

	ing := OfPredicate[vanilla.ItemStack](items, slot{one(stone), {Item: vanilla.Air, Count: 1}, one(dirt)})
	if ing.Len() != 2 {
		t.Fatalf("expected empty match to be dropped, got %d stacks", ing.Len())
	}

	ing = OfPredicate[vanilla.ItemStack](items, slot{{Item: stone, Count: 0}, {Item: dirt, Count: 1}})
	if ing.Len() != 1 {
		t.Fatalf("expected 1 stack, got %d", ing.Len())
	}
}

func TestTrailingEmptySlotsAreTrimmed(t *testing.T) {
	items := vanilla.NewItemDefinition()
	a := slot{one(stone)}
	empty := slot{}

	got := OfPredicates[vanilla.ItemStack](items, []slot{a, empty, empty})
	if len(got) != 1 {
		t.Fatalf("expected [A,∅,∅] to keep 1 slot, got %d", len(got))
	}

	got = OfPredicates[vanilla.ItemStack](items, []slot{empty, a, empty})
	if len(got) != 2 {
		t.Fatalf("expected [∅,A,∅] to keep 2 slots, got %d", len(got))
	}
	if !got[0].IsEmpty() || got[1].Len() != 1 {
		t.Fatalf("expected leading empty then A, got %d/%d", got[0].Len(), got[1].Len())
	}

	got = OfPredicates[vanilla.ItemStack](items, []slot{a, empty, a})
	if len(got) != 3 || !got[1].IsEmpty() {
		t.Fatalf("expected interior empty to be preserved")
	}

	if got := OfPredicates[vanilla.ItemStack](items, []slot{empty}); got == nil || len(got) != 0 {
		t.Fatalf("expected a single empty slot to yield an empty, non-nil list")
	}
	if got := OfPredicates[vanilla.ItemStack](items, nil); got == nil || len(got) != 0 {
		t.Fatalf("expected no slots to yield an empty, non-nil list")
	}
}

func TestOfTag(t *testing.T) {
	items := vanilla.NewItemDefinition()
	planks := domain.ID("minecraft", "planks")
	logs := domain.ID("minecraft", "logs")
	tags := MapTags[domain.Identifier]{
		planks: {oak, vanilla.Air, birch},
		logs:   {oak},
		domain.ID("minecraft", "nothing"): {},
	}

	ing, err := OfItemTag(tags, items, planks)
	if err != nil {
		t.Fatalf("resolve tag: %v", err)
	}
	if ing.Len() != 2 {
		t.Fatalf("expected air to be elided, got %d stacks", ing.Len())
	}

	for _, missing := range []domain.Identifier{domain.ID("minecraft", "nothing"), domain.ID("minecraft", "unknown")} {
		ing, err = OfItemTag(tags, items, missing)
		if err != nil || !ing.IsEmpty() {
			t.Fatalf("expected empty ingredient for %s, got %d (%v)", missing, ing.Len(), err)
		}
	}

	ing, err = OfItemTag(tags, items, logs)
	if err != nil {
		t.Fatalf("resolve tag: %v", err)
	}
	direct := OfItems(items, []domain.Identifier{oak}, 1)
	if ing.Len() != 1 || ing.At(0).Hash(comparison.Fuzzy) != direct.At(0).Hash(comparison.Fuzzy) {
		t.Fatalf("expected singleton tag to match a direct singleton")
	}
}

func TestOfTagsAndErrors(t *testing.T) {
	fluids := vanilla.NewFluidDefinition()
	tags := MapTags[domain.Identifier]{domain.ID("minecraft", "water"): {water}}

	got, err := OfFluidTags(tags, fluids, []domain.Identifier{domain.ID("minecraft", "water"), domain.ID("minecraft", "lava")})
	if err != nil {
		t.Fatalf("resolve tags: %v", err)
	}
	if len(got) != 2 || got[0].Len() != 1 || !got[1].IsEmpty() {
		t.Fatalf("expected one ingredient per tag, got %d", len(got))
	}

	boom := errors.New("store offline")
	failing := TagSourceFunc[domain.Identifier](func(domain.Identifier) ([]domain.Identifier, error) {
		return nil, boom
	})
	if _, err := OfFluidTag(failing, fluids, water); !errors.Is(err, boom) {
		t.Fatalf("expected source error to surface, got %v", err)
	}
}

func TestFuzzyMatching(t *testing.T) {
	items := vanilla.NewItemDefinition()
	ing := OfItemStacks(items, []vanilla.ItemStack{
		vanilla.NewItemStack(stone, 1, map[string]string{"display": "Fancy"}),
		one(dirt),
	})

	plain := entry.StackOf[vanilla.ItemStack](items, one(stone))
	if !TestFuzzy(ing, plain) {
		t.Fatalf("expected fuzzy match to ignore the display tag")
	}
	if Contains(comparison.Exact, ing, plain) {
		t.Fatalf("expected exact match to see the display tag")
	}
	if TestFuzzy(ing, entry.StackOf[vanilla.ItemStack](items, one(oak))) {
		t.Fatalf("expected oak to be absent")
	}
}
