package recipes

import (
	"testing"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/vanilla"
)

var (
	oak    = domain.ID("minecraft", "oak_planks")
	birch  = domain.ID("minecraft", "birch_planks")
	stick  = domain.ID("minecraft", "stick")
	stone  = domain.ID("minecraft", "stone")
	empty  = Slot{}
	planks = SlotOf(oak, birch)
)

func TestInputsTrimTrailingEmptySlots(t *testing.T) {
	items := vanilla.NewItemDefinition()
	r := Recipe{
		ID:     domain.ID("minecraft", "stick"),
		Slots:  []Slot{planks, empty, empty, planks, empty, empty},
		Result: vanilla.ItemStack{Item: stick, Count: 4},
	}

	inputs := r.Inputs(items)
	if len(inputs) != 4 {
		t.Fatalf("expected 4 slots after trimming, got %d", len(inputs))
	}
	if inputs[0].Len() != 2 || !inputs[1].IsEmpty() || inputs[3].Len() != 2 {
		t.Fatalf("unexpected slot contents")
	}

	out := r.Output(items)
	if v, _ := entry.ValueAs[vanilla.ItemStack](out.At(0)); out.Len() != 1 || v.Count != 4 {
		t.Fatalf("expected 4 sticks as output")
	}
}

func TestSlotEmptiness(t *testing.T) {
	if !empty.IsEmpty() {
		t.Fatalf("expected slot without matches to be empty")
	}
	if !SlotOf(vanilla.Air).IsEmpty() {
		t.Fatalf("expected air-only slot to be empty")
	}
	if planks.IsEmpty() {
		t.Fatalf("expected planks slot to be present")
	}
}

func TestContextSortsLazilyAndReloads(t *testing.T) {
	calls := 0
	current := []Recipe{
		{ID: domain.ID("zeta", "a")},
		{ID: domain.ID("alpha", "z")},
		{ID: domain.ID("alpha", "b")},
	}
	ctx := NewContext(ManagerFunc(func() []Recipe {
		calls++
		return current
	}))

	sorted := ctx.AllSorted()
	want := []string{"alpha:b", "alpha:z", "zeta:a"}
	for i, w := range want {
		if sorted[i].ID.String() != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, sorted[i].ID)
		}
	}

	ctx.AllSorted()
	if calls != 1 {
		t.Fatalf("expected the sorted view to be cached, got %d manager calls", calls)
	}

	current = append(current, Recipe{ID: domain.ID("beta", "x")})
	if len(ctx.AllSorted()) != 3 {
		t.Fatalf("expected stale view before reload")
	}
	ctx.StartReload()
	if len(ctx.AllSorted()) != 4 || calls != 2 {
		t.Fatalf("expected reload to refresh the view")
	}

	if _, ok := ctx.Lookup(domain.ID("beta", "x")); !ok {
		t.Fatalf("expected lookup to find beta:x")
	}
	if _, ok := ctx.Lookup(domain.ID("beta", "y")); ok {
		t.Fatalf("expected lookup to miss beta:y")
	}
}

func TestUsesOf(t *testing.T) {
	items := vanilla.NewItemDefinition()
	ctx := NewContext(ManagerFunc(func() []Recipe {
		return []Recipe{
			{ID: domain.ID("minecraft", "stick"), Slots: []Slot{planks, planks}},
			{ID: domain.ID("minecraft", "furnace"), Slots: []Slot{SlotOf(stone)}},
		}
	}))

	uses := ctx.UsesOf(items, entry.StackOf[vanilla.ItemStack](items, vanilla.NewItemStack(birch, 1, map[string]string{"x": "y"})))
	if len(uses) != 1 || uses[0].ID.Path != "stick" {
		t.Fatalf("expected birch to be used by the stick recipe only, got %v", uses)
	}
}
