package vanilla

import (
	"errors"
	"math"
	"testing"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
)

var (
	stone   = domain.ID("minecraft", "stone")
	pickaxe = domain.ID("minecraft", "iron_pickaxe")
	water   = domain.ID("minecraft", "water")
)

func TestItemEmbeddedDataRegimes(t *testing.T) {
	d := NewItemDefinition()
	worn := NewItemStack(pickaxe, 1, map[string]string{"Damage": "12"})
	fresh := NewItemStack(pickaxe, 1, map[string]string{"Damage": "0"})

	if d.Hash(comparison.Fuzzy, worn) != d.Hash(comparison.Fuzzy, fresh) {
		t.Fatalf("expected fuzzy hash to ignore damage")
	}
	if d.Hash(comparison.Exact, worn) == d.Hash(comparison.Exact, fresh) {
		t.Fatalf("expected exact hash to keep damage")
	}
	if d.Equals(comparison.Fuzzy, worn, NewItemStack(stone, 1, nil)) {
		t.Fatalf("expected different items to differ even fuzzily")
	}
}

func TestItemOverrideIgnoresKeys(t *testing.T) {
	d := NewItemDefinition()
	comparison.RegisterFor(d.Comparators, func(s ItemStack) domain.Identifier { return s.Item },
		comparison.ExactOnly(TagComparator[ItemStack]("Damage")), pickaxe)

	worn := NewItemStack(pickaxe, 1, map[string]string{"Damage": "12", "Name": "Pick"})
	fresh := NewItemStack(pickaxe, 1, map[string]string{"Damage": "0", "Name": "Pick"})
	renamed := NewItemStack(pickaxe, 1, map[string]string{"Damage": "0", "Name": "Other"})

	if !d.Equals(comparison.Exact, worn, fresh) {
		t.Fatalf("expected override to ignore damage in exact context")
	}
	if d.Equals(comparison.Exact, fresh, renamed) {
		t.Fatalf("expected override to keep other keys")
	}
}

func TestItemConstruct(t *testing.T) {
	d := NewItemDefinition()

	s, err := d.Construct("stone")
	if err != nil {
		t.Fatalf("construct from string: %v", err)
	}
	if s.Item != stone || s.Count != 1 {
		t.Fatalf("expected one stone, got %v", s)
	}

	tag := map[string]string{"k": "v"}
	s, err = d.Construct(ItemStack{Item: stone, Count: 3, Tag: tag})
	if err != nil {
		t.Fatalf("construct from stack: %v", err)
	}
	tag["k"] = "changed"
	if s.Tag["k"] != "v" {
		t.Fatalf("expected construct to copy the tag")
	}

	_, err = d.Construct(3.5)
	var invalid *entry.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if _, err := d.Construct("Bad Id"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError for malformed id, got %v", err)
	}
}

func TestItemEmptiness(t *testing.T) {
	d := NewItemDefinition()
	cases := []struct {
		stack ItemStack
		empty bool
	}{
		{ItemStack{}, true},
		{ItemStack{Item: Air, Count: 1}, true},
		{ItemStack{Item: stone, Count: 0}, true},
		{ItemStack{Item: stone, Count: 1}, false},
	}
	for _, tc := range cases {
		if got := d.IsEmpty(tc.stack); got != tc.empty {
			t.Fatalf("expected IsEmpty(%v) = %v, got %v", tc.stack, tc.empty, got)
		}
	}
}

func TestItemPayloadRoundTrip(t *testing.T) {
	d := NewItemDefinition()
	in := NewItemStack(pickaxe, 2, map[string]string{"Damage": "5"})

	raw, err := d.Serialize(in)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	out, err := d.Deserialize(raw)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !d.Equals(comparison.Exact, in, out) || out.Count != 2 {
		t.Fatalf("expected exact round trip, got %v", out)
	}
}

func TestFluidPayloadRoundTrip(t *testing.T) {
	d := NewFluidDefinition()
	third, _ := domain.NewFraction(1000, 3)
	in := NewFluidStack(water, third, nil)

	raw, err := d.Serialize(in)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	out, err := d.Deserialize(raw)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if out.Fluid != water || !out.Amount.Equal(third) {
		t.Fatalf("expected 1000/3 water, got %v", out)
	}
}

func TestFluidRejectsItemPayload(t *testing.T) {
	raw, err := NewItemDefinition().Serialize(NewItemStack(stone, 1, nil))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if _, err := NewFluidDefinition().Deserialize(raw); err == nil {
		t.Fatalf("expected fluid definition to reject an item payload")
	}
}

func TestFluidDefaults(t *testing.T) {
	d := NewFluidDefinition()
	s, err := d.Construct(water)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if !s.Amount.Equal(domain.Whole(Bucket)) {
		t.Fatalf("expected one bucket, got %s", s.Amount)
	}
	if !d.IsEmpty(FluidStack{Fluid: EmptyFluid, Amount: domain.Whole(1)}) {
		t.Fatalf("expected minecraft:empty to be empty")
	}
	if !d.IsEmpty(FluidStack{Fluid: water}) {
		t.Fatalf("expected zero amount to be empty")
	}

	// no embedded-data concept in the fuzzy regime: every water collapses
	a := NewFluidStack(water, domain.Whole(1), map[string]string{"Temperature": "300"})
	b := NewFluidStack(water, domain.Whole(5), nil)
	if !d.Equals(comparison.Fuzzy, a, b) {
		t.Fatalf("expected fuzzy fluid equality")
	}
}

func TestBootstrapLocksEverything(t *testing.T) {
	r, k, err := Bootstrap()
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if !r.Locked() || !k.Items.Comparators.Locked() || !k.Fluids.Comparators.Locked() {
		t.Fatalf("expected registries to be locked")
	}
	if _, err := entry.LookupAs[ItemStack](r, ItemType); err != nil {
		t.Fatalf("lookup items: %v", err)
	}
	if _, err := entry.LookupAs[FluidStack](r, FluidType); err != nil {
		t.Fatalf("lookup fluids: %v", err)
	}

	var dup *entry.DuplicateTypeError
	open := entry.NewRegistry()
	if _, err := Register(open); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := Register(open); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTypeError on second registration, got %v", err)
	}
}

func TestZeroStacksSerializeAsEmptyIds(t *testing.T) {
	items := NewItemDefinition()
	raw, err := items.Serialize(ItemStack{})
	if err != nil {
		t.Fatalf("serialize zero item: %v", err)
	}
	item, err := items.Deserialize(raw)
	if err != nil {
		t.Fatalf("deserialize zero item: %v", err)
	}
	if item.Item != Air || !items.IsEmpty(item) {
		t.Fatalf("expected empty air stack, got %v", item)
	}
	if !items.Equals(comparison.Exact, ItemStack{}, item) {
		t.Fatalf("expected the zero item to equal its decoded form")
	}

	fluids := NewFluidDefinition()
	raw, err = fluids.Serialize(FluidStack{})
	if err != nil {
		t.Fatalf("serialize zero fluid: %v", err)
	}
	fluid, err := fluids.Deserialize(raw)
	if err != nil {
		t.Fatalf("deserialize zero fluid: %v", err)
	}
	if fluid.Fluid != EmptyFluid || !fluids.Equals(comparison.Exact, FluidStack{}, fluid) {
		t.Fatalf("expected empty fluid stack, got %v", fluid)
	}
}

func TestItemCountMustFitPayload(t *testing.T) {
	d := NewItemDefinition()
	big := math.MaxInt32
	big++

	_, err := d.Serialize(NewItemStack(stone, big, nil))
	var invalid *entry.InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}

	raw, err := d.Serialize(NewItemStack(stone, math.MaxInt32, nil))
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	s, err := d.Deserialize(raw)
	if err != nil || s.Count != math.MaxInt32 {
		t.Fatalf("expected the int32 maximum to survive, got %v (%v)", s, err)
	}
}
