package vanilla

import (
	"fmt"
	"maps"

	"github.com/Tnze/go-mc/nbt"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
)

// FluidStack is a fluid id, an amount and the embedded tag data
type FluidStack struct {
	Fluid  domain.Identifier
	Amount domain.Fraction
	Tag    map[string]string
}

// NewFluidStack copies tag so the stack stays immutable
func NewFluidStack(fluid domain.Identifier, amount domain.Fraction, tag map[string]string) FluidStack {
	return FluidStack{Fluid: fluid, Amount: amount, Tag: maps.Clone(tag)}
}

func (s FluidStack) EmbeddedTag() map[string]string { return s.Tag }

func (s FluidStack) String() string {
	return fmt.Sprintf("%s %smB%s", s.Fluid, s.Amount, formatTag(s.Tag))
}

// FluidDefinition is the fluid kind
type FluidDefinition struct {
	Comparators *comparison.Registry[FluidStack]
}

// NewFluidDefinition uses the exact-only tag comparator by default
func NewFluidDefinition() *FluidDefinition {
	return &FluidDefinition{
		Comparators: comparison.NewRegistry(comparison.ExactOnly(TagComparator[FluidStack]())),
	}
}

func (d *FluidDefinition) Type() entry.Type { return FluidType }

// Construct accepts a FluidStack, or a fluid id for one bucket
func (d *FluidDefinition) Construct(raw any) (FluidStack, error) {
	if s, ok := raw.(FluidStack); ok {
		return NewFluidStack(s.Fluid, s.Amount, s.Tag), nil
	}
	id, err := parseRaw(FluidType, raw)
	if err != nil {
		return FluidStack{}, err
	}
	return FluidStack{Fluid: id, Amount: domain.Whole(Bucket)}, nil
}

func (d *FluidDefinition) IsEmpty(s FluidStack) bool {
	return s.Fluid.IsZero() || s.Fluid == EmptyFluid || s.Amount.Sign() <= 0
}

func fluidID(s FluidStack) domain.Identifier {
	if s.Fluid.IsZero() {
		return EmptyFluid
	}
	return s.Fluid
}

func (d *FluidDefinition) Equals(ctx comparison.Context, a, b FluidStack) bool {
	return fluidID(a) == fluidID(b) && d.Comparators.Equals(ctx, a, b)
}

func (d *FluidDefinition) Hash(ctx comparison.Context, s FluidStack) uint64 {
	return comparison.Combine(comparison.HashString(fluidID(s).String()), d.Comparators.Hash(ctx, s))
}

func (d *FluidDefinition) Amount(s FluidStack) domain.Fraction {
	return s.Amount
}

type fluidPayload struct {
	FluidName string            `nbt:"FluidName"`
	Amount    int64             `nbt:"Amount"`
	AmountDen int64             `nbt:"AmountDen"`
	Tag       map[string]string `nbt:"Tag"`
}

// Serialize writes the zero fluid as minecraft:empty
func (d *FluidDefinition) Serialize(s FluidStack) (nbt.RawMessage, error) {
	return entry.Payload(fluidPayload{
		FluidName: fluidID(s).String(),
		Amount:    s.Amount.Numerator(),
		AmountDen: s.Amount.Denominator(),
		Tag:       s.Tag,
	})
}

func (d *FluidDefinition) Deserialize(raw nbt.RawMessage) (FluidStack, error) {
	var p fluidPayload
	if err := entry.DecodeCompound(raw, &p); err != nil {
		return FluidStack{}, err
	}
	id, err := domain.ParseIdentifier(p.FluidName)
	if err != nil {
		return FluidStack{}, fmt.Errorf("fluid name: %w", err)
	}
	den := p.AmountDen
	if den == 0 {
		den = 1
	}
	amount, err := domain.NewFraction(p.Amount, den)
	if err != nil {
		return FluidStack{}, fmt.Errorf("fluid amount: %w", err)
	}
	s := FluidStack{Fluid: id, Amount: amount}
	if len(p.Tag) > 0 {
		s.Tag = p.Tag
	}
	return s, nil
}
