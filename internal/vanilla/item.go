package vanilla

import (
	"fmt"
	"maps"
	"math"
	"sort"
	"strings"

	"github.com/Tnze/go-mc/nbt"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
)

// ItemStack is an item id, a count and the embedded tag data
type ItemStack struct {
	Item  domain.Identifier
	Count int
	Tag   map[string]string
}

// NewItemStack copies tag so the stack stays immutable
func NewItemStack(item domain.Identifier, count int, tag map[string]string) ItemStack {
	return ItemStack{Item: item, Count: count, Tag: maps.Clone(tag)}
}

func (s ItemStack) EmbeddedTag() map[string]string { return s.Tag }

func (s ItemStack) String() string {
	return fmt.Sprintf("%s x%d%s", s.Item, s.Count, formatTag(s.Tag))
}

// ItemDefinition is the item kind. Comparators can be extended until the
// registry is locked.
type ItemDefinition struct {
	Comparators *comparison.Registry[ItemStack]
}

// NewItemDefinition uses the exact-only tag comparator by default
func NewItemDefinition() *ItemDefinition {
	return &ItemDefinition{
		Comparators: comparison.NewRegistry(comparison.ExactOnly(TagComparator[ItemStack]())),
	}
}

func (d *ItemDefinition) Type() entry.Type { return ItemType }

// Construct accepts an ItemStack, or an item id (as Identifier or string)
// for a single item.
func (d *ItemDefinition) Construct(raw any) (ItemStack, error) {
	if s, ok := raw.(ItemStack); ok {
		return NewItemStack(s.Item, s.Count, s.Tag), nil
	}
	id, err := parseRaw(ItemType, raw)
	if err != nil {
		return ItemStack{}, err
	}
	return ItemStack{Item: id, Count: 1}, nil
}

func (d *ItemDefinition) IsEmpty(s ItemStack) bool {
	return s.Item.IsZero() || s.Item == Air || s.Count <= 0
}

// itemID reads the zero id as air, the way it is persisted
func itemID(s ItemStack) domain.Identifier {
	if s.Item.IsZero() {
		return Air
	}
	return s.Item
}

func (d *ItemDefinition) Equals(ctx comparison.Context, a, b ItemStack) bool {
	return itemID(a) == itemID(b) && d.Comparators.Equals(ctx, a, b)
}

func (d *ItemDefinition) Hash(ctx comparison.Context, s ItemStack) uint64 {
	return comparison.Combine(comparison.HashString(itemID(s).String()), d.Comparators.Hash(ctx, s))
}

func (d *ItemDefinition) Amount(s ItemStack) domain.Fraction {
	return domain.Whole(int64(s.Count))
}

type itemPayload struct {
	ID    string            `nbt:"id"`
	Count int32             `nbt:"Count"`
	Tag   map[string]string `nbt:"tag"`
}

// Serialize writes the zero item as air. Counts must fit the payload's
// int32 field.
func (d *ItemDefinition) Serialize(s ItemStack) (nbt.RawMessage, error) {
	if s.Count < math.MinInt32 || s.Count > math.MaxInt32 {
		return nbt.RawMessage{}, &entry.InvalidValueError{Type: ItemType, Value: s, Reason: "count out of int32 range"}
	}
	return entry.Payload(itemPayload{
		ID:    itemID(s).String(),
		Count: int32(s.Count),
		Tag:   s.Tag,
	})
}

func (d *ItemDefinition) Deserialize(raw nbt.RawMessage) (ItemStack, error) {
	var p itemPayload
	if err := entry.DecodeCompound(raw, &p); err != nil {
		return ItemStack{}, err
	}
	id, err := domain.ParseIdentifier(p.ID)
	if err != nil {
		return ItemStack{}, fmt.Errorf("item id: %w", err)
	}
	s := ItemStack{Item: id, Count: int(p.Count)}
	if len(p.Tag) > 0 {
		s.Tag = p.Tag
	}
	return s, nil
}

func formatTag(tag map[string]string) string {
	if len(tag) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tag))
	for k := range tag {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(" {")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(tag[k])
	}
	sb.WriteString("}")
	return sb.String()
}
