// Package vanilla defines the built-in item and fluid kinds.
package vanilla

import (
	"fmt"
	"maps"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
)

var (
	ItemType  = domain.ID("minecraft", "item")
	FluidType = domain.ID("minecraft", "fluid")

	Air        = domain.ID("minecraft", "air")
	EmptyFluid = domain.ID("minecraft", "empty")
)

// Bucket is the fluid amount of one bucket
const Bucket = 1000

// Short kind names used by tag storage and the CLI
const (
	ItemKind  = "item"
	FluidKind = "fluid"
)

// Kinds bundles the built-in definitions
type Kinds struct {
	Items  *ItemDefinition
	Fluids *FluidDefinition
}

// NewKinds creates the item and fluid definitions with their default
// comparators, unregistered.
func NewKinds() *Kinds {
	return &Kinds{
		Items:  NewItemDefinition(),
		Fluids: NewFluidDefinition(),
	}
}

// Register binds the built-in kinds into r
func Register(r *entry.Registry) (*Kinds, error) {
	k := NewKinds()
	if err := entry.Register[ItemStack](r, k.Items); err != nil {
		return nil, fmt.Errorf("register items: %w", err)
	}
	if err := entry.Register[FluidStack](r, k.Fluids); err != nil {
		return nil, fmt.Errorf("register fluids: %w", err)
	}
	return k, nil
}

// Lock closes the comparator registries of both kinds
func (k *Kinds) Lock() {
	k.Items.Comparators.Lock()
	k.Fluids.Comparators.Lock()
}

// Bootstrap registers the built-in kinds into a fresh registry and locks
// everything.
func Bootstrap() (*entry.Registry, *Kinds, error) {
	r := entry.NewRegistry()
	k, err := Register(r)
	if err != nil {
		return nil, nil, err
	}
	k.Lock()
	r.Lock()
	return r, k, nil
}

// TagComparator hashes the embedded tag, skipping ignored keys
func TagComparator[T interface{ EmbeddedTag() map[string]string }](ignored ...string) comparison.Comparator[T] {
	return func(_ comparison.Context, v T) uint64 {
		tag := v.EmbeddedTag()
		if len(ignored) == 0 || len(tag) == 0 {
			return comparison.HashMap(tag)
		}
		filtered := maps.Clone(tag)
		for _, key := range ignored {
			delete(filtered, key)
		}
		return comparison.HashMap(filtered)
	}
}

func parseRaw(t entry.Type, raw any) (domain.Identifier, error) {
	switch v := raw.(type) {
	case domain.Identifier:
		return v, nil
	case string:
		id, err := domain.ParseIdentifier(v)
		if err != nil {
			return domain.Identifier{}, &entry.InvalidValueError{Type: t, Value: raw, Reason: err.Error()}
		}
		return id, nil
	}
	return domain.Identifier{}, &entry.InvalidValueError{Type: t, Value: raw, Reason: "unsupported raw value"}
}
