// Package codec persists ingredient lists in the NBT tag format.
//
// A document is a root compound holding a format version and a list of
// ingredients; each ingredient is a list of stack records:
//
//	{version: 1, ingredients: [[{type, value, amount, amountDen}, ...], ...]}
//
// Decoding isolates failures per record, so one bad stack or unknown type
// never costs the rest of the list.
package codec

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"

	"github.com/pbaille/entrykit/internal/entry"
)

// Version is the document format written by Marshal
const Version = 1

// Record is one persisted stack
type Record struct {
	Type      string         `nbt:"type"`
	Value     nbt.RawMessage `nbt:"value"`
	Amount    int64          `nbt:"amount"`
	AmountDen int64          `nbt:"amountDen"`
}

// List is the persisted form of a list of ingredients
type List [][]Record

type document struct {
	Version     int32 `nbt:"version"`
	Ingredients List  `nbt:"ingredients"`
}

// rawDocument defers decoding of each ingredient so it can fail alone
type rawDocument struct {
	Version     int32            `nbt:"version"`
	Ingredients []nbt.RawMessage `nbt:"ingredients"`
}

// Save converts ingredients into records. A serialization failure is a bug
// in the kind and aborts the save.
func Save(ings []entry.Ingredient) (List, error) {
	list := make(List, 0, len(ings))
	for i, ing := range ings {
		records := make([]Record, 0, ing.Len())
		for j, s := range ing.All() {
			rec, err := SaveStack(s)
			if err != nil {
				return nil, fmt.Errorf("ingredient %d stack %d: %w", i, j, err)
			}
			records = append(records, rec)
		}
		list = append(list, records)
	}
	return list, nil
}

// SaveStack converts one stack into its record
func SaveStack(s *entry.Stack) (Record, error) {
	value, err := s.Kind().Serialize(s.Value())
	if err != nil {
		return Record{}, fmt.Errorf("serialize %s: %w", s.Type(), err)
	}
	return Record{
		Type:      s.Type().String(),
		Value:     value,
		Amount:    s.Amount().Numerator(),
		AmountDen: s.Amount().Denominator(),
	}, nil
}

// Marshal encodes ingredients as an NBT document
func Marshal(ings []entry.Ingredient) ([]byte, error) {
	list, err := Save(ings)
	if err != nil {
		return nil, err
	}
	return MarshalList(list)
}

// MarshalList encodes already saved records as an NBT document
func MarshalList(list List) ([]byte, error) {
	if list == nil {
		list = List{}
	}
	data, err := nbt.Marshal(document{Version: Version, Ingredients: list})
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// MarshalBare encodes records as a bare list tag with no version header,
// for hosts that embed ingredient lists in their own documents.
func MarshalBare(list List) ([]byte, error) {
	if list == nil {
		list = List{}
	}
	data, err := nbt.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	return data, nil
}
