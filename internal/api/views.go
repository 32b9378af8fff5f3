package api

import (
	"fmt"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/entry"
)

// StackView is the JSON form of a stack with both hash regimes
type StackView struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Amount    string `json:"amount"`
	Empty     bool   `json:"empty,omitempty"`
	ExactHash string `json:"exact_hash"`
	FuzzyHash string `json:"fuzzy_hash"`
}

// FailureView is one record a decode skipped
type FailureView struct {
	Ingredient int    `json:"ingredient"`
	Stack      int    `json:"stack"`
	Type       string `json:"type,omitempty"`
	Error      string `json:"error"`
}

func NewStackView(s *entry.Stack) StackView {
	return StackView{
		Type:      s.Type().String(),
		Value:     fmt.Sprint(s.Value()),
		Amount:    s.Amount().String(),
		Empty:     s.IsEmpty(),
		ExactHash: fmt.Sprintf("%016x", s.Hash(comparison.Exact)),
		FuzzyHash: fmt.Sprintf("%016x", s.Hash(comparison.Fuzzy)),
	}
}

// IngredientView lists the stacks of ing in order
func IngredientView(ing entry.Ingredient) []StackView {
	views := make([]StackView, 0, ing.Len())
	for _, s := range ing.All() {
		views = append(views, NewStackView(s))
	}
	return views
}
