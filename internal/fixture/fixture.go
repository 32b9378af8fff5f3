// Package fixture reads YAML documents describing tags, ingredient lists
// and recipes, and resolves them against the built-in kinds.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the top level of a fixture file
type Document struct {
	// Tags maps a kind name to tag ids and their members
	Tags        map[string]map[string][]string `yaml:"tags,omitempty" json:"tags,omitempty" jsonschema:"description=Inline tags keyed by kind (item or fluid) then tag id"`
	Ingredients []IngredientSpec               `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
	Recipes     []RecipeSpec                   `yaml:"recipes,omitempty" json:"recipes,omitempty"`
}

// IngredientSpec describes one ingredient. The sources are combined in
// order: stacks, items, fluids, then tag members. An entry with no source
// is the empty ingredient.
type IngredientSpec struct {
	Items  []string    `yaml:"items,omitempty" json:"items,omitempty" jsonschema:"description=Item ids; each becomes a stack of count"`
	Count  int         `yaml:"count,omitempty" json:"count,omitempty" jsonschema:"minimum=0,description=Item count (default 1)"`
	Fluids []string    `yaml:"fluids,omitempty" json:"fluids,omitempty"`
	Amount string      `yaml:"amount,omitempty" json:"amount,omitempty" jsonschema:"pattern=^-?[0-9]+(/[0-9]+)?$,description=Fluid amount as n or n/d (default one bucket)"`
	Tag    string      `yaml:"tag,omitempty" json:"tag,omitempty"`
	Kind   string      `yaml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=item,enum=fluid,description=Kind of the tag (default item)"`
	Stacks []StackSpec `yaml:"stacks,omitempty" json:"stacks,omitempty"`
}

// StackSpec is a single item or fluid stack with an optional embedded tag
type StackSpec struct {
	Item   string            `yaml:"item,omitempty" json:"item,omitempty"`
	Fluid  string            `yaml:"fluid,omitempty" json:"fluid,omitempty"`
	Count  int               `yaml:"count,omitempty" json:"count,omitempty"`
	Amount string            `yaml:"amount,omitempty" json:"amount,omitempty"`
	Tag    map[string]string `yaml:"tag,omitempty" json:"tag,omitempty"`
}

// RecipeSpec is a recipe whose slots list accepted item ids
type RecipeSpec struct {
	ID     string     `yaml:"id" json:"id" jsonschema:"required"`
	Slots  [][]string `yaml:"slots,omitempty" json:"slots,omitempty" jsonschema:"description=Accepted item ids per slot; an empty list is an empty slot"`
	Result StackSpec  `yaml:"result" json:"result"`
}

// Parse decodes a fixture document, rejecting unknown fields
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a fixture file
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal renders the document back to YAML
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
