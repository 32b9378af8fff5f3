package codec

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tnze/go-mc/nbt"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
)

// Report is the outcome of a decode: every ingredient slot, plus the
// records that were skipped.
type Report struct {
	Ingredients []entry.Ingredient
	Failures    []*MalformedTagError
}

// OK reports whether every record decoded
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Err joins the failures, or nil
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Decoder restores ingredients against a type registry
type Decoder struct {
	registry *entry.Registry
	logger   *slog.Logger
}

// NewDecoder creates a decoder; a nil logger disables failure logging
func NewDecoder(registry *entry.Registry, logger *slog.Logger) *Decoder {
	return &Decoder{registry: registry, logger: logger}
}

// Read decodes records produced by Save
func (d *Decoder) Read(list List) Report {
	report := Report{Ingredients: make([]entry.Ingredient, 0, len(list))}
	for i, records := range list {
		report.Ingredients = append(report.Ingredients, d.readIngredient(&report, i, records))
	}
	return report
}

// Unmarshal decodes an NBT document. The error is reserved for a document
// whose root cannot be read; record failures land in the report.
func (d *Decoder) Unmarshal(data []byte) (Report, error) {
	var doc rawDocument
	if err := nbt.Unmarshal(data, &doc); err != nil {
		return Report{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Version > Version {
		return Report{}, fmt.Errorf("unsupported document version %d", doc.Version)
	}

	return d.ReadRaw(doc.Ingredients), nil
}

// UnmarshalList decodes a bare list tag of ingredient lists, as written by
// MarshalBare, with the same per-record isolation as Unmarshal.
func (d *Decoder) UnmarshalList(data []byte) (Report, error) {
	var root nbt.RawMessage
	if err := nbt.Unmarshal(data, &root); err != nil {
		return Report{}, fmt.Errorf("decode list: %w", err)
	}
	var elems []nbt.RawMessage
	if err := listOf(root, &elems); err != nil {
		return Report{}, fmt.Errorf("decode list: %w", err)
	}
	return d.ReadRaw(elems), nil
}

// ReadRaw decodes undecoded ingredient elements. An element that is not a
// list becomes an empty ingredient; a bad record costs only its own stack.
func (d *Decoder) ReadRaw(elems []nbt.RawMessage) Report {
	report := Report{Ingredients: make([]entry.Ingredient, 0, len(elems))}
	for i, raw := range elems {
		var stacks []nbt.RawMessage
		if err := listOf(raw, &stacks); err != nil {
			d.fail(&report, &MalformedTagError{Ingredient: i, Stack: -1, Err: err})
			report.Ingredients = append(report.Ingredients, entry.EmptyIngredient())
			continue
		}

		records := make([]Record, len(stacks))
		valid := make([]bool, len(stacks))
		for j, elem := range stacks {
			if elem.Type != nbt.TagCompound {
				d.fail(&report, &MalformedTagError{Ingredient: i, Stack: j, Err: fmt.Errorf("expected compound, got tag type %d", elem.Type)})
				continue
			}
			if err := elem.Unmarshal(&records[j]); err != nil {
				d.fail(&report, &MalformedTagError{Ingredient: i, Stack: j, Err: err})
				continue
			}
			valid[j] = true
		}

		b := entry.NewBuilder(len(records))
		for j, rec := range records {
			if !valid[j] {
				continue
			}
			if s := d.readStack(&report, i, j, rec); s != nil {
				b.Add(s)
			}
		}
		report.Ingredients = append(report.Ingredients, b.Build())
	}
	return report
}

func (d *Decoder) readIngredient(report *Report, i int, records []Record) entry.Ingredient {
	b := entry.NewBuilder(len(records))
	for j, rec := range records {
		if s := d.readStack(report, i, j, rec); s != nil {
			b.Add(s)
		}
	}
	return b.Build()
}

func (d *Decoder) readStack(report *Report, i, j int, rec Record) *entry.Stack {
	malformed := func(err error) *entry.Stack {
		d.fail(report, &MalformedTagError{Ingredient: i, Stack: j, Type: rec.Type, Err: err})
		return nil
	}

	t, err := domain.ParseIdentifier(rec.Type)
	if err != nil {
		return malformed(fmt.Errorf("type: %w", err))
	}
	kind, err := d.registry.Lookup(t)
	if err != nil {
		return malformed(err)
	}
	value, err := kind.Deserialize(rec.Value)
	if err != nil {
		return malformed(err)
	}

	s := entry.NewStack(kind, value)
	if rec.AmountDen != 0 {
		amount, err := domain.NewFraction(rec.Amount, rec.AmountDen)
		if err != nil {
			return malformed(err)
		}
		if !amount.Equal(s.Amount()) {
			return malformed(fmt.Errorf("record amount %s disagrees with payload amount %s", amount, s.Amount()))
		}
	}
	return s
}

func (d *Decoder) fail(report *Report, err *MalformedTagError) {
	report.Failures = append(report.Failures, err)
	if d.logger != nil {
		d.logger.Warn("skipping malformed record",
			"ingredient", err.Ingredient,
			"stack", err.Stack,
			"type", err.Type,
			"error", err.Err,
		)
	}
}

func listOf(raw nbt.RawMessage, v *[]nbt.RawMessage) error {
	if raw.Type != nbt.TagList {
		return fmt.Errorf("expected list, got tag type %d", raw.Type)
	}
	return raw.Unmarshal(v)
}
