package codec

import "fmt"

// MalformedTagError describes one record that could not be decoded. Stack
// is -1 when the ingredient element itself was malformed.
type MalformedTagError struct {
	Ingredient int
	Stack      int
	Type       string
	Err        error
}

func (e *MalformedTagError) Error() string {
	if e.Stack < 0 {
		return fmt.Sprintf("malformed ingredient %d: %v", e.Ingredient, e.Err)
	}
	if e.Type == "" {
		return fmt.Sprintf("malformed stack %d of ingredient %d: %v", e.Stack, e.Ingredient, e.Err)
	}
	return fmt.Sprintf("malformed %s stack %d of ingredient %d: %v", e.Type, e.Stack, e.Ingredient, e.Err)
}

func (e *MalformedTagError) Unwrap() error { return e.Err }
