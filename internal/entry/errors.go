package entry

import "fmt"

// UnknownTypeError reports a lookup of a type nobody registered
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entry type %s", e.Type)
}

// DuplicateTypeError reports a second registration for one type
type DuplicateTypeError struct {
	Type Type
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("entry type %s already registered", e.Type)
}

// InvalidValueError reports a value the definition cannot represent
type InvalidValueError struct {
	Type   Type
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s value: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid %s value %T: %s", e.Type, e.Value, e.Reason)
}
