package entry

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
)

// Payload encodes v as a standalone NBT value suitable for a stack record
func Payload(v any) (nbt.RawMessage, error) {
	data, err := nbt.Marshal(v)
	if err != nil {
		return nbt.RawMessage{}, fmt.Errorf("marshal payload: %w", err)
	}
	var raw nbt.RawMessage
	if err := nbt.Unmarshal(data, &raw); err != nil {
		return nbt.RawMessage{}, fmt.Errorf("capture payload: %w", err)
	}
	return raw, nil
}

// DecodeCompound decodes a compound payload into v
func DecodeCompound(raw nbt.RawMessage, v any) error {
	if raw.Type != nbt.TagCompound {
		return fmt.Errorf("expected compound payload, got tag type %d", raw.Type)
	}
	if err := raw.Unmarshal(v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
