package serde

import (
	"encoding/json"
	"fmt"
)

// NewJSON returns a serde that maps T to and from JSON-encoded bytes.
//
// The factory is used to allocate the destination value on deserialization,
// which matters when T has pointer or map semantics.
func NewJSON[T any](factory func() T) Fused[T, []byte] {
	serialize := func(t T) ([]byte, error) {
		data, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("serde.JSON: failed to serialize data, %w", err)
		}

		return data, nil
	}

	deserialize := func(data []byte) (T, error) {
		var zeroValue T

		model := factory()
		if err := json.Unmarshal(data, &model); err != nil {
			return zeroValue, fmt.Errorf("serde.JSON: failed to deserialize data, %w", err)
		}

		return model, nil
	}

	return Fuse[T, []byte](AsSerializerFunc(serialize), AsDeserializerFunc(deserialize))
}

// NewArgumentsJSON returns a JSON serde for recorded call arguments.
// Numbers are decoded as float64.
func NewArgumentsJSON() Fused[map[string]any, []byte] {
	return NewJSON(func() map[string]any { return make(map[string]any) })
}
