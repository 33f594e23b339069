package serde

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// NewStruct returns a serde that maps a generic key-value map into a
// Protobuf Struct. Deserialized numbers are float64.
func NewStruct() Fused[map[string]any, *structpb.Struct] {
	serialize := func(m map[string]any) (*structpb.Struct, error) {
		s, err := structpb.NewStruct(m)
		if err != nil {
			return nil, fmt.Errorf("serde.Struct: failed to serialize data, %w", err)
		}

		return s, nil
	}

	deserialize := func(s *structpb.Struct) map[string]any {
		return s.AsMap()
	}

	return Fuse[map[string]any, *structpb.Struct](
		AsSerializerFunc(serialize),
		AsInfallibleDeserializerFunc(deserialize),
	)
}

// NewArgumentsProtoJSON returns a serde for recorded call arguments that
// goes through a Protobuf Struct and its JSON encoding.
func NewArgumentsProtoJSON() Fused[map[string]any, []byte] {
	return Chain[map[string]any, *structpb.Struct, []byte](
		NewStruct(),
		NewProtoJSON(func() *structpb.Struct { return new(structpb.Struct) }),
	)
}
