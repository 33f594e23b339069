package serde

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// NewProtoJSON returns a serde that maps a Protobuf message to and from
// its canonical JSON encoding.
func NewProtoJSON[T proto.Message](factory func() T) Fused[T, []byte] {
	serialize := func(t T) ([]byte, error) {
		data, err := protojson.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("serde.ProtoJSON: failed to serialize data, %w", err)
		}

		return data, nil
	}

	deserialize := func(data []byte) (T, error) {
		var zeroValue T

		model := factory()
		if err := protojson.Unmarshal(data, model); err != nil {
			return zeroValue, fmt.Errorf("serde.ProtoJSON: failed to deserialize data, %w", err)
		}

		return model, nil
	}

	return Fuse[T, []byte](AsSerializerFunc(serialize), AsDeserializerFunc(deserialize))
}
