package serde

import "fmt"

// Chain joins two serdes sharing the Mid type into a single Src ↔ Dst serde.
//
// Serialization runs first then second; deserialization runs them backwards.
// Errors name the failing stage.
func Chain[Src any, Mid any, Dst any](first Serde[Src, Mid], second Serde[Mid, Dst]) Fused[Src, Dst] {
	serialize := func(src Src) (Dst, error) {
		var zeroValue Dst

		mid, err := first.Serialize(src)
		if err != nil {
			return zeroValue, fmt.Errorf("serde.Chain: first stage serializer failed, %w", err)
		}

		dst, err := second.Serialize(mid)
		if err != nil {
			return zeroValue, fmt.Errorf("serde.Chain: second stage serializer failed, %w", err)
		}

		return dst, nil
	}

	deserialize := func(dst Dst) (Src, error) {
		var zeroValue Src

		mid, err := second.Deserialize(dst)
		if err != nil {
			return zeroValue, fmt.Errorf("serde.Chain: second stage deserializer failed, %w", err)
		}

		src, err := first.Deserialize(mid)
		if err != nil {
			return zeroValue, fmt.Errorf("serde.Chain: first stage deserializer failed, %w", err)
		}

		return src, nil
	}

	return Fuse[Src, Dst](AsSerializerFunc(serialize), AsDeserializerFunc(deserialize))
}
