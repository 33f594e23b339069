// Package serde contains the serialization building blocks used by the
// durable history stores to map recorded call arguments to and from their
// storage representation.
package serde

// Serializer maps a Src value into its Dst representation.
type Serializer[Src any, Dst any] interface {
	Serialize(src Src) (Dst, error)
}

// SerializerFunc is a functional implementation of the Serializer interface.
type SerializerFunc[Src any, Dst any] func(src Src) (Dst, error)

// Serialize implements the serde.Serializer interface.
func (fn SerializerFunc[Src, Dst]) Serialize(src Src) (Dst, error) { return fn(src) }

// AsSerializerFunc casts the given function into a SerializerFunc.
func AsSerializerFunc[Src, Dst any](f func(src Src) (Dst, error)) SerializerFunc[Src, Dst] {
	return SerializerFunc[Src, Dst](f)
}

// Deserializer maps a Dst representation back into a Src value.
type Deserializer[Src any, Dst any] interface {
	Deserialize(dst Dst) (Src, error)
}

// DeserializerFunc is a functional implementation of the Deserializer interface.
type DeserializerFunc[Src any, Dst any] func(dst Dst) (Src, error)

// Deserialize implements the serde.Deserializer interface.
func (fn DeserializerFunc[Src, Dst]) Deserialize(dst Dst) (Src, error) { return fn(dst) }

// AsDeserializerFunc casts the given function into a DeserializerFunc.
func AsDeserializerFunc[Src, Dst any](f func(dst Dst) (Src, error)) DeserializerFunc[Src, Dst] {
	return DeserializerFunc[Src, Dst](f)
}

// AsInfallibleDeserializerFunc casts a deserialization function that cannot
// fail into a DeserializerFunc.
func AsInfallibleDeserializerFunc[Src, Dst any](f func(dst Dst) Src) DeserializerFunc[Src, Dst] {
	return func(dst Dst) (Src, error) {
		return f(dst), nil
	}
}

// Serde can both serialize and deserialize between Src and Dst.
type Serde[Src any, Dst any] interface {
	Serializer[Src, Dst]
	Deserializer[Src, Dst]
}

// Fused joins a Serializer and a Deserializer with compatible types
// into a single Serde.
type Fused[Src any, Dst any] struct {
	Serializer[Src, Dst]
	Deserializer[Src, Dst]
}

// Fuse returns a Fused serde out of the given halves.
func Fuse[Src, Dst any](serializer Serializer[Src, Dst], deserializer Deserializer[Src, Dst]) Fused[Src, Dst] {
	return Fused[Src, Dst]{
		Serializer:   serializer,
		Deserializer: deserializer,
	}
}
