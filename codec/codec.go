// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

// Package codec defines the pluggable encoding capability used to convert
// typed values to and from frame payloads.
//
// The connection package does not constrain the shape of the values it
// carries, only that the connection's codec can encode and decode them. The
// implementations provided here are [JSON] (the default), [Gob], [Basic],
// and the [Compressed] wrapper; callers with their own wire format can
// supply any value satisfying the [Codec] interface.
package codec

// A Codec converts between typed values and raw payload bytes. Encode and
// Decode must round-trip: decoding the encoding of a value into a pointer
// to the same type recovers an equal value.
//
// Decode operates on an in-memory payload that has already been fully
// removed from the stream, so a codec never observes, and can never
// corrupt, frame boundaries. The data slice passed to Decode is only valid
// for the duration of the call; implementations that retain payload bytes
// in the decoded value must copy them.
type Codec interface {
	// Encode converts v to payload bytes.
	Encode(v any) ([]byte, error)

	// Decode parses data into v, which must be a non-nil pointer.
	Decode(data []byte, v any) error

	// Name reports a short label for the codec, for diagnostics.
	Name() string
}
