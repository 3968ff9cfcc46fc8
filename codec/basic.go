// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package codec

import (
	"bytes"
	"encoding"
	"fmt"
)

// Basic carries byte slices and strings verbatim, and values that implement
// the standard library encoding interfaces.
//
// Values passed to Encode may be []byte or string (or a pointer to these),
// or must implement either [encoding.BinaryMarshaler] or
// [encoding.TextMarshaler]. If a value implements both, BinaryMarshaler is
// preferred. As a special case, a nil pointer to a string or []byte encodes
// as an empty payload without error.
//
// Targets passed to Decode must be a *[]byte or *string, or must implement
// either [encoding.BinaryUnmarshaler] or [encoding.TextUnmarshaler].
type Basic struct{}

// Encode implements a method of the [Codec] interface.
func (Basic) Encode(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case *[]byte:
		if t == nil {
			return nil, nil
		}
		return *t, nil
	case string:
		return []byte(t), nil
	case *string:
		if t == nil {
			return nil, nil
		}
		return []byte(*t), nil
	case encoding.BinaryMarshaler:
		return t.MarshalBinary()
	case encoding.TextMarshaler:
		return t.MarshalText()
	default:
		return nil, fmt.Errorf("cannot encode %T", v)
	}
}

// Decode implements a method of the [Codec] interface. Byte slice targets
// receive a copy of the payload, so they remain valid after the
// connection's scratch buffer is reused.
func (Basic) Decode(data []byte, v any) error {
	switch t := v.(type) {
	case *[]byte:
		*t = bytes.Clone(data)
	case *string:
		*t = string(data)
	case encoding.BinaryUnmarshaler:
		return t.UnmarshalBinary(data)
	case encoding.TextUnmarshaler:
		return t.UnmarshalText(data)
	default:
		return fmt.Errorf("cannot decode into %T", v)
	}
	return nil
}

// Name implements a method of the [Codec] interface.
func (Basic) Name() string { return "basic" }
