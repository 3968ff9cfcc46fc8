// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package codec

import (
	"fmt"

	"github.com/golang/snappy"
)

// Compressed wraps c so that encoded payloads are snappy-compressed on the
// wire. Both endpoints must agree to use the wrapper; a compressed payload
// is not intelligible to a peer running the bare codec.
func Compressed(c Codec) Codec { return compressed{base: c} }

type compressed struct{ base Codec }

// Encode implements a method of the [Codec] interface.
func (c compressed) Encode(v any) ([]byte, error) {
	data, err := c.base.Encode(v)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

// Decode implements a method of the [Codec] interface.
func (c compressed) Decode(data []byte, v any) error {
	plain, err := snappy.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("decompress payload: %w", err)
	}
	return c.base.Decode(plain, v)
}

// Name implements a method of the [Codec] interface.
func (c compressed) Name() string { return c.base.Name() + "+snappy" }
