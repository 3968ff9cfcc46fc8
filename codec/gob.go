// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob encodes values with the encoding/gob package. Each payload is a
// self-contained gob stream including type information, so values decode
// correctly regardless of which frames preceded them.
type Gob struct{}

// Encode implements a method of the [Codec] interface.
func (Gob) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode implements a method of the [Codec] interface.
func (Gob) Decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Name implements a method of the [Codec] interface.
func (Gob) Name() string { return "gob" }
