// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package codec

import "encoding/json"

// JSON encodes values with the encoding/json package. It is the default
// codec for a connection: self-describing, debuggable on the wire, and
// able to carry any value with a JSON mapping.
type JSON struct{}

// Encode implements a method of the [Codec] interface.
func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// Decode implements a method of the [Codec] interface.
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name implements a method of the [Codec] interface.
func (JSON) Name() string { return "json" }
