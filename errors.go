// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import "errors"

// ErrFrameTooLarge is reported when a frame's payload length exceeds the
// connection's configured limit, or cannot be represented in its length
// prefix width.
//
// On write, the error is reported before any bytes touch the stream and the
// connection remains usable. On read, the oversized declared length means
// the stream position is no longer frame-aligned; the connection is treated
// as desynchronized and all further reads fail.
var ErrFrameTooLarge = errors.New("frame size exceeds limit")

// ErrTruncated is reported when the stream ends partway through a frame,
// meaning the remote endpoint disconnected mid-message. It is distinct from
// a clean end-of-stream, which is reported as [io.EOF] only at a frame
// boundary.
var ErrTruncated = errors.New("truncated frame")

// A CodecError is the concrete type of errors reported by the [Read] and
// [Write] functions for encoding and decoding failures. A decode failure
// does not desynchronize the connection: the offending payload was consumed
// in full, and the next read starts at the next frame.
type CodecError struct {
	Op  string // "encode" or "decode"
	Err error  // the underlying codec error
}

// Error satisfies the error interface.
func (c *CodecError) Error() string { return c.Op + " message: " + c.Err.Error() }

// Unwrap reports the underlying codec error.
func (c *CodecError) Unwrap() error { return c.Err }
