// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import "net"

// Pipe constructs a connected pair of in-memory connections. Frames written
// to A are received by B and vice versa. The pair uses synchronous,
// unbuffered transport (see [net.Pipe]): a write does not complete until
// the peer has consumed it, so each endpoint generally needs its own
// goroutine. Pipe pairs are intended for testing and local wiring.
func Pipe() (A, B *Conn) {
	a, b := net.Pipe()
	return New(a), New(b)
}
