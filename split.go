// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import "github.com/wcygan/connection/codec"

// Split separates c into a read half and a write half, each intended to be
// owned exclusively by one goroutine. The two halves share the underlying
// stream but never coordinate beyond what the stream itself guarantees: a
// socket's read and write directions are independent.
//
// After Split, the Conn itself should no longer be used directly. The
// underlying stream is closed once both halves have been closed; closing a
// single half performs a directional shutdown when the stream supports it
// (as [net.TCPConn] does), so the peer observes end-of-stream promptly.
func (c *Conn) Split() (*ReadHalf, *WriteHalf) {
	return &ReadHalf{c: c}, &WriteHalf{c: c}
}

// A ReadHalf is the receiving direction of a split [Conn]. It is designed
// for use by a single goroutine.
type ReadHalf struct{ c *Conn }

// ReadFrame receives the next frame; it behaves as [Conn.ReadFrame].
func (h *ReadHalf) ReadFrame() ([]byte, error) { return h.c.ReadFrame() }

// Codec reports the codec in use by the connection.
func (h *ReadHalf) Codec() codec.Codec { return h.c.codec }

// Close closes the read direction. The underlying stream is closed once
// both halves are closed. Close is idempotent.
func (h *ReadHalf) Close() error { return h.c.closeSide(true) }

// A WriteHalf is the sending direction of a split [Conn]. It is designed
// for use by a single goroutine.
type WriteHalf struct{ c *Conn }

// WriteFrame sends a single frame; it behaves as [Conn.WriteFrame].
func (h *WriteHalf) WriteFrame(payload []byte) error { return h.c.WriteFrame(payload) }

// Codec reports the codec in use by the connection.
func (h *WriteHalf) Codec() codec.Codec { return h.c.codec }

// Close closes the write direction, signalling end-of-stream to the peer.
// The underlying stream is closed once both halves are closed. Close is
// idempotent.
func (h *WriteHalf) Close() error { return h.c.closeSide(false) }

// closeSide marks one direction of c closed, shutting the stream down in
// that direction if it supports it, and fully once both sides are done.
func (c *Conn) closeSide(read bool) error {
	c.cl.Lock()
	defer c.cl.Unlock()

	done := &c.cl.wrDone
	if read {
		done = &c.cl.rdDone
	}
	if *done {
		return nil
	}
	*done = true

	if c.cl.rdDone && c.cl.wrDone {
		return c.stream.Close()
	}
	if read {
		if hc, ok := c.stream.(interface{ CloseRead() error }); ok {
			return hc.CloseRead()
		}
	} else {
		if hc, ok := c.stream.(interface{ CloseWrite() error }); ok {
			return hc.CloseWrite()
		}
	}
	return nil
}
