// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import (
	"encoding/binary"
	"fmt"
	"math"
)

// putPrefix encodes n into buf in big-endian order. The width of the prefix
// is len(buf), which must be 1, 2, 4, or 8. The caller is responsible for
// checking that n is representable in that width.
func putPrefix(buf []byte, n uint64) {
	switch len(buf) {
	case 1:
		buf[0] = byte(n)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(n))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(n))
	case 8:
		binary.BigEndian.PutUint64(buf, n)
	default:
		panic(fmt.Sprintf("invalid prefix size %d", len(buf)))
	}
}

// getPrefix decodes a big-endian length prefix of width len(buf).
func getPrefix(buf []byte) uint64 {
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(buf))
	case 4:
		return uint64(binary.BigEndian.Uint32(buf))
	case 8:
		return binary.BigEndian.Uint64(buf)
	default:
		panic(fmt.Sprintf("invalid prefix size %d", len(buf)))
	}
}

// maxPrefixValue reports the largest payload length representable in a
// prefix of the specified width.
func maxPrefixValue(psize int) uint64 {
	if psize >= 8 {
		return math.MaxUint64
	}
	return 1<<(8*psize) - 1
}

// isValidPrefixSize reports whether n is a supported prefix width.
func isValidPrefixSize(n int) bool { return n == 1 || n == 2 || n == 4 || n == 8 }

// A FrameLogger logs a frame exchanged with the remote endpoint.
type FrameLogger func(f FrameInfo)

// A FrameInfo describes a frame for logging purposes.
type FrameInfo struct {
	Size int  // payload size in bytes
	Sent bool // whether the frame was sent (true) or received (false)
}

func (f FrameInfo) dir() string {
	if f.Sent {
		return "send"
	}
	return "recv"
}

func (f FrameInfo) String() string {
	return fmt.Sprintf("%s frame (%d bytes)", f.dir(), f.Size)
}
