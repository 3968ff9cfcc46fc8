// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/wcygan/connection/codec"
)

// Defaults for the construction-time parameters of a [Conn]. The prefix
// width is part of the wire protocol and must match on both endpoints; the
// frame size limit and buffer capacity are local.
const (
	DefaultMaxFrameSize = 4 << 20 // 4 MiB
	DefaultPrefixSize   = 4
	DefaultBufferSize   = 4 * 1024
)

// A Conn is a framed message connection over a reliable ordered byte
// stream. It owns the stream exclusively: no other component may read from
// or write to it while the Conn is in use.
//
// A Conn is designed for single-owner sequential use. Its send and receive
// directions are independent; use [Conn.Split] to hand each direction to its
// own goroutine.
//
// If a read or write is abandoned partway through (for example the calling
// goroutine is torn down mid-operation), the stream may hold a partial
// frame and the Conn must not be reused; drop it and establish a new one.
type Conn struct {
	stream io.ReadWriteCloser

	codec   codec.Codec
	maxSize int
	psize   int
	logf    FrameLogger

	rd struct {
		sync.Mutex
		br  *bufio.Reader
		pfx [8]byte
		buf []byte // scratch payload buffer, reused across reads
		err error  // sticky; set when the stream is no longer frame-aligned
	}
	wr struct {
		sync.Mutex
		bw  *bufio.Writer
		pfx [8]byte
	}
	cl struct {
		sync.Mutex
		rdDone, wrDone bool // set when the corresponding half is closed
	}
}

// New wraps an already-open duplex stream in a Conn. It performs no I/O and
// cannot fail. The connection uses the default frame size limit, prefix
// width, buffer capacity, and the JSON codec; see the corresponding setter
// methods to adjust them before first use.
func New(rwc io.ReadWriteCloser) *Conn {
	c := &Conn{
		stream:  rwc,
		codec:   codec.JSON{},
		maxSize: DefaultMaxFrameSize,
		psize:   DefaultPrefixSize,
	}
	c.rd.br = bufio.NewReaderSize(rwc, DefaultBufferSize)
	c.wr.bw = bufio.NewWriterSize(rwc, DefaultBufferSize)
	return c
}

// MaxFrameSize sets the maximum payload size in bytes the connection will
// send or accept. A received frame declaring a larger length is rejected
// before any allocation takes place. It returns c to permit chaining, and
// must be called before the connection is first used. It panics if n <= 0.
func (c *Conn) MaxFrameSize(n int) *Conn {
	if n <= 0 {
		panic(fmt.Sprintf("invalid frame size limit %d", n))
	}
	c.maxSize = n
	return c
}

// PrefixSize sets the width in bytes of the length prefix: 1, 2, 4, or 8
// (any other value panics). Both endpoints must use the same width. It
// returns c to permit chaining, and must be called before the connection is
// first used.
func (c *Conn) PrefixSize(n int) *Conn {
	if !isValidPrefixSize(n) {
		panic(fmt.Sprintf("invalid prefix size %d", n))
	}
	c.psize = n
	return c
}

// UseCodec sets the codec used by [Read] and [Write] for this connection.
// Passing nil restores the default JSON codec. It returns c to permit
// chaining, and must be called before the connection is first used.
func (c *Conn) UseCodec(cd codec.Codec) *Conn {
	if cd == nil {
		cd = codec.JSON{}
	}
	c.codec = cd
	return c
}

// BufferSize sets the initial capacity in bytes of the read and write
// buffers. It returns c to permit chaining, and must be called before the
// connection is first used. It panics if n <= 0.
func (c *Conn) BufferSize(n int) *Conn {
	if n <= 0 {
		panic(fmt.Sprintf("invalid buffer size %d", n))
	}
	c.rd.br = bufio.NewReaderSize(c.stream, n)
	c.wr.bw = bufio.NewWriterSize(c.stream, n)
	return c
}

// LogFrames registers a callback that will be invoked for each frame
// exchanged with the remote endpoint. Passing a nil callback disables frame
// logging. It returns c to permit chaining, and must be called before the
// connection is first used.
func (c *Conn) LogFrames(log FrameLogger) *Conn {
	c.logf = log
	return c
}

// Codec reports the codec in use by c.
func (c *Conn) Codec() codec.Codec { return c.codec }

// Close closes the underlying stream. Pending reads and writes are
// interrupted and report an error.
func (c *Conn) Close() error { return c.stream.Close() }

// WriteFrame sends a single frame carrying payload. The length prefix and
// payload are written together and flushed, so a successful return means
// the whole frame has been handed to the stream; a frame is never left
// half-sent between calls.
//
// If the payload exceeds the frame size limit, or does not fit the length
// prefix width, WriteFrame reports [ErrFrameTooLarge] before any bytes are
// sent, and the connection remains usable.
func (c *Conn) WriteFrame(payload []byte) error {
	if err := c.checkFrameSize(len(payload)); err != nil {
		return err
	}

	c.wr.Lock()
	defer c.wr.Unlock()

	pfx := c.wr.pfx[:c.psize]
	putPrefix(pfx, uint64(len(payload)))
	if _, err := c.wr.bw.Write(pfx); err != nil {
		return err
	}
	if len(payload) != 0 {
		if _, err := c.wr.bw.Write(payload); err != nil {
			return err
		}
	}
	if err := c.wr.bw.Flush(); err != nil {
		return err
	}

	rootMetrics.framesSent.Add(1)
	rootMetrics.bytesSent.Add(int64(c.psize + len(payload)))
	if c.logf != nil {
		c.logf(FrameInfo{Size: len(payload), Sent: true})
	}
	return nil
}

// checkFrameSize reports whether a payload of n bytes may be sent.
func (c *Conn) checkFrameSize(n int) error {
	if n > c.maxSize {
		rootMetrics.oversize.Add(1)
		return fmt.Errorf("frame size %d exceeds limit %d: %w", n, c.maxSize, ErrFrameTooLarge)
	}
	if uint64(n) > maxPrefixValue(c.psize) {
		rootMetrics.oversize.Add(1)
		return fmt.Errorf("frame size %d does not fit a %d-byte prefix: %w", n, c.psize, ErrFrameTooLarge)
	}
	return nil
}

// ReadFrame receives the next frame and returns its payload. The returned
// slice aliases a scratch buffer owned by c, and is only valid until the
// next call to ReadFrame; callers that retain the payload must copy it.
//
// A clean end-of-stream at a frame boundary reports [io.EOF]. An
// end-of-stream inside a frame reports an error satisfying
// errors.Is(err, [ErrTruncated]). A frame declaring a length over the size
// limit reports [ErrFrameTooLarge] without allocating for the payload;
// since the unread payload cannot be safely skipped, the connection is then
// desynchronized and all further reads fail.
func (c *Conn) ReadFrame() ([]byte, error) {
	c.rd.Lock()
	defer c.rd.Unlock()
	if c.rd.err != nil {
		return nil, c.rd.err
	}

	pfx := c.rd.pfx[:c.psize]
	if n, err := io.ReadFull(c.rd.br, pfx); err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, io.EOF // no more messages
		}
		return nil, c.failReadLocked(fmt.Errorf("short frame prefix (%d of %d bytes): %w", n, c.psize, truncated(err)))
	}

	size := getPrefix(pfx)
	if size > uint64(c.maxSize) {
		rootMetrics.oversize.Add(1)
		return nil, c.failReadLocked(fmt.Errorf("frame size %d exceeds limit %d: %w", size, c.maxSize, ErrFrameTooLarge))
	}

	if uint64(cap(c.rd.buf)) < size {
		c.rd.buf = make([]byte, size)
	}
	data := c.rd.buf[:size]
	if n, err := io.ReadFull(c.rd.br, data); err != nil {
		return nil, c.failReadLocked(fmt.Errorf("short frame payload (%d of %d bytes): %w", n, size, truncated(err)))
	}

	rootMetrics.framesRecv.Add(1)
	rootMetrics.bytesRecv.Add(int64(c.psize) + int64(size))
	if c.logf != nil {
		c.logf(FrameInfo{Size: len(data)})
	}
	return data, nil
}

// failReadLocked records err as the sticky read failure and returns it.
// The caller must hold c.rd.
func (c *Conn) failReadLocked(err error) error {
	c.rd.err = err
	return err
}

// truncated maps an end-of-stream condition inside a frame to ErrTruncated.
// Other stream failures are passed through unmodified.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		rootMetrics.truncated.Add(1)
		return ErrTruncated
	}
	return err
}

// A FrameWriter is the sending surface of a connection, implemented by
// [*Conn] and [*WriteHalf].
type FrameWriter interface {
	// WriteFrame sends a single frame carrying the given payload.
	WriteFrame(payload []byte) error

	// Codec reports the codec used to encode typed messages.
	Codec() codec.Codec
}

// A FrameReader is the receiving surface of a connection, implemented by
// [*Conn] and [*ReadHalf].
type FrameReader interface {
	// ReadFrame receives the next frame and returns its payload.
	ReadFrame() ([]byte, error)

	// Codec reports the codec used to decode typed messages.
	Codec() codec.Codec
}

// Write encodes v with the connection's codec and sends it as a single
// frame. An encoding failure is reported as a [*CodecError] and performs no
// I/O.
func Write[T any](w FrameWriter, v T) error {
	data, err := w.Codec().Encode(v)
	if err != nil {
		rootMetrics.encodeErr.Add(1)
		return &CodecError{Op: "encode", Err: err}
	}
	return w.WriteFrame(data)
}

// Read receives the next frame and decodes its payload as a T. A clean
// end-of-stream reports [io.EOF]; see [Conn.ReadFrame] for the other
// failure modes.
//
// A decoding failure is reported as a [*CodecError]. The payload was
// consumed in full before decoding, so the connection remains frame-aligned
// and the next Read starts at the next frame.
func Read[T any](r FrameReader) (T, error) {
	var v T
	data, err := r.ReadFrame()
	if err != nil {
		return v, err
	}
	if err := r.Codec().Decode(data, &v); err != nil {
		rootMetrics.decodeErr.Add(1)
		return v, &CodecError{Op: "decode", Err: err}
	}
	return v, nil
}
