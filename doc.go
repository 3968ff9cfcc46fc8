// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

// Package connection implements a point-to-point message channel over a
// reliable ordered byte stream, such as an established TCP socket.
//
// Two endpoints exchange discrete typed values without hand-rolling framing,
// buffering, or partial-read handling. Each value is carried in a single
// frame, consisting of a big-endian unsigned length prefix followed by
// exactly that many payload bytes. Frames are strictly ordered: the N-th
// frame written is the N-th frame read.
//
// # Connections
//
// The core type defined by this package is the [Conn]. To connect to a
// remote endpoint:
//
//	conn, err := connection.Dial(ctx, "localhost:8080")
//	if err != nil {
//	   log.Fatalf("Dial: %v", err)
//	}
//	defer conn.Close()
//
// To wrap a stream that is already established, for example one handed over
// by an accept loop, use [New]:
//
//	conn := connection.New(nc)
//
// New performs no I/O. The frame size limit, length prefix width, codec, and
// buffer capacity can be adjusted before the connection is first used:
//
//	conn := connection.New(nc).MaxFrameSize(1 << 20).PrefixSize(2)
//
// # Typed messages
//
// The [Write] and [Read] functions exchange typed values through the
// connection's codec (JSON by default; see the codec package for others):
//
//	type Message struct {
//	   ID   int    `json:"id"`
//	   Data string `json:"data"`
//	}
//
//	err := connection.Write(conn, Message{ID: 1, Data: "Hello, world!"})
//	...
//	msg, err := connection.Read[Message](conn)
//
// A clean end-of-stream at a frame boundary reports [io.EOF]; this is the
// "no more messages" signal, not a failure. A stream that ends in the middle
// of a frame reports an error satisfying errors.Is(err, [ErrTruncated]).
//
// Payload bytes are read in full before decoding begins, so a decode failure
// never loses the frame boundary: the next Read still starts at the next
// frame.
//
// # Raw frames
//
// [Conn.WriteFrame] and [Conn.ReadFrame] exchange raw payloads without
// involving the codec, for callers that manage their own encoding.
//
// # Concurrency
//
// A Conn is designed for single-owner sequential use, but its two directions
// are independent. A caller that wants one goroutine sending while another
// receives should call [Conn.Split] and give each half to its own goroutine:
//
//	rh, wh := conn.Split()
//
// The underlying stream is released once both halves are closed.
//
// # Metrics
//
// Connections maintain a collection of shared metrics while running. Use
// [Metrics] to obtain an [expvar.Map] containing the exported counters.
package connection
