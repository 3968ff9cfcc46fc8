// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import "expvar"

// connMetrics record connection activity counters.
type connMetrics struct {
	framesRecv expvar.Int
	framesSent expvar.Int
	bytesRecv  expvar.Int // includes length prefixes
	bytesSent  expvar.Int // includes length prefixes
	oversize   expvar.Int // frames rejected by the size limit
	truncated  expvar.Int // reads that ended mid-frame
	encodeErr  expvar.Int
	decodeErr  expvar.Int

	emap *expvar.Map
}

var rootMetrics = newConnMetrics()

func newConnMetrics() *connMetrics {
	m := &connMetrics{emap: new(expvar.Map)}
	m.emap.Set("frames_received", &m.framesRecv)
	m.emap.Set("frames_sent", &m.framesSent)
	m.emap.Set("bytes_received", &m.bytesRecv)
	m.emap.Set("bytes_sent", &m.bytesSent)
	m.emap.Set("frames_oversize", &m.oversize)
	m.emap.Set("frames_truncated", &m.truncated)
	m.emap.Set("encode_errors", &m.encodeErr)
	m.emap.Set("decode_errors", &m.decodeErr)
	return m
}

// Metrics returns the metrics map shared by all connections in the process.
// It is safe for the caller to modify the map to add, update, and remove
// entries.
func Metrics() *expvar.Map { return rootMetrics.emap }
