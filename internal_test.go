// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import (
	"math"
	"testing"
)

func TestPrefixRoundTrip(t *testing.T) {
	tests := []struct {
		psize int
		value uint64
	}{
		{1, 0}, {1, 1}, {1, 255},
		{2, 0}, {2, 256}, {2, 65535},
		{4, 0}, {4, 65536}, {4, math.MaxUint32},
		{8, 0}, {8, 1 << 40}, {8, math.MaxUint64},
	}
	for _, tc := range tests {
		buf := make([]byte, tc.psize)
		putPrefix(buf, tc.value)
		if got := getPrefix(buf); got != tc.value {
			t.Errorf("prefix width %d: got %d, want %d", tc.psize, got, tc.value)
		}
	}
}

func TestMaxPrefixValue(t *testing.T) {
	tests := []struct {
		psize int
		want  uint64
	}{
		{1, 255},
		{2, 65535},
		{4, math.MaxUint32},
		{8, math.MaxUint64},
	}
	for _, tc := range tests {
		if got := maxPrefixValue(tc.psize); got != tc.want {
			t.Errorf("maxPrefixValue(%d): got %d, want %d", tc.psize, got, tc.want)
		}
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		input, network, address string
	}{
		{"", "unix", ""},
		{"no-port", "unix", "no-port"},
		{"/var/run/app.sock", "unix", "/var/run/app.sock"},
		{"host:", "unix", "host:"},
		{"host:two words", "unix", "host:two words"},
		{"dir/sub:8080", "unix", "dir/sub:8080"},
		{"host:8080", "tcp", "host:8080"},
		{":8080", "tcp", ":8080"},
		{"127.0.0.1:http", "tcp", "127.0.0.1:http"},
	}
	for _, tc := range tests {
		network, address := SplitAddress(tc.input)
		if network != tc.network || address != tc.address {
			t.Errorf("SplitAddress(%q): got (%q, %q), want (%q, %q)",
				tc.input, network, address, tc.network, tc.address)
		}
	}
}
