// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package connection

import (
	"context"
	"net"
	"strings"
)

// Dial establishes a stream to the specified address and returns a Conn
// wrapping it. The network type is guessed from the shape of the address
// (see [SplitAddress]). Dial blocks until the stream is ready, ctx ends, or
// the attempt fails; resolution and connection errors are returned to the
// caller as reported by the net package, and are not retried.
func Dial(ctx context.Context, address string) (*Conn, error) {
	ntype, addr := SplitAddress(address)
	var d net.Dialer
	nc, err := d.DialContext(ctx, ntype, addr)
	if err != nil {
		return nil, err
	}
	return New(nc), nil
}

// SplitAddress parses an address string to guess a network type and target.
//
// The assignment of a network type uses the following heuristics:
//
// If s does not have the form [host]:port, the network is assigned as
// "unix". The network "unix" is also assigned if port == "", port contains
// characters other than ASCII letters, digits, and "-", or if host contains
// a "/".
//
// Otherwise, the network is assigned as "tcp". Note that this function does
// not verify whether the address is lexically valid.
func SplitAddress(s string) (network, address string) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "unix", s
	}
	host, port := s[:i], s[i+1:]
	if port == "" || !isServiceName(port) {
		return "unix", s
	} else if strings.IndexByte(host, '/') >= 0 {
		return "unix", s
	}
	return "tcp", s
}

// isServiceName reports whether s looks like a legal service name from the
// services(5) file. The grammar of such names is not well-defined, but for
// our purposes it includes letters, digits, and "-".
func isServiceName(s string) bool {
	for _, b := range s {
		if b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b == '-' {
			continue
		}
		return false
	}
	return true
}
