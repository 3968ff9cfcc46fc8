// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

// Package serve provides support code for accepting framed connections.
//
// The framing core only consumes streams that are already established;
// this package supplies the thin accept-loop delegation around it.
package serve

import (
	"context"
	"errors"
	"net"

	"github.com/creachadair/taskgroup"
	"github.com/wcygan/connection"
)

// A Handler services one accepted connection. The connection is closed when
// the handler returns, and its context ends when the loop shuts down.
type Handler func(context.Context, *connection.Conn) error

// Loop accepts connections from lst and services each one with handle in a
// goroutine. Loop continues until lst closes or ctx ends.
//
// When ctx terminates, all running handlers have their contexts cancelled
// and their connections closed. When lst closes, the loop waits for running
// handlers to exit before returning.
func Loop(ctx context.Context, lst net.Listener, handle Handler) error {
	g := taskgroup.New(nil)
	for {
		nc, err := accept(ctx, lst)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				err = nil
			}
			g.Wait()
			return err
		}

		g.Go(func() error {
			sctx, cancel := context.WithCancel(ctx)
			defer cancel()

			conn := connection.New(nc)
			defer conn.Close()

			go func() { <-sctx.Done(); conn.Close() }()
			return handle(sctx, conn)
		})
	}
}

// accept waits for the next connection from lst, honoring ctx.
func accept(ctx context.Context, lst net.Listener) (net.Conn, error) {
	// A net.Listener does not obey a context, so simulate it by closing the
	// listener if ctx ends. The ok channel allows the context watcher to
	// clean up when we return before ctx ends.
	ok := make(chan struct{})
	defer close(ok)
	taskgroup.Go(func() error {
		select {
		case <-ctx.Done():
			lst.Close()
		case <-ok:
			// release the waiter
		}
		return nil
	})

	return lst.Accept()
}
