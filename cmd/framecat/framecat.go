// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

// Program framecat is a command-line utility for exchanging length-prefixed
// framed messages with connection endpoints.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/rs/zerolog"
	"github.com/wcygan/connection"
	"github.com/wcygan/connection/payload"
	"github.com/wcygan/connection/serve"
)

var connFlags = struct {
	MaxFrame int `flag:"max-frame,Maximum frame payload size in bytes"`
	Prefix   int `flag:"prefix,Length prefix width in bytes (1, 2, 4, or 8)"`
}{
	MaxFrame: connection.DefaultMaxFrameSize,
	Prefix:   connection.DefaultPrefixSize,
}

func main() {
	root := &command.C{
		Name: filepath.Base(os.Args[0]),
		Help: "Utilities for exchanging length-prefixed framed messages.",

		SetFlags: func(_ *command.Env, fs *flag.FlagSet) { flax.MustBind(fs, &connFlags) },

		Commands: []*command.C{
			{
				Name:  "send",
				Usage: "<address>",
				Help: `Send JSON values to a listening endpoint.

Values are read from stdin, one JSON value per line, and each value is
sent as a single frame. The connection is closed at end of input.`,
				Run: runSend,
			},
			{
				Name:  "recv",
				Usage: "<address>",
				Help:  "Listen at an address and print received JSON values to stdout, one per line.",
				Run:   runRecv,
			},
			{
				Name:  "pack",
				Usage: "<pattern> <argument>...",
				Help: `Pack arguments into a binary payload.

The pattern specifies the sequence of values to concatenate into the
payload. Whitespace in the pattern is ignored; otherwise the pattern
specifies how the corresponding argument is processed:

  r  : a raw literal string encoded without framing
  s  : a string encoded with a 4-byte big-endian length prefix
  %  : a Boolean constant (true or false)
  1  : a uint8 value (1 byte)
  2  : a uint16 value (2 bytes, big-endian)
  4  : a uint32 value (4 bytes, big-endian)
  8  : a uint64 value (8 bytes, big-endian)

The packed payload is written to stdout without a frame prefix.`,
				Run: runPack,
			},
			command.VersionCommand(),
			command.HelpCommand(nil),
		},
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

// configure applies the shared frame flags to conn.
func configure(conn *connection.Conn) *connection.Conn {
	return conn.MaxFrameSize(connFlags.MaxFrame).PrefixSize(connFlags.Prefix)
}

func runSend(env *command.Env) error {
	if len(env.Args) != 1 {
		return env.Usagef("missing address argument")
	}
	conn, err := connection.Dial(context.Background(), env.Args[0])
	if err != nil {
		return err
	}
	defer conn.Close()
	configure(conn)

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(nil, connFlags.MaxFrame+1)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return fmt.Errorf("invalid JSON value: %q", line)
		}
		if err := conn.WriteFrame(line); err != nil {
			return err
		}
	}
	return sc.Err()
}

func runRecv(env *command.Env) error {
	if len(env.Args) != 1 {
		return env.Usagef("missing address argument")
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ntype, addr := connection.SplitAddress(env.Args[0])
	lst, err := net.Listen(ntype, addr)
	if err != nil {
		return err
	}
	log.Info().Str("address", lst.Addr().String()).Msg("listening")

	return serve.Loop(context.Background(), lst, func(ctx context.Context, conn *connection.Conn) error {
		configure(conn)
		log.Info().Msg("peer connected")
		for {
			msg, err := conn.ReadFrame()
			if errors.Is(err, io.EOF) {
				log.Info().Msg("peer closed")
				return nil
			} else if err != nil {
				log.Error().Err(err).Msg("read frame")
				return err
			}
			fmt.Println(string(msg))
		}
	})
}

func runPack(env *command.Env) error {
	if len(env.Args) == 0 {
		return env.Usagef("missing pattern argument")
	}
	pat, args := env.Args[0], env.Args[1:]

	var b payload.Builder
	for i := 0; i < len(pat); i++ {
		c := pat[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if len(args) == 0 {
			return fmt.Errorf("missing argument for %c", c)
		}
		arg := args[0]
		switch c {
		case 'r':
			b.PutString(arg)
		case 's':
			b.VPutString(arg)
		case '%':
			v, err := strconv.ParseBool(arg)
			if err != nil {
				return fmt.Errorf("invalid bool: %w", err)
			}
			b.Bool(v)
		case '1':
			v, err := strconv.ParseUint(arg, 10, 8)
			if err != nil {
				return fmt.Errorf("invalid byte: %w", err)
			}
			b.Put(byte(v))
		case '2':
			v, err := strconv.ParseUint(arg, 10, 16)
			if err != nil {
				return fmt.Errorf("invalid uint16: %w", err)
			}
			b.Uint16(uint16(v))
		case '4':
			v, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uint32: %w", err)
			}
			b.Uint32(uint32(v))
		case '8':
			v, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid uint64: %w", err)
			}
			b.Uint64(v)
		default:
			return fmt.Errorf("invalid pattern word %c", c)
		}
		args = args[1:]
	}
	if len(args) != 0 {
		return fmt.Errorf("extra arguments: %q", args)
	}
	os.Stdout.Write(b.Bytes())
	return nil
}
