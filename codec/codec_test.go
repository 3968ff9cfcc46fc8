// Copyright (C) 2022 Michael J. Fromberger. All Rights Reserved.

package codec_test

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/wcygan/connection/codec"
)

type record struct {
	Name string `json:"name"`
	Hits int    `json:"hits"`
	Tags []string
}

func roundTrip[T any](t *testing.T, c codec.Codec, in T) {
	t.Helper()

	data, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var out T
	if err := c.Decode(data, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(in, out, cmpopts.EquateComparable(netip.Addr{})); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	c := codec.JSON{}
	if c.Name() != "json" {
		t.Errorf("Name: got %q, want json", c.Name())
	}
	roundTrip(t, c, record{Name: "apple", Hits: 3, Tags: []string{"crisp", "red"}})
	roundTrip(t, c, "a bare string")
	roundTrip(t, c, 12345)
}

func TestGob(t *testing.T) {
	c := codec.Gob{}
	if c.Name() != "gob" {
		t.Errorf("Name: got %q, want gob", c.Name())
	}
	roundTrip(t, c, record{Name: "pear", Hits: 9})
	roundTrip(t, c, []int{1, 2, 3})
}

func TestBasic(t *testing.T) {
	c := codec.Basic{}
	roundTrip(t, c, "plain string")
	roundTrip(t, c, []byte("raw bytes"))

	// netip.Addr implements the standard encoding interfaces.
	roundTrip(t, c, netip.MustParseAddr("192.168.0.25"))

	t.Run("DecodeCopies", func(t *testing.T) {
		buf := []byte("scratch")
		var got []byte
		if err := c.Decode(buf, &got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		copy(buf, "clobber")
		if string(got) != "scratch" {
			t.Errorf("Decoded bytes: got %q, want scratch", got)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		if data, err := c.Encode(record{}); err == nil {
			t.Errorf("Encode: got %v, want error", data)
		}
		var out record
		if err := c.Decode([]byte("x"), &out); err == nil {
			t.Error("Decode: did not report an error")
		}
	})
}

func TestCompressed(t *testing.T) {
	c := codec.Compressed(codec.JSON{})
	if c.Name() != "json+snappy" {
		t.Errorf("Name: got %q, want json+snappy", c.Name())
	}
	roundTrip(t, c, record{Name: "quince", Hits: 77, Tags: []string{"tart"}})

	t.Run("BadInput", func(t *testing.T) {
		// Raw JSON is not a valid snappy block.
		var out record
		if err := c.Decode([]byte(`{"name":"quince"}`), &out); err == nil {
			t.Error("Decode: did not report an error")
		}
	})
}
