package schem

import (
	"bytes"
	"testing"
)

func TestVarintVectors(t *testing.T) {
	cases := []struct {
		v    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}
	for _, c := range cases {
		got := appendVarint(nil, c.v)
		if !bytes.Equal(got, c.want) {
			t.Fatalf("encode(%d) = %x, want %x", c.v, got, c.want)
		}
		v, n, err := readVarint(got, 0)
		if err != nil {
			t.Fatalf("decode(%x): %v", c.want, err)
		}
		if v != c.v || n != len(c.want) {
			t.Fatalf("decode(%x) = %d over %d bytes, want %d over %d", c.want, v, n, c.v, len(c.want))
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	vals := []int{0, 1, 5, 127, 128, 255, 256, 65535, 1 << 20, 1<<35 - 1}
	var buf []byte
	for _, v := range vals {
		buf = appendVarint(buf, v)
	}
	off := 0
	for _, want := range vals {
		v, n, err := readVarint(buf, off)
		if err != nil {
			t.Fatalf("decode at %d: %v", off, err)
		}
		if v != want {
			t.Fatalf("decode at %d = %d, want %d", off, v, want)
		}
		off += n
	}
	if off != len(buf) {
		t.Fatalf("consumed %d of %d bytes", off, len(buf))
	}
}

func TestVarintTruncated(t *testing.T) {
	if _, _, err := readVarint(nil, 0); err == nil {
		t.Fatal("empty input accepted")
	}
	if _, _, err := readVarint([]byte{0x80}, 0); err == nil {
		t.Fatal("dangling continuation bit accepted")
	}
	if _, _, err := readVarint([]byte{0x01, 0x80, 0x80}, 1); err == nil {
		t.Fatal("truncation at offset accepted")
	}
}

func TestVarintTooLong(t *testing.T) {
	if _, _, err := readVarint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, 0); err == nil {
		t.Fatal("six-group varint accepted")
	}
}
