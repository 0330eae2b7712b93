package schem

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// BundleCompression selects how the bundle content section is compressed.
type BundleCompression uint8

const (
	BundleNone BundleCompression = 0
	BundleZlib BundleCompression = 1
	BundleZstd BundleCompression = 2
)

// String names the compression scheme.
func (c BundleCompression) String() string {
	switch c {
	case BundleNone:
		return "none"
	case BundleZlib:
		return "zlib"
	case BundleZstd:
		return "zstd"
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

const (
	bundleMagic   = "SCHBNDL"
	bundleVersion = 1
)

// ErrNotBundle reports input that does not carry the bundle magic.
var ErrNotBundle = errors.New("schem: not a schematic bundle")

// BundleEntry is one named document inside a bundle. Raw holds uncompressed
// tag bytes (the Marshal form); the per-file gzip framing is deliberately
// absent so the content section compresses across entries instead.
type BundleEntry struct {
	Name string
	Raw  []byte
}

// Grid rebuilds the entry's grid.
func (e BundleEntry) Grid() (*Grid, error) {
	s, err := Unmarshal(e.Raw)
	if err != nil {
		return nil, err
	}
	return s.Grid()
}

// Bundle packs many schematic documents into one container, the way a
// structure library ships as a single file.
type Bundle struct {
	Entries []BundleEntry
}

// AddGrid snapshots g and appends it under name.
func (b *Bundle) AddGrid(name string, g *Grid) error {
	raw, err := Snapshot(g).Marshal()
	if err != nil {
		return err
	}
	b.Entries = append(b.Entries, BundleEntry{Name: name, Raw: raw})
	return nil
}

// Marshal encodes the bundle with the given content compression. Every entry
// carries an xxhash64 checksum so Unmarshal spots corruption entry by entry
// rather than handing back a silently broken document.
func (b *Bundle) Marshal(comp BundleCompression) ([]byte, error) {
	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(b.Entries)))
	for _, e := range b.Entries {
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("schem: entry name too long: %s", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		_, _ = content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(e.Raw))
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(e.Raw)))
		_, _ = content.Write(e.Raw)
	}

	var finalContent []byte
	switch comp {
	case BundleNone:
		finalContent = content.Bytes()
	case BundleZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		finalContent = buf.Bytes()
	case BundleZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		finalContent = enc.EncodeAll(content.Bytes(), nil)
	default:
		return nil, fmt.Errorf("schem: unsupported bundle compression %d", comp)
	}

	var out bytes.Buffer
	out.WriteString(bundleMagic)
	out.WriteByte(bundleVersion)
	out.WriteByte(byte(comp))
	_, _ = out.Write(finalContent)
	return out.Bytes(), nil
}

// UnmarshalBundle parses a bundle and reports the compression it used.
func UnmarshalBundle(data []byte) (*Bundle, BundleCompression, error) {
	if len(data) < len(bundleMagic)+2 || string(data[:len(bundleMagic)]) != bundleMagic {
		return nil, 0, ErrNotBundle
	}
	version := data[len(bundleMagic)]
	if version != bundleVersion {
		return nil, 0, fmt.Errorf("schem: unsupported bundle version %d", version)
	}
	comp := BundleCompression(data[len(bundleMagic)+1])
	content := data[len(bundleMagic)+2:]
	switch comp {
	case BundleNone:
	case BundleZlib:
		zr, err := zlib.NewReader(bytes.NewReader(content))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, 0, err
		}
		content = raw
	case BundleZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		raw, err := dec.DecodeAll(content, nil)
		if err != nil {
			return nil, 0, err
		}
		content = raw
	default:
		return nil, 0, fmt.Errorf("schem: unsupported bundle compression %d", comp)
	}

	r := bytes.NewReader(content)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	// Each entry takes at least its fixed fields, so a count past the content
	// size can only be garbage.
	if uint64(n) > uint64(r.Len()) {
		return nil, 0, fmt.Errorf("schem: bundle declares %d entries in %d bytes", n, r.Len())
	}
	bdl := &Bundle{Entries: make([]BundleEntry, 0, n)}
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, 0, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, 0, err
		}
		var sum uint64
		if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
			return nil, 0, err
		}
		var rawLen uint32
		if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
			return nil, 0, err
		}
		if uint64(rawLen) > uint64(r.Len()) {
			return nil, 0, fmt.Errorf("schem: entry %q declares %d bytes, %d remain", name, rawLen, r.Len())
		}
		raw := make([]byte, rawLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, 0, err
		}
		if got := xxhash.Sum64(raw); got != sum {
			return nil, 0, fmt.Errorf("schem: entry %q checksum mismatch", name)
		}
		bdl.Entries = append(bdl.Entries, BundleEntry{Name: string(name), Raw: raw})
	}
	return bdl, comp, nil
}
