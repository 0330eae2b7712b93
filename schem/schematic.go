package schem

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/tribixbite/craftmatic-sub003/nbt"
)

const (
	// FormatVersion is the structural version written to every document.
	FormatVersion = 2

	// DefaultDataVersion pins the game data release new documents declare:
	// Minecraft Java 1.20.1. Documents carry sign text in both the
	// front/back form introduced around that release and the legacy flat
	// fields, so either generation of reader finds a form it understands.
	DefaultDataVersion = 3465

	rootName = "Schematic"
)

// ErrNotSchematic reports input whose root is not the expected named
// compound.
var ErrNotSchematic = errors.New("schem: not a schematic document")

// Schematic is the file-facing projection of a grid: palette-compressed block
// data plus dimensions, versioning and block entities, detached from the live
// Grid so the in-memory model and the disk schema can evolve separately.
type Schematic struct {
	Version     int
	DataVersion int

	Width, Height, Length int
	Offset                [3]int32

	// Palette holds block states by id; ids are dense, 0..len-1.
	Palette []BlockState
	// BlockData holds one varint palette id per cell in flat
	// (y*length+z)*width+x order.
	BlockData []byte

	BlockEntities []BlockEntity
}

// Snapshot projects g into a document with default versioning. Mutating g
// afterwards does not affect the snapshot.
func Snapshot(g *Grid) *Schematic {
	w, h, l := g.Dimensions()
	data := make([]byte, 0, g.Volume())
	for _, id := range g.blocks {
		data = appendVarint(data, id)
	}
	return &Schematic{
		Version:       FormatVersion,
		DataVersion:   DefaultDataVersion,
		Width:         w,
		Height:        h,
		Length:        l,
		Palette:       g.Palette(),
		BlockData:     data,
		BlockEntities: g.BlockEntities(),
	}
}

// Marshal renders the document as uncompressed tag bytes in canonical field
// order. The result is a complete document on its own; Encode adds the gzip
// framing files use.
func (s *Schematic) Marshal() ([]byte, error) {
	if s.Width < 1 || s.Height < 1 || s.Length < 1 ||
		s.Width > math.MaxInt16 || s.Height > math.MaxInt16 || s.Length > math.MaxInt16 {
		return nil, fmt.Errorf("schem: dimensions %dx%dx%d do not fit the header shorts", s.Width, s.Height, s.Length)
	}
	w := nbt.NewWriter()
	w.Tag(nbt.TagCompound, rootName)
	w.Tag(nbt.TagInt, "Version")
	w.Int(int32(s.Version))
	w.Tag(nbt.TagInt, "DataVersion")
	w.Int(int32(s.DataVersion))
	w.Tag(nbt.TagShort, "Width")
	w.Short(int16(s.Width))
	w.Tag(nbt.TagShort, "Height")
	w.Short(int16(s.Height))
	w.Tag(nbt.TagShort, "Length")
	w.Short(int16(s.Length))
	w.Tag(nbt.TagIntArray, "Offset")
	w.IntArray(s.Offset[:])
	w.Tag(nbt.TagInt, "PaletteMax")
	w.Int(int32(len(s.Palette)))
	w.Tag(nbt.TagCompound, "Palette")
	for id, st := range s.Palette {
		w.Tag(nbt.TagInt, st.String())
		w.Int(int32(id))
	}
	w.End()
	w.Tag(nbt.TagByteArray, "BlockData")
	w.ByteArray(s.BlockData)
	if len(s.BlockEntities) > 0 {
		w.Tag(nbt.TagList, "BlockEntities")
		w.ListHeader(nbt.TagCompound, len(s.BlockEntities))
		for _, e := range s.BlockEntities {
			writeBlockEntity(w, e)
		}
	}
	w.End()
	return w.Bytes()
}

// Encode writes the gzip-framed document to w.
func (s *Schematic) Encode(w io.Writer) error {
	raw, err := s.Marshal()
	if err != nil {
		return err
	}
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// maxDecodedLen caps how far the gzip framing may inflate. The tag limits
// keep any well-formed document far below this, so hitting the cap reads as
// truncation and parsing fails instead of the stream growing without bound.
var maxDecodedLen = int64(1 << 28)

// Decode reads one gzip-framed document from r.
func Decode(r io.Reader) (*Schematic, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("schem: gzip framing: %w", err)
	}
	defer zr.Close()
	return parse(nbt.NewReader(io.LimitReader(zr, maxDecodedLen)))
}

// Unmarshal parses uncompressed tag bytes, the inner form Marshal produces.
func Unmarshal(data []byte) (*Schematic, error) {
	return parse(nbt.NewReader(bytes.NewReader(data)))
}

// Grid rebuilds a live grid from the document. The block data must decode to
// exactly one palette id per cell with nothing left over, and every id must
// resolve through the document palette.
func (s *Schematic) Grid() (*Grid, error) {
	// Every cell consumes at least one block data byte, so a declared
	// volume the data cannot cover is malformed. Rejected before the dense
	// store is allocated.
	if vol := s.Width * s.Height * s.Length; vol > len(s.BlockData) {
		return nil, fmt.Errorf("schem: %d cells declared with %d block data bytes", vol, len(s.BlockData))
	}
	g, err := NewGrid(s.Width, s.Height, s.Length)
	if err != nil {
		return nil, err
	}
	states := make([]BlockState, 0, g.Volume())
	off := 0
	for i := 0; i < g.Volume(); i++ {
		id, n, err := readVarint(s.BlockData, off)
		if err != nil {
			return nil, fmt.Errorf("schem: block data cell %d: %w", i, err)
		}
		off += n
		if id < 0 || id >= len(s.Palette) {
			return nil, fmt.Errorf("schem: block data cell %d references palette id %d of %d", i, id, len(s.Palette))
		}
		states = append(states, s.Palette[id])
	}
	if off != len(s.BlockData) {
		return nil, fmt.Errorf("schem: %d trailing bytes after block data", len(s.BlockData)-off)
	}
	if err := g.LoadFromArray(states); err != nil {
		return nil, err
	}
	for _, e := range s.BlockEntities {
		if !g.inBounds(e.X, e.Y, e.Z) {
			return nil, fmt.Errorf("schem: block entity at %d,%d,%d outside %dx%dx%d",
				e.X, e.Y, e.Z, s.Width, s.Height, s.Length)
		}
	}
	g.entities = append([]BlockEntity(nil), s.BlockEntities...)
	return g, nil
}

// SaveGrid writes g to path as a gzip-framed schematic file.
func SaveGrid(g *Grid, path string) error {
	data, err := SaveGridToBytes(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveGridToBytes returns the complete framed file as bytes instead of
// writing to disk.
func SaveGridToBytes(g *Grid) ([]byte, error) {
	var buf bytes.Buffer
	if err := Snapshot(g).Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadGridFromBytes(data)
}

// LoadGridFromBytes parses a framed schematic file from memory.
func LoadGridFromBytes(data []byte) (*Grid, error) {
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return s.Grid()
}

func writeBlockEntity(w *nbt.Writer, e BlockEntity) {
	w.Tag(nbt.TagString, "Id")
	w.String(e.ID)
	w.Tag(nbt.TagIntArray, "Pos")
	w.IntArray([]int32{int32(e.X), int32(e.Y), int32(e.Z)})
	switch {
	case e.IsContainer():
		w.Tag(nbt.TagList, "Items")
		w.ListHeader(nbt.TagCompound, len(e.Items))
		for _, it := range e.Items {
			w.Tag(nbt.TagByte, "Slot")
			w.Byte(int8(it.Slot))
			w.Tag(nbt.TagString, "id")
			w.String(it.ID)
			w.Tag(nbt.TagByte, "Count")
			w.Byte(int8(it.Count))
			w.End()
		}
	case e.IsSign():
		writeSignFace(w, "front_text", e.Lines)
		writeSignFace(w, "back_text", [4]string{})
		for i, line := range e.Lines {
			w.Tag(nbt.TagString, fmt.Sprintf("Text%d", i+1))
			w.String(jsonText(line))
		}
	}
	w.End()
}

// writeSignFace emits one side of a sign: four json-wrapped message lines
// plus color and glow defaults. The unused back face still gets four empty
// lines so the compound shape is fixed.
func writeSignFace(w *nbt.Writer, name string, lines [4]string) {
	w.Tag(nbt.TagCompound, name)
	w.Tag(nbt.TagList, "messages")
	w.ListHeader(nbt.TagString, len(lines))
	for _, line := range lines {
		w.String(jsonText(line))
	}
	w.Tag(nbt.TagString, "color")
	w.String("black")
	w.Tag(nbt.TagByte, "has_glowing_text")
	w.Byte(0)
	w.End()
}

// jsonText wraps a plain line in the text component form sign fields carry.
func jsonText(line string) string {
	b, _ := json.Marshal(struct {
		Text string `json:"text"`
	}{line})
	return string(b)
}

// plainText inverts jsonText, tolerating bare strings from other writers.
func plainText(s string) string {
	var c struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(s), &c); err == nil {
		return c.Text
	}
	return s
}

func parse(r *nbt.Reader) (*Schematic, error) {
	name, root, err := r.ReadNamed()
	if err != nil {
		return nil, err
	}
	if name != rootName {
		return nil, fmt.Errorf("%w: root compound is %q", ErrNotSchematic, name)
	}
	s := &Schematic{}

	ver, err := root.Int("Version")
	if err != nil {
		return nil, err
	}
	if ver != FormatVersion {
		return nil, fmt.Errorf("schem: unsupported schematic version %d", ver)
	}
	s.Version = int(ver)
	dv, err := root.Int("DataVersion")
	if err != nil {
		return nil, err
	}
	s.DataVersion = int(dv)

	for _, dim := range []struct {
		name string
		dst  *int
	}{
		{"Width", &s.Width},
		{"Height", &s.Height},
		{"Length", &s.Length},
	} {
		v, err := root.Short(dim.name)
		if err != nil {
			return nil, err
		}
		if v < 1 {
			return nil, fmt.Errorf("schem: %s %d out of range", dim.name, v)
		}
		*dim.dst = int(v)
	}

	if _, ok := root["Offset"]; ok {
		off, err := root.IntArray("Offset")
		if err != nil {
			return nil, err
		}
		if len(off) != 3 {
			return nil, fmt.Errorf("schem: Offset has %d elements, want 3", len(off))
		}
		copy(s.Offset[:], off)
	}

	pc, err := root.Child("Palette")
	if err != nil {
		return nil, err
	}
	s.Palette, err = parsePalette(pc)
	if err != nil {
		return nil, err
	}

	s.BlockData, err = root.ByteArray("BlockData")
	if err != nil {
		return nil, err
	}

	if _, ok := root["BlockEntities"]; ok {
		list, err := root.List("BlockEntities")
		if err != nil {
			return nil, err
		}
		if len(list.Items) > 0 && list.Elem != nbt.TagCompound {
			return nil, fmt.Errorf("schem: BlockEntities is a list of %v, want %v", list.Elem, nbt.TagCompound)
		}
		for i, item := range list.Items {
			e, err := parseBlockEntity(item.(nbt.Compound))
			if err != nil {
				return nil, fmt.Errorf("schem: block entity %d: %w", i, err)
			}
			s.BlockEntities = append(s.BlockEntities, e)
		}
	}
	return s, nil
}

// parsePalette turns the name->id compound into a dense id-indexed slice.
// Every id must land in 0..len-1 exactly once; the palette is a bijection and
// the block data can only reference ids it defines.
func parsePalette(pc nbt.Compound) ([]BlockState, error) {
	entries := make([]BlockState, len(pc))
	seen := make([]bool, len(pc))
	for key := range pc {
		id, err := pc.Int(key)
		if err != nil {
			return nil, err
		}
		if id < 0 || int(id) >= len(entries) {
			return nil, fmt.Errorf("schem: palette id %d for %q outside 0..%d", id, key, len(entries)-1)
		}
		if seen[id] {
			return nil, fmt.Errorf("schem: palette id %d assigned twice", id)
		}
		st, err := ParseBlockState(key)
		if err != nil {
			return nil, err
		}
		seen[id] = true
		entries[id] = st
	}
	return entries, nil
}

func parseBlockEntity(c nbt.Compound) (BlockEntity, error) {
	id, err := c.String("Id")
	if err != nil {
		return BlockEntity{}, err
	}
	pos, err := c.IntArray("Pos")
	if err != nil {
		return BlockEntity{}, err
	}
	if len(pos) != 3 {
		return BlockEntity{}, fmt.Errorf("schem: Pos has %d elements, want 3", len(pos))
	}
	e := BlockEntity{ID: id, X: int(pos[0]), Y: int(pos[1]), Z: int(pos[2])}

	if _, ok := c["Items"]; ok {
		list, err := c.List("Items")
		if err != nil {
			return BlockEntity{}, err
		}
		if len(list.Items) > 0 && list.Elem != nbt.TagCompound {
			return BlockEntity{}, fmt.Errorf("schem: Items is a list of %v, want %v", list.Elem, nbt.TagCompound)
		}
		for _, item := range list.Items {
			ic := item.(nbt.Compound)
			slot, err := ic.Byte("Slot")
			if err != nil {
				return BlockEntity{}, err
			}
			itemID, err := ic.String("id")
			if err != nil {
				return BlockEntity{}, err
			}
			count, err := ic.Byte("Count")
			if err != nil {
				return BlockEntity{}, err
			}
			e.Items = append(e.Items, Item{Slot: byte(slot), ID: itemID, Count: byte(count)})
		}
	}

	switch {
	case hasKey(c, "front_text"):
		face, err := c.Child("front_text")
		if err != nil {
			return BlockEntity{}, err
		}
		e.Lines, err = parseSignFace(face)
		if err != nil {
			return BlockEntity{}, err
		}
	case hasKey(c, "Text1"):
		for i := range e.Lines {
			line, err := c.String(fmt.Sprintf("Text%d", i+1))
			if err != nil {
				return BlockEntity{}, err
			}
			e.Lines[i] = plainText(line)
		}
	}
	return e, nil
}

func hasKey(c nbt.Compound, key string) bool {
	_, ok := c[key]
	return ok
}

func parseSignFace(face nbt.Compound) ([4]string, error) {
	var lines [4]string
	msgs, err := face.List("messages")
	if err != nil {
		return lines, err
	}
	if len(msgs.Items) > 0 && msgs.Elem != nbt.TagString {
		return lines, fmt.Errorf("schem: messages is a list of %v, want %v", msgs.Elem, nbt.TagString)
	}
	for i := 0; i < len(lines) && i < len(msgs.Items); i++ {
		lines[i] = plainText(string(msgs.Items[i].(nbt.String)))
	}
	return lines, nil
}
