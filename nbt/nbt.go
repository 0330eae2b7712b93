// Package nbt implements the named binary tag encoding used by schematic
// files: big-endian scalars, uint16-length-prefixed UTF-8 strings, int32-count
// arrays and lists, and end-marker terminated compounds. The writer is a
// cursor that callers drive to hand-assemble a document; the reader parses a
// whole document into a Tag tree with hard limits on declared sizes and
// nesting depth so malformed or hostile input fails instead of exhausting
// memory.
package nbt

import (
	"errors"
	"fmt"
)

// TagType identifies the payload encoding of a tag. Every value is written
// and read against an explicit TagType; nothing is inferred from payload
// bytes.
type TagType byte

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var tagNames = [...]string{
	"TAG_End", "TAG_Byte", "TAG_Short", "TAG_Int", "TAG_Long", "TAG_Float",
	"TAG_Double", "TAG_Byte_Array", "TAG_String", "TAG_List", "TAG_Compound",
	"TAG_Int_Array", "TAG_Long_Array",
}

func (t TagType) valid() bool {
	return t <= TagLongArray
}

func (t TagType) String() string {
	if !t.valid() {
		return fmt.Sprintf("TAG_Invalid(%d)", byte(t))
	}
	return tagNames[t]
}

// Decode limits. Declared element counts above MaxElems and nesting beyond
// MaxDepth are rejected before any allocation happens.
const (
	MaxDepth = 32
	MaxElems = 1 << 26
)

var (
	ErrInvalidRoot = errors.New("nbt: root tag must be a named compound")
	ErrTooDeep     = errors.New("nbt: nesting exceeds depth limit")
	ErrTooLarge    = errors.New("nbt: declared length exceeds limit")
)

// Tag is one node of a parsed document. There is exactly one concrete
// variant per TagType constant; Type reports which one a node is, and
// readers/writers dispatch on it explicitly.
type Tag interface {
	Type() TagType
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	String    string
	ByteArray []byte
	IntArray  []int32
	LongArray []int64

	// List holds homogeneous headerless values; Elem is the element type
	// declared in the stream and applies to every entry of Items.
	List struct {
		Elem  TagType
		Items []Tag
	}

	// Compound maps field names to values. Field order is not preserved;
	// documents that need a canonical order emit it at write time.
	Compound map[string]Tag
)

func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (String) Type() TagType    { return TagString }
func (ByteArray) Type() TagType { return TagByteArray }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }
func (List) Type() TagType      { return TagList }
func (Compound) Type() TagType  { return TagCompound }

func (c Compound) field(name string, want TagType) (Tag, error) {
	v, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("nbt: missing field %q", name)
	}
	if v.Type() != want {
		return nil, fmt.Errorf("nbt: field %q holds %v, want %v", name, v.Type(), want)
	}
	return v, nil
}

// Typed field accessors. Each reports an error when the field is absent or
// holds a different tag type, so schema extraction surfaces exactly which
// required field a document is missing.

func (c Compound) Byte(name string) (int8, error) {
	v, err := c.field(name, TagByte)
	if err != nil {
		return 0, err
	}
	return int8(v.(Byte)), nil
}

func (c Compound) Short(name string) (int16, error) {
	v, err := c.field(name, TagShort)
	if err != nil {
		return 0, err
	}
	return int16(v.(Short)), nil
}

func (c Compound) Int(name string) (int32, error) {
	v, err := c.field(name, TagInt)
	if err != nil {
		return 0, err
	}
	return int32(v.(Int)), nil
}

func (c Compound) Long(name string) (int64, error) {
	v, err := c.field(name, TagLong)
	if err != nil {
		return 0, err
	}
	return int64(v.(Long)), nil
}

func (c Compound) Float(name string) (float32, error) {
	v, err := c.field(name, TagFloat)
	if err != nil {
		return 0, err
	}
	return float32(v.(Float)), nil
}

func (c Compound) Double(name string) (float64, error) {
	v, err := c.field(name, TagDouble)
	if err != nil {
		return 0, err
	}
	return float64(v.(Double)), nil
}

func (c Compound) String(name string) (string, error) {
	v, err := c.field(name, TagString)
	if err != nil {
		return "", err
	}
	return string(v.(String)), nil
}

func (c Compound) ByteArray(name string) ([]byte, error) {
	v, err := c.field(name, TagByteArray)
	if err != nil {
		return nil, err
	}
	return []byte(v.(ByteArray)), nil
}

func (c Compound) IntArray(name string) ([]int32, error) {
	v, err := c.field(name, TagIntArray)
	if err != nil {
		return nil, err
	}
	return []int32(v.(IntArray)), nil
}

func (c Compound) LongArray(name string) ([]int64, error) {
	v, err := c.field(name, TagLongArray)
	if err != nil {
		return nil, err
	}
	return []int64(v.(LongArray)), nil
}

func (c Compound) List(name string) (List, error) {
	v, err := c.field(name, TagList)
	if err != nil {
		return List{}, err
	}
	return v.(List), nil
}

// Child returns a nested compound field.
func (c Compound) Child(name string) (Compound, error) {
	v, err := c.field(name, TagCompound)
	if err != nil {
		return nil, err
	}
	return v.(Compound), nil
}
