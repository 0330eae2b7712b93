package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Writer assembles one document in memory. Callers drive the cursor by hand:
// Tag emits a header, the typed methods emit headerless payloads, End closes
// the innermost compound, and Bytes returns the finished document. The first
// length violation (a string over 65535 bytes, an array over the int32 count
// range) sticks and is reported by Bytes; intermediate calls after a failure
// are no-ops.
type Writer struct {
	buf bytes.Buffer
	err error
}

func NewWriter() *Writer {
	return &Writer{}
}

// Tag writes a header: the tag type byte followed by the name. The root
// header and every direct child of a compound get one; list elements do not.
func (w *Writer) Tag(t TagType, name string) {
	if w.err != nil {
		return
	}
	w.buf.WriteByte(byte(t))
	w.writeString(name)
}

// End closes the innermost open compound.
func (w *Writer) End() {
	if w.err != nil {
		return
	}
	w.buf.WriteByte(byte(TagEnd))
}

func (w *Writer) Byte(v int8) {
	if w.err != nil {
		return
	}
	w.buf.WriteByte(byte(v))
}

func (w *Writer) Short(v int16) {
	if w.err != nil {
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, v)
}

func (w *Writer) Int(v int32) {
	if w.err != nil {
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, v)
}

func (w *Writer) Long(v int64) {
	if w.err != nil {
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, v)
}

func (w *Writer) Float(v float32) {
	if w.err != nil {
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, v)
}

func (w *Writer) Double(v float64) {
	if w.err != nil {
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, v)
}

func (w *Writer) String(s string) {
	if w.err != nil {
		return
	}
	w.writeString(s)
}

func (w *Writer) ByteArray(b []byte) {
	if w.err != nil {
		return
	}
	if len(b) > math.MaxInt32 {
		w.err = fmt.Errorf("nbt: byte array of %d elements does not fit an int32 count", len(b))
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, int32(len(b)))
	w.buf.Write(b)
}

func (w *Writer) IntArray(a []int32) {
	if w.err != nil {
		return
	}
	if len(a) > math.MaxInt32 {
		w.err = fmt.Errorf("nbt: int array of %d elements does not fit an int32 count", len(a))
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, int32(len(a)))
	for _, v := range a {
		_ = binary.Write(&w.buf, binary.BigEndian, v)
	}
}

func (w *Writer) LongArray(a []int64) {
	if w.err != nil {
		return
	}
	if len(a) > math.MaxInt32 {
		w.err = fmt.Errorf("nbt: long array of %d elements does not fit an int32 count", len(a))
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, int32(len(a)))
	for _, v := range a {
		_ = binary.Write(&w.buf, binary.BigEndian, v)
	}
}

// ListHeader opens a list of n headerless values of type elem. The caller
// emits exactly n payloads next; compound elements are closed with End as
// usual.
func (w *Writer) ListHeader(elem TagType, n int) {
	if w.err != nil {
		return
	}
	if n < 0 || n > math.MaxInt32 {
		w.err = fmt.Errorf("nbt: list of %d elements does not fit an int32 count", n)
		return
	}
	w.buf.WriteByte(byte(elem))
	_ = binary.Write(&w.buf, binary.BigEndian, int32(n))
}

func (w *Writer) writeString(s string) {
	if len(s) > math.MaxUint16 {
		w.err = fmt.Errorf("nbt: string of %d bytes does not fit a uint16 length", len(s))
		return
	}
	_ = binary.Write(&w.buf, binary.BigEndian, uint16(len(s)))
	w.buf.WriteString(s)
}

// Bytes returns the assembled document, or the first length violation hit
// while assembling it.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

// Len reports the size of the document assembled so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}
