package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader parses one document from a byte stream. Every value is read against
// the tag type declared for it in the stream; counts and depth are checked
// against the package limits before anything is allocated.
type Reader struct {
	r       io.Reader
	scratch [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadNamed parses one complete named value and returns its name and body.
// The root of a well-formed document is always a named compound; anything
// else is rejected.
func (r *Reader) ReadNamed() (string, Compound, error) {
	t, err := r.readTagType()
	if err != nil {
		return "", nil, err
	}
	if t != TagCompound {
		return "", nil, fmt.Errorf("%w, found %v", ErrInvalidRoot, t)
	}
	name, err := r.readString()
	if err != nil {
		return "", nil, err
	}
	body, err := r.readCompound(1)
	if err != nil {
		return "", nil, err
	}
	return name, body, nil
}

func (r *Reader) readCompound(depth int) (Compound, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w (%d levels)", ErrTooDeep, depth)
	}
	c := Compound{}
	for {
		t, err := r.readTagType()
		if err != nil {
			return nil, err
		}
		if t == TagEnd {
			return c, nil
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		v, err := r.readValue(t, depth+1)
		if err != nil {
			return nil, err
		}
		c[name] = v
	}
}

func (r *Reader) readList(depth int) (Tag, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w (%d levels)", ErrTooDeep, depth)
	}
	elem, err := r.readTagType()
	if err != nil {
		return nil, err
	}
	n, err := r.readCount("list")
	if err != nil {
		return nil, err
	}
	if n > 0 && elem == TagEnd {
		return nil, fmt.Errorf("nbt: non-empty list of %v", TagEnd)
	}
	items := make([]Tag, 0, min(n, 4096))
	for i := 0; i < n; i++ {
		v, err := r.readValue(elem, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return List{Elem: elem, Items: items}, nil
}

func (r *Reader) readValue(t TagType, depth int) (Tag, error) {
	switch t {
	case TagByte:
		b, err := r.read(1)
		if err != nil {
			return nil, err
		}
		return Byte(b[0]), nil
	case TagShort:
		b, err := r.read(2)
		if err != nil {
			return nil, err
		}
		return Short(binary.BigEndian.Uint16(b)), nil
	case TagInt:
		b, err := r.read(4)
		if err != nil {
			return nil, err
		}
		return Int(binary.BigEndian.Uint32(b)), nil
	case TagLong:
		b, err := r.read(8)
		if err != nil {
			return nil, err
		}
		return Long(binary.BigEndian.Uint64(b)), nil
	case TagFloat:
		b, err := r.read(4)
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case TagDouble:
		b, err := r.read(8)
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case TagByteArray:
		n, err := r.readCount("byte array")
		if err != nil {
			return nil, err
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r.r, b); err != nil {
			return nil, err
		}
		return ByteArray(b), nil
	case TagString:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagList:
		return r.readList(depth)
	case TagCompound:
		return r.readCompound(depth)
	case TagIntArray:
		n, err := r.readCount("int array")
		if err != nil {
			return nil, err
		}
		a := make([]int32, n)
		for i := range a {
			b, err := r.read(4)
			if err != nil {
				return nil, err
			}
			a[i] = int32(binary.BigEndian.Uint32(b))
		}
		return IntArray(a), nil
	case TagLongArray:
		n, err := r.readCount("long array")
		if err != nil {
			return nil, err
		}
		a := make([]int64, n)
		for i := range a {
			b, err := r.read(8)
			if err != nil {
				return nil, err
			}
			a[i] = int64(binary.BigEndian.Uint64(b))
		}
		return LongArray(a), nil
	default:
		return nil, fmt.Errorf("nbt: unexpected %v value", t)
	}
}

func (r *Reader) readTagType() (TagType, error) {
	b, err := r.read(1)
	if err != nil {
		return TagEnd, err
	}
	t := TagType(b[0])
	if !t.valid() {
		return TagEnd, fmt.Errorf("nbt: unknown tag type %d", b[0])
	}
	return t, nil
}

func (r *Reader) readString() (string, error) {
	b, err := r.read(2)
	if err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(b))
	s := make([]byte, n)
	if _, err := io.ReadFull(r.r, s); err != nil {
		return "", err
	}
	return string(s), nil
}

func (r *Reader) readCount(what string) (int, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	n := int(int32(binary.BigEndian.Uint32(b)))
	if n < 0 {
		return 0, fmt.Errorf("nbt: negative %s length %d", what, n)
	}
	if n > MaxElems {
		return 0, fmt.Errorf("%w: %s of %d elements", ErrTooLarge, what, n)
	}
	return n, nil
}

func (r *Reader) read(n int) ([]byte, error) {
	b := r.scratch[:n]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	return b, nil
}
