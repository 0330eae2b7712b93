package schem

import "fmt"

// Block data stores one palette id per cell as an unsigned varint: 7 bits per
// group, low group first, high bit set on every group but the last. Zero is a
// single 0x00 byte.

func appendVarint(dst []byte, v int) []byte {
	u := uint64(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

// readVarint decodes one varint starting at off and reports the value and the
// number of bytes consumed. Truncation is an error, as is an encoding that
// claims more than 35 bits of payload.
func readVarint(data []byte, off int) (int, int, error) {
	var v uint64
	n := 0
	for shift := 0; ; shift += 7 {
		if off+n >= len(data) {
			return 0, 0, fmt.Errorf("schem: truncated varint at byte %d", off+n)
		}
		b := data[off+n]
		n++
		v |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return int(v), n, nil
		}
		if shift == 28 {
			return 0, 0, fmt.Errorf("schem: varint at byte %d exceeds 35 bits", off)
		}
	}
}
