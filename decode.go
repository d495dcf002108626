// Decoding has no failure path. Every byte value has an entry in the table
// so the decoded length always equals the source length. When decoding to
// UTF-8 a surrogate code unit is written as U+FFFD since units are never
// paired across bytes.

package sbcs

import (
	"slices"

	"github.com/segmentio/asm/ascii"
)

func (c *Codec) decode(dst []uint16, src []byte) {
	dst = dst[:len(src)]
	dec := &c.decodeTab

	for i, b := range src {
		dst[i] = dec[b]
	}
}

func (c *Codec) appendDecodeUTF8(dst []byte, src []byte) []byte {
	if c.asciiDecode && ascii.Valid(src) {
		return append(dst, src...)
	}

	for _, b := range src {
		x := &c.decodeUTF8[b]
		dst = append(dst, x.data[:x.len]...)
	}

	return dst
}

// DecodeInto fills dst with the decoded form of src and returns the number of
// code units written, which is always len(src).
//
// This function panics if dst does not have enough space in the slice for
// the decoded form of src.
func (c *Codec) DecodeInto(dst []uint16, src []byte) int {
	// guard statement forcing a panic with a clear message rather than
	// an index out of range from the loop

	if len(dst) < len(src) {
		panic("sbcs: decode destination too short")
	}

	c.decode(dst, src)

	return len(src)
}

// Decode returns nil if src is empty, otherwise it returns the
// decoded code units of src. The result always has the same length as src.
func (c *Codec) Decode(src []byte) []uint16 {
	n := len(src)
	if n == 0 {
		return nil
	}

	dst := make([]uint16, n)

	c.decode(dst, src)

	return dst
}

// DecodeToString returns "" if src is empty, otherwise it returns the
// decoded form of src as a UTF-8 string.
func (c *Codec) DecodeToString(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	return string(c.appendDecodeUTF8(make([]byte, 0, len(src)), src))
}

// AppendDecode returns the decoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (c *Codec) AppendDecode(dst []uint16, src []byte) []uint16 {
	n := len(src)
	if n == 0 {
		return dst
	}

	orig := len(dst)

	dst = slices.Grow(dst, n)
	dst = dst[:orig+n]

	c.decode(dst[orig:], src)

	return dst
}

// AppendDecodeToString returns the UTF-8 form of the decoded src appended
// to dst if src is not empty. If src is empty dst is returned as-is.
func (c *Codec) AppendDecodeToString(dst []byte, src []byte) []byte {
	if len(src) == 0 {
		return dst
	}

	dst = slices.Grow(dst, len(src))

	return c.appendDecodeUTF8(dst, src)
}

// Decoder is a decoding session over a Codec. Like Encoder it carries no
// state between writes.
type Decoder struct {
	c *Codec
}

// Decoder returns a new decoding session.
func (c *Codec) Decoder() Decoder {
	return Decoder{c}
}

// Write returns the decoded form of src.
func (d Decoder) Write(src []byte) []uint16 {
	return d.c.Decode(src)
}

// WriteString returns the decoded form of src as a UTF-8 string.
func (d Decoder) WriteString(src []byte) string {
	return d.c.DecodeToString(src)
}

// End flushes the session. It never returns any code units.
func (d Decoder) End() []uint16 {
	return nil
}
