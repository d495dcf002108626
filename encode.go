package sbcs

import (
	"slices"
	"unicode/utf16"

	"github.com/segmentio/asm/ascii"
)

func (c *Codec) encode(dst []byte, src []uint16) {
	dst = dst[:len(src)]
	enc := c.encodeTab

	for i, u := range src {
		dst[i] = enc[u]
	}
}

// pure ASCII input is copied as-is when the table maps ASCII to itself
func (c *Codec) appendEncodeString(dst []byte, s string) []byte {
	if c.asciiEncode && ascii.ValidString(s) {
		return append(dst, s...)
	}

	enc := c.encodeTab
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			dst = append(dst, enc[uint16(r1)], enc[uint16(r2)])
			continue
		}

		dst = append(dst, enc[uint16(r)])
	}

	return dst
}

// EncodeInto fills dst with the encoded form of src and returns the number of
// bytes written, which is always len(src).
//
// This function panics if dst does not have enough space in the slice for
// the encoded form of src.
func (c *Codec) EncodeInto(dst []byte, src []uint16) int {
	// guard statement forcing a panic with a clear message rather than
	// an index out of range from the loop

	if len(dst) < len(src) {
		panic("sbcs: encode destination too short")
	}

	c.encode(dst, src)

	return len(src)
}

// Encode returns nil if src is empty, otherwise it returns the
// encoded form of src. The result always has the same length as src.
func (c *Codec) Encode(src []uint16) []byte {
	n := len(src)
	if n == 0 {
		return nil
	}

	dst := make([]byte, n)

	c.encode(dst, src)

	return dst
}

// EncodeString returns nil if s is empty, otherwise it returns the encoded
// form of the UTF-16 code units of s.
//
// Runes above U+FFFF are two code units and produce two bytes. Invalid UTF-8
// is read as U+FFFD, one code unit per invalid byte.
func (c *Codec) EncodeString(s string) []byte {
	if len(s) == 0 {
		return nil
	}

	// len(s) bytes of UTF-8 never hold more than len(s) code units
	return c.appendEncodeString(make([]byte, 0, len(s)), s)
}

// AppendEncode returns the encoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (c *Codec) AppendEncode(dst []byte, src []uint16) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	orig := len(dst)

	dst = slices.Grow(dst, n)
	dst = dst[:orig+n]

	c.encode(dst[orig:], src)

	return dst
}

// AppendEncodeString returns the encoded form of s appended to dst
// if s is not empty. If s is empty dst is returned as-is.
func (c *Codec) AppendEncodeString(dst []byte, s string) []byte {
	if len(s) == 0 {
		return dst
	}

	dst = slices.Grow(dst, len(s))

	return c.appendEncodeString(dst, s)
}

// Encoder is an encoding session over a Codec. It holds no state besides the
// codec, so sessions are cheap to create and may be discarded at any point.
type Encoder struct {
	c *Codec
}

// Encoder returns a new encoding session.
func (c *Codec) Encoder() Encoder {
	return Encoder{c}
}

// Write returns the encoded form of src.
func (e Encoder) Write(src []uint16) []byte {
	return e.c.Encode(src)
}

// WriteString returns the encoded form of s.
func (e Encoder) WriteString(s string) []byte {
	return e.c.EncodeString(s)
}

// End flushes the session. Single byte encodings carry nothing between
// writes so it never returns any bytes.
func (e Encoder) End() []byte {
	return nil
}
