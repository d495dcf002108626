package sbcs

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf8Enc holds a code unit's UTF-8 encoding in data[:len].
type utf8Enc struct {
	len  uint8
	data [3]byte
}

// Codec transcodes between UTF-16 code units and a single byte character set.
//
// A Codec is immutable once New returns it and is safe for concurrent use by
// any number of goroutines.
type Codec struct {
	name        string
	defaultByte byte

	// asciiEncode and asciiDecode report whether the lower half of the
	// respective table is the identity mapping.
	asciiEncode bool
	asciiDecode bool

	decodeTab  [charsLen]uint16
	decodeUTF8 [charsLen]utf8Enc
	encodeTab  *[codeUnitRange]byte
}

// New builds the lookup tables described by def.
//
// A *ConfigurationError is returned if def.Chars is nil or its length is not
// 128 or 256.
func New(def Definition) (*Codec, error) {
	if def.Chars == nil {
		return nil, &ConfigurationError{Name: def.Name, Missing: true}
	}

	if n := len(def.Chars); n != charsLen && n != charsHalfLen {
		return nil, &ConfigurationError{Name: def.Name, Len: n}
	}

	c := &Codec{
		name:        def.Name,
		defaultByte: def.DefaultByte,
	}
	c.buildTables(def.Chars, def.DefaultByte)

	return c, nil
}

// MustNew is like New but panics if def is invalid. It is intended for
// package level codec variables.
func MustNew(def Definition) *Codec {
	c, err := New(def)
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Codec) buildTables(chars []uint16, defaultByte byte) {
	dec := &c.decodeTab

	if len(chars) == charsHalfLen {
		for i := range charsHalfLen {
			dec[i] = uint16(i)
		}
		copy(dec[charsHalfLen:], chars)
	} else {
		copy(dec[:], chars)
	}

	enc := new([codeUnitRange]byte)
	for i := range enc {
		enc[i] = defaultByte
	}

	// duplicate code units resolve to the highest byte value
	for i, u := range dec {
		enc[u] = byte(i)
	}

	for i, u := range dec {
		r := rune(u)
		if utf16.IsSurrogate(r) {
			r = utf8.RuneError
		}

		x := &c.decodeUTF8[i]
		x.len = uint8(utf8.EncodeRune(x.data[:], r))
	}

	c.asciiEncode, c.asciiDecode = true, true
	for i := range utf8.RuneSelf {
		if enc[i] != byte(i) {
			c.asciiEncode = false
		}
		if dec[i] != uint16(i) {
			c.asciiDecode = false
		}
	}

	c.encodeTab = enc
}

// String returns the codec's name.
func (c *Codec) String() string {
	return c.name
}

// DefaultByte returns the byte emitted for unmappable code units.
func (c *Codec) DefaultByte() byte {
	return c.defaultByte
}

// DecodeByte returns the code unit the byte b decodes to.
func (c *Codec) DecodeByte(b byte) uint16 {
	return c.decodeTab[b]
}

// EncodeCodeUnit returns the byte u encodes to and whether u is present in
// the table. When ok is false the returned byte is the default byte.
func (c *Codec) EncodeCodeUnit(u uint16) (b byte, ok bool) {
	b = c.encodeTab[u]

	return b, c.decodeTab[b] == u
}

func appendCodeUnits(dst []uint16, s string) []uint16 {
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			dst = append(dst, uint16(r1), uint16(r2))
			continue
		}

		dst = append(dst, uint16(r))
	}

	return dst
}
