package sbcs

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var _ encoding.Encoding = (*Codec)(nil)

// NewDecoder implements the encoding.Encoding interface. The decoder
// transforms legacy bytes to UTF-8.
func (c *Codec) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: codecDecoder{codec: c}}
}

// NewEncoder implements the encoding.Encoding interface. The encoder
// transforms UTF-8 to legacy bytes and, unlike the golang.org/x/text
// charmaps, substitutes the default byte for unmappable runes without
// reporting an error.
func (c *Codec) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: codecEncoder{codec: c}}
}

// codecDecoder implements transform.Transformer by decoding to UTF-8.
type codecDecoder struct {
	transform.NopResetter
	codec *Codec
}

func (m codecDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for i, b := range src {
		x := &m.codec.decodeUTF8[b]
		n := int(x.len)
		if nDst+n > len(dst) {
			err = transform.ErrShortDst
			break
		}

		copy(dst[nDst:], x.data[:n])
		nDst += n
		nSrc = i + 1
	}

	return nDst, nSrc, err
}

// codecEncoder implements transform.Transformer by encoding from UTF-8.
type codecEncoder struct {
	transform.NopResetter
	codec *Codec
}

func (m codecEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	enc := m.codec.encodeTab

	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1

		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRune(src[nSrc:])
			if size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
				// wait for the rest of the rune
				err = transform.ErrShortSrc
				break
			}
		}

		if r >= 0x10000 {
			if nDst+2 > len(dst) {
				err = transform.ErrShortDst
				break
			}

			r1, r2 := utf16.EncodeRune(r)
			dst[nDst] = enc[uint16(r1)]
			dst[nDst+1] = enc[uint16(r2)]
			nDst += 2
			nSrc += size
			continue
		}

		if nDst >= len(dst) {
			err = transform.ErrShortDst
			break
		}

		dst[nDst] = enc[uint16(r)]
		nDst++
		nSrc += size
	}

	return nDst, nSrc, err
}
