package sbcs

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// FromCharmap returns the Definition of one of the golang.org/x/text
// charmaps. Bytes the charmap leaves undefined decode to U+FFFD.
func FromCharmap(cm *charmap.Charmap, defaultByte byte) Definition {
	chars := make([]uint16, charsLen)

	for i := range chars {
		r := cm.DecodeByte(byte(i))
		if r >= 0x10000 {
			r = utf8.RuneError
		}

		chars[i] = uint16(r)
	}

	return Definition{
		Name:        cm.String(),
		Chars:       chars,
		DefaultByte: defaultByte,
	}
}
