// A single-byte character set (SBCS) transcoder.

// Each codec is defined by a table of 256 UTF-16 code units where the index
// is the byte value and the value is the code unit that byte decodes to. A
// table of 128 code units describes only the upper half; the lower half is
// then plain ASCII.
//
// Encoding is lossy by design: any code unit that is not present in the table
// is replaced with the codec's default byte instead of failing. Decoding is a
// total function since every byte value has an entry in the table.
//
// Surrogate code units are never paired. A rune above U+FFFF is two code
// units and therefore encodes to two bytes.

package sbcs

import (
	"errors"
	"strconv"
)

const (
	// DefaultSubstitute is the substitution byte conventionally used by
	// legacy single byte encoders. It is never applied implicitly, callers
	// pass it as Definition.DefaultByte.
	DefaultSubstitute = byte('?')

	charsLen      = 256
	charsHalfLen  = 128
	codeUnitRange = 1 << 16
)

var (
	ErrConfiguration = errors.New("sbcs: invalid codec configuration")

	ErrUnknownEncoding   = errors.New("sbcs: unknown encoding")
	ErrDuplicateEncoding = errors.New("sbcs: encoding already registered")
	ErrRegistryFrozen    = errors.New("sbcs: registry is frozen")
	ErrInvalidName       = errors.New("sbcs: invalid encoding name")
)

// ConfigurationError is returned by New when a Definition cannot produce a
// codec. It always satisfies errors.Is(err, ErrConfiguration).
type ConfigurationError struct {
	// Name is the Definition's name, used only for messages.
	Name string
	// Len is the length of the supplied chars.
	Len int
	// Missing is true when no chars were supplied at all.
	Missing bool
}

func (e *ConfigurationError) Error() string {
	if e.Missing {
		return "sbcs: encoding " + strconv.Quote(e.Name) + " is missing chars"
	}

	return "sbcs: encoding " + strconv.Quote(e.Name) + " has incorrect chars (must be of len 128 or 256, got " + strconv.Itoa(e.Len) + ")"
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// Definition declares a single byte character set.
type Definition struct {
	// Name identifies the encoding in errors and in a Registry.
	Name string

	// Chars maps byte values to UTF-16 code units. It must have a length
	// of 256, or 128 in which case bytes 0-127 decode to ASCII and Chars
	// describes bytes 128-255.
	Chars []uint16

	// DefaultByte is emitted for every code unit the table cannot encode.
	DefaultByte byte
}

// CharsFromString returns the UTF-16 code units of s, suitable for use as
// Definition.Chars when a table is written as a Go string literal.
func CharsFromString(s string) []uint16 {
	units := make([]uint16, 0, len(s))

	return appendCodeUnits(units, s)
}
