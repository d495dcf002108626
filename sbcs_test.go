package sbcs

import (
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.UintN(256))
	}
	return b
}

func randUnits(rng *rand.Rand, n int) []uint16 {
	u := make([]uint16, n)
	for i := range u {
		u[i] = uint16(rng.UintN(1 << 16))
	}
	return u
}

func TestIdentityExample(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	c := MustNew(Definition{Name: "identity", Chars: identityChars(), DefaultByte: 0x3F})

	is.Equal([]byte{0x41}, c.EncodeString("A"))
	is.Equal("A", c.DecodeToString([]byte{0x41}))
	is.Equal([]byte{0x3F}, c.Encode([]uint16{0x20AC}))
}

func TestRoundTrip_representableText(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	rng := rand.New(rand.NewPCG(1, 2))

	for _, c := range []*Codec{identityCodec, cp1251Codec, cp1251HalfCodec} {
		// the decode of any byte string is representable text
		for range 64 {
			s := c.Decode(randBytes(rng, 1+rng.IntN(300)))

			is.Equal(s, c.Decode(c.Encode(s)), c.String())
		}
	}
}

func TestLengthPreserved(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	rng := rand.New(rand.NewPCG(3, 4))

	for range 64 {
		n := rng.IntN(1000)

		is.Len(cp1251Codec.Decode(randBytes(rng, n)), n)
		is.Len(cp1251Codec.Encode(randUnits(rng, n)), n)
	}
}

func TestEncode_absentCodeUnitsUseDefault(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	present := make(map[uint16]bool, 256)
	for _, u := range cp1251Codec.decodeTab {
		present[u] = true
	}

	for u := range 1 << 16 {
		u := uint16(u)
		if present[u] {
			continue
		}

		if b := cp1251Codec.Encode([]uint16{u}); b[0] != DefaultSubstitute {
			is.Failf("unexpected encoding", "code unit %#04x encoded to %#02x", u, b[0])
			return
		}
	}
}

func TestHalfTableEquivalence(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	rng := rand.New(rand.NewPCG(5, 6))

	half := randUnits(rng, 128)

	full := make([]uint16, 0, 256)
	for i := range 128 {
		full = append(full, uint16(i))
	}
	full = append(full, half...)

	a := MustNew(Definition{Name: "half", Chars: half, DefaultByte: 0x1A})
	b := MustNew(Definition{Name: "full", Chars: full, DefaultByte: 0x1A})

	is.Equal(a.decodeTab, b.decodeTab)
	is.True(*a.encodeTab == *b.encodeTab)
	is.Equal(a.asciiEncode, b.asciiEncode)
	is.Equal(a.asciiDecode, b.asciiDecode)

	all := make([]uint16, 1<<16)
	for i := range all {
		all[i] = uint16(i)
	}
	is.Equal(b.Encode(all), a.Encode(all))
}

func TestConcurrentUseMatchesSequential(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	rng := rand.New(rand.NewPCG(7, 8))

	const workers = 16

	inputs := make([][]byte, workers)
	texts := make([][]uint16, workers)
	expDec := make([][]uint16, workers)
	expEnc := make([][]byte, workers)
	for i := range workers {
		inputs[i] = randBytes(rng, 4096)
		texts[i] = randUnits(rng, 4096)
		expDec[i] = cp1251Codec.Decode(inputs[i])
		expEnc[i] = cp1251Codec.Encode(texts[i])
	}

	gotDec := make([][]uint16, workers)
	gotEnc := make([][]byte, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range 32 {
				e, d := cp1251Codec.Encoder(), cp1251Codec.Decoder()

				gotDec[i] = d.Write(inputs[i])
				gotEnc[i] = e.Write(texts[i])
			}
		}()
	}
	wg.Wait()

	for i := range workers {
		is.True(slices.Equal(expDec[i], gotDec[i]), "worker %d decode", i)
		is.True(slices.Equal(expEnc[i], gotEnc[i]), "worker %d encode", i)
	}
}
