package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/format"
)

func TestBitsFor(t *testing.T) {
	for _, tc := range []struct {
		paletteLen int
		want       int
	}{
		{1, 4},
		{2, 4},
		{16, 4},
		{17, 5},
		{32, 5},
		{33, 6},
		{256, 8},
		{257, 9},
	} {
		require.Equal(t, tc.want, BitsFor(tc.paletteLen), "palette of %d", tc.paletteLen)
	}
}

func TestUnpack_Padded(t *testing.T) {
	// Width 5: 12 indices per word, bits 60..63 are padding. The first word
	// holds indices 0..11 from low bit to high bit.
	word := uint64(0)
	values := []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for i, v := range values {
		word |= uint64(v) << (i * 5)
	}
	// Garbage in the padding bits must be ignored.
	word |= 0xF << 60

	out, err := Unpack([]uint64{word, uint64(13) | uint64(14)<<5}, 5, 14, format.PackingPadded)
	require.NoError(t, err)
	require.Equal(t, append(values, 13, 14), out)
}

func TestUnpack_SpanningCrossesWords(t *testing.T) {
	// Width 5 spanning: index 12 occupies bits 60..64, straddling the word
	// boundary. Value 0b10011 puts ones on both sides of the split.
	var words [2]uint64
	values := make([]uint16, 13)
	for i := range 12 {
		values[i] = uint16(i + 1)
		words[0] |= uint64(i+1) << (i * 5)
	}
	values[12] = 0b10011
	straddler := uint64(0b10011)
	words[0] |= straddler << 60 // low 4 bits
	words[1] = straddler >> 4   // high bit

	out, err := Unpack(words[:], 5, 13, format.PackingSpanning)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestUnpack_RuleChangesDecoding(t *testing.T) {
	// The same words decode differently under each rule once indices would
	// straddle a word under spanning.
	words := make([]uint64, 2)
	words[0] = ^uint64(0)

	padded, err := Unpack(words, 5, 13, format.PackingPadded)
	require.NoError(t, err)
	spanning, err := Unpack(words, 5, 13, format.PackingSpanning)
	require.NoError(t, err)
	require.NotEqual(t, padded, spanning)
}

func TestUnpack_WidthBounds(t *testing.T) {
	_, err := Unpack([]uint64{0}, 0, 1, format.PackingPadded)
	require.ErrorIs(t, err, ErrBadSection)

	_, err = Unpack([]uint64{0}, 17, 1, format.PackingPadded)
	require.ErrorIs(t, err, ErrBadSection)
}

func TestUnpack_ShortInput(t *testing.T) {
	// 4096 indices at width 4 need 256 padded words.
	words := make([]uint64, 255)

	_, err := Unpack(words, 4, SectionVolume, format.PackingPadded)
	require.ErrorIs(t, err, ErrBadSection)

	_, err = Unpack(words, 4, SectionVolume, format.PackingSpanning)
	require.ErrorIs(t, err, ErrBadSection)
}

func TestUnpack_FullSectionWidth4(t *testing.T) {
	// Width 4 is the one width where padded and spanning coincide: 16 indices
	// per word with no leftover bits.
	words := make([]uint64, 256)
	for i := range words {
		for j := range 16 {
			words[i] |= uint64((i+j)%16) << (j * 4)
		}
	}

	padded, err := Unpack(words, 4, SectionVolume, format.PackingPadded)
	require.NoError(t, err)
	spanning, err := Unpack(words, 4, SectionVolume, format.PackingSpanning)
	require.NoError(t, err)
	require.Equal(t, padded, spanning)
	require.Equal(t, uint16(5), padded[5])
	require.Equal(t, uint16((255+15)%16), padded[4095])
}
