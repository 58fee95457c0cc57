package chunk

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/anvil/format"
)

// BitsFor returns the packed index width for a palette of the given length:
// the bits needed to represent paletteLen-1, clamped to a minimum of 4.
func BitsFor(paletteLen int) int {
	n := bits.Len(uint(paletteLen - 1))
	if n < 4 {
		n = 4
	}

	return n
}

// Unpack decodes count fixed-width indices from 64-bit storage words.
//
// PackingPadded stores floor(64/width) indices per word from low bit to high
// bit; an index never spans two words and leftover high bits are padding.
// PackingSpanning packs indices back to back across the whole stream, so an
// index may straddle a word boundary. Getting the rule wrong silently decodes
// wrong block identities, which is why it is an explicit parameter rather
// than a guess.
//
// Fails with ErrBadSection when the width is outside [1, 16] or the words do
// not cover count indices under the given rule.
func Unpack(words []uint64, width, count int, rule format.PackingRule) ([]uint16, error) {
	if width < 1 || width > 16 {
		return nil, fmt.Errorf("%w: index width %d outside [1, 16]", ErrBadSection, width)
	}

	var need int
	if rule == format.PackingPadded {
		per := 64 / width
		need = (count + per - 1) / per
	} else {
		need = (count*width + 63) / 64
	}
	if len(words) < need {
		return nil, fmt.Errorf("%w: %d words cannot hold %d indices of width %d (%s packing needs %d)",
			ErrBadSection, len(words), count, width, rule, need)
	}

	out := make([]uint16, count)
	mask := uint64(1)<<width - 1

	if rule == format.PackingPadded {
		per := 64 / width
		for i := range count {
			word := words[i/per]
			shift := (i % per) * width
			out[i] = uint16(word >> shift & mask)
		}

		return out, nil
	}

	for i := range count {
		bit := i * width
		word, off := bit/64, bit%64
		v := words[word] >> off
		if off+width > 64 {
			v |= words[word+1] << (64 - off)
		}
		out[i] = uint16(v & mask)
	}

	return out, nil
}
