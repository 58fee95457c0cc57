package chunk

import "errors"

var (
	// ErrBadChunk indicates a root compound missing the fields every chunk
	// must carry (position, sections container).
	ErrBadChunk = errors.New("malformed chunk")
	// ErrBadSection indicates section data that is present but structurally
	// wrong: a packed index outside the palette, or a states array too short
	// for 4096 positions.
	ErrBadSection = errors.New("malformed section data")
)
