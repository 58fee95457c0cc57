package nbt

import "errors"

var (
	// ErrTruncated indicates the input ended before a declared payload length.
	ErrTruncated = errors.New("truncated tag data")
	// ErrUnknownTag indicates an unrecognized tag kind byte.
	ErrUnknownTag = errors.New("unknown tag kind")
	// ErrMalformedLength indicates a negative or structurally impossible
	// declared length for a list, array, or nesting depth.
	ErrMalformedLength = errors.New("malformed length")
	// ErrRootNotCompound indicates the top-level tag is not a compound.
	ErrRootNotCompound = errors.New("root tag is not a compound")
)
