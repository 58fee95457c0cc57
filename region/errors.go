package region

import "errors"

var (
	// ErrInvalidRegion indicates a malformed or too-short region header.
	// Fatal to the file, never to a multi-file scan.
	ErrInvalidRegion = errors.New("invalid region file")
	// ErrTruncatedChunk indicates a chunk record whose sector range or
	// declared length extends past the available bytes. The chunk is skipped;
	// sibling slots remain readable.
	ErrTruncatedChunk = errors.New("truncated chunk record")
	// ErrChunkAbsent indicates a slot with a zero location entry.
	ErrChunkAbsent = errors.New("chunk absent")
)
