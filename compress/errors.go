package compress

import "errors"

var (
	// ErrUnsupportedScheme indicates an unrecognized compression scheme tag.
	ErrUnsupportedScheme = errors.New("unsupported compression scheme")
	// ErrLimitExceeded indicates decompressed output exceeded the configured cap.
	ErrLimitExceeded = errors.New("decompression limit exceeded")
	// ErrUnknownCodecName indicates a custom-scheme codec name with no
	// registered codec.
	ErrUnknownCodecName = errors.New("unknown codec name")
)
