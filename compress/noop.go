package compress

// NoOpCodec handles scheme 3 payloads: chunks stored uncompressed.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new passthrough codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns a copy of the input data.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

// Decompress returns a copy of the input data. The copy matters: the region
// reader hands in a pooled scratch buffer, and the result must outlive it.
func (c NoOpCodec) Decompress(data []byte, maxSize int64) ([]byte, error) {
	if _, err := capResult(data, maxSize); err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}
