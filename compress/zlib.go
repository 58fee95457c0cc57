package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// ZlibCodec handles scheme 2 payloads, the default chunk compression since the
// region format was introduced. The vast majority of chunks decode through
// this codec.
type ZlibCodec struct{}

var _ Codec = (*ZlibCodec)(nil)

// NewZlibCodec creates a new zlib codec.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{}
}

// Compress zlib-frames the input data.
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib-framed payload, streaming so the output cap is
// enforced before the full payload materializes.
func (c ZlibCodec) Decompress(data []byte, maxSize int64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()

	return readCapped(r, maxSize)
}
