package compress

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/anvil/format"
)

// Compressor compresses a chunk payload.
//
// Decoding a world never needs compression; the interface exists so tests and
// tooling can produce the same framings the decoder consumes.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a chunk payload.
//
// maxSize caps the decompressed output size; a result that would grow past it
// fails with ErrLimitExceeded. A maxSize of zero or less disables the cap.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified and may be pooled or reused after return
//
// Thread safety: implementations are stateless or internally pooled and safe
// for concurrent use.
type Decompressor interface {
	Decompress(data []byte, maxSize int64) ([]byte, error)
}

// Codec combines both directions for one compression scheme.
type Codec interface {
	Compressor
	Decompressor
}

// GetCodec returns the codec for a fixed compression scheme.
//
// SchemeCustom has no fixed codec (the codec name travels in the payload);
// resolving it is Decode's job, so requesting it here fails.
func GetCodec(scheme format.CompressionScheme) (Codec, error) {
	switch scheme {
	case format.SchemeGzip:
		return GzipCodec{}, nil
	case format.SchemeZlib:
		return ZlibCodec{}, nil
	case format.SchemeNone:
		return NoOpCodec{}, nil
	case format.SchemeLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedScheme, uint8(scheme))
	}
}

// Decode decompresses one chunk payload according to its scheme tag.
//
// For SchemeCustom the payload starts with a 2-byte big-endian length and that
// many bytes of codec name, resolved against the registry; the remainder is
// the compressed data.
func Decode(scheme format.CompressionScheme, payload []byte, maxSize int64) ([]byte, error) {
	if scheme == format.SchemeCustom {
		name, rest, err := splitCodecName(payload)
		if err != nil {
			return nil, err
		}

		codec, ok := LookupCodec(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodecName, name)
		}

		return codec.Decompress(rest, maxSize)
	}

	codec, err := GetCodec(scheme)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(payload, maxSize)
}

func splitCodecName(payload []byte) (string, []byte, error) {
	if len(payload) < 2 {
		return "", nil, fmt.Errorf("%w: truncated name prefix", ErrUnknownCodecName)
	}

	n := int(binary.BigEndian.Uint16(payload))
	if len(payload)-2 < n {
		return "", nil, fmt.Errorf("%w: name length %d exceeds payload", ErrUnknownCodecName, n)
	}

	return string(payload[2 : 2+n]), payload[2+n:], nil
}

var registry = struct {
	sync.RWMutex
	codecs map[string]Codec
}{codecs: make(map[string]Codec)}

// RegisterCodec installs a codec for the custom scheme under the given name,
// replacing any previous registration. Safe for concurrent use, though
// registration normally happens at init time.
func RegisterCodec(name string, codec Codec) {
	registry.Lock()
	defer registry.Unlock()
	registry.codecs[name] = codec
}

// LookupCodec returns the codec registered under name.
func LookupCodec(name string) (Codec, bool) {
	registry.RLock()
	defer registry.RUnlock()
	codec, ok := registry.codecs[name]

	return codec, ok
}

// readCapped drains r and fails with ErrLimitExceeded once the output grows
// past maxSize. Shared by the stream-framed codecs (gzip, zlib, lz4).
func readCapped(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}

	limited := io.LimitReader(r, maxSize+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: output exceeds %d bytes", ErrLimitExceeded, maxSize)
	}

	return out, nil
}

// capResult enforces maxSize for block codecs that decode in one shot.
func capResult(out []byte, maxSize int64) ([]byte, error) {
	if maxSize > 0 && int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: output %d exceeds %d bytes", ErrLimitExceeded, len(out), maxSize)
	}

	return out, nil
}
