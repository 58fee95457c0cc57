package compress

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/format"
)

func samplePayload() []byte {
	// Repetitive enough that every codec actually shrinks it.
	return bytes.Repeat([]byte("minecraft:repeater|"), 300)
}

func TestCodecs_RoundTrip(t *testing.T) {
	original := samplePayload()

	for _, scheme := range []format.CompressionScheme{
		format.SchemeGzip,
		format.SchemeZlib,
		format.SchemeNone,
		format.SchemeLZ4,
	} {
		t.Run(scheme.String(), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			compressed, err := codec.Compress(original)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed, 0)
			require.NoError(t, err)
			require.Equal(t, original, out)
		})
	}
}

func TestNoOpCodec_CopiesInput(t *testing.T) {
	input := []byte{1, 2, 3, 4}

	out, err := NoOpCodec{}.Decompress(input, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, out)

	input[0] = 99
	require.Equal(t, []byte{1, 2, 3, 4}, out)
}

func TestGetCodec_UnsupportedScheme(t *testing.T) {
	_, err := GetCodec(format.CompressionScheme(42))
	require.ErrorIs(t, err, ErrUnsupportedScheme)

	// The custom scheme resolves by name inside the payload, never here.
	_, err = GetCodec(format.SchemeCustom)
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestDecompress_LimitExceeded(t *testing.T) {
	original := samplePayload()

	for _, scheme := range []format.CompressionScheme{
		format.SchemeGzip,
		format.SchemeZlib,
		format.SchemeNone,
		format.SchemeLZ4,
	} {
		t.Run(scheme.String(), func(t *testing.T) {
			codec, err := GetCodec(scheme)
			require.NoError(t, err)

			compressed, err := codec.Compress(original)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, int64(len(original))-1)
			require.ErrorIs(t, err, ErrLimitExceeded)

			// An exact-size cap passes.
			out, err := codec.Decompress(compressed, int64(len(original)))
			require.NoError(t, err)
			require.Equal(t, original, out)
		})
	}
}

func TestDecode_FixedSchemes(t *testing.T) {
	original := samplePayload()

	compressed, err := ZlibCodec{}.Compress(original)
	require.NoError(t, err)

	out, err := Decode(format.SchemeZlib, compressed, 0)
	require.NoError(t, err)
	require.Equal(t, original, out)
}

func TestDecode_CorruptStream(t *testing.T) {
	_, err := Decode(format.SchemeGzip, []byte{0xDE, 0xAD, 0xBE, 0xEF}, 0)
	require.Error(t, err)

	_, err = Decode(format.SchemeZlib, []byte{0xDE, 0xAD}, 0)
	require.Error(t, err)
}

func customFrame(name string, compressed []byte) []byte {
	frame := binary.BigEndian.AppendUint16(nil, uint16(len(name)))
	frame = append(frame, name...)

	return append(frame, compressed...)
}

func TestDecode_CustomZstd(t *testing.T) {
	original := samplePayload()

	codec, ok := LookupCodec("zstd")
	require.True(t, ok, "zstd registers itself at init")

	compressed, err := codec.Compress(original)
	require.NoError(t, err)

	out, err := Decode(format.SchemeCustom, customFrame("zstd", compressed), 0)
	require.NoError(t, err)
	require.Equal(t, original, out)

	// An exact-size cap passes; one byte tighter trips the limit.
	out, err = Decode(format.SchemeCustom, customFrame("zstd", compressed), int64(len(original)))
	require.NoError(t, err)
	require.Equal(t, original, out)

	_, err = Decode(format.SchemeCustom, customFrame("zstd", compressed), int64(len(original))-1)
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestDecode_CustomUnknownName(t *testing.T) {
	_, err := Decode(format.SchemeCustom, customFrame("snappy", []byte{1, 2}), 0)
	require.ErrorIs(t, err, ErrUnknownCodecName)
}

func TestDecode_CustomFrameMalformed(t *testing.T) {
	// Too short for the length prefix.
	_, err := Decode(format.SchemeCustom, []byte{0x00}, 0)
	require.ErrorIs(t, err, ErrUnknownCodecName)

	// Declared name runs past the payload.
	_, err = Decode(format.SchemeCustom, []byte{0x00, 0x09, 'z'}, 0)
	require.ErrorIs(t, err, ErrUnknownCodecName)
}

func TestRegisterCodec_ResolvedByDecode(t *testing.T) {
	RegisterCodec("test-noop", NoOpCodec{})

	out, err := Decode(format.SchemeCustom, customFrame("test-noop", []byte{7, 8}), 0)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8}, out)
}
