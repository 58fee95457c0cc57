package compress

// ZstdCodec is the codec registered under the custom-scheme name "zstd".
//
// Zstandard has no fixed scheme tag in the region format; worlds written with
// it use scheme 127 with the codec name in the payload. The implementation is
// selected at build time: valyala/gozstd when cgo is available, the pure-Go
// klauspost/compress/zstd otherwise (see zstd_cgo.go and zstd_pure.go).
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

func init() {
	RegisterCodec("zstd", ZstdCodec{})
}
