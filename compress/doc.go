// Package compress decompresses region chunk payloads.
//
// Each chunk record in a region file carries a one-byte compression scheme tag
// ahead of its payload (see format.CompressionScheme):
//
//   - 1: gzip-framed (rare, written by very old servers)
//   - 2: zlib-framed (the common case)
//   - 3: uncompressed passthrough
//   - 4: LZ4-framed (24w04a and later)
//   - 127: custom, the payload starts with a length-prefixed codec name that is
//     resolved against the package registry (24w05a and later)
//
// The package has no knowledge of tag structure; it turns compressed bytes
// into plain bytes and nothing else.
//
// # Decompression Limits
//
// Every Decompress call takes a maximum output size. Region files are
// untrusted input, and a few hundred bytes of zlib can inflate to gigabytes;
// exceeding the cap fails with ErrLimitExceeded instead of exhausting memory.
// A cap of zero or less disables the guard.
//
// # Custom Codecs
//
// RegisterCodec installs a codec under a name used by scheme 127. A "zstd"
// codec is registered by default, backed by valyala/gozstd when cgo is
// available and by klauspost/compress/zstd otherwise.
package compress
