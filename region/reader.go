// Package region reads the sector-allocated container files (.mca/.mcr) that
// hold up to 1024 compressed chunk payloads each.
//
// A region file starts with two fixed tables: 1024 location entries (3-byte
// big-endian sector offset + 1-byte sector count, zero meaning the slot is
// absent), then 1024 big-endian last-modified timestamps. Chunk records live
// in 4096-byte sectors after the header, each framed as a 4-byte big-endian
// length and a 1-byte compression scheme followed by length-1 payload bytes.
//
// Reading is lazy: NewReader only parses the header, and Chunks yields decoded
// roots one slot at a time. One corrupt chunk record surfaces as an Entry
// error and never aborts the remaining slots.
package region

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"os"
	"time"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/internal/pool"
	"github.com/arloliu/anvil/nbt"
)

const (
	// SectorSize is the allocation unit of a region file.
	SectorSize = 4096
	// HeaderSize covers the location table and the timestamp table.
	HeaderSize = 2 * SectorSize
	// Slots is the number of chunk slots per region file.
	Slots = 1024
	// Width is the region side length in chunks.
	Width = 32

	// chunkFrameSize is the per-record prefix: 4-byte length + scheme byte.
	chunkFrameSize = 5
)

// DefaultMaxDecompressedSize caps one chunk's decompressed payload. Real chunk
// payloads stay well under 2MiB; the cap only exists to stop decompression
// bombs.
const DefaultMaxDecompressedSize = 16 * 1024 * 1024

type location struct {
	offset  uint32 // in sectors from file start
	sectors uint8
}

type config struct {
	maxDecompressedSize int64
}

// Option configures a Reader.
type Option = options.Option[*config]

// WithMaxDecompressedSize caps the decompressed size of a single chunk
// payload. Values of zero or less disable the cap.
func WithMaxDecompressedSize(n int64) Option {
	return options.NoError(func(c *config) {
		c.maxDecompressedSize = n
	})
}

// Reader decodes chunk records from one region byte source. It never mutates
// the source and keeps no per-chunk state, so it is safe for concurrent use
// once constructed.
type Reader struct {
	src        io.ReaderAt
	size       int64
	cfg        config
	closer     io.Closer
	locations  [Slots]location
	timestamps [Slots]uint32
}

// NewReader parses the region header from src and returns a lazy reader over
// its chunk slots. The source must be at least HeaderSize bytes or the whole
// file is rejected with ErrInvalidRegion.
func NewReader(src io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	r := &Reader{
		src:  src,
		size: size,
		cfg:  config{maxDecompressedSize: DefaultMaxDecompressedSize},
	}
	if err := options.Apply(&r.cfg, opts...); err != nil {
		return nil, err
	}

	if size < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for header tables", ErrInvalidRegion, size, HeaderSize)
	}

	var header [HeaderSize]byte
	if _, err := r.src.ReadAt(header[:], 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %s", ErrInvalidRegion, err)
	}

	for i := range Slots {
		entry := binary.BigEndian.Uint32(header[i*4:])
		r.locations[i] = location{offset: entry >> 8, sectors: uint8(entry)}
		r.timestamps[i] = binary.BigEndian.Uint32(header[SectorSize+i*4:])
	}

	return r, nil
}

// Open opens a region file from disk. The caller owns the returned reader and
// must Close it.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	r, err := NewReader(f, info.Size(), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

// Close releases the underlying file when the reader came from Open; it is a
// no-op for readers over caller-owned sources.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

func slotIndex(x, z int) int {
	return (x & (Width - 1)) + (z&(Width-1))*Width
}

// Has reports whether the slot at local chunk coordinates (x, z) holds a chunk.
func (r *Reader) Has(x, z int) bool {
	loc := r.locations[slotIndex(x, z)]
	return loc.offset != 0
}

// Timestamp returns the last-modified time recorded for the slot at (x, z),
// or the zero time for absent slots.
func (r *Reader) Timestamp(x, z int) time.Time {
	ts := r.timestamps[slotIndex(x, z)]
	if ts == 0 {
		return time.Time{}
	}

	return time.Unix(int64(ts), 0).UTC()
}

// Payload reads and decompresses the chunk record at (x, z), returning the raw
// NBT bytes. Absent slots fail with ErrChunkAbsent; records whose declared
// lengths do not fit their sector allocation or the file fail with
// ErrTruncatedChunk.
func (r *Reader) Payload(x, z int) ([]byte, error) {
	loc := r.locations[slotIndex(x, z)]
	if loc.offset == 0 {
		return nil, fmt.Errorf("%w: slot (%d, %d)", ErrChunkAbsent, x&(Width-1), z&(Width-1))
	}

	start := int64(loc.offset) * SectorSize
	allocated := int64(loc.sectors) * SectorSize
	if start+allocated > r.size {
		return nil, fmt.Errorf("%w: sectors [%d, %d) extend past %d-byte file",
			ErrTruncatedChunk, start, start+allocated, r.size)
	}

	var frame [chunkFrameSize]byte
	if _, err := r.src.ReadAt(frame[:], start); err != nil {
		return nil, fmt.Errorf("%w: reading record frame: %s", ErrTruncatedChunk, err)
	}

	length := binary.BigEndian.Uint32(frame[:4])
	scheme := format.CompressionScheme(frame[4])
	if length == 0 {
		return nil, fmt.Errorf("%w: zero-length record", ErrTruncatedChunk)
	}
	if int64(length) > allocated-1 {
		return nil, fmt.Errorf("%w: declared length %d exceeds %d allocated sectors",
			ErrTruncatedChunk, length, loc.sectors)
	}

	payloadLen := int(length) - 1 // length counts the scheme byte
	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	payload := buf.Resize(payloadLen)
	if _, err := r.src.ReadAt(payload, start+chunkFrameSize); err != nil {
		return nil, fmt.Errorf("%w: reading %d payload bytes: %s", ErrTruncatedChunk, payloadLen, err)
	}

	return compress.Decode(scheme, payload, r.cfg.maxDecompressedSize)
}

// ReadRoot decodes the chunk record at (x, z) into its root compound.
func (r *Reader) ReadRoot(x, z int) (*nbt.Compound, error) {
	payload, err := r.Payload(x, z)
	if err != nil {
		return nil, err
	}

	return nbt.Decode(payload)
}

// Entry is one present chunk slot yielded by Chunks: either a decoded root or
// the error that made this single slot undecodable.
type Entry struct {
	X, Z int // local chunk coordinates in [0, Width)
	Root *nbt.Compound
	Err  error
}

// Chunks returns a lazy, restartable sequence over the present chunk slots in
// slot order (z-major). Absent slots are skipped without an Entry; a corrupt
// record yields an Entry with Err set and iteration continues, so one bad
// chunk never hides the other 1023.
func (r *Reader) Chunks() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := range Slots {
			if r.locations[i].offset == 0 {
				continue
			}

			x, z := i%Width, i/Width
			root, err := r.ReadRoot(x, z)
			if !yield(Entry{X: x, Z: z, Root: root, Err: err}) {
				return
			}
		}
	}
}
