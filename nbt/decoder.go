package nbt

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/anvil/format"
)

// maxDepth bounds list/compound nesting. The vanilla codec enforces the same
// limit, and it keeps a hostile payload from exhausting the stack.
const maxDepth = 512

// Decode parses a root NBT document and returns its compound payload,
// discarding the root name. The input must hold exactly one named root tag of
// kind TagCompound; this is the entry point for decompressed chunk payloads.
//
// The returned tree owns all of its data: nothing in it aliases data, so the
// input buffer may be pooled or reused once Decode returns.
func Decode(data []byte) (*Compound, error) {
	_, root, err := DecodeNamed(data)
	return root, err
}

// DecodeNamed is Decode but also returns the root tag's name, which is usually
// empty for chunk payloads but meaningful for standalone .nbt files.
func DecodeNamed(data []byte) (string, *Compound, error) {
	d := &decoder{data: data}

	kind, err := d.readKind()
	if err != nil {
		return "", nil, err
	}
	if kind != format.TagCompound {
		return "", nil, fmt.Errorf("%w: found %s at offset 0", ErrRootNotCompound, kind)
	}

	name, err := d.readString()
	if err != nil {
		return "", nil, err
	}

	root, err := d.readCompound(0)
	if err != nil {
		return "", nil, err
	}

	return name, root, nil
}

// decoder is a cursor over one immutable byte slice. Every read advances off
// past exactly the bytes consumed; no state survives across Decode calls.
type decoder struct {
	data []byte
	off  int
}

func (d *decoder) remaining() int { return len(d.data) - d.off }

func (d *decoder) take(n int) ([]byte, error) {
	if n > d.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, d.off, d.remaining())
	}

	b := d.data[d.off : d.off+n]
	d.off += n

	return b, nil
}

func (d *decoder) readKind() (format.TagType, error) {
	b, err := d.take(1)
	if err != nil {
		return format.TagEnd, err
	}

	kind := format.TagType(b[0])
	if !kind.Valid() {
		return format.TagEnd, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownTag, b[0], d.off-1)
	}

	return kind, nil
}

func (d *decoder) readUint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readInt32() (int32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) readUint64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// readString reads a 2-byte unsigned length followed by that many bytes of
// modified UTF-8. The bytes are not validated beyond length framing.
func (d *decoder) readString() (string, error) {
	n, err := d.readUint16()
	if err != nil {
		return "", err
	}

	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// readCount reads the signed 4-byte element count used by lists and arrays,
// rejecting negative values and counts that cannot fit in the remaining input
// given elemSize bytes per element.
func (d *decoder) readCount(elemSize int) (int, error) {
	n, err := d.readInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d at offset %d", ErrMalformedLength, n, d.off-4)
	}
	if elemSize > 0 && int(n) > d.remaining()/elemSize {
		return 0, fmt.Errorf("%w: count %d exceeds remaining input at offset %d", ErrTruncated, n, d.off-4)
	}

	return int(n), nil
}

// readCompound reads (kind, name, payload) triples until a TagEnd kind byte.
func (d *decoder) readCompound(depth int) (*Compound, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformedLength, maxDepth)
	}

	c := NewCompound()
	for {
		kind, err := d.readKind()
		if err != nil {
			return nil, err
		}
		if kind == format.TagEnd {
			return c, nil
		}

		name, err := d.readString()
		if err != nil {
			return nil, err
		}

		tag, err := d.readPayload(kind, depth+1)
		if err != nil {
			return nil, err
		}

		c.Set(name, tag)
	}
}

// readList reads one element-kind byte and a count, then that many payloads of
// the declared kind with no per-element kind or name prefixes.
func (d *decoder) readList(depth int) (Tag, error) {
	if depth > maxDepth {
		return Tag{}, fmt.Errorf("%w: nesting deeper than %d", ErrMalformedLength, maxDepth)
	}

	elem, err := d.readKind()
	if err != nil {
		return Tag{}, err
	}

	// Every element carries at least one byte of payload except TagEnd, which
	// is only legal for an empty list.
	elemSize := 1
	if elem == format.TagEnd {
		elemSize = 0
	}

	count, err := d.readCount(elemSize)
	if err != nil {
		return Tag{}, err
	}
	if elem == format.TagEnd && count > 0 {
		return Tag{}, fmt.Errorf("%w: list of %d End elements at offset %d", ErrMalformedLength, count, d.off)
	}

	elems := make([]Tag, 0, count)
	for range count {
		t, err := d.readPayload(elem, depth+1)
		if err != nil {
			return Tag{}, err
		}
		elems = append(elems, t)
	}

	return ListTag(elem, elems), nil
}

func (d *decoder) readPayload(kind format.TagType, depth int) (Tag, error) {
	switch kind {
	case format.TagByte:
		b, err := d.take(1)
		if err != nil {
			return Tag{}, err
		}

		return ByteTag(int8(b[0])), nil

	case format.TagShort:
		v, err := d.readUint16()
		if err != nil {
			return Tag{}, err
		}

		return ShortTag(int16(v)), nil

	case format.TagInt:
		v, err := d.readInt32()
		if err != nil {
			return Tag{}, err
		}

		return IntTag(v), nil

	case format.TagLong:
		v, err := d.readUint64()
		if err != nil {
			return Tag{}, err
		}

		return LongTag(int64(v)), nil

	case format.TagFloat:
		b, err := d.take(4)
		if err != nil {
			return Tag{}, err
		}

		return Tag{kind: format.TagFloat, num: uint64(binary.BigEndian.Uint32(b))}, nil

	case format.TagDouble:
		v, err := d.readUint64()
		if err != nil {
			return Tag{}, err
		}

		return Tag{kind: format.TagDouble, num: v}, nil

	case format.TagByteArray:
		count, err := d.readCount(1)
		if err != nil {
			return Tag{}, err
		}
		b, err := d.take(count)
		if err != nil {
			return Tag{}, err
		}

		// Copied so the tree never aliases the input buffer.
		out := make([]byte, count)
		copy(out, b)

		return ByteArrayTag(out), nil

	case format.TagString:
		s, err := d.readString()
		if err != nil {
			return Tag{}, err
		}

		return StringTag(s), nil

	case format.TagList:
		return d.readList(depth)

	case format.TagCompound:
		c, err := d.readCompound(depth)
		if err != nil {
			return Tag{}, err
		}

		return CompoundTag(c), nil

	case format.TagIntArray:
		count, err := d.readCount(4)
		if err != nil {
			return Tag{}, err
		}
		b, err := d.take(count * 4)
		if err != nil {
			return Tag{}, err
		}

		out := make([]int32, count)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
		}

		return IntArrayTag(out), nil

	case format.TagLongArray:
		count, err := d.readCount(8)
		if err != nil {
			return Tag{}, err
		}
		b, err := d.take(count * 8)
		if err != nil {
			return Tag{}, err
		}

		out := make([]int64, count)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(b[i*8:]))
		}

		return LongArrayTag(out), nil

	default:
		// TagEnd has no payload and is handled by the compound/list loops.
		return Tag{}, fmt.Errorf("%w: %s has no payload form at offset %d", ErrUnknownTag, kind, d.off)
	}
}
