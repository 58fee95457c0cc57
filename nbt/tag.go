package nbt

import (
	"math"

	"github.com/arloliu/anvil/format"
)

// Tag is one node of a decoded NBT tree: a discriminated union over the 13
// wire kinds. The zero value is a TagEnd tag.
//
// Numeric payloads share one backing word, so a Tag stays small regardless of
// kind. Accessors return (value, true) only when the tag holds the requested
// kind; use Kind to dispatch without probing.
type Tag struct {
	kind  format.TagType
	num   uint64
	str   string
	raw   []byte
	list  []Tag
	elem  format.TagType
	comp  *Compound
	ints  []int32
	longs []int64
}

// Kind returns the wire kind of the tag.
func (t Tag) Kind() format.TagType { return t.kind }

// ByteTag creates a TagByte tag.
func ByteTag(v int8) Tag { return Tag{kind: format.TagByte, num: uint64(v)} }

// ShortTag creates a TagShort tag.
func ShortTag(v int16) Tag { return Tag{kind: format.TagShort, num: uint64(v)} }

// IntTag creates a TagInt tag.
func IntTag(v int32) Tag { return Tag{kind: format.TagInt, num: uint64(v)} }

// LongTag creates a TagLong tag.
func LongTag(v int64) Tag { return Tag{kind: format.TagLong, num: uint64(v)} }

// FloatTag creates a TagFloat tag.
func FloatTag(v float32) Tag {
	return Tag{kind: format.TagFloat, num: uint64(math.Float32bits(v))}
}

// DoubleTag creates a TagDouble tag.
func DoubleTag(v float64) Tag {
	return Tag{kind: format.TagDouble, num: math.Float64bits(v)}
}

// StringTag creates a TagString tag.
func StringTag(v string) Tag { return Tag{kind: format.TagString, str: v} }

// ByteArrayTag creates a TagByteArray tag. The slice is owned by the tag.
func ByteArrayTag(v []byte) Tag { return Tag{kind: format.TagByteArray, raw: v} }

// ListTag creates a TagList tag with the declared element kind. Every element
// must be of that kind; a zero-length list may declare format.TagEnd.
func ListTag(elem format.TagType, v []Tag) Tag {
	return Tag{kind: format.TagList, elem: elem, list: v}
}

// CompoundTag creates a TagCompound tag wrapping c.
func CompoundTag(c *Compound) Tag { return Tag{kind: format.TagCompound, comp: c} }

// IntArrayTag creates a TagIntArray tag. The slice is owned by the tag.
func IntArrayTag(v []int32) Tag { return Tag{kind: format.TagIntArray, ints: v} }

// LongArrayTag creates a TagLongArray tag. The slice is owned by the tag.
func LongArrayTag(v []int64) Tag { return Tag{kind: format.TagLongArray, longs: v} }

// Byte returns the signed 8-bit payload of a TagByte tag.
func (t Tag) Byte() (int8, bool) {
	if t.kind != format.TagByte {
		return 0, false
	}

	return int8(t.num), true
}

// Short returns the signed 16-bit payload of a TagShort tag.
func (t Tag) Short() (int16, bool) {
	if t.kind != format.TagShort {
		return 0, false
	}

	return int16(t.num), true
}

// Int returns the signed 32-bit payload of a TagInt tag.
func (t Tag) Int() (int32, bool) {
	if t.kind != format.TagInt {
		return 0, false
	}

	return int32(t.num), true
}

// Long returns the signed 64-bit payload of a TagLong tag.
func (t Tag) Long() (int64, bool) {
	if t.kind != format.TagLong {
		return 0, false
	}

	return int64(t.num), true
}

// Float returns the binary32 payload of a TagFloat tag.
func (t Tag) Float() (float32, bool) {
	if t.kind != format.TagFloat {
		return 0, false
	}

	return math.Float32frombits(uint32(t.num)), true
}

// Double returns the binary64 payload of a TagDouble tag.
func (t Tag) Double() (float64, bool) {
	if t.kind != format.TagDouble {
		return 0, false
	}

	return math.Float64frombits(t.num), true
}

// Str returns the string payload of a TagString tag.
func (t Tag) Str() (string, bool) {
	if t.kind != format.TagString {
		return "", false
	}

	return t.str, true
}

// ByteArray returns the payload of a TagByteArray tag. The returned slice is
// owned by the tag and must not be modified.
func (t Tag) ByteArray() ([]byte, bool) {
	if t.kind != format.TagByteArray {
		return nil, false
	}

	return t.raw, true
}

// List returns the elements of a TagList tag in declared order.
func (t Tag) List() ([]Tag, bool) {
	if t.kind != format.TagList {
		return nil, false
	}

	return t.list, true
}

// ListElem returns the declared element kind of a TagList tag.
func (t Tag) ListElem() (format.TagType, bool) {
	if t.kind != format.TagList {
		return format.TagEnd, false
	}

	return t.elem, true
}

// Compound returns the payload of a TagCompound tag.
func (t Tag) Compound() (*Compound, bool) {
	if t.kind != format.TagCompound {
		return nil, false
	}

	return t.comp, true
}

// IntArray returns the payload of a TagIntArray tag. The returned slice is
// owned by the tag and must not be modified.
func (t Tag) IntArray() ([]int32, bool) {
	if t.kind != format.TagIntArray {
		return nil, false
	}

	return t.ints, true
}

// LongArray returns the payload of a TagLongArray tag. The returned slice is
// owned by the tag and must not be modified.
func (t Tag) LongArray() ([]int64, bool) {
	if t.kind != format.TagLongArray {
		return nil, false
	}

	return t.longs, true
}

// AsInt64 widens any of the four signed integer kinds to int64. Save formats
// store the same logical field with different widths across versions (section
// Y is a byte in some layouts and an int in others), so numeric chunk fields
// should be read through this instead of a width-specific accessor.
func (t Tag) AsInt64() (int64, bool) {
	switch t.kind {
	case format.TagByte:
		return int64(int8(t.num)), true
	case format.TagShort:
		return int64(int16(t.num)), true
	case format.TagInt:
		return int64(int32(t.num)), true
	case format.TagLong:
		return int64(t.num), true
	default:
		return 0, false
	}
}
