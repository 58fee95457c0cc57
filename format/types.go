// Package format defines the wire-level enumerations shared by the anvil
// decode pipeline: NBT tag kinds, chunk compression schemes, and the
// block-state packing rule that changed across save-format versions.
package format

type (
	TagType           uint8
	CompressionScheme uint8
	PackingRule       uint8
)

// NBT tag kinds as they appear on the wire. Every multi-byte payload is
// big-endian.
const (
	TagEnd       TagType = 0  // TagEnd terminates a compound; also the element kind of an empty list.
	TagByte      TagType = 1  // TagByte is a signed 8-bit integer.
	TagShort     TagType = 2  // TagShort is a signed 16-bit integer.
	TagInt       TagType = 3  // TagInt is a signed 32-bit integer.
	TagLong      TagType = 4  // TagLong is a signed 64-bit integer.
	TagFloat     TagType = 5  // TagFloat is an IEEE 754 binary32.
	TagDouble    TagType = 6  // TagDouble is an IEEE 754 binary64.
	TagByteArray TagType = 7  // TagByteArray is a length-prefixed byte sequence.
	TagString    TagType = 8  // TagString is a length-prefixed modified UTF-8 string.
	TagList      TagType = 9  // TagList is a homogeneous list with one declared element kind.
	TagCompound  TagType = 10 // TagCompound is an ordered name-to-tag mapping.
	TagIntArray  TagType = 11 // TagIntArray is a length-prefixed array of signed 32-bit integers.
	TagLongArray TagType = 12 // TagLongArray is a length-prefixed array of signed 64-bit integers.

	maxTagType = TagLongArray
)

// Chunk payload compression schemes from the region chunk framing byte.
// SchemeLZ4 and SchemeCustom were added to the save format in the 24w04a/24w05a
// snapshots; SchemeCustom is followed by a length-prefixed codec name resolved
// against a codec registry.
const (
	SchemeGzip   CompressionScheme = 1
	SchemeZlib   CompressionScheme = 2
	SchemeNone   CompressionScheme = 3
	SchemeLZ4    CompressionScheme = 4
	SchemeCustom CompressionScheme = 127
)

// Block-state packing rules for a section's 64-bit state words.
const (
	// PackingPadded packs floor(64/width) indices per word from low bit to high
	// bit; an index never spans two words and leftover high bits are padding.
	// Used from DataVersion 2527 (20w17a) onward.
	PackingPadded PackingRule = 0

	// PackingSpanning packs indices back to back across the whole word stream;
	// an index may straddle a word boundary. Used before DataVersion 2527.
	PackingSpanning PackingRule = 1
)

// Valid reports whether t is one of the defined tag kinds.
func (t TagType) Valid() bool {
	return t <= maxTagType
}

func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}

func (c CompressionScheme) String() string {
	switch c {
	case SchemeGzip:
		return "Gzip"
	case SchemeZlib:
		return "Zlib"
	case SchemeNone:
		return "None"
	case SchemeLZ4:
		return "LZ4"
	case SchemeCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

func (p PackingRule) String() string {
	switch p {
	case PackingPadded:
		return "Padded"
	case PackingSpanning:
		return "Spanning"
	default:
		return "Unknown"
	}
}
