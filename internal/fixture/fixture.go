// Package fixture builds synthetic save-format bytes for tests: NBT
// documents, packed block-state words, chunk compounds, and whole region
// files. It is the encoding mirror of the public decode pipeline and exists
// only so package tests can exercise real bytes without an on-disk corpus.
package fixture

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/nbt"
)

// EncodeNBT serializes a compound as a named root document: kind byte, root
// name, then the compound payload.
func EncodeNBT(rootName string, c *nbt.Compound) []byte {
	out := []byte{byte(format.TagCompound)}
	out = appendString(out, rootName)

	return appendCompound(out, c)
}

func appendString(out []byte, s string) []byte {
	out = binary.BigEndian.AppendUint16(out, uint16(len(s)))
	return append(out, s...)
}

func appendCompound(out []byte, c *nbt.Compound) []byte {
	for name, tag := range c.All() {
		out = append(out, byte(tag.Kind()))
		out = appendString(out, name)
		out = appendPayload(out, tag)
	}

	return append(out, byte(format.TagEnd))
}

func appendPayload(out []byte, t nbt.Tag) []byte {
	switch t.Kind() {
	case format.TagByte:
		v, _ := t.Byte()
		return append(out, byte(v))
	case format.TagShort:
		v, _ := t.Short()
		return binary.BigEndian.AppendUint16(out, uint16(v))
	case format.TagInt:
		v, _ := t.Int()
		return binary.BigEndian.AppendUint32(out, uint32(v))
	case format.TagLong:
		v, _ := t.Long()
		return binary.BigEndian.AppendUint64(out, uint64(v))
	case format.TagFloat:
		v, _ := t.Float()
		return binary.BigEndian.AppendUint32(out, math.Float32bits(v))
	case format.TagDouble:
		v, _ := t.Double()
		return binary.BigEndian.AppendUint64(out, math.Float64bits(v))
	case format.TagByteArray:
		v, _ := t.ByteArray()
		out = binary.BigEndian.AppendUint32(out, uint32(len(v)))

		return append(out, v...)
	case format.TagString:
		v, _ := t.Str()
		return appendString(out, v)
	case format.TagList:
		elems, _ := t.List()
		elem, _ := t.ListElem()
		out = append(out, byte(elem))
		out = binary.BigEndian.AppendUint32(out, uint32(len(elems)))
		for _, e := range elems {
			out = appendPayload(out, e)
		}

		return out
	case format.TagCompound:
		c, _ := t.Compound()
		return appendCompound(out, c)
	case format.TagIntArray:
		v, _ := t.IntArray()
		out = binary.BigEndian.AppendUint32(out, uint32(len(v)))
		for _, e := range v {
			out = binary.BigEndian.AppendUint32(out, uint32(e))
		}

		return out
	case format.TagLongArray:
		v, _ := t.LongArray()
		out = binary.BigEndian.AppendUint32(out, uint32(len(v)))
		for _, e := range v {
			out = binary.BigEndian.AppendUint64(out, uint64(e))
		}

		return out
	default:
		panic(fmt.Sprintf("fixture: cannot encode tag kind %s", t.Kind()))
	}
}

// PackWords packs fixed-width indices into 64-bit storage words under the
// given rule, the exact inverse of chunk.Unpack.
func PackWords(indices []uint16, width int, rule format.PackingRule) []int64 {
	var wordCount int
	if rule == format.PackingPadded {
		per := 64 / width
		wordCount = (len(indices) + per - 1) / per
	} else {
		wordCount = (len(indices)*width + 63) / 64
	}

	words := make([]uint64, wordCount)
	if rule == format.PackingPadded {
		per := 64 / width
		for i, idx := range indices {
			words[i/per] |= uint64(idx) << ((i % per) * width)
		}
	} else {
		for i, idx := range indices {
			bit := i * width
			word, off := bit/64, bit%64
			words[word] |= uint64(idx) << off
			if off+width > 64 {
				words[word+1] |= uint64(idx) >> (64 - off)
			}
		}
	}

	out := make([]int64, wordCount)
	for i, w := range words {
		out[i] = int64(w)
	}

	return out
}

// PaletteEntry is one block state in a fixture section palette.
type PaletteEntry struct {
	Name  string
	Props map[string]string
}

// SectionSpec describes one fixture section. A nil Indices builds a uniform
// single-entry section with no states array.
type SectionSpec struct {
	Y       int8
	Palette []PaletteEntry
	Indices []uint16
}

// ChunkRoot builds a modern-layout chunk root compound.
func ChunkRoot(x, z, dataVersion int32, sections ...SectionSpec) *nbt.Compound {
	root := nbt.NewCompound()
	root.Set("DataVersion", nbt.IntTag(dataVersion))
	root.Set("xPos", nbt.IntTag(x))
	root.Set("zPos", nbt.IntTag(z))

	rule := format.PackingSpanning
	if dataVersion >= 2527 {
		rule = format.PackingPadded
	}

	elems := make([]nbt.Tag, 0, len(sections))
	for _, spec := range sections {
		sc := nbt.NewCompound()
		sc.Set("Y", nbt.ByteTag(spec.Y))

		states := nbt.NewCompound()
		states.Set("palette", paletteTag(spec.Palette))
		if spec.Indices != nil {
			width := bitsFor(len(spec.Palette))
			states.Set("data", nbt.LongArrayTag(PackWords(spec.Indices, width, rule)))
		}
		sc.Set("block_states", nbt.CompoundTag(states))

		elems = append(elems, nbt.CompoundTag(sc))
	}
	root.Set("sections", nbt.ListTag(format.TagCompound, elems))

	return root
}

// LegacyChunkRoot builds a Level-wrapped chunk root in the 1.13-1.17 layout.
func LegacyChunkRoot(x, z, dataVersion int32, sections ...SectionSpec) *nbt.Compound {
	rule := format.PackingSpanning
	if dataVersion >= 2527 {
		rule = format.PackingPadded
	}

	elems := make([]nbt.Tag, 0, len(sections))
	for _, spec := range sections {
		sc := nbt.NewCompound()
		sc.Set("Y", nbt.ByteTag(spec.Y))
		sc.Set("Palette", paletteTag(spec.Palette))
		if spec.Indices != nil {
			width := bitsFor(len(spec.Palette))
			sc.Set("BlockStates", nbt.LongArrayTag(PackWords(spec.Indices, width, rule)))
		}
		elems = append(elems, nbt.CompoundTag(sc))
	}

	level := nbt.NewCompound()
	level.Set("xPos", nbt.IntTag(x))
	level.Set("zPos", nbt.IntTag(z))
	level.Set("Sections", nbt.ListTag(format.TagCompound, elems))

	root := nbt.NewCompound()
	root.Set("DataVersion", nbt.IntTag(dataVersion))
	root.Set("Level", nbt.CompoundTag(level))

	return root
}

func paletteTag(palette []PaletteEntry) nbt.Tag {
	elems := make([]nbt.Tag, 0, len(palette))
	for _, entry := range palette {
		pc := nbt.NewCompound()
		pc.Set("Name", nbt.StringTag(entry.Name))
		if len(entry.Props) > 0 {
			props := nbt.NewCompound()
			keys := make([]string, 0, len(entry.Props))
			for k := range entry.Props {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				props.Set(k, nbt.StringTag(entry.Props[k]))
			}
			pc.Set("Properties", nbt.CompoundTag(props))
		}
		elems = append(elems, nbt.CompoundTag(pc))
	}

	return nbt.ListTag(format.TagCompound, elems)
}

func bitsFor(paletteLen int) int {
	n := 0
	for 1<<n < paletteLen {
		n++
	}
	if n < 4 {
		n = 4
	}

	return n
}

// Slot is one present chunk in a fixture region file.
type Slot struct {
	X, Z      int
	Scheme    format.CompressionScheme
	CodecName string // custom-scheme codec name, used when Scheme is SchemeCustom
	Payload   []byte // uncompressed NBT document bytes
	Timestamp uint32
}

// Region assembles a complete region file from the given slots, compressing
// each payload with its declared scheme and laying records out in consecutive
// sectors after the header.
func Region(slots ...Slot) []byte {
	const sectorSize = 4096

	header := make([]byte, 2*sectorSize)
	var body []byte
	nextSector := uint32(2)

	for _, slot := range slots {
		compressed := compressPayload(slot)

		record := binary.BigEndian.AppendUint32(nil, uint32(len(compressed))+1)
		record = append(record, byte(slot.Scheme))
		record = append(record, compressed...)

		sectors := (len(record) + sectorSize - 1) / sectorSize
		padded := make([]byte, sectors*sectorSize)
		copy(padded, record)
		body = append(body, padded...)

		idx := (slot.X & 31) + (slot.Z&31)*32
		binary.BigEndian.PutUint32(header[idx*4:], nextSector<<8|uint32(sectors))
		binary.BigEndian.PutUint32(header[sectorSize+idx*4:], slot.Timestamp)
		nextSector += uint32(sectors)
	}

	return append(header, body...)
}

func compressPayload(slot Slot) []byte {
	if slot.Scheme == format.SchemeCustom {
		codec, ok := compress.LookupCodec(slot.CodecName)
		if !ok {
			panic(fmt.Sprintf("fixture: no codec registered as %q", slot.CodecName))
		}
		data, err := codec.Compress(slot.Payload)
		if err != nil {
			panic(err)
		}

		out := binary.BigEndian.AppendUint16(nil, uint16(len(slot.CodecName)))
		out = append(out, slot.CodecName...)

		return append(out, data...)
	}

	codec, err := compress.GetCodec(slot.Scheme)
	if err != nil {
		panic(err)
	}
	data, err := codec.Compress(slot.Payload)
	if err != nil {
		panic(err)
	}

	return data
}
