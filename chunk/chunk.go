// Package chunk interprets a decoded chunk tag tree into a typed model:
// per-section block palettes, unpacked block-state indices, and section
// vertical offsets.
//
// Two root layouts are understood: the modern one (DataVersion 2844+) with
// position fields and a "sections" list at the root, and the legacy layout
// wrapping everything in a "Level" compound with "Sections", "Palette", and
// "BlockStates". The bit-packing rule for state indices changed at
// DataVersion 2527; FromRoot picks the right rule from the chunk's own
// DataVersion unless overridden with WithPackingRule.
package chunk

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/hash"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/nbt"
)

const (
	// Size is the chunk side length in blocks; a section is Size³ blocks.
	Size = 16
	// SectionVolume is the number of block positions in one section.
	SectionVolume = Size * Size * Size

	// paddedPackingVersion is the DataVersion (20w17a) that switched packed
	// state arrays from spanning to padded words.
	paddedPackingVersion = 2527
)

// BlockState is one palette entry: a namespaced identifier plus its state
// properties. Properties is never nil; stateless blocks get an empty map.
type BlockState struct {
	Name       string
	Properties map[string]string

	nameID uint64
}

// NameID returns the xxHash64 of Name, precomputed at palette build so the
// search engine can match on an integer compare per position.
func (b *BlockState) NameID() uint64 { return b.nameID }

// Section is one 16×16×16 vertical slice of a chunk.
type Section struct {
	// Y is the section's vertical index; negative for sub-zero sections.
	Y int8
	// Palette holds the distinct block states referenced by this section.
	Palette []BlockState

	// indices maps each of the 4096 local positions to a palette entry, or is
	// nil for a uniform single-entry section.
	indices []uint16
}

// Uniform reports whether every position resolves to palette entry 0.
func (s *Section) Uniform() bool { return s.indices == nil }

// Index returns the palette index at linear position i, where i is
// y*256 + z*16 + x.
func (s *Section) Index(i int) int {
	if s.indices == nil {
		return 0
	}

	return int(s.indices[i])
}

// At resolves the block state at local coordinates (x, y, z), each in [0, 16).
func (s *Section) At(x, y, z int) *BlockState {
	return &s.Palette[s.Index(y*Size*Size+z*Size+x)]
}

// Chunk is the typed model of one decoded chunk.
type Chunk struct {
	// X, Z are the chunk's absolute position in chunk units.
	X, Z int32
	// DataVersion is the save-format version the chunk was written with;
	// zero when the chunk predates the field.
	DataVersion int32
	// Sections are ordered bottom-to-top by Y.
	Sections []Section
}

type config struct {
	rule    format.PackingRule
	hasRule bool
}

// Option configures chunk building.
type Option = options.Option[*config]

// WithPackingRule forces the packed-state layout instead of deriving it from
// the chunk's DataVersion. Needed only for saves whose DataVersion field is
// missing or lies.
func WithPackingRule(rule format.PackingRule) Option {
	return options.NoError(func(c *config) {
		c.rule = rule
		c.hasRule = true
	})
}

// FromRoot builds the chunk model from a decoded root compound.
//
// Sections missing their Y index or palette are treated as absent and
// skipped; a section whose data is present but inconsistent (packed index
// outside the palette, short states array) fails the whole chunk with
// ErrBadSection.
func FromRoot(root *nbt.Compound, opts ...Option) (*Chunk, error) {
	var cfg config
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	dataVersion, _ := root.GetInt("DataVersion")

	// The legacy layout nests chunk data under "Level".
	body := root
	legacy := false
	if lvl, ok := root.GetCompound("Level"); ok {
		body = lvl
		legacy = true
	}

	x, okX := body.GetInt64("xPos")
	z, okZ := body.GetInt64("zPos")
	if !okX || !okZ {
		return nil, fmt.Errorf("%w: missing xPos/zPos", ErrBadChunk)
	}

	sectionList, ok := body.GetList("sections")
	if !ok {
		sectionList, ok = body.GetList("Sections")
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing sections list", ErrBadChunk)
	}

	rule := cfg.rule
	if !cfg.hasRule {
		rule = format.PackingSpanning
		if dataVersion >= paddedPackingVersion {
			rule = format.PackingPadded
		}
	}

	c := &Chunk{
		X:           int32(x),
		Z:           int32(z),
		DataVersion: dataVersion,
		Sections:    make([]Section, 0, len(sectionList)),
	}

	for i := range sectionList {
		sc, ok := sectionList[i].Compound()
		if !ok {
			continue
		}

		sec, ok, err := buildSection(sc, legacy, rule)
		if err != nil {
			return nil, err
		}
		if ok {
			c.Sections = append(c.Sections, sec)
		}
	}

	slices.SortStableFunc(c.Sections, func(a, b Section) int {
		return cmp.Compare(a.Y, b.Y)
	})

	return c, nil
}

// buildSection extracts one section compound. The ok result is false for
// sections missing required fields, which contribute no blocks.
func buildSection(sc *nbt.Compound, legacy bool, rule format.PackingRule) (Section, bool, error) {
	y, ok := sc.GetInt64("Y")
	if !ok || y < -128 || y > 127 {
		return Section{}, false, nil
	}

	var paletteList []nbt.Tag
	var words []int64
	var hasWords bool
	if legacy {
		paletteList, ok = sc.GetList("Palette")
		if !ok {
			return Section{}, false, nil
		}
		words, hasWords = sc.GetLongArray("BlockStates")
	} else {
		states, okStates := sc.GetCompound("block_states")
		if !okStates {
			return Section{}, false, nil
		}
		paletteList, ok = states.GetList("palette")
		if !ok {
			return Section{}, false, nil
		}
		words, hasWords = states.GetLongArray("data")
	}
	if len(paletteList) == 0 {
		return Section{}, false, nil
	}

	palette := make([]BlockState, 0, len(paletteList))
	for i := range paletteList {
		pc, okEntry := paletteList[i].Compound()
		if !okEntry {
			return Section{}, false, nil
		}

		name, okName := pc.GetString("Name")
		if !okName {
			return Section{}, false, nil
		}

		props := make(map[string]string)
		if properties, okProps := pc.GetCompound("Properties"); okProps {
			for key, tag := range properties.All() {
				if v, okStr := tag.Str(); okStr {
					props[key] = v
				}
			}
		}

		palette = append(palette, BlockState{
			Name:       name,
			Properties: props,
			nameID:     hash.ID(name),
		})
	}

	sec := Section{Y: int8(y), Palette: palette}

	// A single-entry palette elides the states array: every position is
	// entry 0 and the array, if present at all, is never read.
	if len(palette) == 1 {
		return sec, true, nil
	}

	if !hasWords {
		return Section{}, false, fmt.Errorf("%w: %d palette entries but no states array at Y=%d",
			ErrBadSection, len(palette), y)
	}

	unsigned := make([]uint64, len(words))
	for i, w := range words {
		unsigned[i] = uint64(w)
	}

	indices, err := Unpack(unsigned, BitsFor(len(palette)), SectionVolume, rule)
	if err != nil {
		return Section{}, false, fmt.Errorf("section Y=%d: %w", y, err)
	}

	for i, idx := range indices {
		if int(idx) >= len(palette) {
			return Section{}, false, fmt.Errorf("%w: index %d at position %d exceeds palette of %d at Y=%d",
				ErrBadSection, idx, i, len(palette), y)
		}
	}

	sec.indices = indices

	return sec, true, nil
}
