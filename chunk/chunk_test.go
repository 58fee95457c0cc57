package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/fixture"
	"github.com/arloliu/anvil/nbt"
)

func airAndRepeater() []fixture.PaletteEntry {
	return []fixture.PaletteEntry{
		{Name: "minecraft:air"},
		{Name: "minecraft:repeater", Props: map[string]string{"delay": "2", "facing": "north"}},
	}
}

// repeaterIndices marks local position (3, 2, 5) as palette entry 1.
func repeaterIndices() []uint16 {
	indices := make([]uint16, SectionVolume)
	indices[2*Size*Size+5*Size+3] = 1

	return indices
}

func TestFromRoot_ModernLayout(t *testing.T) {
	root := fixture.ChunkRoot(-3, 7, 3218, fixture.SectionSpec{
		Y:       0,
		Palette: airAndRepeater(),
		Indices: repeaterIndices(),
	})

	c, err := FromRoot(root)
	require.NoError(t, err)
	require.Equal(t, int32(-3), c.X)
	require.Equal(t, int32(7), c.Z)
	require.Equal(t, int32(3218), c.DataVersion)
	require.Len(t, c.Sections, 1)

	sec := &c.Sections[0]
	require.Equal(t, int8(0), sec.Y)
	require.False(t, sec.Uniform())
	require.Len(t, sec.Palette, 2)

	state := sec.At(3, 2, 5)
	require.Equal(t, "minecraft:repeater", state.Name)
	require.Equal(t, map[string]string{"delay": "2", "facing": "north"}, state.Properties)

	require.Equal(t, "minecraft:air", sec.At(0, 0, 0).Name)
	require.NotNil(t, sec.At(0, 0, 0).Properties)
	require.Empty(t, sec.At(0, 0, 0).Properties)
}

func TestFromRoot_LegacyLayout(t *testing.T) {
	// DataVersion below 2527 uses the Level wrapper and spanning packing.
	root := fixture.LegacyChunkRoot(4, -2, 2230, fixture.SectionSpec{
		Y:       1,
		Palette: airAndRepeater(),
		Indices: repeaterIndices(),
	})

	c, err := FromRoot(root)
	require.NoError(t, err)
	require.Equal(t, int32(4), c.X)
	require.Equal(t, int32(-2), c.Z)
	require.Len(t, c.Sections, 1)
	require.Equal(t, int8(1), c.Sections[0].Y)
	require.Equal(t, "minecraft:repeater", c.Sections[0].At(3, 2, 5).Name)
}

func TestFromRoot_UniformSection(t *testing.T) {
	root := fixture.ChunkRoot(0, 0, 3218, fixture.SectionSpec{
		Y:       -4,
		Palette: []fixture.PaletteEntry{{Name: "minecraft:bedrock"}},
	})

	c, err := FromRoot(root)
	require.NoError(t, err)
	require.Len(t, c.Sections, 1)

	sec := &c.Sections[0]
	require.True(t, sec.Uniform())
	require.Equal(t, int8(-4), sec.Y)
	for _, pos := range [][3]int{{0, 0, 0}, {15, 15, 15}, {7, 3, 9}} {
		require.Equal(t, "minecraft:bedrock", sec.At(pos[0], pos[1], pos[2]).Name)
	}
}

func TestFromRoot_SectionsSortedByY(t *testing.T) {
	root := fixture.ChunkRoot(0, 0, 3218,
		fixture.SectionSpec{Y: 3, Palette: []fixture.PaletteEntry{{Name: "minecraft:air"}}},
		fixture.SectionSpec{Y: -1, Palette: []fixture.PaletteEntry{{Name: "minecraft:stone"}}},
		fixture.SectionSpec{Y: 0, Palette: []fixture.PaletteEntry{{Name: "minecraft:dirt"}}},
	)

	c, err := FromRoot(root)
	require.NoError(t, err)
	require.Len(t, c.Sections, 3)
	require.Equal(t, int8(-1), c.Sections[0].Y)
	require.Equal(t, int8(0), c.Sections[1].Y)
	require.Equal(t, int8(3), c.Sections[2].Y)
}

func TestFromRoot_SkipsEmptySections(t *testing.T) {
	// A section compound with no block_states (e.g. biome-only) is absent,
	// not an error.
	empty := nbt.NewCompound()
	empty.Set("Y", nbt.ByteTag(5))

	root := fixture.ChunkRoot(0, 0, 3218, fixture.SectionSpec{
		Y:       0,
		Palette: []fixture.PaletteEntry{{Name: "minecraft:stone"}},
	})
	sections, _ := root.GetList("sections")
	root.Set("sections", nbt.ListTag(format.TagCompound, append(sections, nbt.CompoundTag(empty))))

	c, err := FromRoot(root)
	require.NoError(t, err)
	require.Len(t, c.Sections, 1)
	require.Equal(t, int8(0), c.Sections[0].Y)
}

func TestFromRoot_MissingPosition(t *testing.T) {
	root := nbt.NewCompound()
	root.Set("DataVersion", nbt.IntTag(3218))
	root.Set("sections", nbt.ListTag(format.TagEnd, nil))

	_, err := FromRoot(root)
	require.ErrorIs(t, err, ErrBadChunk)
}

func TestFromRoot_MissingSectionsList(t *testing.T) {
	root := nbt.NewCompound()
	root.Set("xPos", nbt.IntTag(0))
	root.Set("zPos", nbt.IntTag(0))

	_, err := FromRoot(root)
	require.ErrorIs(t, err, ErrBadChunk)
}

func TestFromRoot_MultiPaletteWithoutStates(t *testing.T) {
	root := fixture.ChunkRoot(0, 0, 3218, fixture.SectionSpec{
		Y:       0,
		Palette: airAndRepeater(),
		Indices: repeaterIndices(),
	})

	// Strip the data array while keeping the two-entry palette.
	sections, _ := root.GetList("sections")
	sc, _ := sections[0].Compound()
	states, _ := sc.GetCompound("block_states")
	palette, _ := states.GetList("palette")
	stripped := nbt.NewCompound()
	stripped.Set("palette", nbt.ListTag(format.TagCompound, palette))
	sc.Set("block_states", nbt.CompoundTag(stripped))

	_, err := FromRoot(root)
	require.ErrorIs(t, err, ErrBadSection)
}

func TestFromRoot_IndexOutOfPalette(t *testing.T) {
	indices := make([]uint16, SectionVolume)
	indices[100] = 9 // palette has 2 entries

	root := fixture.ChunkRoot(0, 0, 3218, fixture.SectionSpec{
		Y:       0,
		Palette: airAndRepeater(),
		Indices: indices,
	})

	_, err := FromRoot(root)
	require.ErrorIs(t, err, ErrBadSection)
}

func TestFromRoot_PackingRuleOverride(t *testing.T) {
	// Build a root whose words are spanning-packed but whose DataVersion
	// claims padded. Width 5 makes the two layouts disagree.
	palette := make([]fixture.PaletteEntry, 17)
	palette[0] = fixture.PaletteEntry{Name: "minecraft:air"}
	for i := 1; i < 17; i++ {
		palette[i] = fixture.PaletteEntry{Name: "minecraft:stone"}
	}
	indices := make([]uint16, SectionVolume)
	indices[SectionVolume-1] = 16

	// Spanning words under a padded-era DataVersion. At width 5 the padded
	// layout needs more words than spanning, so auto-detect fails outright.
	root := fixture.ChunkRoot(0, 0, 2230, fixture.SectionSpec{Y: 0, Palette: palette, Indices: indices})
	root.Set("DataVersion", nbt.IntTag(3218))

	_, err := FromRoot(root)
	require.ErrorIs(t, err, ErrBadSection)

	forced, err := FromRoot(root, WithPackingRule(format.PackingSpanning))
	require.NoError(t, err)
	require.Equal(t, 16, forced.Sections[0].Index(SectionVolume-1))
}

func TestFromRoot_NameIDPrecomputed(t *testing.T) {
	root := fixture.ChunkRoot(0, 0, 3218, fixture.SectionSpec{
		Y:       0,
		Palette: airAndRepeater(),
		Indices: repeaterIndices(),
	})

	c, err := FromRoot(root)
	require.NoError(t, err)

	p := c.Sections[0].Palette
	require.NotZero(t, p[0].NameID())
	require.NotEqual(t, p[0].NameID(), p[1].NameID())
}
