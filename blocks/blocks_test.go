package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/internal/fixture"
)

func buildChunk(t *testing.T, x, z int32, sections ...fixture.SectionSpec) *chunk.Chunk {
	t.Helper()

	c, err := chunk.FromRoot(fixture.ChunkRoot(x, z, 3218, sections...))
	require.NoError(t, err)

	return c
}

func TestScanChunk_SingleMatch(t *testing.T) {
	indices := make([]uint16, chunk.SectionVolume)
	indices[2*chunk.Size*chunk.Size+5*chunk.Size+3] = 1 // local (3, 2, 5)

	c := buildChunk(t, 2, -1, fixture.SectionSpec{
		Y: 0,
		Palette: []fixture.PaletteEntry{
			{Name: "minecraft:air"},
			{Name: "minecraft:repeater", Props: map[string]string{"delay": "2"}},
		},
		Indices: indices,
	})

	out := ScanChunk(c, NewMatcher([]string{"minecraft:repeater"}))
	require.Len(t, out, 1)
	require.Equal(t, "minecraft:repeater", out[0].Name)
	require.Equal(t, Coordinates{X: 2*16 + 3, Y: 2, Z: -1*16 + 5}, out[0].Coord)
	require.Equal(t, map[string]string{"delay": "2"}, out[0].Properties)
}

func TestScanChunk_PropertiesAreCopies(t *testing.T) {
	indices := make([]uint16, chunk.SectionVolume)
	indices[0] = 1
	indices[1] = 1

	c := buildChunk(t, 0, 0, fixture.SectionSpec{
		Y: 0,
		Palette: []fixture.PaletteEntry{
			{Name: "minecraft:air"},
			{Name: "minecraft:lever", Props: map[string]string{"powered": "false"}},
		},
		Indices: indices,
	})

	out := ScanChunk(c, NewMatcher([]string{"minecraft:lever"}))
	require.Len(t, out, 2)

	out[0].Properties["powered"] = "true"
	require.Equal(t, "false", out[1].Properties["powered"])
}

func TestScanChunk_NoMatches(t *testing.T) {
	c := buildChunk(t, 0, 0, fixture.SectionSpec{
		Y:       0,
		Palette: []fixture.PaletteEntry{{Name: "minecraft:stone"}},
	})

	require.Empty(t, ScanChunk(c, NewMatcher([]string{"minecraft:diamond_block"})))
	require.Empty(t, ScanChunk(c, NewMatcher(nil)))
}

func TestScanChunk_UniformSectionMatchesEverywhere(t *testing.T) {
	c := buildChunk(t, 0, 0, fixture.SectionSpec{
		Y:       -1,
		Palette: []fixture.PaletteEntry{{Name: "minecraft:deepslate"}},
	})

	out := ScanChunk(c, NewMatcher([]string{"minecraft:deepslate"}))
	require.Len(t, out, chunk.SectionVolume)
	require.Equal(t, Coordinates{X: 0, Y: -16, Z: 0}, out[0].Coord)
	require.Equal(t, Coordinates{X: 15, Y: -1, Z: 15}, out[len(out)-1].Coord)
}

func TestScanChunk_ScanOrder(t *testing.T) {
	indices := make([]uint16, chunk.SectionVolume)
	// Three hits placed against storage order; output must come back sorted
	// by linear position (y-major, then z, then x).
	positions := []int{
		5*chunk.Size*chunk.Size + 0*chunk.Size + 9, // y=5 z=0 x=9
		0*chunk.Size*chunk.Size + 3*chunk.Size + 1, // y=0 z=3 x=1
		0*chunk.Size*chunk.Size + 3*chunk.Size + 7, // y=0 z=3 x=7
	}
	for _, p := range positions {
		indices[p] = 1
	}

	c := buildChunk(t, 0, 0, fixture.SectionSpec{
		Y: 0,
		Palette: []fixture.PaletteEntry{
			{Name: "minecraft:air"},
			{Name: "minecraft:observer"},
		},
		Indices: indices,
	})

	out := ScanChunk(c, NewMatcher([]string{"minecraft:observer"}))
	require.Len(t, out, 3)
	require.Equal(t, Coordinates{X: 1, Y: 0, Z: 3}, out[0].Coord)
	require.Equal(t, Coordinates{X: 7, Y: 0, Z: 3}, out[1].Coord)
	require.Equal(t, Coordinates{X: 9, Y: 5, Z: 0}, out[2].Coord)
}

func TestScanChunk_SectionsBottomToTop(t *testing.T) {
	hit := make([]uint16, chunk.SectionVolume)
	hit[0] = 1
	palette := []fixture.PaletteEntry{
		{Name: "minecraft:air"},
		{Name: "minecraft:torch"},
	}

	c := buildChunk(t, 0, 0,
		fixture.SectionSpec{Y: 2, Palette: palette, Indices: hit},
		fixture.SectionSpec{Y: -3, Palette: palette, Indices: hit},
	)

	out := ScanChunk(c, NewMatcher([]string{"minecraft:torch"}))
	require.Len(t, out, 2)
	require.Equal(t, -48, out[0].Coord.Y)
	require.Equal(t, 32, out[1].Coord.Y)
}

func TestScanChunk_MultipleIdentifiers(t *testing.T) {
	indices := make([]uint16, chunk.SectionVolume)
	indices[10] = 1
	indices[20] = 2

	c := buildChunk(t, 0, 0, fixture.SectionSpec{
		Y: 0,
		Palette: []fixture.PaletteEntry{
			{Name: "minecraft:air"},
			{Name: "minecraft:chest"},
			{Name: "minecraft:barrel"},
		},
		Indices: indices,
	})

	out := ScanChunk(c, NewMatcher([]string{"minecraft:chest", "minecraft:barrel"}))
	require.Len(t, out, 2)
	require.Equal(t, "minecraft:chest", out[0].Name)
	require.Equal(t, "minecraft:barrel", out[1].Name)
}

func TestNewMatcher_DropsDuplicates(t *testing.T) {
	m := NewMatcher([]string{"minecraft:chest", "minecraft:chest", "minecraft:barrel"})
	require.Equal(t, 2, m.Len())
	require.ElementsMatch(t, []string{"minecraft:chest", "minecraft:barrel"}, m.Names())
}
