// Package blocks matches decoded chunks against a set of block identifiers
// and reports every occurrence with its absolute world coordinate and state
// properties.
//
// Matching is exact string equality on the namespaced identifier; there are
// no wildcards. Identifier comparisons are accelerated by precomputed
// xxHash64 IDs so the per-position work of a scan is an integer lookup.
package blocks

import (
	"maps"

	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/internal/hash"
)

// Coordinates is an absolute block position.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Occurrence is one matched block: its identifier, absolute coordinate, and a
// copy of the palette entry's property mapping. Immutable once produced.
type Occurrence struct {
	Name       string            `json:"name"`
	Coord      Coordinates       `json:"coord"`
	Properties map[string]string `json:"properties"`
}

// Matcher is an immutable set of requested block identifiers, keyed by their
// 64-bit hash. Safe for concurrent use by multiple scanning goroutines.
type Matcher struct {
	ids map[uint64]string
}

// NewMatcher builds a matcher from the requested identifiers, dropping
// duplicates.
func NewMatcher(names []string) *Matcher {
	m := &Matcher{ids: make(map[uint64]string, len(names))}
	for _, name := range names {
		m.ids[hash.ID(name)] = name
	}

	return m
}

// Len returns the number of distinct identifiers in the set.
func (m *Matcher) Len() int { return len(m.ids) }

// Names returns the distinct identifiers in the set, in no particular order.
func (m *Matcher) Names() []string {
	out := make([]string, 0, len(m.ids))
	for _, name := range m.ids {
		out = append(out, name)
	}

	return out
}

// matchState reports whether the palette entry's identifier is in the set.
// The hash lookup does the heavy lifting; the string compare confirms the hit
// so a hash collision can never produce a false match.
func (m *Matcher) matchState(s *chunk.BlockState) bool {
	name, ok := m.ids[s.NameID()]
	return ok && name == s.Name
}

// ScanChunk walks every section of the chunk bottom-to-top and every local
// position in storage order (y-major, then z, then x), emitting an Occurrence
// for each position whose palette entry matches. The result preserves that
// scan order.
func ScanChunk(c *chunk.Chunk, m *Matcher) []Occurrence {
	if m.Len() == 0 {
		return nil
	}

	var out []Occurrence
	baseX, baseZ := int(c.X)*chunk.Size, int(c.Z)*chunk.Size

	for si := range c.Sections {
		sec := &c.Sections[si]

		// Resolve each palette entry once per section; positions then reduce
		// to a slice index.
		matched := make([]bool, len(sec.Palette))
		any := false
		for pi := range sec.Palette {
			if m.matchState(&sec.Palette[pi]) {
				matched[pi] = true
				any = true
			}
		}
		if !any {
			continue
		}

		baseY := int(sec.Y) * chunk.Size
		for i := range chunk.SectionVolume {
			pi := sec.Index(i)
			if !matched[pi] {
				continue
			}

			state := &sec.Palette[pi]
			out = append(out, Occurrence{
				Name: state.Name,
				Coord: Coordinates{
					X: baseX + i&(chunk.Size-1),
					Y: baseY + i>>8,
					Z: baseZ + i>>4&(chunk.Size-1),
				},
				Properties: maps.Clone(state.Properties),
			})
		}
	}

	return out
}
