package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/anvil/format"
)

func compoundWith(pairs ...any) *Compound {
	c := NewCompound()
	for i := 0; i < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(Tag))
	}

	return c
}

func TestFindCompounds_DirectAndNested(t *testing.T) {
	target := compoundWith("marker", IntTag(1))
	deep := compoundWith("block_states", CompoundTag(target))
	root := compoundWith(
		"noise", StringTag("x"),
		"inner", CompoundTag(deep),
	)

	found := FindCompounds(root, "block_states")
	require.Len(t, found, 1)
	require.Same(t, target, found[0])
}

func TestFindCompounds_DescendsIntoLists(t *testing.T) {
	first := compoundWith("block_states", CompoundTag(compoundWith("id", IntTag(1))))
	second := compoundWith("block_states", CompoundTag(compoundWith("id", IntTag(2))))
	root := compoundWith("sections", ListTag(format.TagCompound, []Tag{
		CompoundTag(first),
		CompoundTag(second),
	}))

	found := FindCompounds(root, "block_states")
	require.Len(t, found, 2)

	id, _ := found[0].GetInt("id")
	require.Equal(t, int32(1), id)
	id, _ = found[1].GetInt("id")
	require.Equal(t, int32(2), id)
}

func TestFindCompounds_MatchNotSearchedFurther(t *testing.T) {
	inner := compoundWith("target", CompoundTag(NewCompound()))
	outer := compoundWith("target", CompoundTag(inner))
	root := compoundWith("root", CompoundTag(outer))

	found := FindCompounds(root, "target")
	require.Len(t, found, 1)
	require.Same(t, inner, found[0])
}

func TestFindFirstCompound(t *testing.T) {
	root := compoundWith(
		"a", CompoundTag(compoundWith("hit", CompoundTag(compoundWith("n", IntTag(1))))),
		"hit", CompoundTag(compoundWith("n", IntTag(2))),
	)

	c, ok := FindFirstCompound(root, "hit")
	require.True(t, ok)
	n, _ := c.GetInt("n")
	require.Equal(t, int32(1), n)

	_, ok = FindFirstCompound(root, "absent")
	require.False(t, ok)
}
