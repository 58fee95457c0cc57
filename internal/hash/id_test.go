package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_Deterministic(t *testing.T) {
	a := ID("minecraft:repeater")
	b := ID("minecraft:repeater")
	require.Equal(t, a, b)
}

func TestID_Distinguishes(t *testing.T) {
	require.NotEqual(t, ID("minecraft:air"), ID("minecraft:stone"))
	require.NotEqual(t, ID(""), ID("minecraft:air"))
}
