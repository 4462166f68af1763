package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldASCII(t *testing.T) {
	require.Equal(t, "What's the weather in Sao Paulo?", FoldASCII("What’s the weather in São Paulo?"))
	require.Equal(t, "I go out Newark today okay?", FoldASCII("I go out Newark today — okay?"))
	require.Equal(t, "", FoldASCII("   "))
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "Fremont", TitleCase("fremont"))
	require.Equal(t, "Mount Rainier Wa", TitleCase("mount rainier wa"))
}
