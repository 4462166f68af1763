package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTimePhraseExactTable(t *testing.T) {
	for _, rw := range timePhraseRewrites {
		got := NormalizeTimePhrase(strPtr(rw.key))
		require.NotNil(t, got)
		require.Equal(t, rw.value, *got, rw.key)
	}
	require.Equal(t, "tomorrow at 8 AM", *NormalizeTimePhrase(strPtr("tomorrow morning")))
	require.Equal(t, "saturday at noon", *NormalizeTimePhrase(strPtr("this weekend")))
}

func TestNormalizeTimePhraseCaseAndSpace(t *testing.T) {
	require.Equal(t, "tomorrow at 8 AM", *NormalizeTimePhrase(strPtr("  Tomorrow Morning ")))
}

func TestNormalizeTimePhraseSubstringFollowsTableOrder(t *testing.T) {
	cases := map[string]string{
		"early tomorrow evening":    "tomorrow at 6 PM",
		"next friday at 6 pm sharp": "next friday at 6 PM",
		"next friday afternoon":     "next friday at noon",
		"friday evening":            "today at 6 PM",
		"late at night":             "today at 9 PM",
	}
	for in, want := range cases {
		require.Equal(t, want, *NormalizeTimePhrase(strPtr(in)), in)
	}
}

func TestNormalizeTimePhrasePassThrough(t *testing.T) {
	require.Nil(t, NormalizeTimePhrase(nil))
	require.Equal(t, "at 5 pm", *NormalizeTimePhrase(strPtr("at 5 pm")))
	require.Equal(t, "monday", *NormalizeTimePhrase(strPtr("Monday")))
}

func TestTimePhraseTableOrder(t *testing.T) {
	index := func(key string) int {
		for i, rw := range timePhraseRewrites {
			if rw.key == key {
				return i
			}
		}
		return -1
	}
	require.Less(t, index("tomorrow evening"), index("evening"))
	require.Less(t, index("tomorrow morning"), index("morning"))
	require.Less(t, index("tomorrow night"), index("night"))
	require.Less(t, index("tonight"), index("night"))
	require.Less(t, index("next friday at 6 pm"), index("next friday"))
}
