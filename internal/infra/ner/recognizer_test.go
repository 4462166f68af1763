package ner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-buddy/internal/domain/weather"
)

func spansOf(ents []weather.Entity, label weather.Label) []string {
	var out []string
	for _, e := range ents {
		if e.Label == label {
			out = append(out, e.Text)
		}
	}
	return out
}

func TestRecognizePlacesAndTimes(t *testing.T) {
	cases := []struct {
		text  string
		place []string
		when  []string
	}{
		{"What's the weather in Paris tomorrow morning?", []string{"Paris"}, []string{"tomorrow morning"}},
		{"Will it rain in San Diego this evening?", []string{"San Diego"}, []string{"this evening"}},
		{"Is it going to snow in Denver, CO next Monday?", []string{"Denver, CO"}, nil},
		{"Do I need an umbrella in New York City tonight", []string{"New York City"}, []string{"tonight"}},
		{"How hot will it be in Tokyo at 6 PM", []string{"Tokyo"}, []string{"6 PM"}},
		{"Should I bring a jacket?", nil, nil},
	}
	for _, tc := range cases {
		ents := New().Recognize(tc.text)
		require.Equal(t, tc.place, spansOf(ents, weather.LabelGPE), tc.text)
		if tc.when != nil {
			require.Equal(t, tc.when, spansOf(ents, weather.LabelTime), tc.text)
		}
	}
}

func TestRecognizeDateLabels(t *testing.T) {
	ents := New().Recognize("Weather in Boston next Friday")
	require.Equal(t, []string{"next Friday"}, spansOf(ents, weather.LabelDate))
	require.Equal(t, []string{"Boston"}, spansOf(ents, weather.LabelGPE))

	ents = New().Recognize("Is it sunny in Austin this weekend?")
	require.Equal(t, []string{"this weekend"}, spansOf(ents, weather.LabelDate))
}

func TestRecognizeOrdersByOffset(t *testing.T) {
	ents := New().Recognize("Tomorrow in Lisbon, what is the forecast?")
	require.Len(t, ents, 2)
	require.Equal(t, "Tomorrow", ents[0].Text)
	require.Equal(t, weather.LabelDate, ents[0].Label)
	require.Equal(t, "Lisbon", ents[1].Text)
	require.Less(t, ents[0].Start, ents[1].Start)
}

func TestRecognizeRelativeHours(t *testing.T) {
	ents := New().Recognize("Will it rain in Chicago in 3 hours?")
	require.Equal(t, []string{"in 3 hours"}, spansOf(ents, weather.LabelTime))
	require.Equal(t, []string{"Chicago"}, spansOf(ents, weather.LabelGPE))
}

func TestRecognizeStripsPrepositions(t *testing.T) {
	ents := New().Recognize("rain in Oslo at noon")
	require.Equal(t, []string{"noon"}, spansOf(ents, weather.LabelTime))
	for _, e := range ents {
		if e.Text == "noon" {
			require.Equal(t, "rain in Oslo at noon"[e.Start:e.Start+4], "noon")
		}
	}
}

func TestRecognizeSkipsSentenceOpeners(t *testing.T) {
	cases := []struct {
		text  string
		place []string
	}{
		{"Planning a picnic in Fremont tomorrow, will it rain?", []string{"Fremont"}},
		{"Walking my dog in Fremont tonight, need a jacket?", []string{"Fremont"}},
		{"Remind me to call mom", nil},
		{"Find a window cleaner", nil},
		{"Good morning! Tell me a joke", nil},
		{"Great. Paris is lovely", nil},
		{"In Paris, will it rain?", []string{"Paris"}},
		{"San Diego weather tonight?", []string{"San Diego"}},
		{"Fremont, CA forecast please", []string{"Fremont, CA"}},
	}
	for _, tc := range cases {
		ents := New().Recognize(tc.text)
		require.Equal(t, tc.place, spansOf(ents, weather.LabelGPE), tc.text)
	}
}

func TestRecognizeAbbreviatedPlaces(t *testing.T) {
	cases := map[string]string{
		"Is it cold in St. Louis tomorrow?":    "St. Louis",
		"Will it snow on Mt. Hood this weekend": "Mt. Hood",
		"Weather near Ft. Lauderdale":           "Ft. Lauderdale",
	}
	for text, want := range cases {
		ents := New().Recognize(text)
		require.Equal(t, []string{want}, spansOf(ents, weather.LabelGPE), text)
	}
}

func TestSentenceInitial(t *testing.T) {
	text := "Hi there. Boston? Near St. Louis"
	require.True(t, sentenceInitial(text, 0))
	require.True(t, sentenceInitial(text, strings.Index(text, "Boston")))
	require.True(t, sentenceInitial(text, strings.Index(text, "Near")))
	require.False(t, sentenceInitial(text, strings.Index(text, "there")))
	require.False(t, sentenceInitial(text, strings.Index(text, "Louis")))
}
