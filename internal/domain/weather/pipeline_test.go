package weather_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-buddy/internal/domain/weather"
	"github.com/yanqian/weather-buddy/internal/infra/datetime"
	"github.com/yanqian/weather-buddy/internal/infra/ner"
)

// wednesday is 2024-07-03 10:00 UTC.
var wednesday = time.Date(2024, 7, 3, 10, 0, 0, 0, time.UTC)

func newProductionAssembler(now time.Time) *weather.IntentAssembler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := weather.NewExtractor(ner.New(), "Newark, CA")
	resolver := weather.NewWindowResolver(extractor, datetime.NewEngine(), logger)
	resolver.SetClock(func() time.Time { return now })
	return weather.NewIntentAssembler(extractor, resolver)
}

func TestAssembleWithRecognizerAndDateEngine(t *testing.T) {
	cases := []struct {
		text     string
		location string
		phrase   string
		start    int
	}{
		{"Will it rain in Fremont tomorrow morning?", "Fremont", "tomorrow morning", 22},
		{"Planning a picnic in Fremont tomorrow, will it rain?", "Fremont", "tomorrow", 24},
		{"Walking my dog in Fremont tonight, need a jacket?", "Fremont", "tonight", 11},
		{"Is it cold in St. Louis next Monday?", "St. Louis", "next Monday", 122},
		{"What's the weather like?", "Newark, CA", "", 0},
		{"Remind me to call mom", "", "", 0},
		{"Find a window cleaner", "", "", 0},
		{"Good morning! Tell me a joke", "", "morning", 0},
		{"Any good hotel deals?", "", "", 0},
	}
	assembler := newProductionAssembler(wednesday)
	for _, tc := range cases {
		intent := assembler.Assemble(tc.text)
		if tc.location == "" {
			require.Nil(t, intent.Location, tc.text)
		} else {
			require.NotNil(t, intent.Location, tc.text)
			require.Equal(t, tc.location, *intent.Location, tc.text)
		}
		if tc.phrase == "" {
			require.Nil(t, intent.TimePhrase, tc.text)
		} else {
			require.NotNil(t, intent.TimePhrase, tc.text)
			require.Equal(t, tc.phrase, *intent.TimePhrase, tc.text)
		}
		if tc.start > 0 {
			require.Equal(t, tc.start, intent.StartHour, tc.text)
		}
		require.Equal(t, intent.StartHour+2, intent.EndHour, tc.text)
		require.GreaterOrEqual(t, intent.StartHour, 0, tc.text)
	}
}

func TestAssembleNextWeekdayIsOneToSevenDaysAhead(t *testing.T) {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for offset := 0; offset < 7; offset++ {
		now := wednesday.AddDate(0, 0, offset)
		assembler := newProductionAssembler(now)
		for _, day := range days {
			intent := assembler.Assemble("Will it rain in Denver next " + day + "?")
			require.NotNil(t, intent.Location)
			require.Equal(t, "Denver", *intent.Location)

			// now is always 10:00, so noon on the target day starts 24*ahead+2 hours out.
			require.Zero(t, (intent.StartHour-2)%24, day)
			ahead := (intent.StartHour - 2) / 24
			require.GreaterOrEqual(t, ahead, 1, day)
			require.LessOrEqual(t, ahead, 7, day)
			require.Equal(t, day, now.AddDate(0, 0, ahead).Weekday().String(), day)
		}
	}
}
