package datetime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// base is Monday 2024-07-01 10:20 UTC.
var base = time.Date(2024, 7, 1, 10, 20, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 7, day, hour, minute, 0, 0, time.UTC)
}

func TestParsePhrases(t *testing.T) {
	cases := map[string]time.Time{
		"tomorrow at 8 AM":       at(2, 8, 0),
		"today at 6 PM":          at(1, 18, 0),
		"today at 9 PM":          at(1, 21, 0),
		"next friday at noon":    at(5, 12, 0),
		"next friday at 6 PM":    at(5, 18, 0),
		"saturday at noon":       at(6, 12, 0),
		"friday":                 at(5, 12, 0),
		"monday":                 at(8, 12, 0),
		"this monday":            at(1, 12, 0),
		"in 3 hours":             at(1, 13, 20),
		"in an hour":             at(1, 11, 20),
		"next 2 days":            at(3, 10, 20),
		"tomorrow":               at(2, 10, 20),
		"the day after tomorrow": at(3, 10, 20),
		"today":                  base,
		"now":                    base,
		"tonight":                at(1, 21, 0),
		"tomorrow morning":       at(2, 8, 0),
		"in the evening":         at(1, 18, 0),
		"at 7:30 pm":             at(1, 19, 30),
		"at 9 am":                at(2, 9, 0),
		"midnight":               at(2, 0, 0),
		"on sunday":              at(7, 12, 0),
		"this weekend":           at(6, 12, 0),
		"2024-07-04 15:00":       at(4, 15, 0),
	}
	p := NewParser()
	for phrase, want := range cases {
		got, err := p.Parse(phrase, base)
		require.NoError(t, err, phrase)
		require.Equal(t, want, got, phrase)
	}
}

func TestParseWeekendOnSunday(t *testing.T) {
	sunday := time.Date(2024, 7, 7, 9, 0, 0, 0, time.UTC)
	got, err := NewParser().Parse("weekend", sunday)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 7, 7, 12, 0, 0, 0, time.UTC), got)

	got, err = NewParser().Parse("next weekend", sunday)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 7, 13, 12, 0, 0, 0, time.UTC), got)
}

func TestParseRejects(t *testing.T) {
	p := NewParser()
	for _, phrase := range []string{"", "soonish", "at 13 pm", "at 7", "whenever you like"} {
		_, err := p.Parse(phrase, base)
		require.Error(t, err, phrase)
		require.True(t, errors.Is(err, ErrUnrecognized), phrase)
	}
}

func TestSearchFindsEmbeddedDate(t *testing.T) {
	s := NewSearcher()
	got, err := s.Search("will it rain tomorrow in the city", base)
	require.NoError(t, err)
	require.Equal(t, 2, got.Day())

	_, err = s.Search("no dates here", base)
	require.ErrorIs(t, err, ErrUnrecognized)
}

func TestEngineSatisfiesBothHalves(t *testing.T) {
	e := NewEngine()
	got, err := e.Parse("tomorrow at 8 AM", base)
	require.NoError(t, err)
	require.Equal(t, at(2, 8, 0), got)

	got, err = e.Search("bring a coat tomorrow", base)
	require.NoError(t, err)
	require.Equal(t, 2, got.Day())
}
