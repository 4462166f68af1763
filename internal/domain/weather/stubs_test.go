package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRecognizer tags every known span found in the text.
type stubRecognizer struct {
	spans map[string]Label
	calls int
}

func (s *stubRecognizer) Recognize(text string) []Entity {
	s.calls++
	var out []Entity
	for span, label := range s.spans {
		if idx := strings.Index(text, span); idx >= 0 {
			out = append(out, Entity{Text: span, Label: label, Start: idx})
		}
	}
	// keep occurrence order stable regardless of map iteration
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Start < out[j-1].Start; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

type stubDateParser struct {
	parseFn  func(phrase string, base time.Time) (time.Time, error)
	searchFn func(text string, base time.Time) (time.Time, error)
	phrases  []string
}

var errUnparsed = errors.New("unparsed")

func (s *stubDateParser) Parse(phrase string, base time.Time) (time.Time, error) {
	s.phrases = append(s.phrases, phrase)
	if s.parseFn != nil {
		return s.parseFn(phrase, base)
	}
	return time.Time{}, errUnparsed
}

func (s *stubDateParser) Search(text string, base time.Time) (time.Time, error) {
	if s.searchFn != nil {
		return s.searchFn(text, base)
	}
	return time.Time{}, errUnparsed
}

type stubGenerator struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	out := s.responses[0]
	s.responses = s.responses[1:]
	return out, nil
}

type stubGeocoder struct {
	place   Place
	found   bool
	err     error
	queries []string
}

func (s *stubGeocoder) Geocode(ctx context.Context, name string) (Place, bool, error) {
	s.queries = append(s.queries, name)
	return s.place, s.found, s.err
}

type stubForecast struct {
	series   HourlySeries
	err      error
	from, to time.Time
}

func (s *stubForecast) Hourly(ctx context.Context, lat, lon float64, from, to time.Time) (HourlySeries, error) {
	s.from, s.to = from, to
	return s.series, s.err
}

func fixedClock(value string) func() time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
