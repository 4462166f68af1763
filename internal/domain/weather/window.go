package weather

import (
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	nextWordPattern = regexp.MustCompile(`\bnext\b`)
	weekdayOrder    = []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
)

// WindowResolver turns an utterance into an hour window relative to now.
type WindowResolver struct {
	extractor *Extractor
	parser    DateParser
	logger    *slog.Logger
	now       func() time.Time
}

// NewWindowResolver wires the resolver.
func NewWindowResolver(extractor *Extractor, parser DateParser, logger *slog.Logger) *WindowResolver {
	return &WindowResolver{
		extractor: extractor,
		parser:    parser,
		logger:    logger.With("component", "weather.window"),
		now:       time.Now,
	}
}

// Resolve extracts the time phrase from text and maps it to a window.
func (r *WindowResolver) Resolve(text string) TimeWindow {
	_, phrase := r.extractor.recognize(text)
	return r.ResolvePhrase(phrase)
}

// ResolvePhrase maps an already extracted time phrase to a window. Any
// failure yields DefaultWindow.
func (r *WindowResolver) ResolvePhrase(phrase *string) TimeWindow {
	if phrase == nil {
		return DefaultWindow
	}
	normalized := *NormalizeTimePhrase(phrase)
	now := r.now()

	target, err := r.parser.Parse(normalized, now)
	if err != nil {
		target, err = r.parser.Search(normalized, now)
		if err != nil {
			r.logger.Debug("time phrase not understood", "phrase", normalized, "error", err)
			return DefaultWindow
		}
	}

	if override, ok := nextWeekday(normalized, now); ok {
		target = override
	}

	start := int(math.Floor(target.Sub(now).Hours()))
	return windowFrom(start)
}

// nextWeekday handles "next <weekday>" as the occurrence 1 to 7 days ahead at noon.
func nextWeekday(phrase string, now time.Time) (time.Time, bool) {
	lowered := strings.ToLower(phrase)
	if !nextWordPattern.MatchString(lowered) {
		return time.Time{}, false
	}
	for _, day := range weekdayOrder {
		if !strings.Contains(lowered, strings.ToLower(day.String())) {
			continue
		}
		ahead := (isoWeekday(day) - isoWeekday(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
		return noon.AddDate(0, 0, ahead), true
	}
	return time.Time{}, false
}

// isoWeekday numbers Monday as 0 and Sunday as 6.
func isoWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
