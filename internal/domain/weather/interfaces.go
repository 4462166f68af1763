package weather

import (
	"context"
	"time"
)

// EntityRecognizer finds labelled spans in text, ordered by occurrence.
type EntityRecognizer interface {
	Recognize(text string) []Entity
}

// DateParser turns time phrases into absolute instants relative to base.
type DateParser interface {
	// Parse resolves a whole phrase, preferring future dates.
	Parse(phrase string, base time.Time) (time.Time, error)
	// Search finds the first date expression anywhere in free text.
	Search(text string, base time.Time) (time.Time, error)
}

// TextGenerator is a text-generation model. Its output is untrusted.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Geocoder resolves a place name. ok is false when nothing matches.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (place Place, ok bool, err error)
}

// ForecastClient fetches hourly forecast data for [from, to).
type ForecastClient interface {
	Hourly(ctx context.Context, lat, lon float64, from, to time.Time) (HourlySeries, error)
}
