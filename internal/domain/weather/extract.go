package weather

import (
	"regexp"
	"strings"

	"github.com/yanqian/weather-buddy/pkg/util"
)

// triggerWords mark an utterance as a weather question even without a place.
// Each entry matches a whole word, so the allowed inflections are spelled out.
var triggerWords = []string{
	"weather", `rain(?:y|ing|s)?`, `umbrellas?`, "sunny", `snow(?:ing|y|s)?`, `cold(?:er)?`,
	`hot(?:ter)?`, `temperatures?`, `forecasts?`, `warm(?:er)?`, `wind(?:y)?`, `storm(?:s|y)?`,
}

var triggerPattern = regexp.MustCompile(`\b(?:` + strings.Join(triggerWords, "|") + `)\b`)

// HasWeatherTrigger reports whether text mentions a weather keyword.
func HasWeatherTrigger(text string) bool {
	return triggerPattern.MatchString(strings.ToLower(text))
}

// Extractor pulls the first place and the first time phrase out of an utterance.
type Extractor struct {
	recognizer      EntityRecognizer
	defaultLocation string
}

// NewExtractor builds an extractor. An empty defaultLocation disables the
// trigger-word substitution.
func NewExtractor(recognizer EntityRecognizer, defaultLocation string) *Extractor {
	return &Extractor{recognizer: recognizer, defaultLocation: strings.TrimSpace(defaultLocation)}
}

// Extract returns the first GPE as location and the first DATE/TIME as time
// phrase. When no place is found but the text is about the weather, the
// default location is used.
func (e *Extractor) Extract(text string) ExtractedEntities {
	location, phrase := e.recognize(text)
	if location == nil && e.defaultLocation != "" && HasWeatherTrigger(text) {
		location = strPtr(e.defaultLocation)
	}
	return ExtractedEntities{Location: location, TimePhrase: phrase}
}

// recognize runs the recognizer without applying the default location.
func (e *Extractor) recognize(text string) (location, phrase *string) {
	if e.recognizer == nil {
		return nil, nil
	}
	for _, ent := range e.recognizer.Recognize(util.FoldASCII(text)) {
		span := strings.TrimSpace(ent.Text)
		if span == "" {
			continue
		}
		switch ent.Label {
		case LabelGPE:
			if location == nil {
				location = strPtr(span)
			}
		case LabelDate, LabelTime:
			if phrase == nil {
				phrase = strPtr(span)
			}
		}
	}
	return location, phrase
}
