package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
	"github.com/yanqian/weather-buddy/pkg/util"
)

// IntentAssembler combines entity extraction and window resolution.
type IntentAssembler struct {
	extractor *Extractor
	resolver  *WindowResolver
}

// NewIntentAssembler wires the assembler.
func NewIntentAssembler(extractor *Extractor, resolver *WindowResolver) *IntentAssembler {
	return &IntentAssembler{extractor: extractor, resolver: resolver}
}

// Assemble builds the intent. Location is nil only when no place was found
// and the text carries no weather keyword.
func (a *IntentAssembler) Assemble(text string) WeatherIntent {
	entities := a.extractor.Extract(text)
	window := a.resolver.ResolvePhrase(entities.TimePhrase)
	return WeatherIntent{
		Location:   entities.Location,
		TimePhrase: entities.TimePhrase,
		StartHour:  window.StartHour,
		EndHour:    window.EndHour,
	}
}

var (
	jsonObjectPattern   = regexp.MustCompile(`(?s)\{.*\}`)
	inCityPattern       = regexp.MustCompile(`\bin\s+([A-Za-z][a-z]+(?:\s[A-Za-z][a-z]+)*)`)
	capitalisedPattern  = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\b`)
	explicitHourPattern = regexp.MustCompile(`(\d{1,2})\s*(?:hours?|hrs?)`)
)

// leadingFillers are capitalised words that start questions rather than name places.
var leadingFillers = map[string]struct{}{
	"will": {}, "is": {}, "what": {}, "whats": {}, "weather": {}, "do": {}, "does": {},
	"should": {}, "can": {}, "could": {}, "i": {}, "im": {}, "how": {}, "rain": {},
	"jacket": {}, "the": {}, "it": {}, "are": {}, "any": {},
}

// ReasoningAssembler layers model extraction in front of the deterministic chain:
// generator JSON, entity recognizer, regex heuristics, then the default location.
type ReasoningAssembler struct {
	base            *IntentAssembler
	generator       TextGenerator
	defaultLocation string
	logger          *slog.Logger
}

// NewReasoningAssembler wires the layered assembler. A nil generator skips the model layer.
func NewReasoningAssembler(base *IntentAssembler, generator TextGenerator, defaultLocation string, logger *slog.Logger) *ReasoningAssembler {
	return &ReasoningAssembler{
		base:            base,
		generator:       generator,
		defaultLocation: strings.TrimSpace(defaultLocation),
		logger:          logger.With("component", "weather.reasoning"),
	}
}

type generatedIntent struct {
	Location string
	Hours    *int
}

// Assemble resolves location and window one field at a time, each from the
// first layer that yields a value.
func (a *ReasoningAssembler) Assemble(ctx context.Context, text string) WeatherIntent {
	folded := util.FoldASCII(text)

	var intent WeatherIntent
	var haveWindow bool

	if generated, err := a.fromGenerator(ctx, folded); err == nil {
		intent.Location = strPtr(generated.Location)
		if generated.Hours != nil {
			window := windowFrom(*generated.Hours)
			intent.StartHour, intent.EndHour = window.StartHour, window.EndHour
			haveWindow = true
		}
	} else if !errors.Is(err, errNoGenerator) {
		a.logger.Debug("generator extraction skipped", "error", err)
	}

	location, phrase := a.base.extractor.recognize(folded)
	intent.TimePhrase = phrase
	if intent.Location == nil {
		intent.Location = location
	}
	if !haveWindow && phrase != nil {
		window := a.base.resolver.ResolvePhrase(phrase)
		intent.StartHour, intent.EndHour = window.StartHour, window.EndHour
		haveWindow = true
	}

	if intent.Location == nil {
		intent.Location = regexLocation(folded)
	}
	if !haveWindow {
		if hours, ok := regexHours(folded); ok {
			window := windowFrom(hours)
			intent.StartHour, intent.EndHour = window.StartHour, window.EndHour
			haveWindow = true
		}
	}

	if intent.Location == nil && a.defaultLocation != "" && HasWeatherTrigger(folded) {
		intent.Location = strPtr(a.defaultLocation)
	}
	if !haveWindow {
		intent.StartHour, intent.EndHour = DefaultWindow.StartHour, DefaultWindow.EndHour
	}
	return intent
}

var errNoGenerator = errors.New("no generator configured")

func (a *ReasoningAssembler) fromGenerator(ctx context.Context, text string) (generatedIntent, error) {
	if a.generator == nil {
		return generatedIntent{}, errNoGenerator
	}
	prompt := fmt.Sprintf(
		"From this user message, extract which city and when they want the weather.\nUser: '%s'\nRespond ONLY in JSON like: {'location': 'CITY', 'hours': NUMBER or null}.",
		text,
	)
	raw, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return generatedIntent{}, apperrors.Wrap(apperrors.CodeTransportFailure, "generator request failed", err)
	}
	return parseGeneratedIntent(raw)
}

// parseGeneratedIntent accepts the first JSON object in raw, tolerating
// single quotes and string-typed hours. A missing location is malformed.
func parseGeneratedIntent(raw string) (generatedIntent, error) {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return generatedIntent{}, apperrors.Wrap(apperrors.CodeGenerationMalformed, "no json object in generator output", nil)
	}
	var wire struct {
		Location json.RawMessage `json:"location"`
		Hours    json.RawMessage `json:"hours"`
	}
	if err := json.Unmarshal([]byte(strings.ReplaceAll(match, "'", `"`)), &wire); err != nil {
		return generatedIntent{}, apperrors.Wrap(apperrors.CodeGenerationMalformed, "generator output is not json", err)
	}
	var location string
	if err := json.Unmarshal(wire.Location, &location); err != nil || strings.TrimSpace(location) == "" {
		return generatedIntent{}, apperrors.Wrap(apperrors.CodeGenerationMalformed, "generator output has no location", err)
	}
	out := generatedIntent{Location: strings.TrimSpace(location)}
	if hours, ok := coerceHours(wire.Hours); ok {
		out.Hours = &hours
	}
	return out, nil
}

func coerceHours(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		if number < 0 {
			return 0, false
		}
		return int(number), true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && parsed >= 0 {
			return parsed, true
		}
	}
	return 0, false
}

// regexLocation prefers "in <City>", then the last capitalised run.
func regexLocation(text string) *string {
	if m := inCityPattern.FindStringSubmatch(text); m != nil {
		return strPtr(strings.TrimSpace(m[1]))
	}
	runs := capitalisedPattern.FindAllString(text, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		if candidate := trimFillers(runs[i]); candidate != "" {
			return strPtr(candidate)
		}
	}
	return nil
}

func trimFillers(run string) string {
	words := strings.Fields(run)
	for len(words) > 0 {
		if _, filler := leadingFillers[strings.ToLower(words[0])]; !filler {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// regexHours maps coarse time words to an hour offset.
func regexHours(text string) (int, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tomorrow"):
		return 12, true
	case strings.Contains(lower, "morning"):
		return 6, true
	case strings.Contains(lower, "evening"), strings.Contains(lower, "tonight"):
		return 12, true
	case strings.Contains(lower, "afternoon"):
		return 12, true
	}
	if m := explicitHourPattern.FindStringSubmatch(lower); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil {
			return hours, true
		}
	}
	return 0, false
}
