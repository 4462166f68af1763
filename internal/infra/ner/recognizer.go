package ner

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yanqian/weather-buddy/internal/domain/weather"
)

const (
	weekdays = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	parts    = `morning|afternoon|evening|night`
	clock    = `\d{1,2}(?::\d{2})?\s*(?:am\b|pm\b|a\.m\.?|p\.m\.?)|noon\b|midnight\b`
)

// timePatterns are tried in order; earlier patterns win overlapping spans.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:the\s+)?day\s+after\s+tomorrow(?:\s+(?:` + parts + `))?(?:\s+at\s+(?:` + clock + `))?`),
	regexp.MustCompile(`(?i)\b(?:next|this|on)\s+(?:` + weekdays + `)(?:\s+(?:` + parts + `))?(?:\s+at\s+(?:` + clock + `))?`),
	regexp.MustCompile(`(?i)\b(?:tomorrow|today|tonight)(?:\s+(?:` + parts + `))?(?:\s+at\s+(?:` + clock + `))?`),
	regexp.MustCompile(`(?i)\b(?:this|next)\s+(?:` + parts + `|weekend|week)\b`),
	regexp.MustCompile(`(?i)\b(?:the\s+)?weekend\b`),
	regexp.MustCompile(`(?i)\b(?:` + weekdays + `)(?:\s+(?:` + parts + `))?(?:\s+at\s+(?:` + clock + `))?`),
	regexp.MustCompile(`(?i)\b(?:in|next)\s+(?:\d+|an?)\s+(?:hours?|minutes?|days?)\b`),
	regexp.MustCompile(`(?i)\bat\s+(?:` + clock + `)`),
	regexp.MustCompile(`(?i)\b(?:` + clock + `)`),
	regexp.MustCompile(`(?i)\b(?:in\s+the\s+)?(?:` + parts + `)\b`),
}

var (
	leadingPreposition = regexp.MustCompile(`(?i)^(?:at|on|in\s+the)\s+`)
	clockWords         = regexp.MustCompile(`(?i)\d\s*(?:a\.?m|p\.?m)|noon|midnight|hours?|minutes?|` + parts + `|tonight`)
	wordPattern        = regexp.MustCompile(`[A-Za-z][A-Za-z'.\-]*`)
	postalSuffix       = regexp.MustCompile(`^,\s*([A-Z]{2})\b`)
)

// Recognizer is a rule-based entity recognizer for weather questions. It tags
// capitalised place names as GPE and common time expressions as DATE or TIME.
type Recognizer struct {
	stopwords map[string]struct{}
}

// New builds a recognizer with the built-in stopword list.
func New() *Recognizer {
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[w] = struct{}{}
	}
	return &Recognizer{stopwords: stop}
}

// Recognize returns entities ordered by start offset.
func (r *Recognizer) Recognize(text string) []weather.Entity {
	times := r.timeEntities(text)
	places := r.placeEntities(text, times)
	out := append(times, places...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func (r *Recognizer) timeEntities(text string) []weather.Entity {
	var (
		out   []weather.Entity
		taken []span
	)
	for _, re := range timePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			s := span{loc[0], loc[1]}
			if s.overlapsAny(taken) {
				continue
			}
			taken = append(taken, s)
			raw := text[loc[0]:loc[1]]
			trimmed := leadingPreposition.ReplaceAllString(raw, "")
			out = append(out, weather.Entity{
				Text:  strings.TrimSpace(trimmed),
				Label: timeLabel(trimmed),
				Start: loc[0] + len(raw) - len(trimmed),
			})
		}
	}
	return out
}

func timeLabel(phrase string) weather.Label {
	if clockWords.MatchString(phrase) {
		return weather.LabelTime
	}
	return weather.LabelDate
}

// placeRun is a run of adjacent capitalised words.
type placeRun struct {
	start, end, words int
}

func (r *Recognizer) placeEntities(text string, times []weather.Entity) []weather.Entity {
	blocked := make([]span, 0, len(times))
	for _, t := range times {
		blocked = append(blocked, span{t.Start, t.Start + len(t.Text)})
	}

	var (
		out      []weather.Entity
		run      = placeRun{start: -1}
		consumed int
	)
	flush := func() {
		if run.start < 0 {
			return
		}
		cur := run
		run = placeRun{start: -1}
		end := cur.end
		suffix := postalSuffix.FindStringSubmatchIndex(text[end:])
		// A lone word opening a sentence is not a place unless a postal suffix follows.
		if cur.words == 1 && suffix == nil && sentenceInitial(text, cur.start) {
			return
		}
		if suffix != nil {
			end += suffix[1]
		}
		out = append(out, weather.Entity{Text: text[cur.start:end], Label: weather.LabelGPE, Start: cur.start})
		consumed = end
	}

	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		if loc[0] < consumed {
			continue
		}
		raw := text[loc[0]:loc[1]]
		word := strings.TrimRight(raw, ".'-")
		end := loc[0] + len(word)
		if isAbbreviation(word) && len(raw) > len(word) && raw[len(word)] == '.' {
			end++
		}
		placeWord := isCapitalised(word) && !r.isStopword(word) && !(span{loc[0], end}).overlapsAny(blocked)
		if !placeWord {
			flush()
			continue
		}
		if run.start >= 0 && !onlySpaces(text[run.end:loc[0]]) {
			flush()
			if loc[0] < consumed {
				continue
			}
		}
		if run.start < 0 {
			run.start = loc[0]
		}
		run.end = end
		run.words++
	}
	flush()
	return out
}

// sentenceInitial reports whether the word at pos opens the text or a
// sentence. A period after an abbreviation does not end a sentence.
func sentenceInitial(text string, pos int) bool {
	before := strings.TrimRight(text[:pos], " \t\n\"'(")
	if before == "" {
		return true
	}
	switch before[len(before)-1] {
	case '!', '?':
		return true
	case '.':
		prev := before[:len(before)-1]
		i := strings.LastIndexAny(prev, " \t\n") + 1
		return !isAbbreviation(prev[i:])
	}
	return false
}

func isAbbreviation(word string) bool {
	_, ok := abbreviations[strings.ToLower(word)]
	return ok
}

func (r *Recognizer) isStopword(word string) bool {
	_, ok := r.stopwords[strings.ToLower(word)]
	return ok
}

func isCapitalised(word string) bool {
	return word != "" && word[0] >= 'A' && word[0] <= 'Z'
}

func onlySpaces(s string) bool {
	return strings.TrimSpace(s) == "" && !strings.Contains(s, "\n")
}

type span struct{ start, end int }

func (s span) overlapsAny(others []span) bool {
	for _, o := range others {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}
