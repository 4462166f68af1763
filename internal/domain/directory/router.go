package directory

import (
	"regexp"
	"strings"
)

// Route names the handler an utterance is dispatched to.
type Route string

const (
	RoutePharmacy   Route = "pharmacy"
	RouteMedicine   Route = "medicine"
	RouteHours      Route = "hours"
	RouteRestaurant Route = "restaurant"
)

var (
	pharmacyPattern  = regexp.MustCompile(`\bpharmac(?:y|ies)\b`)
	openOnPattern    = regexp.MustCompile(`(?i)\bopen on (\w+)`)
	hoursNamePattern = regexp.MustCompile(`(?i)\bis (.+?) open on\b`)
	nameSplitPattern = regexp.MustCompile(`(?i)\s+(?:in|near|around)\s+`)
)

// HoursQuery is the parsed form of "is <name> open on <day>".
type HoursQuery struct {
	Name     string
	Location string
	Day      string
}

// Classification is the routing decision for one utterance.
type Classification struct {
	Route    Route
	Medicine string
	Hours    *HoursQuery
}

// Classify picks a handler. Pharmacy wins over medicine, medicine over an
// hours check, and everything else is a restaurant search.
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	if pharmacyPattern.MatchString(lower) {
		return Classification{Route: RoutePharmacy}
	}
	if med, ok := ExtractMedicine(lower); ok {
		return Classification{Route: RouteMedicine, Medicine: med}
	}
	if q, ok := parseHoursQuery(text); ok {
		return Classification{Route: RouteHours, Hours: &q}
	}
	return Classification{Route: RouteRestaurant}
}

func parseHoursQuery(text string) (HoursQuery, bool) {
	day := openOnPattern.FindStringSubmatch(text)
	if day == nil {
		return HoursQuery{}, false
	}
	m := hoursNamePattern.FindStringSubmatch(text)
	if m == nil {
		return HoursQuery{}, false
	}
	name := strings.TrimSpace(m[1])
	q := HoursQuery{Name: name, Day: titleWord(day[1])}
	if parts := nameSplitPattern.Split(name, 2); len(parts) == 2 {
		q.Name = strings.TrimSpace(parts[0])
		if loc, ok := ResolveLocation("in " + parts[1]); ok {
			q.Location = loc
		}
	}
	if q.Name == "" {
		return HoursQuery{}, false
	}
	return q, true
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// LooksLikeDirectory reports whether an utterance belongs to the directory
// agent rather than the weather agent. Keywords match whole words so that
// "weather" or "Indianapolis" stay with the weather agent.
func LooksLikeDirectory(text string) bool {
	lower := strings.ToLower(text)
	if directoryPattern.MatchString(lower) || pharmacyPattern.MatchString(lower) {
		return true
	}
	_, ok := ExtractMedicine(lower)
	return ok
}

var directoryPattern = regexp.MustCompile(`\b(?:` + strings.Join(directoryKeywords(), "|") + `)\b`)

func directoryKeywords() []string {
	words := []string{"restaurants?", "food", "eat", "dinner", "lunch", "breakfast", "open (?:on|now|near)"}
	for _, c := range cuisines {
		for _, kw := range c.keywords {
			words = append(words, regexp.QuoteMeta(kw))
		}
	}
	return words
}
