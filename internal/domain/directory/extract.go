package directory

import (
	"regexp"
	"strings"

	"github.com/yanqian/weather-buddy/pkg/util"
)

type cuisine struct {
	name     string
	keywords []string
}

// cuisines is scanned in order; the first cuisine with a matching keyword wins.
var cuisines = []cuisine{
	{"indian", []string{"indian", "idli", "dosa", "curry"}},
	{"thai", []string{"thai", "pad thai", "tom yum"}},
	{"mexican", []string{"mexican", "taco", "burrito", "enchilada"}},
	{"american", []string{"american", "burger", "steakhouse", "bbq"}},
	{"italian", []string{"italian", "pizza", "pasta", "spaghetti"}},
	{"chinese", []string{"chinese", "dim sum", "noodles", "dumplings"}},
	{"japanese", []string{"japanese", "sushi", "ramen"}},
	{"ethiopian", []string{"ethiopian", "injera", "berbere"}},
	{"greek", []string{"greek", "gyro", "souvlaki"}},
}

// medicines are the OTC names the medicine handler recognises.
var medicines = []string{"ibuprofen", "tylenol", "advil", "aspirin", "aleve", "benadryl"}

var (
	locationPattern = regexp.MustCompile(`\b(in|near|around)\s+([A-Za-z\s]+)`)
	medicinePattern = regexp.MustCompile(`\b(` + strings.Join(medicines, "|") + `)\b`)
)

// selfReferences are captured spans that mean "where I am", not a place.
var selfReferences = map[string]struct{}{
	"me": {}, "here": {}, "my area": {}, "my location": {},
}

// ExtractCuisine returns the first cuisine whose keyword appears in text.
func ExtractCuisine(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range cuisines {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name, true
			}
		}
	}
	return "", false
}

// ResolveLocation returns the title-cased span after the first in/near/around.
func ResolveLocation(text string) (string, bool) {
	m := locationPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return "", false
	}
	span := strings.Join(strings.Fields(m[2]), " ")
	if span == "" {
		return "", false
	}
	if _, self := selfReferences[span]; self {
		return "", false
	}
	return util.TitleCase(span), true
}

// ExtractMedicine returns the first OTC medicine named in text.
func ExtractMedicine(text string) (string, bool) {
	m := medicinePattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return "", false
	}
	return m[1], true
}
