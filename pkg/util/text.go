package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// FoldASCII decomposes text, drops anything outside ASCII and collapses
// whitespace. Curly quotes become their ASCII forms first.
func FoldASCII(text string) string {
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	folded, _, err := transform.String(chain, quoteReplacer.Replace(text))
	if err != nil {
		folded = text
	}
	return strings.Join(strings.Fields(folded), " ")
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(text string) string {
	return cases.Title(language.English).String(text)
}
