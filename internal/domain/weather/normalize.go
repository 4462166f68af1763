package weather

import "strings"

type phraseRewrite struct {
	key   string
	value string
}

// timePhraseRewrites maps colloquial time phrases to parser-friendly ones.
// Order matters: substring matching walks the table top to bottom, so the
// more specific phrases come first.
var timePhraseRewrites = []phraseRewrite{
	{"tomorrow morning", "tomorrow at 8 AM"},
	{"tomorrow afternoon", "tomorrow at 2 PM"},
	{"tomorrow evening", "tomorrow at 6 PM"},
	{"tomorrow night", "tomorrow at 9 PM"},
	{"tonight", "today at 9 PM"},
	{"this evening", "today at 6 PM"},
	{"this morning", "today at 8 AM"},
	{"this afternoon", "today at 2 PM"},
	{"next friday at 6 pm", "next friday at 6 PM"},
	{"next friday", "next friday at noon"},
	{"this weekend", "saturday at noon"},
	{"evening", "today at 6 PM"},
	{"morning", "today at 8 AM"},
	{"afternoon", "today at 2 PM"},
	{"night", "today at 9 PM"},
}

// NormalizeTimePhrase rewrites a time phrase using the rewrite table. An
// exact match wins, then the first key contained in the phrase; otherwise the
// lower-cased, trimmed phrase is returned. A nil phrase stays nil.
func NormalizeTimePhrase(phrase *string) *string {
	if phrase == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*phrase))
	for _, rw := range timePhraseRewrites {
		if lowered == rw.key {
			return strPtr(rw.value)
		}
	}
	for _, rw := range timePhraseRewrites {
		if strings.Contains(lowered, rw.key) {
			return strPtr(rw.value)
		}
	}
	return &lowered
}

func strPtr(s string) *string {
	return &s
}
