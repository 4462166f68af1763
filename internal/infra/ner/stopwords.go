package ner

// stopwords are capitalised words that never start or continue a place name.
var stopwords = []string{
	// question and request openers
	"what", "what's", "whats", "how", "how's", "when", "where", "which", "who", "why",
	"will", "would", "should", "could", "can", "do", "does", "did", "is", "are", "was",
	"tell", "give", "show", "check", "let", "let's", "please", "thanks", "thank",
	"hi", "hello", "hey", "ok", "okay", "yes", "no", "so", "and", "or", "but",
	"i", "i'm", "i'll", "it", "it's", "me", "my", "we", "you", "the", "a", "an", "any",
	"need", "bring", "wear", "take", "going", "get",
	// prepositions that introduce a place rather than belong to it
	"in", "near", "at", "for", "around", "on", "to", "of", "from", "by", "with",
	// weather vocabulary
	"weather", "forecast", "rain", "rainy", "snow", "sunny", "umbrella", "jacket",
	"temperature", "hot", "cold", "warm", "wind", "windy", "storm", "celsius", "fahrenheit",
	// time vocabulary
	"today", "tonight", "tomorrow", "now", "morning", "afternoon", "evening", "night",
	"weekend", "week", "next", "this", "am", "pm", "a.m", "p.m", "noon", "midnight",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"january", "february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december",
}

// abbreviations keep a place run going across their trailing period.
var abbreviations = map[string]struct{}{
	"st": {}, "mt": {}, "ft": {}, "pt": {},
}
