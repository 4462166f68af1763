package evaluation

import (
	"context"
	"time"
)

// Row is one evaluated utterance.
type Row struct {
	Question  string
	Location  string
	StartHour int
	EndHour   int
	Response  string
}

// Report is the outcome of one evaluation run. Rows keep the input order.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Rows       []Row
}

// Publisher stores a finished report and returns where it went.
type Publisher interface {
	Publish(ctx context.Context, report Report) (string, error)
}

// DefaultPrompts is the built-in utterance set used when no input file is given.
var DefaultPrompts = []string{
	"Will it rain in Fremont tomorrow morning?",
	"Weather Fremont tomorrow?",
	"Do I need umbrella Newark?",
	"Is it cold out in Portland now?",
	"Can I walk outside Tokyo later or no?",
	"Rain coming in Seattle this weekend?",
	"Jacket or sweater for Cape Town tonight?",
	"Is it warm enough Paris for picnic?",
	"I go out Newark today — okay?",
	"What’s the weather thing in Fremont next Friday?",
	"Will it be nice out in Sydney tomorrow morning?",
	"Is it safe to walk in Portland tonight?",
	"I’m going to Fremont — rain or not?",
	"Should I wear boots in Newark today?",
	"What's the weather like in Andaman island?",
	"What's the weather near Mount Rainer,WA?",
}
