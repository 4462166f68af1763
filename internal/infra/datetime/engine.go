package datetime

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Searcher finds the first date expression inside free text.
type Searcher struct {
	parser *when.Parser
}

// NewSearcher builds a searcher with the English and common rule sets.
func NewSearcher() *Searcher {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Searcher{parser: w}
}

// Search returns the instant of the first expression found in text.
func (s *Searcher) Search(text string, base time.Time) (time.Time, error) {
	res, err := s.parser.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("search %q: %w", text, err)
	}
	if res == nil {
		return time.Time{}, fmt.Errorf("search %q: %w", text, ErrUnrecognized)
	}
	return res.Time, nil
}

// Engine parses whole phrases with Parser and searches free text with Searcher.
type Engine struct {
	*Parser
	*Searcher
}

// NewEngine wires both halves.
func NewEngine() *Engine {
	return &Engine{Parser: NewParser(), Searcher: NewSearcher()}
}
