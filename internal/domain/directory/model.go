package directory

import (
	"context"
	"strings"
)

// Place is a places-search record. Optional fields are nil when absent.
type Place struct {
	Name                string
	Address             *string
	Rating              *float64
	WeekdayDescriptions []string
	OpenNow             *bool
}

// PlacesSearcher runs a free-text places query for the given field mask.
type PlacesSearcher interface {
	Search(ctx context.Context, query string, fields []string, maxResults int) ([]Place, error)
}

// Kind tells which shape a Result carries.
type Kind string

const (
	KindPlaces  Kind = "places"
	KindMessage Kind = "message"
	KindFailure Kind = "failure"
)

// Entry is one formatted place in a result list.
type Entry struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  string  `json:"rating"`
	Hours   *string `json:"hours"`
}

// Result is the directory agent's answer.
type Result struct {
	Kind     Kind    `json:"kind"`
	Success  bool    `json:"success"`
	Category string  `json:"category,omitempty"`
	Location string  `json:"location,omitempty"`
	Message  string  `json:"message"`
	Results  []Entry `json:"results,omitempty"`
}

// Text renders the result as a chat reply.
func (r Result) Text() string {
	if r.Kind != KindPlaces || len(r.Results) == 0 {
		return r.Message
	}
	var b strings.Builder
	b.WriteString(r.Message)
	for i, e := range r.Results {
		b.WriteString("\n")
		b.WriteString(formatLine(i+1, e))
		if e.Hours != nil {
			b.WriteString(" | ")
			b.WriteString(*e.Hours)
		}
	}
	return b.String()
}

// Capabilities describes what the directory agent can do.
type Capabilities struct {
	Available  bool     `json:"available"`
	Features   []string `json:"features"`
	DataSource string   `json:"dataSource"`
}

// Config wires runtime settings for the directory agent.
type Config struct {
	DefaultLocation string
	MaxResults      int
}
