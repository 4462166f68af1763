package directory

import (
	"context"
	"io"
	"log/slog"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type searchCall struct {
	query  string
	fields []string
	max    int
}

// stubSearcher returns canned places and records every query.
type stubSearcher struct {
	places []Place
	err    error
	calls  []searchCall
}

func (s *stubSearcher) Search(_ context.Context, query string, fields []string, maxResults int) ([]Place, error) {
	s.calls = append(s.calls, searchCall{query: query, fields: fields, max: maxResults})
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
}

func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
