package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
	"github.com/yanqian/weather-buddy/pkg/util"
)

const (
	defaultQueryLocation = "Newark, CA"

	searchFields = "places.displayName,places.formattedAddress,places.rating,places.regularOpeningHours"
	hoursFields  = "places.displayName,places.regularOpeningHours,places.currentOpeningHours"

	fallbackMessage = "I'm sorry, I'm having trouble accessing restaurant and pharmacy information right now. Please try again later."
	errorMessage    = "I encountered an issue getting directory information. Please try rephrasing your question or check back in a few minutes."
)

var features = []string{
	"Cuisine-aware restaurant search",
	"Pharmacy lookup",
	"OTC medicine guidance (ibuprofen, aspirin, etc.)",
	"Opening hours check (current and by day)",
}

// Service answers restaurant, pharmacy, medicine and opening-hours questions.
type Service interface {
	Handle(ctx context.Context, text string) (Result, error)
	Capabilities() Capabilities
}

type service struct {
	cfg      Config
	searcher PlacesSearcher
	logger   *slog.Logger
	audit    *slog.Logger
}

// NewService wires the directory agent. A nil searcher leaves the agent
// unavailable; it then answers every question with the fallback message.
func NewService(cfg Config, searcher PlacesSearcher, logger, audit *slog.Logger) Service {
	if cfg.DefaultLocation == "" {
		cfg.DefaultLocation = defaultQueryLocation
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if audit == nil {
		audit = logger
	}
	return &service{
		cfg:      cfg,
		searcher: searcher,
		logger:   logger.With("component", "directory.service"),
		audit:    audit,
	}
}

func (s *service) Capabilities() Capabilities {
	return Capabilities{
		Available:  s.searcher != nil,
		Features:   append([]string(nil), features...),
		DataSource: "Google Places API",
	}
}

func (s *service) Handle(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	s.audit.Info("[DIRECTORY_INPUT]", "text", text)

	if s.searcher == nil {
		s.audit.Warn("[DIRECTORY_FALLBACK]", "reason", "places search not configured")
		s.audit.Info("[DIRECTORY_FALLBACK_RESPONSE]", "response", fallbackMessage)
		return Result{Kind: KindFailure, Message: fallbackMessage}, nil
	}

	c := Classify(text)
	s.logger.Info("directory route", "route", c.Route, "medicine", c.Medicine)

	var (
		result Result
		err    error
	)
	switch c.Route {
	case RoutePharmacy:
		result, err = s.pharmacies(ctx, text)
	case RouteMedicine:
		result, err = s.medicine(ctx, text, c.Medicine)
	case RouteHours:
		result, err = s.hours(ctx, *c.Hours)
	default:
		result, err = s.restaurants(ctx, text)
	}
	if err != nil {
		s.logger.Error("directory lookup failed", "route", c.Route, "error", err)
		s.audit.Error("[DIRECTORY_ERROR]", "error", fmt.Sprintf("Directory agent error: %v", err))
		s.audit.Info("[DIRECTORY_ERROR_RESPONSE]", "response", errorMessage)
		return Result{Kind: KindFailure, Message: errorMessage}, nil
	}
	return result, nil
}

func (s *service) restaurants(ctx context.Context, text string) (Result, error) {
	location, _ := ResolveLocation(text)
	category := "restaurants"
	if cuisine, ok := ExtractCuisine(text); ok {
		category = cuisine + " restaurants"
	}
	places, err := s.search(ctx, fmt.Sprintf("%s in %s", category, s.queryLocation(location)), searchFields)
	if err != nil {
		return Result{}, err
	}
	return FormatPlaces(places, category, location, s.cfg.MaxResults), nil
}

func (s *service) pharmacies(ctx context.Context, text string) (Result, error) {
	location, _ := ResolveLocation(text)
	places, err := s.search(ctx, "pharmacies in "+s.queryLocation(location), searchFields)
	if err != nil {
		return Result{}, err
	}
	return FormatPlaces(places, "pharmacies", location, s.cfg.MaxResults), nil
}

func (s *service) medicine(ctx context.Context, text, medicine string) (Result, error) {
	location, _ := ResolveLocation(text)
	places, err := s.search(ctx, "pharmacies in "+s.queryLocation(location), searchFields)
	if err != nil {
		return Result{}, err
	}
	where := displayLocation(location)
	if len(places) == 0 {
		return Result{
			Kind:     KindMessage,
			Category: "pharmacies",
			Location: where,
			Message:  fmt.Sprintf("Sorry, I couldn’t find pharmacies near %s for %s.", where, medicine),
		}, nil
	}
	if len(places) > s.cfg.MaxResults {
		places = places[:s.cfg.MaxResults]
	}
	lines := []string{fmt.Sprintf("You can ask for **%s** at these pharmacies near %s:\n", util.TitleCase(medicine), where)}
	for i, p := range places {
		lines = append(lines, formatLine(i+1, toEntry(p)))
	}
	return Result{
		Kind:     KindMessage,
		Success:  true,
		Category: "pharmacies",
		Location: where,
		Message:  strings.Join(lines, "\n"),
	}, nil
}

func (s *service) hours(ctx context.Context, q HoursQuery) (Result, error) {
	places, err := s.search(ctx, fmt.Sprintf("%s in %s", q.Name, s.queryLocation(q.Location)), hoursFields)
	if err != nil {
		return Result{}, err
	}
	where := displayLocation(q.Location)
	if len(places) == 0 {
		return Result{
			Kind:     KindMessage,
			Location: where,
			Message:  fmt.Sprintf("Sorry, I couldn’t find %s near %s.", q.Name, where),
		}, nil
	}
	return Result{
		Kind:     KindMessage,
		Success:  true,
		Location: where,
		Message:  hoursMessage(places[0], q.Day),
	}, nil
}

// hoursMessage answers from the requested day's schedule line when present,
// then from the live open-now flag, then from the first schedule line.
func hoursMessage(p Place, day string) string {
	if line, ok := dayLine(p.WeekdayDescriptions, day); ok {
		if strings.Contains(strings.ToLower(line), "closed") {
			return fmt.Sprintf("No, %s is closed on %s.", p.Name, day)
		}
		return fmt.Sprintf("%s hours on %s: %s", p.Name, day, line)
	}
	if p.OpenNow != nil {
		if *p.OpenNow {
			return fmt.Sprintf("Yes, %s is open right now.", p.Name)
		}
		return fmt.Sprintf("No, %s is closed right now.", p.Name)
	}
	if len(p.WeekdayDescriptions) > 0 {
		return fmt.Sprintf("%s hours today: %s", p.Name, p.WeekdayDescriptions[0])
	}
	return fmt.Sprintf("Sorry, I couldn’t retrieve hours for %s.", p.Name)
}

func dayLine(lines []string, day string) (string, bool) {
	if day == "" {
		return "", false
	}
	prefix := strings.ToLower(day) + ":"
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), prefix) {
			return line, true
		}
	}
	return "", false
}

func (s *service) search(ctx context.Context, query, fields string) ([]Place, error) {
	s.logger.Debug("places search", "query", query)
	return s.searcher.Search(ctx, query, strings.Split(fields, ","), s.cfg.MaxResults)
}

func (s *service) queryLocation(location string) string {
	if location == "" {
		return s.cfg.DefaultLocation
	}
	return location
}

func displayLocation(location string) string {
	if location == "" {
		return yourArea
	}
	return location
}
