package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
)

const (
	clarifyReply   = "Could you please tell me which city you'd like the weather for?"
	clarifySummary = "Weather location not specified."
)

// Service answers weather questions.
type Service interface {
	Handle(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg       Config
	assembler *IntentAssembler
	reasoning *ReasoningAssembler
	fetcher   *Fetcher
	generator TextGenerator
	logger    *slog.Logger
}

// NewService wires up the weather agent.
func NewService(cfg Config, assembler *IntentAssembler, reasoning *ReasoningAssembler, fetcher *Fetcher, generator TextGenerator, logger *slog.Logger) Service {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyAPI
	}
	return &service{
		cfg:       cfg,
		assembler: assembler,
		reasoning: reasoning,
		fetcher:   fetcher,
		generator: generator,
		logger:    logger.With("component", "weather.service"),
	}
}

func (s *service) Handle(ctx context.Context, req Request) (Response, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "text cannot be empty", nil)
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = s.cfg.Strategy
	}
	if strategy != StrategyAPI && strategy != StrategyReasoning {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown strategy %q", strategy), nil)
	}

	var intent WeatherIntent
	if strategy == StrategyReasoning && s.reasoning != nil {
		intent = s.reasoning.Assemble(ctx, text)
	} else {
		intent = s.assembler.Assemble(text)
	}
	s.logger.Info("weather intent", "strategy", strategy, "location", deref(intent.Location), "time_phrase", deref(intent.TimePhrase), "start_hour", intent.StartHour, "end_hour", intent.EndHour)

	if intent.Location == nil {
		s.logger.Info("weather location missing", "code", apperrors.CodeExtractionAmbiguous)
		return Response{Reply: clarifyReply, Summary: clarifySummary, Intent: intent, Code: apperrors.CodeExtractionAmbiguous}, nil
	}
	location := *intent.Location

	block, err := s.fetcher.Fetch(ctx, location, intent.Window())
	if err != nil {
		s.logger.Warn("forecast fetch failed", "location", location, "code", apperrors.CodeOf(err), "error", err)
		reply := failureReply(location, err)
		return Response{Reply: reply.Reply, Summary: reply.Summary, Intent: intent, Forecast: &block, Code: apperrors.CodeOf(err)}, nil
	}

	reply, err := Render(block.ResolvedName, intent.Window(), block.TemperaturesC, block.PrecipitationMM)
	if err != nil {
		err = apperrors.Wrap(apperrors.CodeForecastUnavailable, "forecast has no samples to render", err)
		s.logger.Warn("forecast render failed", "location", location, "error", err)
		failed := failureReply(location, err)
		return Response{Reply: failed.Reply, Summary: failed.Summary, Intent: intent, Forecast: &block, Code: apperrors.CodeForecastUnavailable}, nil
	}
	if strategy == StrategyReasoning && s.cfg.PhraseReplies {
		reply.Reply = s.phrase(ctx, reply)
	}
	return Response{Reply: reply.Reply, Summary: reply.Summary, Intent: intent, Forecast: &block}, nil
}

// phrase asks the generator for a warmer wording and keeps the
// deterministic reply when it fails or returns nothing.
func (s *service) phrase(ctx context.Context, reply AgentReply) string {
	if s.generator == nil {
		return reply.Reply
	}
	prompt := "You are a kind weather buddy for older adults. Rewrite this forecast in at most three short, warm sentences. " +
		"Keep every number and the rain advice unchanged. Do not add greetings.\nForecast: " + reply.Reply
	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("reply phrasing failed", "error", err)
		return reply.Reply
	}
	if out = strings.TrimSpace(out); out == "" {
		return reply.Reply
	}
	return out
}

// failureReply turns a coded fetch error into the apology pair.
func failureReply(location string, err error) AgentReply {
	summary := fmt.Sprintf("Weather unknown for %s right now.", location)
	switch {
	case apperrors.IsCode(err, apperrors.CodeLocationNotFound):
		return AgentReply{Reply: fmt.Sprintf("Sorry, I couldn’t find any weather information for %s.", location), Summary: summary}
	case apperrors.IsCode(err, apperrors.CodeForecastUnavailable):
		return AgentReply{Reply: fmt.Sprintf("Sorry, I couldn’t get the forecast for %s right now.", location), Summary: summary}
	default:
		return AgentReply{Reply: fmt.Sprintf("Oops, something went wrong fetching the weather: %v", err), Summary: summary}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
