package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-buddy/internal/domain/directory"
	"github.com/yanqian/weather-buddy/internal/domain/evaluation"
	"github.com/yanqian/weather-buddy/internal/domain/weather"
	"github.com/yanqian/weather-buddy/internal/infra/config"
	"github.com/yanqian/weather-buddy/internal/infra/datetime"
	"github.com/yanqian/weather-buddy/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-buddy/internal/infra/ner"
	"github.com/yanqian/weather-buddy/internal/infra/openmeteo"
	"github.com/yanqian/weather-buddy/internal/infra/places"
	"github.com/yanqian/weather-buddy/internal/infra/ratelimit"
	"github.com/yanqian/weather-buddy/internal/infra/report"
	"github.com/yanqian/weather-buddy/internal/infra/resilience"
	"github.com/yanqian/weather-buddy/pkg/logger"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		DefaultLocation: cfg.Weather.DefaultLocation,
		Strategy:        weather.Strategy(cfg.Weather.Strategy),
		PhraseReplies:   cfg.Weather.PhraseReplies,
	}
}

func provideDirectoryConfig(cfg *config.Config) directory.Config {
	return directory.Config{
		DefaultLocation: cfg.Directory.DefaultLocation,
		MaxResults:      cfg.Directory.MaxResults,
	}
}

// provideGenerator returns a nil generator when no API key is configured so
// the weather agent runs on its rule-based path only.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (*chatgpt.Generator, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, reasoning and phrasing disabled")
		return nil, nil
	}
	return chatgpt.NewGenerator(chatgpt.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
}

// provideTextGenerator avoids handing a typed nil to the domain.
func provideTextGenerator(g *chatgpt.Generator) weather.TextGenerator {
	if g == nil {
		return nil
	}
	return g
}

func provideRecognizer() weather.EntityRecognizer {
	return ner.New()
}

func provideDateParser() weather.DateParser {
	return datetime.NewEngine()
}

func provideExtractor(cfg *config.Config, recognizer weather.EntityRecognizer) *weather.Extractor {
	return weather.NewExtractor(recognizer, cfg.Weather.DefaultLocation)
}

func provideReasoningAssembler(cfg *config.Config, base *weather.IntentAssembler, generator weather.TextGenerator, logger *slog.Logger) *weather.ReasoningAssembler {
	return weather.NewReasoningAssembler(base, generator, cfg.Weather.DefaultLocation, logger)
}

func provideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	doer := resilience.NewDoer(resilience.Settings{
		Name:        "open-meteo",
		Timeout:     cfg.Weather.Timeout,
		MaxFailures: cfg.Weather.Breaker.MaxFailures,
		Cooldown:    cfg.Weather.Breaker.Cooldown,
	})
	return openmeteo.NewClient(cfg.Weather.GeocodingURL, cfg.Weather.ForecastURL, doer)
}

// providePlacesSearcher returns nil when no key is set; the directory agent
// then answers with its fallback message.
func providePlacesSearcher(cfg *config.Config, logger *slog.Logger) (directory.PlacesSearcher, error) {
	if strings.TrimSpace(cfg.Directory.APIKey) == "" {
		logger.Warn("places api key not set, directory agent unavailable")
		return nil, nil
	}
	doer := resilience.NewDoer(resilience.Settings{
		Name:        "google-places",
		Timeout:     cfg.Directory.Timeout,
		MaxFailures: cfg.Directory.Breaker.MaxFailures,
		Cooldown:    cfg.Directory.Breaker.Cooldown,
	})
	client, err := places.NewClient(cfg.Directory.APIKey, cfg.Directory.BaseURL, doer)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideDirectoryService(cfg *config.Config, dirCfg directory.Config, searcher directory.PlacesSearcher, log *slog.Logger) (directory.Service, func(), error) {
	audit, closer, err := logger.NewFile(logger.FileOptions{
		Path:       cfg.Directory.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("directory audit log: %w", err)
	}
	svc := directory.NewService(dirCfg, searcher, log, audit)
	return svc, func() {
		if err := closer.Close(); err != nil {
			log.Error("close directory audit log", "error", err)
		}
	}, nil
}

// provideLimiter shares the budget through Valkey when an address is set and
// falls back to an in-process limiter otherwise.
func provideLimiter(cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	rl := cfg.HTTP.RateLimit
	local := ratelimit.NewLocal(rl.RequestsPerMinute, rl.Burst)
	if strings.TrimSpace(rl.ValkeyAddr) == "" {
		return local, func() {}
	}
	opt, err := buildValkeyOptions(rl.ValkeyAddr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to local limiter", "error", err)
		return local, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to local limiter", "error", err)
		return local, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to local limiter", "error", err)
		client.Close()
		return local, func() {}
	}
	logger.Info("valkey rate limiter enabled", "addr", rl.ValkeyAddr)
	return ratelimit.NewValkey(client, rl.KeyPrefix, rl.RequestsPerMinute), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideRunner(cfg *config.Config, agent weather.Service, logger *slog.Logger) *evaluation.Runner {
	return evaluation.NewRunner(agent, cfg.Eval.Workers, logger)
}

// providePublishers always writes the local CSV and adds the bucket upload
// when it is enabled.
func providePublishers(cfg *config.Config, logger *slog.Logger) ([]evaluation.Publisher, error) {
	publishers := []evaluation.Publisher{report.FileSink{Path: cfg.Eval.Output}}
	up := cfg.Eval.Upload
	if !up.Enabled {
		return publishers, nil
	}
	sink, err := report.NewBucketSink(report.BucketConfig{
		Endpoint:  up.Endpoint,
		AccessKey: up.AccessKey,
		SecretKey: up.SecretKey,
		Bucket:    up.Bucket,
		Region:    up.Region,
		Prefix:    up.Prefix,
	}, logger)
	if err != nil {
		return nil, err
	}
	return append(publishers, sink), nil
}
