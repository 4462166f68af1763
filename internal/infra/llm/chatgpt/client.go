package chatgpt

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
	"github.com/yanqian/weather-buddy/pkg/metrics"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

// Config holds the text generation settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Generator produces completions for single-turn prompts.
type Generator struct {
	client *openai.Client
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	usage metrics.TokenUsage
}

// NewGenerator constructs a chat-completion backed generator.
func NewGenerator(cfg Config, logger *slog.Logger) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("chatgpt api key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		clientConfig.BaseURL = base
	}
	return &Generator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger.With("component", "chatgpt.generator"),
	}, nil
}

// Generate sends the prompt as a single user message and returns the first
// choice's content. The output is untrusted and callers must validate it.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	latency := time.Since(start)
	if err != nil {
		g.logger.Warn("chat completion failed", "error", err, "latency_ms", latency.Milliseconds())
		return "", apperrors.Wrap(apperrors.CodeTransportFailure, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.CodeGenerationMalformed, "chat completion returned no choices", nil)
	}

	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	g.mu.Lock()
	g.usage = g.usage.Add(usage)
	g.mu.Unlock()

	g.logger.Debug("chat completion", append([]any{"model", g.cfg.Model, "latency_ms", latency.Milliseconds()}, usage.LogAttrs()...)...)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Usage returns the tokens consumed since the generator was created.
func (g *Generator) Usage() metrics.TokenUsage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.usage
}
