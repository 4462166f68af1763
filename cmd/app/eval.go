package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/yanqian/weather-buddy/internal/domain/evaluation"
	"github.com/yanqian/weather-buddy/internal/infra/config"
	"github.com/yanqian/weather-buddy/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-buddy/internal/infra/report"
)

// evalJob runs one offline evaluation and publishes its report.
type evalJob struct {
	cfg        *config.Config
	logger     *slog.Logger
	runner     *evaluation.Runner
	publishers []evaluation.Publisher
	generator  *chatgpt.Generator
}

func newEvalJob(cfg *config.Config, logger *slog.Logger, runner *evaluation.Runner, publishers []evaluation.Publisher, generator *chatgpt.Generator) *evalJob {
	return &evalJob{
		cfg:        cfg,
		logger:     logger.With("component", "eval"),
		runner:     runner,
		publishers: publishers,
		generator:  generator,
	}
}

func (j *evalJob) run(ctx context.Context, input, output string) error {
	if input == "" {
		input = j.cfg.Eval.Input
	}
	prompts, err := loadPrompts(input)
	if err != nil {
		return err
	}

	publishers := j.publishers
	if output != "" {
		publishers = make([]evaluation.Publisher, 0, len(j.publishers))
		for _, p := range j.publishers {
			if _, ok := p.(report.FileSink); ok {
				p = report.FileSink{Path: output}
			}
			publishers = append(publishers, p)
		}
	}

	rep, err := j.runner.Run(ctx, prompts)
	if err != nil {
		return err
	}
	locations, err := evaluation.Publish(ctx, rep, publishers...)
	if err != nil {
		return err
	}
	j.logger.Info("evaluation report published", "run_id", rep.RunID, "rows", len(rep.Rows), "locations", locations)
	if j.generator != nil && !j.generator.Usage().IsZero() {
		j.logger.Info("llm usage", j.generator.Usage().LogAttrs()...)
	}
	return nil
}

// loadPrompts reads the JSONL prompt file, or the built-in set when no path
// is configured.
func loadPrompts(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return append([]string(nil), evaluation.DefaultPrompts...), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}
	defer f.Close()
	prompts, err := evaluation.LoadPrompts(f)
	if err != nil {
		return nil, fmt.Errorf("load prompts from %s: %w", path, err)
	}
	return prompts, nil
}
