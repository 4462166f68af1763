package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/weather-buddy/internal/domain/weather"
	"github.com/yanqian/weather-buddy/pkg/util"
)

const defaultWorkers = 4

// Runner pushes utterances through the weather agent, a few at a time.
type Runner struct {
	agent   weather.Service
	workers int
	logger  *slog.Logger
	now     func() time.Time
}

// NewRunner builds a runner. workers <= 0 uses a small default.
func NewRunner(agent weather.Service, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Runner{
		agent:   agent,
		workers: workers,
		logger:  logger.With("component", "evaluation.runner"),
		now:     util.NowUTC,
	}
}

// Run evaluates every prompt. A failing prompt is recorded in its row and
// does not stop the run; only cancellation does.
func (r *Runner) Run(ctx context.Context, prompts []string) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: r.now().UTC(),
		Rows:      make([]Row, len(prompts)),
	}
	logger := r.logger.With("run_id", report.RunID)
	logger.Info("evaluation started", "prompts", len(prompts), "workers", r.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, prompt := range prompts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Rows[i] = r.evaluate(gctx, prompt)
			logger.Debug("prompt evaluated", "index", i, "location", report.Rows[i].Location)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("evaluation cancelled: %w", err)
	}

	report.FinishedAt = r.now().UTC()
	logger.Info("evaluation finished", "rows", len(report.Rows), "elapsed_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds())
	return report, nil
}

func (r *Runner) evaluate(ctx context.Context, prompt string) Row {
	row := Row{Question: prompt}
	resp, err := r.agent.Handle(ctx, weather.Request{Text: prompt})
	if err != nil {
		row.Response = fmt.Sprintf("Error: %v", err)
		return row
	}
	if resp.Intent.Location != nil {
		row.Location = *resp.Intent.Location
	}
	row.StartHour = resp.Intent.StartHour
	row.EndHour = resp.Intent.EndHour
	row.Response = resp.Reply
	return row
}

// Publish hands the report to every publisher in order and returns the
// locations they reported.
func Publish(ctx context.Context, report Report, publishers ...Publisher) ([]string, error) {
	locations := make([]string, 0, len(publishers))
	for _, p := range publishers {
		loc, err := p.Publish(ctx, report)
		if err != nil {
			return locations, fmt.Errorf("publish report %s: %w", report.RunID, err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
