package jobs

import (
	"context"
	"fmt"

	"github.com/ztrader/etfscreener/internal/screening"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// ScreenJob runs the daily screening pass
// SSOT: the screening schedule lives in this job only.
type ScreenJob struct {
	params   screening.Params
	registry *selector.Registry
	schedule string
	logger   *logger.Logger
}

// NewScreenJob creates a new screening job
func NewScreenJob(params screening.Params, registry *selector.Registry, schedule string, log *logger.Logger) *ScreenJob {
	return &ScreenJob{
		params:   params,
		registry: registry,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreenJob) Name() string {
	return "daily_screening"
}

// Schedule returns the cron schedule, typically after the market close
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes one screening pass over the configured universe. The trade
// date is never pinned here: each scheduled run picks up the most recent
// snapshot date on its own.
func (j *ScreenJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled screening run")

	params := j.params
	params.Date = ""

	result, err := screening.Run(ctx, params, j.registry, j.logger)
	if err != nil {
		return fmt.Errorf("scheduled screening: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"trade_date": result.TradeDate.Format("2006-01-02"),
		"selectors":  len(result.Matches),
		"matches":    result.TotalMatches(),
		"failures":   len(result.Failures),
	}).Info("Scheduled screening completed")

	return nil
}
