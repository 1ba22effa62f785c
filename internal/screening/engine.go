package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// Engine executes configured selectors against the loaded data at the
// resolved trade date, one at a time, with per-spec fault isolation: a spec
// that fails to construct or to select is logged, recorded on the result and
// skipped. One bad selector never aborts the run.
type Engine struct {
	registry *selector.Registry
	logger   *logger.Logger
}

// NewEngine creates a screening engine.
func NewEngine(registry *selector.Registry, log *logger.Logger) *Engine {
	return &Engine{registry: registry, logger: log}
}

// Run screens every active spec and aggregates matches per alias. Two specs
// sharing an alias: the later one's matches overwrite the earlier one's.
// Zero successful specs still yields an empty, non-nil result.
func (e *Engine) Run(
	ctx context.Context,
	tradeDate time.Time,
	data map[string]*contracts.Series,
	specs []selectorconfig.Spec,
) *contracts.ScreeningResult {
	result := contracts.NewScreeningResult(tradeDate)

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			e.logger.WithError(err).Warn("Screening interrupted")
			break
		}

		if !spec.Enabled() {
			e.logger.WithField("alias", spec.DisplayAlias()).Debug("Selector inactive, skipping")
			continue
		}

		sel, err := e.registry.Build(spec)
		if err != nil {
			e.logger.WithError(err).WithFields(map[string]interface{}{
				"type":  spec.Type,
				"alias": spec.DisplayAlias(),
			}).Error("Selector construction failed, skipping")
			result.Failures = append(result.Failures, contracts.SpecFailure{
				Type:   spec.Type,
				Alias:  spec.DisplayAlias(),
				Stage:  "construct",
				Reason: err.Error(),
			})
			continue
		}

		picks, err := e.invoke(sel, tradeDate, data)
		if err != nil {
			e.logger.WithError(err).WithFields(map[string]interface{}{
				"type":  spec.Type,
				"alias": spec.DisplayAlias(),
			}).Error("Selector execution failed, skipping")
			result.Failures = append(result.Failures, contracts.SpecFailure{
				Type:   spec.Type,
				Alias:  spec.DisplayAlias(),
				Stage:  "select",
				Reason: err.Error(),
			})
			continue
		}

		result.Matches[spec.DisplayAlias()] = picks

		e.logger.WithFields(map[string]interface{}{
			"alias":   spec.DisplayAlias(),
			"matched": len(picks),
		}).Info("Selector completed")
	}

	return result
}

// invoke runs one selector, converting a panic into an ordinary error so it
// stays confined to its spec.
func (e *Engine) invoke(
	sel contracts.Selector,
	tradeDate time.Time,
	data map[string]*contracts.Series,
) (picks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			picks = nil
			err = fmt.Errorf("selector panic: %v", r)
		}
	}()

	return sel.Select(tradeDate, data)
}
