package report

import (
	"fmt"
	"strings"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// Reporter renders a screening result as a human-readable report on the
// injected logger (console plus the persisted log file). It only consumes
// the result: nothing here mutates it or fails the run.
type Reporter struct {
	logger *logger.Logger
}

// New creates a reporter.
func New(log *logger.Logger) *Reporter {
	return &Reporter{logger: log}
}

// Report emits one block per alias, enriched from the reference set when one
// is available. A nil reference set degrades to plain code lists.
func (r *Reporter) Report(result *contracts.ScreeningResult, refs *contracts.ReferenceSet) {
	for _, alias := range result.Aliases() {
		codes := result.Matches[alias]

		r.logger.Infof("============== screening result [%s] ==============", alias)
		r.logger.Infof("trade date: %s", result.TradeDate.Format("2006-01-02"))
		r.logger.Infof("matched instruments: %d", len(codes))

		if len(codes) == 0 {
			r.logger.Info("no instruments matched")
			continue
		}

		if refs.Count() == 0 {
			r.logger.Infof("matches: %s", strings.Join(codes, ", "))
			continue
		}

		for _, code := range codes {
			r.logger.Infof(" -- %s", FormatCode(code, refs))
		}
	}

	for _, failure := range result.Failures {
		r.logger.Warnf("selector skipped: %s (alias %s, %s): %s",
			failure.Type, failure.Alias, failure.Stage, failure.Reason)
	}
}

// FormatCode renders one matched code. With a reference record the line
// carries the display name and whichever numeric fields are present and
// valid; without one it is the bare code.
func FormatCode(code string, refs *contracts.ReferenceSet) string {
	rec, ok := refs.Get(code)
	if !ok {
		return code
	}

	parts := make([]string, 0, 4)
	if rec.Name != "" {
		parts = append(parts, fmt.Sprintf("%s (%s)", code, rec.Name))
	} else {
		parts = append(parts, code)
	}

	if rec.HasMarketCap() {
		parts = append(parts, fmt.Sprintf("mktcap:%.2fB", rec.MarketCap/1e9))
	}
	if rec.HasPrice() {
		parts = append(parts, fmt.Sprintf("price:%.3f", rec.Price))
	}
	if rec.HasChangePct() {
		parts = append(parts, fmt.Sprintf("chg:%+.2f%%", rec.ChangePct))
	}

	return strings.Join(parts, " ")
}
