package screening

import (
	"context"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/internal/marketdata"
	"github.com/ztrader/etfscreener/internal/report"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// Params is the invocation surface of one screening run.
type Params struct {
	// DataDir is the per-instrument CSV snapshot directory.
	DataDir string

	// ConfigPath locates the selector configuration document.
	ConfigPath string

	// Date is the explicit trade date, or "" for the most recent date
	// across the loaded series.
	Date string

	// Codes is "all" or a comma-separated code list.
	Codes string

	// ReferencePath is the optional reference metadata CSV, "" for none.
	ReferencePath string
}

// Run drives a full screening run: resolve the universe, load the series,
// resolve the trade date, load the selector configuration, screen, report.
// Fatal conditions (marketdata.ErrDataUnavailable, marketdata.ErrInvalidDate,
// selectorconfig.ErrConfigMissing, selectorconfig.ErrConfigEmpty) come back
// as wrapped sentinel errors; everything recoverable is logged and absorbed.
func Run(ctx context.Context, params Params, registry *selector.Registry, log *logger.Logger) (*contracts.ScreeningResult, error) {
	store := marketdata.NewStore(params.DataDir, log)

	codes, err := store.ResolveCodes(params.Codes)
	if err != nil {
		return nil, err
	}

	data, err := store.Load(codes)
	if err != nil {
		return nil, err
	}

	tradeDate, err := marketdata.ResolveTradeDate(params.Date, data)
	if err != nil {
		return nil, err
	}
	if params.Date == "" {
		log.Infof("no trade date given, using most recent %s", tradeDate.Format("2006-01-02"))
	}

	specs, err := selectorconfig.Load(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	if hash, err := selectorconfig.Hash(specs); err == nil {
		log.WithFields(map[string]interface{}{
			"selectors":   len(specs),
			"config_hash": hash,
		}).Info("Selector configuration loaded")
	}

	result := NewEngine(registry, log).Run(ctx, tradeDate, data, specs)

	var refs *contracts.ReferenceSet
	if params.ReferencePath != "" {
		refs, err = report.LoadReference(params.ReferencePath)
		if err != nil {
			log.WithError(err).Warn("Reference metadata unavailable, reporting bare codes")
			refs = nil
		}
	}

	report.New(log).Report(result, refs)

	return result, nil
}
