package selector

import (
	"fmt"
	"time"

	"github.com/ztrader/etfscreener/internal/contracts"
)

// AboveMAParams configures the AboveMA selector.
type AboveMAParams struct {
	// Window is the moving-average period. Required.
	Window int `json:"window"`

	// Field is the price column the average runs over. Defaults to "close".
	Field string `json:"field,omitempty"`
}

// AboveMA picks instruments whose latest price sits above their N-period
// simple moving average as of the trade date. Instruments without a bar at
// or before the trade date, or without enough history for a full window,
// are not matched.
type AboveMA struct {
	params AboveMAParams
}

// NewAboveMA is the AboveMA factory.
func NewAboveMA(params map[string]interface{}) (contracts.Selector, error) {
	var p AboveMAParams
	if err := bindParams(params, &p); err != nil {
		return nil, err
	}
	if p.Window <= 0 {
		return nil, fmt.Errorf("window must be > 0, got %d", p.Window)
	}
	if p.Field == "" {
		p.Field = "close"
	}
	return &AboveMA{params: p}, nil
}

func (s *AboveMA) Name() string { return "AboveMA" }

func (s *AboveMA) Select(tradeDate time.Time, data map[string]*contracts.Series) ([]string, error) {
	picks := make([]string, 0)
	for _, code := range sortedCodes(data) {
		series := data[code]
		idx := series.IndexAsOf(tradeDate)
		if idx < 0 {
			continue
		}

		window, ok := series.FieldWindow(s.params.Field, idx, s.params.Window)
		if !ok {
			continue
		}

		sum := 0.0
		for _, v := range window {
			sum += v
		}
		ma := sum / float64(len(window))

		if window[len(window)-1] > ma {
			picks = append(picks, code)
		}
	}
	return picks, nil
}
