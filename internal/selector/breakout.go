package selector

import (
	"fmt"
	"time"

	"github.com/ztrader/etfscreener/internal/contracts"
)

// BreakoutParams configures the Breakout selector.
type BreakoutParams struct {
	// Window is the lookback period the high runs over. Required.
	Window int `json:"window"`

	// Field is the price column examined. Defaults to "close".
	Field string `json:"field,omitempty"`
}

// Breakout picks instruments whose latest price is the highest of the last
// N bars ending at the trade date, i.e. a fresh N-period high.
type Breakout struct {
	params BreakoutParams
}

// NewBreakout is the Breakout factory.
func NewBreakout(params map[string]interface{}) (contracts.Selector, error) {
	var p BreakoutParams
	if err := bindParams(params, &p); err != nil {
		return nil, err
	}
	if p.Window <= 1 {
		return nil, fmt.Errorf("window must be > 1, got %d", p.Window)
	}
	if p.Field == "" {
		p.Field = "close"
	}
	return &Breakout{params: p}, nil
}

func (s *Breakout) Name() string { return "Breakout" }

func (s *Breakout) Select(tradeDate time.Time, data map[string]*contracts.Series) ([]string, error) {
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

		latest := window[len(window)-1]
		isHigh := true
		for _, v := range window[:len(window)-1] {
			if v >= latest {
				isHigh = false
				break
			}
		}
		if isHigh {
			picks = append(picks, code)
		}
	}
	return picks, nil
}
