package selector

import (
	"fmt"
	"sort"
	"time"

	"github.com/ztrader/etfscreener/internal/contracts"
)

// MomentumParams configures the Momentum selector.
type MomentumParams struct {
	// Window is the return lookback in bars. Required.
	Window int `json:"window"`

	// Top is how many instruments to keep, ranked by return. Defaults to 10.
	Top int `json:"top,omitempty"`

	// Field is the price column returns are computed on. Defaults to "close".
	Field string `json:"field,omitempty"`
}

// Momentum ranks instruments by their N-bar return as of the trade date and
// picks the top K. Instruments with insufficient history drop out of the
// ranking rather than failing the selection.
type Momentum struct {
	params MomentumParams
}

// NewMomentum is the Momentum factory.
func NewMomentum(params map[string]interface{}) (contracts.Selector, error) {
	var p MomentumParams
	if err := bindParams(params, &p); err != nil {
		return nil, err
	}
	if p.Window <= 0 {
		return nil, fmt.Errorf("window must be > 0, got %d", p.Window)
	}
	if p.Top == 0 {
		p.Top = 10
	}
	if p.Top < 0 {
		return nil, fmt.Errorf("top must be > 0, got %d", p.Top)
	}
	if p.Field == "" {
		p.Field = "close"
	}
	return &Momentum{params: p}, nil
}

func (s *Momentum) Name() string { return "Momentum" }

func (s *Momentum) Select(tradeDate time.Time, data map[string]*contracts.Series) ([]string, error) {
	type ranked struct {
		code string
		ret  float64
	}

	table := make([]ranked, 0, len(data))
	for _, code := range sortedCodes(data) {
		series := data[code]
		idx := series.IndexAsOf(tradeDate)
		if idx < 0 {
			continue
		}

		// Need window+1 bars: the return spans window steps.
		values, ok := series.FieldWindow(s.params.Field, idx, s.params.Window+1)
		if !ok {
			continue
		}
		base := values[0]
		if base == 0 {
			continue
		}
		table = append(table, ranked{code: code, ret: values[len(values)-1]/base - 1})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].ret > table[j].ret
	})

	top := s.params.Top
	if top > len(table) {
		top = len(table)
	}

	picks := make([]string, 0, top)
	for _, r := range table[:top] {
		picks = append(picks, r.code)
	}
	return picks, nil
}
