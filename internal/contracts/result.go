package contracts

import (
	"sort"
	"time"
)

// SpecFailure records one selector spec the engine had to skip.
// Stage is "construct" or "select".
type SpecFailure struct {
	Type   string `json:"type"`
	Alias  string `json:"alias"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// ScreeningResult is the aggregate outcome of one screening run: the codes
// each configured selector matched on the trade date, keyed by alias.
// It lives only for the duration of the run.
type ScreeningResult struct {
	TradeDate time.Time           `json:"trade_date"`
	Matches   map[string][]string `json:"matches"`
	Failures  []SpecFailure       `json:"failures,omitempty"`
}

// NewScreeningResult creates an empty result for a trade date.
func NewScreeningResult(tradeDate time.Time) *ScreeningResult {
	return &ScreeningResult{
		TradeDate: tradeDate,
		Matches:   make(map[string][]string),
	}
}

// Aliases returns the reported aliases in sorted order.
func (r *ScreeningResult) Aliases() []string {
	aliases := make([]string, 0, len(r.Matches))
	for alias := range r.Matches {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// TotalMatches returns the number of matched codes across all aliases.
func (r *ScreeningResult) TotalMatches() int {
	total := 0
	for _, codes := range r.Matches {
		total += len(codes)
	}
	return total
}
