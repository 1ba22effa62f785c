package marketdata

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ztrader/etfscreener/internal/contracts"
)

// ErrInvalidDate signals an explicit trade date that could not be parsed.
var ErrInvalidDate = errors.New("invalid trade date")

var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006/01/02",
}

// ParseDate parses a date in any of the accepted snapshot layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ResolveTradeDate produces the single cross-sectional date for a run.
// An explicit date is parsed as-is; otherwise the result is the maximum
// date present across the loaded series. The caller guarantees data is
// non-empty (the store already failed fatally if nothing loaded).
func ResolveTradeDate(explicit string, data map[string]*contracts.Series) (time.Time, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseDate(explicit)
	}

	var latest time.Time
	for _, series := range data {
		if d, ok := series.LastDate(); ok && d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no dated bars in loaded series", ErrDataUnavailable)
	}
	return latest, nil
}
