package contracts

import "time"

// Selector is a pluggable selection rule: given the run's trade date and the
// loaded per-instrument series, it returns the codes it picks. The data map
// is shared read-only across selectors; implementations must not mutate it.
//
// How a selector matches the trade date against a sparse series is its own
// business; the shipped selectors evaluate the most recent bar at or before
// the trade date.
type Selector interface {
	Name() string
	Select(tradeDate time.Time, data map[string]*Series) ([]string, error)
}
