package contracts

import "math"

// ReferenceRecord is per-instrument descriptive metadata used only to enrich
// reports, never for selection. Numeric fields are NaN when the source file
// had no usable value.
type ReferenceRecord struct {
	Code      string
	Name      string
	MarketCap float64
	Price     float64
	ChangePct float64
}

// HasMarketCap reports whether the record carries a positive market cap.
func (r ReferenceRecord) HasMarketCap() bool {
	return !math.IsNaN(r.MarketCap) && r.MarketCap > 0
}

// HasPrice reports whether the record carries a positive latest price.
func (r ReferenceRecord) HasPrice() bool {
	return !math.IsNaN(r.Price) && r.Price > 0
}

// HasChangePct reports whether the record carries a percent change.
func (r ReferenceRecord) HasChangePct() bool {
	return !math.IsNaN(r.ChangePct)
}

// ReferenceSet is the reference metadata loaded for a run.
type ReferenceSet struct {
	Records map[string]ReferenceRecord
}

// NewReferenceSet creates an empty reference set.
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{Records: make(map[string]ReferenceRecord)}
}

// Get looks a record up by instrument code.
func (s *ReferenceSet) Get(code string) (ReferenceRecord, bool) {
	if s == nil {
		return ReferenceRecord{}, false
	}
	rec, ok := s.Records[code]
	return rec, ok
}

// Count returns the number of records in the set.
func (s *ReferenceSet) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
