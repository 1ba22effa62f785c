package contracts

import (
	"sort"
	"time"
)

// Bar is one dated row of an instrument's history. Besides the date, columns
// are opaque to the pipeline: selectors look fields up by name and decide for
// themselves what they need.
type Bar struct {
	Date   time.Time
	Fields map[string]float64
}

// Field returns a named column value of the bar.
func (b Bar) Field(name string) (float64, bool) {
	v, ok := b.Fields[name]
	return v, ok
}

// Series is the loaded price history of a single instrument.
// Bars are ascending by date with unique dates once Normalize has run.
type Series struct {
	Code string
	Bars []Bar
}

// Len returns the number of bars.
func (s *Series) Len() int {
	return len(s.Bars)
}

// Normalize sorts bars ascending by date and collapses duplicate dates,
// keeping the last occurrence (a re-stated row wins over the original).
func (s *Series) Normalize() {
	sort.SliceStable(s.Bars, func(i, j int) bool {
		return s.Bars[i].Date.Before(s.Bars[j].Date)
	})

	out := s.Bars[:0]
	for _, b := range s.Bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	s.Bars = out
}

// LastDate returns the date of the most recent bar.
func (s *Series) LastDate() (time.Time, bool) {
	if len(s.Bars) == 0 {
		return time.Time{}, false
	}
	return s.Bars[len(s.Bars)-1].Date, true
}

// IndexAsOf returns the index of the most recent bar at or before date,
// or -1 when the series has no bar up to that date.
func (s *Series) IndexAsOf(date time.Time) int {
	idx := sort.Search(len(s.Bars), func(i int) bool {
		return s.Bars[i].Date.After(date)
	})
	return idx - 1
}

// AsOf returns the most recent bar at or before date.
func (s *Series) AsOf(date time.Time) (Bar, bool) {
	idx := s.IndexAsOf(date)
	if idx < 0 {
		return Bar{}, false
	}
	return s.Bars[idx], true
}

// FieldWindow collects a named column over bars (end-window, end], oldest
// first. It returns false when the window reaches before the first bar or
// any bar in it lacks the column.
func (s *Series) FieldWindow(name string, end, window int) ([]float64, bool) {
	if window <= 0 || end < 0 || end >= len(s.Bars) || end-window+1 < 0 {
		return nil, false
	}
	values := make([]float64, 0, window)
	for i := end - window + 1; i <= end; i++ {
		v, ok := s.Bars[i].Field(name)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}
