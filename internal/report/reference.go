package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ztrader/etfscreener/internal/contracts"
)

// Column aliases accepted in reference metadata CSV headers. The fetcher
// side of the project writes the canonical names; the aliases cover older
// snapshot exports.
var referenceColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"mktcap":     "mktcap",
	"market_cap": "mktcap",
	"price":      "price",
	"last_price": "price",
	"change_pct": "change_pct",
	"pct_chg":    "change_pct",
}

// LoadReference parses a per-instrument reference metadata CSV (code, display
// name, market cap, latest price, percent change). Numeric cells that are
// empty or unparsable become NaN on the record; enrichment simply omits them.
func LoadReference(path string) (*contracts.ReferenceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read reference metadata: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("reference metadata %s: empty file", path)
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		if canonical, ok := referenceColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			cols[canonical] = i
		}
	}
	codeCol, ok := cols["code"]
	if !ok {
		return nil, fmt.Errorf("reference metadata %s: no code column", path)
	}

	set := contracts.NewReferenceSet()
	for _, row := range rows[1:] {
		code := strings.TrimSpace(row[codeCol])
		if code == "" {
			continue
		}

		rec := contracts.ReferenceRecord{
			Code:      code,
			Name:      cell(row, cols, "name"),
			MarketCap: numericCell(row, cols, "mktcap"),
			Price:     numericCell(row, cols, "price"),
			ChangePct: numericCell(row, cols, "change_pct"),
		}
		set.Records[code] = rec
	}

	return set, nil
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numericCell(row []string, cols map[string]int, name string) float64 {
	s := cell(row, cols, name)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
