package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// ErrDataUnavailable is the fatal condition of a run: the snapshot directory
// is missing, or not a single requested instrument could be loaded.
var ErrDataUnavailable = errors.New("market data unavailable")

// AllCodes is the code selector meaning "every snapshot file in the directory".
const AllCodes = "all"

// Store loads per-instrument history series from CSV snapshot files,
// one file per instrument named <code>.csv.
type Store struct {
	dir    string
	logger *logger.Logger
}

// NewStore creates a store over a snapshot directory.
func NewStore(dir string, log *logger.Logger) *Store {
	return &Store{dir: dir, logger: log}
}

// ResolveCodes expands a code selector into the list of codes to load:
// "all" (or empty) discovers the snapshot files, anything else is taken as a
// comma-separated list.
func (s *Store) ResolveCodes(selector string) ([]string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, AllCodes) {
		return s.Discover()
	}

	codes := make([]string, 0)
	for _, c := range strings.Split(selector, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes, nil
}

// Discover lists the instrument codes that have a snapshot file.
func (s *Store) Discover() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot directory %s: %v", ErrDataUnavailable, s.dir, err)
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, ".csv"))
	}
	sort.Strings(codes)
	return codes, nil
}

// Load reads the series of every requested code. A missing file is a warning
// and the code is omitted; an empty overall result is fatal. Each loaded
// series is sorted ascending by date with duplicate dates collapsed.
func (s *Store) Load(codes []string) (map[string]*contracts.Series, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return nil, fmt.Errorf("%w: snapshot directory %s: %v", ErrDataUnavailable, s.dir, err)
	}

	data := make(map[string]*contracts.Series, len(codes))
	for _, code := range codes {
		path := filepath.Join(s.dir, code+".csv")
		series, err := loadSeries(path, code)
		if err != nil {
			s.logger.WithError(err).Warnf("skipping %s", code)
			continue
		}
		series.Normalize()
		data[code] = series
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no instrument series loaded from %s", ErrDataUnavailable, s.dir)
	}

	s.logger.WithFields(map[string]interface{}{
		"dir":       s.dir,
		"requested": len(codes),
		"loaded":    len(data),
	}).Info("Market data loaded")

	return data, nil
}

// loadSeries parses one snapshot file. The header must carry a date column;
// every other column is parsed as an opaque numeric field under its
// lowercased name, and cells that do not parse are dropped from that bar.
func loadSeries(path, code string) (*contracts.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "date") {
			dateCol = i
			break
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("%s: no date column", path)
	}

	series := &contracts.Series{Code: code}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		date, err := ParseDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		bar := contracts.Bar{Date: date, Fields: make(map[string]float64, len(row)-1)}
		for i, cell := range row {
			if i == dateCol || i >= len(header) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			bar.Fields[strings.ToLower(strings.TrimSpace(header[i]))] = v
		}
		series.Bars = append(series.Bars, bar)
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("%s: no bars", path)
	}
	return series, nil
}
