package screening

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztrader/etfscreener/internal/marketdata"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
	"github.com/ztrader/etfscreener/pkg/logger"
)

// writeSeries writes a snapshot whose closes walk the given values day by day.
func writeSeries(t *testing.T, dir, code string, start time.Time, closes []float64) {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("date,open,close,volume\n")
	for i, c := range closes {
		d := start.AddDate(0, 0, i)
		fmt.Fprintf(&buf, "%s,%.3f,%.3f,%d\n", d.Format("2006-01-02"), c, c, 1000+i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, code+".csv"), buf.Bytes(), 0o644))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "configs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// X trends up: its last close clears the 20-period moving average.
	up := make([]float64, 25)
	for i := range up {
		up[i] = 1.0 + 0.05*float64(i)
	}
	// Y trends down: its last close sits below the average.
	down := make([]float64, 25)
	for i := range down {
		down[i] = 2.0 - 0.05*float64(i)
	}
	writeSeries(t, dir, "X", start, up)
	writeSeries(t, dir, "Y", start, down)

	configPath := writeConfig(t, dir,
		`[{"type":"AboveMA","alias":"MA20","params":{"window":20},"active":true}]`)

	var buf bytes.Buffer
	result, err := Run(context.Background(), Params{
		DataDir:    dir,
		ConfigPath: configPath,
		Codes:      "all",
	}, selector.Default(), logger.NewTest(&buf))

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"MA20": {"X"}}, result.Matches)

	// No explicit date: resolved to the most recent bar across series.
	assert.Equal(t, start.AddDate(0, 0, 24), result.TradeDate)
	assert.Contains(t, buf.String(), "config_hash")
}

func TestRun_ExplicitDate(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	writeSeries(t, dir, "X", start, []float64{1, 2, 3, 4, 5})

	configPath := writeConfig(t, dir, `{"type":"Momentum","params":{"window":2,"top":1}}`)

	var buf bytes.Buffer
	result, err := Run(context.Background(), Params{
		DataDir:    dir,
		ConfigPath: configPath,
		Date:       "2026-07-03",
		Codes:      "X",
	}, selector.Default(), logger.NewTest(&buf))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), result.TradeDate)
	assert.Equal(t, []string{"X"}, result.Matches["Momentum"])
}

func TestRun_FatalConditions(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	writeSeries(t, dir, "X", start, []float64{1, 2, 3})
	configPath := writeConfig(t, dir, `[{"type":"AboveMA","params":{"window":2}}]`)

	var buf bytes.Buffer
	log := logger.NewTest(&buf)
	reg := selector.Default()

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:    "missing data dir",
			params:  Params{DataDir: filepath.Join(dir, "nope"), ConfigPath: configPath},
			wantErr: marketdata.ErrDataUnavailable,
		},
		{
			name:    "no instrument loads",
			params:  Params{DataDir: dir, ConfigPath: configPath, Codes: "A,B"},
			wantErr: marketdata.ErrDataUnavailable,
		},
		{
			name:    "invalid explicit date",
			params:  Params{DataDir: dir, ConfigPath: configPath, Date: "07/01/26"},
			wantErr: marketdata.ErrInvalidDate,
		},
		{
			name:    "missing config",
			params:  Params{DataDir: dir, ConfigPath: filepath.Join(dir, "nope.json")},
			wantErr: selectorconfig.ErrConfigMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.params, reg, log)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_EmptyConfigIsFatal(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	writeSeries(t, dir, "X", start, []float64{1, 2, 3})
	configPath := writeConfig(t, dir, `{"selectors": []}`)

	var buf bytes.Buffer
	_, err := Run(context.Background(), Params{
		DataDir:    dir,
		ConfigPath: configPath,
	}, selector.Default(), logger.NewTest(&buf))

	assert.ErrorIs(t, err, selectorconfig.ErrConfigEmpty)
}

func TestRun_MissingInstrumentIsRecovered(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	writeSeries(t, dir, "A", start, []float64{1, 2, 3})
	configPath := writeConfig(t, dir, `{"type":"Momentum","params":{"window":1,"top":5}}`)

	var buf bytes.Buffer
	result, err := Run(context.Background(), Params{
		DataDir:    dir,
		ConfigPath: configPath,
		Codes:      "A,B",
	}, selector.Default(), logger.NewTest(&buf))

	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, result.Matches["Momentum"])
	assert.Contains(t, buf.String(), "B", "missing instrument warning should be logged")
}

func TestRun_ReferenceEnrichment(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	writeSeries(t, dir, "A", start, []float64{1, 2, 3})

	refPath := filepath.Join(dir, "etf_info.csv")
	require.NoError(t, os.WriteFile(refPath, []byte(
		"code,name,mktcap,price,change_pct\nA,Alpha ETF,1500000000,3.000,1.25\n"), 0o644))

	configPath := writeConfig(t, dir, `{"type":"Momentum","params":{"window":1,"top":5}}`)

	var buf bytes.Buffer
	_, err := Run(context.Background(), Params{
		DataDir:       dir,
		ConfigPath:    configPath,
		ReferencePath: refPath,
	}, selector.Default(), logger.NewTest(&buf))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Alpha ETF")

	// Unreadable reference metadata degrades, never fails the run.
	buf.Reset()
	_, err = Run(context.Background(), Params{
		DataDir:       dir,
		ConfigPath:    configPath,
		ReferencePath: filepath.Join(dir, "missing.csv"),
	}, selector.Default(), logger.NewTest(&buf))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Reference metadata unavailable")
}
