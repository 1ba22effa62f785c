package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztrader/etfscreener/internal/screening"
	"github.com/ztrader/etfscreener/internal/selector"
	"github.com/ztrader/etfscreener/pkg/logger"
)

func fixtureHandler(t *testing.T) *ScreenHandler {
	t.Helper()
	dir := t.TempDir()

	csv := "date,close\n2026-08-20,1.0\n2026-08-21,1.1\n2026-08-24,1.2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "X.csv"), []byte(csv), 0o644))

	configPath := filepath.Join(dir, "configs.json")
	require.NoError(t, os.WriteFile(configPath,
		[]byte(`{"type":"Momentum","alias":"MOM","params":{"window":1,"top":5}}`), 0o644))

	var buf bytes.Buffer
	return NewScreenHandler(screening.Params{
		DataDir:    dir,
		ConfigPath: configPath,
		Codes:      "all",
	}, selector.Default(), logger.NewTest(&buf))
}

func TestRunScreen(t *testing.T) {
	h := fixtureHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/screen", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.RunScreen(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Matches map[string][]string `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, []string{"X"}, payload.Matches["MOM"])
}

func TestRunScreen_InvalidDate(t *testing.T) {
	h := fixtureHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/screen",
		strings.NewReader(`{"date":"garbage"}`))
	rec := httptest.NewRecorder()
	h.RunScreen(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRunScreen_DataUnavailable(t *testing.T) {
	h := fixtureHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/screen",
		strings.NewReader(`{"codes":"Y,Z"}`))
	rec := httptest.NewRecorder()
	h.RunScreen(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetResults(t *testing.T) {
	h := fixtureHandler(t)

	// Before any run: 404.
	rec := httptest.NewRecorder()
	h.GetResults(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// After a run: the last result is served.
	rec = httptest.NewRecorder()
	h.RunScreen(rec, httptest.NewRequest(http.MethodPost, "/api/screen", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetResults(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MOM")
}
