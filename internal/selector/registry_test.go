package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"AboveMA", "Breakout", "Momentum"}, r.Types())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	factory := func(map[string]interface{}) (contracts.Selector, error) { return nil, nil }

	require.NoError(t, r.Register("Custom", factory))
	assert.Error(t, r.Register("Custom", factory), "duplicate registration should fail")
	assert.Error(t, r.Register("", factory), "empty name should fail")
}

func TestRegistry_Build(t *testing.T) {
	r := Default()

	tests := []struct {
		name    string
		spec    selectorconfig.Spec
		wantErr error
	}{
		{
			name: "known type with valid params",
			spec: selectorconfig.Spec{
				Type:   "AboveMA",
				Params: map[string]interface{}{"window": 20},
			},
		},
		{
			name:    "unknown type",
			spec:    selectorconfig.Spec{Type: "HeadAndShoulders"},
			wantErr: ErrUnknownType,
		},
		{
			name:    "empty type",
			spec:    selectorconfig.Spec{},
			wantErr: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := r.Build(tt.spec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.spec.Type, sel.Name())
		})
	}
}

func TestRegistry_BuildConstructionErrors(t *testing.T) {
	r := Default()

	tests := []struct {
		name   string
		spec   selectorconfig.Spec
	}{
		{
			name: "missing required window",
			spec: selectorconfig.Spec{Type: "AboveMA", Params: map[string]interface{}{}},
		},
		{
			name: "negative window",
			spec: selectorconfig.Spec{Type: "AboveMA", Params: map[string]interface{}{"window": -5}},
		},
		{
			name: "unknown param key",
			spec: selectorconfig.Spec{Type: "AboveMA", Params: map[string]interface{}{"window": 20, "widnow": 5}},
		},
		{
			name: "wrong param type",
			spec: selectorconfig.Spec{Type: "Momentum", Params: map[string]interface{}{"window": "twenty"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Build(tt.spec)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrUnknownType)
			// The spec's identity travels with the error for diagnostics.
			assert.Contains(t, err.Error(), tt.spec.Type)
		})
	}
}

func seriesFromCloses(code string, start time.Time, closes ...float64) *contracts.Series {
	s := &contracts.Series{Code: code}
	for i, c := range closes {
		s.Bars = append(s.Bars, contracts.Bar{
			Date:   start.AddDate(0, 0, i),
			Fields: map[string]float64{"close": c},
		})
	}
	return s
}
