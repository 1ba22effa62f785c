package selector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ztrader/etfscreener/internal/contracts"
	"github.com/ztrader/etfscreener/internal/selectorconfig"
)

// ErrUnknownType signals a spec whose type names no registered selector.
var ErrUnknownType = errors.New("unknown selector type")

// Factory builds a configured selector from a spec's params. It validates
// the params itself and fails construction rather than deferring to Select.
type Factory func(params map[string]interface{}) (contracts.Selector, error)

// Registry maps selector type names to factories.
// SSOT: type-name resolution happens here and nowhere else.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry with the built-in selector library registered.
func Default() *Registry {
	r := NewRegistry()
	// Registration of built-ins cannot collide.
	_ = r.Register("AboveMA", NewAboveMA)
	_ = r.Register("Breakout", NewBreakout)
	_ = r.Register("Momentum", NewMomentum)
	return r
}

// Register adds a factory under a type name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("selector type name must not be empty")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("selector type %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Build resolves a spec's type and constructs the configured selector.
// Failures here are per-spec: the engine skips the spec and goes on.
func (r *Registry) Build(spec selectorconfig.Spec) (contracts.Selector, error) {
	factory, ok := r.factories[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type)
	}

	sel, err := factory(spec.Params)
	if err != nil {
		return nil, fmt.Errorf("construct %s (alias %s): %w", spec.Type, spec.DisplayAlias(), err)
	}
	return sel, nil
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindParams maps a spec's free-form params onto a factory's typed param
// struct, rejecting unknown keys the same way the config loader does.
func bindParams(params map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("bind params: %w", err)
	}
	return nil
}

// sortedCodes iterates the shared data map deterministically.
func sortedCodes(data map[string]*contracts.Series) []string {
	codes := make([]string, 0, len(data))
	for code := range data {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
