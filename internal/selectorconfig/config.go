package selectorconfig

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Spec is one configured selector, produced fresh from the configuration
// document each run and never persisted.
type Spec struct {
	// Type names a registered selector implementation. Required; resolution
	// against the registry happens at construction time, not here.
	Type string `yaml:"type" json:"type"`

	// Alias is the display name results are reported under. Defaults to Type.
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`

	// Params is handed to the selector's factory as its configuration.
	Params map[string]interface{} `yaml:"params,omitempty" json:"params,omitempty"`

	// Active defaults to true when absent.
	Active *bool `yaml:"active,omitempty" json:"active,omitempty"`
}

// DisplayAlias returns the alias, falling back to the type name.
func (s Spec) DisplayAlias() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Type
}

// Enabled reports whether the spec takes part in the run.
func (s Spec) Enabled() bool {
	return s.Active == nil || *s.Active
}

// Hash generates a SHA256 hash over the normalized spec list (canonical
// JSON), logged per run so a result can be tied back to its configuration.
func Hash(specs []Spec) (string, error) {
	jsonBytes, err := json.Marshal(specs)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
