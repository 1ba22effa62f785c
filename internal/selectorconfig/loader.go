package selectorconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigMissing signals an absent configuration document (fatal).
	ErrConfigMissing = errors.New("selector configuration missing")

	// ErrConfigEmpty signals a document that defines no selectors (fatal).
	ErrConfigEmpty = errors.New("selector configuration empty")
)

// Load reads the selector configuration document and normalizes it to a spec
// list. Three equivalent shapes are accepted: a single spec object, an array
// of spec objects, or an object with a "selectors" array. JSON documents are
// handled by the YAML decoder (JSON is a YAML subset), so both serializations
// work without sniffing.
func Load(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigMissing, path, err)
	}
	return Parse(data)
}

// Parse normalizes a raw configuration document into the spec list.
// Field-level validation is deliberately not done here; binding Params is
// each selector factory's job.
func Parse(data []byte) ([]Spec, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse selector configuration: %w", err)
	}

	specs, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, ErrConfigEmpty
	}
	return specs, nil
}

func normalize(doc interface{}) ([]Spec, error) {
	switch v := doc.(type) {
	case []interface{}:
		specs := make([]Spec, 0, len(v))
		for i, item := range v {
			spec, err := decodeSpec(item)
			if err != nil {
				return nil, fmt.Errorf("selector %d: %w", i, err)
			}
			specs = append(specs, spec)
		}
		return specs, nil

	case map[string]interface{}:
		if inner, ok := v["selectors"]; ok {
			list, ok := inner.([]interface{})
			if !ok {
				return nil, fmt.Errorf("parse selector configuration: selectors must be an array")
			}
			return normalize(list)
		}
		spec, err := decodeSpec(v)
		if err != nil {
			return nil, err
		}
		return []Spec{spec}, nil

	case nil:
		return nil, nil

	default:
		return nil, fmt.Errorf("parse selector configuration: unsupported document shape %T", doc)
	}
}

// decodeSpec maps one document node onto a Spec via a yaml round-trip,
// rejecting unknown fields the way the strict decoder would.
func decodeSpec(node interface{}) (Spec, error) {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return Spec{}, err
	}

	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("decode spec: %w", err)
	}

	if spec.Params == nil {
		spec.Params = map[string]interface{}{}
	}
	return spec, nil
}
