// Package schemas holds the JSON Schemas for townsim's YAML inputs and
// validates documents against them.
package schemas

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	Tuning   = "tuning.schema.json"
	Scenario = "scenario.schema.json"
)

// baseURL matches the $id of every embedded schema.
const baseURL = "https://townsim.ai/schemas/"

//go:embed *.schema.json
var files embed.FS

var (
	mu       sync.Mutex
	compiled = map[string]*jsonschema.Schema{}
)

func compile(name string) (*jsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := compiled[name]; ok {
		return s, nil
	}
	raw, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(baseURL+name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	s, err := c.Compile(baseURL + name)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	compiled[name] = s
	return s, nil
}

// ValidateYAML checks a YAML document against the named schema.
func ValidateYAML(name string, raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	v, err := toJSONValue(doc)
	if err != nil {
		return err
	}
	return Validate(name, v)
}

// Validate checks an already-decoded JSON value against the named schema.
func Validate(name string, v any) error {
	s, err := compile(name)
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// toJSONValue round-trips through encoding/json so the validator sees
// float64 numbers and map[string]any objects, as it would for a JSON file.
func toJSONValue(doc any) (any, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
