// Package persona holds the process-wide persona table and model parameters.
// Both are loaded once from an embedded YAML file and are read-only for the
// process lifetime.
package persona

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var personasYAML []byte

// Persona is a named bundle of voice and output-format instructions.
type Persona struct {
	Key          string `yaml:"-"`
	Role         string `yaml:"role"`
	Instructions string `yaml:"instructions"`
}

// ModelParams are the generation parameters shared by all providers.
type ModelParams struct {
	Temperature     float32 `yaml:"temperature"`
	TopK            float32 `yaml:"topK"`
	MaxOutputTokens int32   `yaml:"maxOutputTokens"`
}

// Table is the immutable persona configuration.
type Table struct {
	active   string
	personas map[string]Persona
	params   ModelParams
}

type fileSchema struct {
	ActivePersona string             `yaml:"activePersona"`
	ModelParams   ModelParams        `yaml:"modelParams"`
	Personas      map[string]Persona `yaml:"personas"`
}

// Load parses the embedded persona file.
func Load() (*Table, error) {
	var f fileSchema
	if err := yaml.Unmarshal(personasYAML, &f); err != nil {
		return nil, fmt.Errorf("parse personas: %w", err)
	}
	if len(f.Personas) == 0 {
		return nil, fmt.Errorf("personas file defines no personas")
	}
	if _, ok := f.Personas[f.ActivePersona]; !ok {
		return nil, fmt.Errorf("activePersona %q is not defined", f.ActivePersona)
	}
	for key, p := range f.Personas {
		p.Key = key
		f.Personas[key] = p
	}
	return &Table{
		active:   f.ActivePersona,
		personas: f.Personas,
		params:   f.ModelParams,
	}, nil
}

// Resolve returns the persona for key. An unknown or empty key silently
// resolves to the active master persona.
func (t *Table) Resolve(key string) Persona {
	if p, ok := t.personas[key]; ok {
		return p
	}
	return t.personas[t.active]
}

// Default returns the master persona key.
func (t *Table) Default() string { return t.active }

// Params returns the shared model parameters.
func (t *Table) Params() ModelParams { return t.params }
