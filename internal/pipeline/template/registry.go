// Package template implements the merge stage of the translation pipeline:
// validated fields are projected onto a static, operation-specific JSON
// skeleton to build the outbound payload.
package template

import (
	"encoding/json"
	"fmt"
	"os"
)

// Template is the static JSON skeleton for one operation. Slots holding a
// "{{placeholder}}" string must be filled by the merge; fixed values survive
// when the caller never set the corresponding field.
type Template map[string]interface{}

// Registry holds every registered request template, keyed by operation name.
// Loaded once at startup; read-only afterward, safe for concurrent use.
type Registry struct {
	version   string
	templates map[string]Template
}

type registryFile struct {
	Version   string          `json:"version"`
	Templates []templateEntry `json:"templates"`
}

type templateEntry struct {
	Operation string                 `json:"operation"`
	Template  map[string]interface{} `json:"template"`
}

// LoadRegistry reads the template registry artifact from disk. Startup fails
// fast on a malformed registry or duplicate operation entries.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template registry: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry builds a Registry from raw registry JSON.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template registry: %w", err)
	}

	templates := make(map[string]Template, len(file.Templates))
	for _, entry := range file.Templates {
		if entry.Operation == "" {
			return nil, fmt.Errorf("template registry entry without operation name")
		}
		if _, dup := templates[entry.Operation]; dup {
			return nil, fmt.Errorf("duplicate template for operation %q", entry.Operation)
		}
		if entry.Template == nil {
			return nil, fmt.Errorf("template for operation %q is null", entry.Operation)
		}
		templates[entry.Operation] = Template(entry.Template)
	}

	return &Registry{version: file.Version, templates: templates}, nil
}

// Lookup returns the template registered for an operation.
func (r *Registry) Lookup(operation string) (Template, bool) {
	t, ok := r.templates[operation]
	return t, ok
}

// Has reports whether an operation has a registered template.
func (r *Registry) Has(operation string) bool {
	_, ok := r.templates[operation]
	return ok
}

// Version returns the registry artifact version string.
func (r *Registry) Version() string {
	return r.version
}
