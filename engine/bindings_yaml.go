package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadBindingsYAML parses a YAML document describing a flat map of
// root bindings (name: value, where value is any YAML scalar, list,
// or mapping) and installs each as a durable root binding via
// PutRootBinding. It lets an embedder declare an engine's initial
// bindings as data instead of Go code — e.g. a config file shipped
// alongside a script — the same way the teacher's go.mod pulls in
// yaml.v3 transitively; here it's a direct, exercised dependency
// rather than along for the ride.
func (e *Engine) LoadBindingsYAML(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("engine: parsing bindings YAML: %w", err)
	}
	for name, v := range raw {
		e.PutRootBinding(name, normalizeYAML(v))
	}
	return nil
}

// LoadBindingsYAMLFile is LoadBindingsYAML reading from path.
func (e *Engine) LoadBindingsYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("engine: reading bindings file %q: %w", path, err)
	}
	return e.LoadBindingsYAML(data)
}

// normalizeYAML recursively rewrites yaml.v3's decoded shapes
// (map[string]interface{} keys decode cleanly, but nested sequences
// come back as []interface{} of the same loosely-typed values) into
// the map[string]any/[]any shapes value.FromHost expects, and widens
// yaml's int to the int64/float64 FromHost already switches on.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	case int:
		return int64(t)
	default:
		return v
	}
}
