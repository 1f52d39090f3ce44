package anchor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides re-tune descriptors without a rebuild: a YAML document mapping
// template filename to field name to a full Descriptor. A field present in
// an override replaces the built-in descriptor wholesale; fields absent from
// the override keep their built-in values. Overrides are applied once at
// startup, never as an import side effect.
//
//	Meadow-RGE-Commercial-UCB-Agreement.pdf:
//	  customer_signature:
//	    anchor: "By:"
//	    context: "SUBSCRIBER:"
//	    context_preference: second
//	    dx: 64
//	    dy: 12
type Overrides map[string]map[string]Descriptor

// LoadOverrides reads and validates an override file.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read anchor overrides: %w", err)
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse anchor overrides: %w", err)
	}
	for template, fields := range o {
		for field, d := range fields {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("override %s/%s: %w", template, field, err)
			}
		}
	}
	return o, nil
}

// ApplyOverrides merges an override set into the registry. Unknown template
// names create new entries, so a new template revision can ship as pure
// configuration. Call before the registry is shared across goroutines.
func (r *Registry) ApplyOverrides(o Overrides) {
	for template, fields := range o {
		existing, ok := r.templates[template]
		if !ok {
			existing = make(map[string]Descriptor, len(fields))
			r.templates[template] = existing
		}
		for field, d := range fields {
			existing[field] = d
		}
	}
}
