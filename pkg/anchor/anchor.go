// Package anchor holds the per-template placement catalog used when filling
// the enrollment PDF templates (Power of Attorney, developer subscription
// agreements, agency agreement).
//
// Every logical field that gets drawn onto a template is described by a
// Descriptor: either an anchor-relative placement (search the page text for a
// literal substring and offset from its top-left corner) or a fixed placement
// at absolute coordinates on a known page. All coordinates are top-down
// points: the origin is the top-left corner of the page and y grows downward.
//
// The registry is the only place template-specific geometry lives. Offsets
// are tuned per template revision; when a template changes, re-tune them here
// or ship a YAML override file (see LoadOverrides) instead of recompiling.
package anchor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preference selects among multiple valid anchor matches in document order.
type Preference int

const (
	PreferFirst Preference = iota
	PreferSecond
	PreferLast
)

// String returns the registry spelling of the preference.
func (p Preference) String() string {
	switch p {
	case PreferSecond:
		return "second"
	case PreferLast:
		return "last"
	default:
		return "first"
	}
}

// ParsePreference converts the registry spelling into a Preference.
// The empty string means PreferFirst.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return PreferFirst, nil
	case "second":
		return PreferSecond, nil
	case "last":
		return PreferLast, nil
	}
	return PreferFirst, fmt.Errorf("unknown context preference %q", s)
}

// UnmarshalYAML accepts the first/second/last spelling used in override files.
func (p *Preference) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePreference(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML emits the registry spelling.
func (p Preference) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// Descriptor binds one logical field to a position inside a template.
//
// A descriptor is either relative (Anchor non-empty, placement computed from
// the live coordinates of the anchor text plus DX/DY) or fixed (Fixed true,
// placement is X/Y on page Page with no search). Relative and fixed fields
// are mutually exclusive.
type Descriptor struct {
	// Relative placement.
	Anchor            string     `yaml:"anchor,omitempty"`             // literal substring searched in page text
	Context           string     `yaml:"context,omitempty"`            // substring required on the same page for a match to count
	ContextPreference Preference `yaml:"context_preference,omitempty"` // which valid match to use
	DX                float64    `yaml:"dx,omitempty"`                 // points right of the anchor's top-left
	DY                float64    `yaml:"dy,omitempty"`                 // points below the anchor's top-left (negative moves up)

	// PageHint restricts the search to one page. 0 searches every page,
	// n > 0 is the 1-based page number, n < 0 counts from the last page
	// (-1 is the last page, -2 the second-to-last).
	PageHint int `yaml:"page_hint,omitempty"`

	// Fixed placement.
	Fixed bool    `yaml:"fixed,omitempty"`
	Page  int     `yaml:"page,omitempty"` // 0-based page index for fixed placement
	X     float64 `yaml:"x,omitempty"`    // top-down coordinates, points
	Y     float64 `yaml:"y,omitempty"`

	// FontSize overrides the engine's default glyph size, in points.
	FontSize float64 `yaml:"font_size,omitempty"`
}

// Validate reports descriptors that can never resolve.
func (d Descriptor) Validate() error {
	if d.Fixed {
		if d.Anchor != "" {
			return fmt.Errorf("fixed descriptor must not carry anchor text %q", d.Anchor)
		}
		if d.Page < 0 {
			return fmt.Errorf("fixed descriptor has negative page %d", d.Page)
		}
		return nil
	}
	if d.Anchor == "" {
		return fmt.Errorf("relative descriptor has no anchor text")
	}
	if strings.ContainsAny(d.Anchor, "\n\r") {
		// Page text is matched line by line; anchors spanning lines never hit.
		return fmt.Errorf("anchor %q spans multiple lines", d.Anchor)
	}
	return nil
}

// IsSignatureField reports whether a field is rendered in the cursive
// signature face rather than the standard text face.
func IsSignatureField(name string) bool {
	return strings.Contains(name, "signature") && !strings.HasPrefix(name, "printed")
}

// IsPOATemplate reports whether a template file is a Power of Attorney,
// which mints and embeds a POA identifier.
func IsPOATemplate(filename string) bool {
	return strings.Contains(filename, "POA") || strings.Contains(filename, "Power_of_Attorney")
}

// ExhibitFieldPrefix marks the Exhibit 1 tabular row fields, which the
// compositor places on a fixed column grid regardless of anchor offsets.
const ExhibitFieldPrefix = "exhibit_"
