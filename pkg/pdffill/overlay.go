package pdffill

import (
	"fmt"
	"sort"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/greenwatt/intake/pkg/anchor"
)

// Default glyph sizes in points. The Exhibit 1 row squeezes into narrow
// pre-printed columns, the service-address column most of all.
const (
	defaultFieldSize          = 10
	exhibitFieldSize          = 8
	exhibitServiceAddressSize = 7
)

// Exhibit 1 fixed column layout, top-down points. Anchor-derived offsets
// spill long values into the neighboring column on some account names, so
// the compositor pins every exhibit_* field to this grid; the registry still
// decides which page the row lands on.
var exhibitColumns = map[string]float64{
	"exhibit_utility":         98.6,
	"exhibit_account_name":    249.2,
	"exhibit_account_number":  419.2,
	"exhibit_service_address": 560.6,
}

const exhibitRowY = 480.9

// overlayField is one draw request on an overlay page, top-down coordinates.
type overlayField struct {
	text      string
	x         float64
	y         float64
	size      float64
	signature bool
}

// fieldFontSize picks the glyph size for a field: descriptor override first,
// then the exhibit sizes, then the standard size.
func fieldFontSize(name string, desc anchor.Descriptor) float64 {
	if desc.FontSize > 0 {
		return desc.FontSize
	}
	if name == "exhibit_service_address" {
		return exhibitServiceAddressSize
	}
	if hasExhibitPrefix(name) {
		return exhibitFieldSize
	}
	return defaultFieldSize
}

func hasExhibitPrefix(name string) bool {
	return len(name) > len(anchor.ExhibitFieldPrefix) && name[:len(anchor.ExhibitFieldPrefix)] == anchor.ExhibitFieldPrefix
}

// buildOverlay writes a transparent PDF at path with the same page count
// and per-page sizes as the template layout, carrying only the drawn field
// values. Pages without fields stay blank but still exist, so the merge
// stays index-aligned with the template.
func buildOverlay(path string, layout PageLayout, placements map[int]map[string]overlayField, sig *SignatureFont) error {
	doc := fpdf.New("P", "pt", "", "")

	sigFamily, sigStyle := "", ""
	for _, fields := range placements {
		for _, f := range fields {
			if f.signature {
				sigFamily, sigStyle = sig.install(doc)
				break
			}
		}
		if sigFamily != "" {
			break
		}
	}

	for i := 0; i < len(layout); i++ {
		ps := layout[i]
		doc.AddPageFormat("P", fpdf.SizeType{Wd: ps.W, Ht: ps.H})
		fields := placements[i]
		if len(fields) == 0 {
			continue
		}
		// Deterministic draw order so identical inputs yield identical bytes.
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			f := fields[name]
			doc.SetTextColor(0, 0, 0)
			if f.signature {
				doc.SetFont(sigFamily, sigStyle, f.size)
				// The registered face is UTF-8; only the core fallback needs
				// the latin-1 conversion.
				text := f.text
				if sig == nil || sigFamily != sig.Config.Name {
					text = toLatin1(f.text)
				}
				doc.Text(f.x, f.y, text)
				continue
			}
			doc.SetFont("Helvetica", "", f.size)
			doc.Text(f.x, f.y, toLatin1(f.text))
		}
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write overlay %s: %w", path, err)
	}
	return nil
}

// toLatin1 converts text to ISO-8859-1 for the core fonts, falling back to
// the raw string when a rune has no latin-1 representation.
func toLatin1(s string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return latin1
}
