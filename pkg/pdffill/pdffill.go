// Package pdffill fills legal PDF templates by drawing text over anchor
// positions discovered in the live template.
//
// The engine never edits template content. For each submission it builds a
// transparent overlay PDF with the same page count and page sizes as the
// template, draws every bound field at coordinates computed from its anchor
// descriptor, then layers the overlay onto the template page by page and
// writes the merged result. The overlay file is ephemeral and is removed on
// every exit path of the merge.
//
// Coordinates are top-down points everywhere inside the engine (origin at
// the page's top-left, y growing downward). Positioned text extracted from
// the template arrives bottom-up from the PDF content stream and is
// converted exactly once, during extraction; nothing downstream ever sees a
// bottom-up coordinate.
//
// Main entry points:
//
//   - OpenDocument / Document.FindAnchor: resolve one descriptor to a page
//     and position.
//   - Fill: resolve, compose and merge a whole field set into an output PDF.
//   - RegisterSignatureFont: one-time process-wide registration of the
//     cursive signature face.
package pdffill

import (
	"io"
	"os"
)

// Field is one value bound to a registry field name, ready to draw.
type Field struct {
	Text      string
	Signature bool
}

// Placement is a resolved draw position in top-down page coordinates.
type Placement struct {
	Page int // 0-based page index
	X    float64
	Y    float64
}

// Config carries the on-disk surface of the engine.
type Config struct {
	TemplatesDir string    // directory holding the template PDFs
	TempDir      string    // receives overlay PDFs (removed after merge) and outputs
	FontDir      string    // root of the font tree, holds the signature TTF
	Logger       io.Writer // nil means os.Stdout

	SignatureFont FontConfig
}

// DefaultConfig returns a config with the layout the deployment scripts
// provision.
func DefaultConfig() Config {
	return Config{
		TemplatesDir:  "GreenWatt-documents",
		TempDir:       "temp",
		FontDir:       "fonts",
		SignatureFont: DefaultSignatureFont,
	}
}

// getLogger returns the writer used for engine diagnostics,
// defaulting to os.Stdout if nil.
func getLogger(cfg Config) io.Writer {
	if cfg.Logger == nil {
		return os.Stdout
	}
	return cfg.Logger
}
