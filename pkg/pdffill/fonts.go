package pdffill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/go-pdf/fpdf"
)

// FontConfig describes the cursive face drawn for signature fields and the
// core-font fallback used when the face cannot be registered.
type FontConfig struct {
	Name           string  // name the face is registered under
	File           string  // TTF path relative to the font directory
	Size           float64 // signature point size
	FallbackFamily string  // core family used on registration failure
	FallbackStyle  string  // fpdf style flag for the fallback ("I" = italic)
}

// DefaultSignatureFont is the Arizonia script face installed by the
// deployment scripts, with an italic Helvetica fallback.
var DefaultSignatureFont = FontConfig{
	Name:           "Arizonia",
	File:           filepath.Join("Arizonia", "Arizonia-Regular.ttf"),
	Size:           22,
	FallbackFamily: "Helvetica",
	FallbackStyle:  "I",
}

// SignatureFont is the process-wide registration state of the cursive face.
// fpdf fonts are per document, so "registration" validates the TTF once and
// records its path; every overlay build re-adds the face from that path.
type SignatureFont struct {
	Config     FontConfig
	Path       string
	Registered bool
}

var (
	sigMu   sync.Mutex
	sigFont *SignatureFont
)

// RegisterSignatureFont validates and records the signature face. It runs
// once per process; later calls return the first result regardless of
// arguments. Failure is not fatal: signature fields fall back to the
// configured core face, and the failure is reported on the logger.
func RegisterSignatureFont(fontDir string, cfg FontConfig, logger io.Writer) *SignatureFont {
	sigMu.Lock()
	defer sigMu.Unlock()
	if sigFont != nil {
		return sigFont
	}
	if logger == nil {
		logger = os.Stdout
	}

	path := filepath.Join(fontDir, cfg.File)
	sigFont = &SignatureFont{Config: cfg, Path: path}

	if err := probeTTF(cfg.Name, path); err != nil {
		fmt.Fprintf(logger, "%v: %s (%v); signature fields use %s %s\n",
			ErrFontRegistration, cfg.Name, err, cfg.FallbackFamily, cfg.FallbackStyle)
		return sigFont
	}
	sigFont.Registered = true
	return sigFont
}

// currentSignatureFont returns the process-wide signature face, or nil when
// RegisterSignatureFont has not run.
func currentSignatureFont() *SignatureFont {
	sigMu.Lock()
	defer sigMu.Unlock()
	return sigFont
}

// probeTTF checks that the face actually loads, so a bad file is caught at
// startup instead of poisoning every overlay document.
func probeTTF(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("font file not found: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("font file %s is empty", path)
	}
	probe := fpdf.New("P", "pt", "A4", "")
	probe.AddUTF8Font(name, "", path)
	if probe.Err() {
		return fmt.Errorf("font file rejected: %s", probe.Error())
	}
	return nil
}

// install adds the signature face to an overlay document and returns the
// family and style to select for signature text. With no usable face it
// returns the fallback without touching the document.
func (s *SignatureFont) install(doc *fpdf.Fpdf) (family, style string) {
	if s == nil || !s.Registered {
		cfg := DefaultSignatureFont
		if s != nil {
			cfg = s.Config
		}
		return cfg.FallbackFamily, cfg.FallbackStyle
	}
	doc.AddUTF8Font(s.Config.Name, "", s.Path)
	if doc.Err() {
		return s.Config.FallbackFamily, s.Config.FallbackStyle
	}
	return s.Config.Name, ""
}

// Size returns the signature point size.
func (s *SignatureFont) Size() float64 {
	if s == nil || s.Config.Size == 0 {
		return DefaultSignatureFont.Size
	}
	return s.Config.Size
}
