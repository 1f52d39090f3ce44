package pdffill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/greenwatt/intake/pkg/anchor"
)

// Fill resolves every provided field against the template's anchors, draws
// the values on a transparent overlay, and merges the overlay onto the
// template at outputPath. Fields whose anchor cannot be located are skipped
// with a log line; the rest of the document still fills. When no field can
// be placed at all the template is copied through unchanged.
func Fill(templatePath, outputPath string, anchors map[string]anchor.Descriptor, values map[string]Field, cfg Config) error {
	logger := getLogger(cfg)

	layout, err := readLayout(templatePath)
	if err != nil {
		return err
	}

	var doc *Document
	needsSearch := false
	for name := range values {
		if desc, ok := anchors[name]; ok && !desc.Fixed {
			needsSearch = true
		}
	}
	if needsSearch {
		doc, err = OpenDocument(templatePath)
		if err != nil {
			return err
		}
	}

	sig := currentSignatureFont()
	placements := make(map[int]map[string]overlayField)
	placed := 0
	for name, value := range values {
		desc, ok := anchors[name]
		if !ok {
			continue
		}
		if value.Text == "" {
			continue
		}

		var pl Placement
		if desc.Fixed {
			pl = Placement{Page: desc.Page, X: desc.X, Y: desc.Y}
		} else {
			pl, err = doc.FindAnchor(desc)
			if err != nil {
				if errors.Is(err, ErrAnchorNotFound) {
					fmt.Fprintf(logger, "anchor not found for field %s in %s, skipping\n", name, filepath.Base(templatePath))
					continue
				}
				return err
			}
			pl.X += desc.DX
			pl.Y += desc.DY
		}

		if col, ok := exhibitColumns[name]; ok {
			pl.X = col
			pl.Y = exhibitRowY
		}

		if pl.Page < 0 || pl.Page >= len(layout) {
			fmt.Fprintf(logger, "field %s resolved to page %d of %d, skipping: %v\n", name, pl.Page+1, len(layout), ErrInvalidCoordinate)
			continue
		}
		ps := layout[pl.Page]
		if pl.X < 0 || pl.X > ps.W || pl.Y < 0 || pl.Y > ps.H {
			fmt.Fprintf(logger, "field %s placed outside page bounds at (%.1f, %.1f), skipping: %v\n", name, pl.X, pl.Y, ErrInvalidCoordinate)
			continue
		}

		size := fieldFontSize(name, desc)
		if value.Signature && desc.FontSize == 0 {
			size = sig.Size()
		}
		if placements[pl.Page] == nil {
			placements[pl.Page] = make(map[string]overlayField)
		}
		placements[pl.Page][name] = overlayField{
			text:      value.Text,
			x:         pl.X,
			y:         pl.Y,
			size:      size,
			signature: value.Signature,
		}
		placed++
	}

	if placed == 0 {
		fmt.Fprintf(logger, "no fields placed for %s, copying template\n", filepath.Base(templatePath))
		return copyFile(templatePath, outputPath)
	}

	if err := os.MkdirAll(cfg.TempDir, 0o750); err != nil {
		return fmt.Errorf("failed to create temp dir %s: %w", cfg.TempDir, err)
	}
	overlayPath := filepath.Join(cfg.TempDir, fmt.Sprintf("overlay_%d.pdf", time.Now().UnixNano()))

	if err := buildOverlay(overlayPath, layout, placements, sig); err != nil {
		os.Remove(overlayPath)
		return err
	}

	fmt.Fprintf(logger, "placed %d fields on %s\n", placed, filepath.Base(templatePath))
	return mergeOverlay(templatePath, overlayPath, outputPath, layout)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
