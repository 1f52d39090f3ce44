package pdffill

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// mergeOverlay stamps each overlay page on top of the matching template
// page and writes the merged document to outputPath. The overlay file is
// consumed: it is removed whether or not the merge succeeds. On failure any
// partially written output is removed as well.
func mergeOverlay(templatePath, overlayPath, outputPath string, layout PageLayout) (err error) {
	defer os.Remove(overlayPath)

	// gofpdi panics on malformed input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			os.Remove(outputPath)
			err = fmt.Errorf("page merge panic for %s: %v: %w", templatePath, r, ErrMergeFailed)
		}
	}()

	tmplBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %v: %w", templatePath, err, ErrMergeFailed)
	}
	ovBytes, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("failed to read overlay %s: %v: %w", overlayPath, err, ErrMergeFailed)
	}

	ovPages, err := overlayPageCount(ovBytes)
	if err != nil {
		return fmt.Errorf("failed to count overlay pages: %v: %w", err, ErrMergeFailed)
	}

	doc := fpdf.New("P", "pt", "", "")
	imp := gofpdi.NewImporter()

	var tmplRS io.ReadSeeker = bytes.NewReader(tmplBytes)
	var ovRS io.ReadSeeker = bytes.NewReader(ovBytes)

	for i := 1; i <= len(layout); i++ {
		ps := layout[i-1]
		doc.AddPageFormat("P", fpdf.SizeType{Wd: ps.W, Ht: ps.H})

		tpl := imp.ImportPageFromStream(doc, &tmplRS, i, "/MediaBox")
		imp.UseImportedTemplate(doc, tpl, 0, 0, ps.W, 0)

		if i <= ovPages {
			ov := imp.ImportPageFromStream(doc, &ovRS, i, "/MediaBox")
			imp.UseImportedTemplate(doc, ov, 0, 0, ps.W, 0)
		}
	}

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write merged document %s: %v: %w", outputPath, err, ErrMergeFailed)
	}

	if err := api.ValidateFile(outputPath, nil); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("merged document failed validation: %v: %w", err, ErrMergeFailed)
	}
	return nil
}

func overlayPageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, err
	}
	return n, nil
}
