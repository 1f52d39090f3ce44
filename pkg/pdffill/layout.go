package pdffill

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageSize is one page's dimensions in points.
type PageSize struct {
	W float64
	H float64
}

// PageLayout records the size of every page of a template, in page order.
// Pages of one template may differ in size; the overlay and the merged
// output reproduce each page's dimensions exactly.
type PageLayout []PageSize

// readLayout discovers the per-page dimensions of a PDF.
func readLayout(path string) (PageLayout, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions of %s: %w", path, err)
	}
	layout := make(PageLayout, len(dims))
	for i, d := range dims {
		layout[i] = PageSize{W: d.Width, H: d.Height}
	}
	return layout, nil
}
