package pdffill

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/greenwatt/intake/pkg/anchor"
)

// lineTolerance groups text fragments whose baselines differ by less than
// this many points onto one visual line.
const lineTolerance = 2.0

// fragmentGap is the horizontal distance, in points, beyond which two
// adjacent fragments on a line are treated as separate words.
const fragmentGap = 1.0

// textFragment is one positioned run of glyphs, in top-down coordinates.
type textFragment struct {
	text string
	x    float64
	y    float64 // top of the glyph box
	w    float64
}

// textLine is a visual line assembled from fragments, left to right.
// text is the concatenation of the fragments (a single space is inserted
// across word gaps); starts[i] is the byte offset of frags[i].text within
// text, so a substring match maps back to a glyph origin.
type textLine struct {
	y      float64
	frags  []textFragment
	starts []int
	text   string
}

// pageText is the searchable text of one template page, lines ordered
// top-down.
type pageText struct {
	lines []textLine
	full  string
}

// contains reports whether any line of the page carries the substring.
// Context checks are page-scoped: the context's position relative to the
// anchor is not considered.
func (p pageText) contains(s string) bool {
	return strings.Contains(p.full, s)
}

// Document is a template opened for anchor resolution. It holds the page
// layout and the positioned text of every page; the underlying file is
// closed before OpenDocument returns, so a Document is read-only and safe
// to share.
type Document struct {
	path   string
	layout PageLayout
	pages  []pageText
}

// OpenDocument reads a template's layout and positioned text.
func OpenDocument(path string) (*Document, error) {
	layout, err := readLayout(path)
	if err != nil {
		return nil, err
	}
	pages, err := documentText(path, layout)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, layout: layout, pages: pages}, nil
}

// PageCount returns the number of pages in the template.
func (d *Document) PageCount() int { return len(d.layout) }

// Layout returns the per-page dimensions.
func (d *Document) Layout() PageLayout { return d.layout }

// FindAnchor resolves a descriptor to the top-left of its selected anchor
// match. Fixed descriptors return their registry coordinates unchanged
// without searching. The caller applies DX/DY to obtain the draw position.
func (d *Document) FindAnchor(desc anchor.Descriptor) (Placement, error) {
	return findAnchor(d.pages, len(d.layout), desc)
}

// documentText extracts the positioned text of every page. Page indices
// align with the layout even when a page yields no text (scanned or empty
// pages produce an empty entry). Extraction is per page and recovers from
// parser panics so one bad page does not sink the whole template.
func documentText(path string, layout PageLayout) ([]pageText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for text extraction: %w", path, err)
	}
	defer f.Close()

	count := r.NumPage()
	if count > len(layout) {
		count = len(layout)
	}
	pages := make([]pageText, len(layout))
	for i := 0; i < count; i++ {
		pages[i] = extractPageText(r, i+1, layout[i].H)
	}
	return pages, nil
}

// extractPageText pulls one page's text runs and assembles them into
// top-down ordered lines. The content stream reports bottom-up baseline
// coordinates; this is the single place they are converted.
func extractPageText(r *pdf.Reader, pageNum int, pageHeight float64) (pt pageText) {
	defer func() {
		if recover() != nil {
			// Malformed content stream; leave the page empty and let the
			// caller report anchor misses per field.
			pt = pageText{}
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return pageText{}
	}

	texts := page.Content().Text
	var lines []textLine
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		frag := textFragment{
			text: t.S,
			x:    t.X,
			// t.Y is the bottom-up baseline; the glyph box top approximates
			// baseline plus the font's ascent.
			y: pageHeight - t.Y - t.FontSize,
			w: t.W,
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-frag.y) < lineTolerance {
				lines[i].frags = append(lines[i].frags, frag)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, textLine{y: frag.y, frags: []textFragment{frag}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y < lines[j].y })
	for i := range lines {
		assembleLine(&lines[i])
	}

	var full strings.Builder
	for i := range lines {
		full.WriteString(lines[i].text)
		full.WriteByte('\n')
	}
	return pageText{lines: lines, full: full.String()}
}

// assembleLine orders a line's fragments left to right and builds its
// searchable string, recording where each fragment starts.
func assembleLine(line *textLine) {
	sort.SliceStable(line.frags, func(i, j int) bool { return line.frags[i].x < line.frags[j].x })
	var b strings.Builder
	line.starts = make([]int, len(line.frags))
	for i, f := range line.frags {
		if i > 0 {
			prev := line.frags[i-1]
			if f.x-(prev.x+prev.w) > fragmentGap {
				b.WriteByte(' ')
			}
		}
		line.starts[i] = b.Len()
		b.WriteString(f.text)
	}
	line.text = b.String()
}

// matchPositions returns the top-left of every occurrence of needle on the
// line, left to right.
func (l textLine) matchPositions(needle string) []Placement {
	var out []Placement
	from := 0
	for {
		idx := strings.Index(l.text[from:], needle)
		if idx < 0 {
			return out
		}
		off := from + idx
		out = append(out, Placement{X: l.xAt(off), Y: l.y})
		from = off + 1
	}
}

// xAt maps a byte offset in the line text to a glyph origin. Offsets inside
// a fragment interpolate proportionally across the fragment's width.
func (l textLine) xAt(off int) float64 {
	k := 0
	for i, s := range l.starts {
		if s > off {
			break
		}
		k = i
	}
	f := l.frags[k]
	within := off - l.starts[k]
	if within <= 0 || len(f.text) == 0 {
		return f.x
	}
	if within >= len(f.text) {
		return f.x + f.w
	}
	return f.x + f.w*float64(within)/float64(len(f.text))
}

// resolvePageHint turns a descriptor page hint into a 0-based page index,
// or -1 when the hint does not address a page of this document.
func resolvePageHint(hint, pageCount int) int {
	switch {
	case hint > 0:
		if hint > pageCount {
			return -1
		}
		return hint - 1
	case hint < 0:
		idx := pageCount + hint
		if idx < 0 {
			return -1
		}
		return idx
	default:
		return -1
	}
}

// findAnchor implements the locator contract: fixed descriptors short-
// circuit; relative descriptors search pages in ascending order (or only
// the hinted page), keep matches whose page also carries the context text,
// and select among the survivors by preference in document order. Ties on
// a page break by appearance order, vertical first then horizontal.
func findAnchor(pages []pageText, pageCount int, desc anchor.Descriptor) (Placement, error) {
	if desc.Fixed {
		return Placement{Page: desc.Page, X: desc.X, Y: desc.Y}, nil
	}
	if desc.Anchor == "" {
		return Placement{}, fmt.Errorf("%w: empty anchor text", ErrAnchorNotFound)
	}

	first, last := 0, len(pages)-1
	if desc.PageHint != 0 {
		idx := resolvePageHint(desc.PageHint, pageCount)
		if idx < 0 || idx >= len(pages) {
			return Placement{}, fmt.Errorf("%w: %q (page hint %d outside %d pages)",
				ErrAnchorNotFound, desc.Anchor, desc.PageHint, pageCount)
		}
		first, last = idx, idx
	}

	var matches []Placement
	for p := first; p <= last && p >= 0; p++ {
		page := pages[p]
		if desc.Context != "" && !page.contains(desc.Context) {
			continue
		}
		for _, line := range page.lines {
			for _, m := range line.matchPositions(desc.Anchor) {
				m.Page = p
				matches = append(matches, m)
			}
		}
	}

	if len(matches) == 0 {
		return Placement{}, fmt.Errorf("%w: %q", ErrAnchorNotFound, desc.Anchor)
	}

	switch desc.ContextPreference {
	case anchor.PreferSecond:
		if len(matches) >= 2 {
			return matches[1], nil
		}
		return matches[0], nil
	case anchor.PreferLast:
		return matches[len(matches)-1], nil
	default:
		return matches[0], nil
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
