package pdffill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenwatt/intake/pkg/anchor"
)

// makeLine assembles a searchable line from positioned fragments, the same
// way extraction does.
func makeLine(y float64, frags ...textFragment) textLine {
	l := textLine{y: y, frags: frags}
	assembleLine(&l)
	return l
}

func makePage(lines ...textLine) pageText {
	full := ""
	for _, l := range lines {
		full += l.text + "\n"
	}
	return pageText{lines: lines, full: full}
}

func TestAssembleLineWordGaps(t *testing.T) {
	l := makeLine(100,
		textFragment{text: "Customer", x: 10, w: 50},
		textFragment{text: "Name:", x: 65, w: 30},
	)
	assert.Equal(t, "Customer Name:", l.text)

	// Touching fragments concatenate without a space.
	l = makeLine(100,
		textFragment{text: "Cust", x: 10, w: 20},
		textFragment{text: "omer", x: 30.5, w: 20},
	)
	assert.Equal(t, "Customer", l.text)
}

func TestFindAnchorSimple(t *testing.T) {
	pages := []pageText{makePage(
		makeLine(50, textFragment{text: "Customer Name:", x: 72, w: 90}),
		makeLine(80, textFragment{text: "Service Address:", x: 72, w: 100}),
	)}

	pl, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "Service Address:"})
	require.NoError(t, err)
	assert.Equal(t, 0, pl.Page)
	assert.Equal(t, 72.0, pl.X)
	assert.Equal(t, 80.0, pl.Y)
}

func TestFindAnchorSubstringPosition(t *testing.T) {
	// "Date:" starts 60% into a 100pt fragment starting at x=40.
	pages := []pageText{makePage(
		makeLine(120, textFragment{text: "SignedDate: here", x: 40, w: 160}),
	)}

	pl, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "Date:"})
	require.NoError(t, err)
	assert.InDelta(t, 40+160*6.0/16.0, pl.X, 0.01)
}

func TestFindAnchorPreference(t *testing.T) {
	pages := []pageText{makePage(
		makeLine(100, textFragment{text: "By:", x: 72, w: 20}),
		makeLine(300, textFragment{text: "By:", x: 72, w: 20}),
		makeLine(500, textFragment{text: "By:", x: 72, w: 20}),
	)}

	first, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "By:"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, first.Y)

	second, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "By:", ContextPreference: anchor.PreferSecond})
	require.NoError(t, err)
	assert.Equal(t, 300.0, second.Y)

	last, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "By:", ContextPreference: anchor.PreferLast})
	require.NoError(t, err)
	assert.Equal(t, 500.0, last.Y)
}

func TestFindAnchorSecondFallsBackToFirst(t *testing.T) {
	pages := []pageText{makePage(
		makeLine(100, textFragment{text: "Date:", x: 72, w: 30}),
	)}

	pl, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "Date:", ContextPreference: anchor.PreferSecond})
	require.NoError(t, err)
	assert.Equal(t, 100.0, pl.Y)
}

func TestFindAnchorContextFilter(t *testing.T) {
	producerPage := makePage(
		makeLine(90, textFragment{text: "SOLAR PRODUCER:", x: 72, w: 110}),
		makeLine(120, textFragment{text: "By:", x: 72, w: 20}),
	)
	subscriberPage := makePage(
		makeLine(90, textFragment{text: "SUBSCRIBER:", x: 72, w: 80}),
		makeLine(120, textFragment{text: "By:", x: 72, w: 20}),
	)
	pages := []pageText{producerPage, subscriberPage}

	pl, err := findAnchor(pages, 2, anchor.Descriptor{Anchor: "By:", Context: "SUBSCRIBER:"})
	require.NoError(t, err)
	assert.Equal(t, 1, pl.Page)
}

func TestFindAnchorContextPreferenceSameBlock(t *testing.T) {
	// Both blocks live on one page; the context is page-scoped, so the
	// preference picks the second match.
	page := makePage(
		makeLine(90, textFragment{text: "SOLAR PRODUCER:", x: 72, w: 110}),
		makeLine(120, textFragment{text: "By:", x: 72, w: 20}),
		makeLine(390, textFragment{text: "SUBSCRIBER:", x: 72, w: 80}),
		makeLine(420, textFragment{text: "By:", x: 72, w: 20}),
	)

	pl, err := findAnchor([]pageText{page}, 1, anchor.Descriptor{
		Anchor:            "By:",
		Context:           "SUBSCRIBER:",
		ContextPreference: anchor.PreferSecond,
	})
	require.NoError(t, err)
	assert.Equal(t, 420.0, pl.Y)
}

func TestFindAnchorPageHints(t *testing.T) {
	hit := makePage(makeLine(200, textFragment{text: "Utility Company", x: 90, w: 100}))
	pages := []pageText{
		makePage(makeLine(200, textFragment{text: "Utility Company", x: 10, w: 100})),
		hit,
		makePage(),
	}

	// -2 addresses the second-to-last page.
	pl, err := findAnchor(pages, 3, anchor.Descriptor{Anchor: "Utility Company", PageHint: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, pl.Page)
	assert.Equal(t, 90.0, pl.X)

	// Positive hints are 1-based.
	pl, err = findAnchor(pages, 3, anchor.Descriptor{Anchor: "Utility Company", PageHint: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, pl.Page)

	// A hinted page without the anchor is a miss even if other pages match.
	_, err = findAnchor(pages, 3, anchor.Descriptor{Anchor: "Utility Company", PageHint: 3})
	assert.ErrorIs(t, err, ErrAnchorNotFound)

	// Hints outside the document are a miss.
	_, err = findAnchor(pages, 3, anchor.Descriptor{Anchor: "Utility Company", PageHint: -4})
	assert.ErrorIs(t, err, ErrAnchorNotFound)
	_, err = findAnchor(pages, 3, anchor.Descriptor{Anchor: "Utility Company", PageHint: 4})
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestFindAnchorFixedBypassesSearch(t *testing.T) {
	pl, err := findAnchor(nil, 0, anchor.Descriptor{Fixed: true, Page: 6, X: 148.9, Y: 238.2})
	require.NoError(t, err)
	assert.Equal(t, Placement{Page: 6, X: 148.9, Y: 238.2}, pl)
}

func TestFindAnchorMiss(t *testing.T) {
	pages := []pageText{makePage(makeLine(50, textFragment{text: "Customer Name:", x: 72, w: 90}))}
	_, err := findAnchor(pages, 1, anchor.Descriptor{Anchor: "Account Number:"})
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestResolvePageHint(t *testing.T) {
	tests := []struct {
		hint, count, want int
	}{
		{1, 3, 0},
		{3, 3, 2},
		{4, 3, -1},
		{-1, 3, 2},
		{-2, 3, 1},
		{-3, 3, 0},
		{-4, 3, -1},
		{0, 3, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolvePageHint(tt.hint, tt.count), "hint %d count %d", tt.hint, tt.count)
	}
}
