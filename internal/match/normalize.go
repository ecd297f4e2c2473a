// Package match implements the slot resolution core: bbox normalization,
// noise filtering, zone classification, tiered candidate search,
// multi-factor scoring, reuse-penalized greedy assignment, and the status
// and escalation classification that turns scores into a remediation plan.
// The whole pipeline is a pure function of its inputs; identical inputs
// always produce an identical report.
package match

import (
	"sort"
	"strings"

	"github.com/pagefit/pagefit/internal/types"
)

// Normalized boxes below these extents are degenerate extraction artifacts
// (hairline rules, collapsed glyph boxes) and never useful slot content.
const (
	minWidthNorm  = 0.004
	minHeightNorm = 0.003
)

// Candidate is a page element annotated with the derived state the
// resolver needs. The source element is read, never mutated.
type Candidate struct {
	Element types.Element

	// Norm is the element's bounding box in [0,1] page coordinates.
	Norm types.BBox

	// Zone is the named vertical band containing the element's centroid.
	Zone string

	// Canon is the canonicalized text, empty for non-text elements.
	Canon string
}

// prepare normalizes, filters, and orders the raw element list into the
// candidate pool. Survivors are sorted by (paint order, normalized y0) —
// the canonical iteration order every later step depends on for
// deterministic reports.
func prepare(page types.Page, zones *ZoneClassifier) []Candidate {
	pool := make([]Candidate, 0, len(page.Elements))
	for _, el := range page.Elements {
		if el == nil {
			continue
		}
		normBox := el.Bounds().Normalize(page.Width, page.Height)
		if isNoise(el, normBox) {
			continue
		}
		c := Candidate{Element: el, Norm: normBox}
		_, cy := normBox.Centroid()
		c.Zone = zones.Classify(cy)
		if txt, ok := el.(*types.TextElement); ok {
			c.Canon = Canonicalize(txt.Text)
		}
		pool = append(pool, c)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Element.Order() != pool[j].Element.Order() {
			return pool[i].Element.Order() < pool[j].Element.Order()
		}
		return pool[i].Norm.Y0 < pool[j].Norm.Y0
	})
	return pool
}

// isNoise reports whether an element should be dropped before scoring:
// degenerate geometry, empty text, or an invisible shape.
func isNoise(el types.Element, normBox types.BBox) bool {
	if normBox.Width() < minWidthNorm || normBox.Height() < minHeightNorm {
		return true
	}
	switch e := el.(type) {
	case *types.TextElement:
		return strings.TrimSpace(e.Text) == ""
	case *types.ShapeElement:
		return !e.Visible()
	}
	return false
}
