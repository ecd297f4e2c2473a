package match

import (
	"math"

	"github.com/pagefit/pagefit/internal/types"
)

// candidates narrows the pool for one slot using three relaxation tiers,
// attempted in order and stopping at the first that yields anything:
//
//  1. strict_zone: kind matches and the element sits in the slot's zone.
//  2. relaxed_zone: kind matches and the element's centroid y is within
//     zone_relax_delta of the slot's expected centroid y.
//  3. global_type: kind matches, anywhere on the page.
//
// The winning tier is returned as provenance. When nothing matches the
// result is an empty slice with tier global_type.
func candidates(slot types.Slot, pool []Candidate, relaxDelta float64) ([]Candidate, types.SearchTier) {
	strict := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if slot.Kind.Accepts(c.Element.Kind()) && c.Zone == slot.Zone {
			strict = append(strict, c)
		}
	}
	if len(strict) > 0 {
		return strict, types.TierStrictZone
	}

	_, wantCy := slot.ExpectedBox.Centroid()
	relaxed := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if !slot.Kind.Accepts(c.Element.Kind()) {
			continue
		}
		_, cy := c.Norm.Centroid()
		if math.Abs(cy-wantCy) <= relaxDelta {
			relaxed = append(relaxed, c)
		}
	}
	if len(relaxed) > 0 {
		return relaxed, types.TierRelaxedZone
	}

	global := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if slot.Kind.Accepts(c.Element.Kind()) {
			global = append(global, c)
		}
	}
	return global, types.TierGlobalType
}
