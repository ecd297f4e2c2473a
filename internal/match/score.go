package match

import (
	"math"
	"strconv"
	"strings"

	"github.com/pagefit/pagefit/internal/config"
	"github.com/pagefit/pagefit/internal/types"
)

// Sub-score constants. The anchor ladder maps token-overlap ratios to
// fixed scores; style factors multiply on each failed check.
const (
	styleSizeFloor    = 0.1
	styleWeightFactor = 0.65
	styleColorFactor  = 0.6

	anchorOverlapStrong = 0.75
	anchorOverlapWeak   = 0.40
	anchorScoreStrong   = 0.85
	anchorScoreWeak     = 0.70
	anchorScoreTrace    = 0.55
	anchorScoreFloor    = 0.40

	// Pixel-size hints get relative tolerances instead of the normalized
	// one: lower bounds 15%, upper bounds 25%.
	pxMinTolerance = 0.15
	pxMaxTolerance = 0.25
)

// scoreDetail is the scorer's full output for one candidate/slot pair.
type scoreDetail struct {
	breakdown        types.ScoreBreakdown
	centroidDistance float64
	hintViolations   []types.ReasonCode
	anchorContained  bool
}

// score computes the five sub-scores and the weighted total for a
// candidate against a slot's expectations. Weights arrive pre-normalized.
func score(slot types.Slot, c Candidate, cfg config.Scoring) scoreDetail {
	d := scoreDetail{}
	d.breakdown.IoU = c.Norm.IoU(slot.ExpectedBox)

	d.centroidDistance = c.Norm.CentroidDistance(slot.ExpectedBox)
	d.breakdown.Distance = math.Max(0, 1-d.centroidDistance*cfg.Thresholds.DistanceScale)

	d.breakdown.Style = styleScore(slot, c)
	d.breakdown.Anchor, d.anchorContained = anchorScore(slot, c)
	d.breakdown.Hint, d.hintViolations = hintScore(slot, c, cfg.Thresholds.HintTolerance)

	w := cfg.Weights
	total := w.IoU*d.breakdown.IoU +
		w.Distance*d.breakdown.Distance +
		w.Style*d.breakdown.Style +
		w.Anchor*d.breakdown.Anchor +
		w.Hint*d.breakdown.Hint

	d.breakdown.IoU = round3(d.breakdown.IoU)
	d.breakdown.Distance = round3(d.breakdown.Distance)
	d.breakdown.Style = round3(d.breakdown.Style)
	d.breakdown.Anchor = round3(d.breakdown.Anchor)
	d.breakdown.Hint = round3(d.breakdown.Hint)
	d.breakdown.Final = round3(total)
	return d
}

// styleScore checks a text candidate against the slot's style hints.
// Unset hints are skipped; a check the candidate carries no data for is
// also skipped. With zero applicable checks the score is 1.0. Non-text
// candidates always score 1.0.
func styleScore(slot types.Slot, c Candidate) float64 {
	txt, ok := c.Element.(*types.TextElement)
	if !ok || slot.Style == nil || txt.Style == nil {
		return 1.0
	}
	hints := slot.Style
	st := txt.Style
	s := 1.0

	if st.FontSize > 0 {
		if hints.FontSizeMin != nil && st.FontSize < *hints.FontSizeMin {
			s *= math.Max(styleSizeFloor, st.FontSize / *hints.FontSizeMin)
		} else if hints.FontSizeMax != nil && st.FontSize > *hints.FontSizeMax {
			s *= math.Max(styleSizeFloor, *hints.FontSizeMax/st.FontSize)
		}
	}

	if hints.FontWeight != "" && st.FontWeight != "" && hints.FontWeight != st.FontWeight {
		s *= styleWeightFactor
	}

	if hints.ColorHint != "" {
		if lum, ok := luminance(st.Color); ok {
			light := lum > 0.5
			wantLight := hints.ColorHint == "light"
			if light != wantLight {
				s *= styleColorFactor
			}
		}
	}
	return s
}

// luminance returns the perceptual luminance of a #rrggbb color in [0,1],
// using the BT.601 coefficients 0.299/0.587/0.114.
func luminance(hex string) (float64, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	r := float64((v >> 16) & 0xff)
	g := float64((v >> 8) & 0xff)
	b := float64(v & 0xff)
	return (0.299*r + 0.587*g + 0.114*b) / 255, true
}

// anchorScore scores a candidate's text against the slot's anchor
// keywords. Canonical substring containment is a full match; otherwise the
// best per-anchor token overlap picks a score from a fixed ladder. Slots
// without anchors, and non-text slots, score 1.0. The contained flag
// reports an exact containment hit for diagnostics.
func anchorScore(slot types.Slot, c Candidate) (float64, bool) {
	if len(slot.Anchors) == 0 {
		return 1.0, false
	}
	if _, ok := c.Element.(*types.TextElement); !ok {
		return 1.0, false
	}
	if c.Canon == "" {
		return anchorScoreFloor, false
	}

	best := 0.0
	for _, anchor := range slot.Anchors {
		canonAnchor := Canonicalize(anchor)
		if canonAnchor == "" {
			continue
		}
		if strings.Contains(c.Canon, canonAnchor) {
			return 1.0, true
		}
		if ov := tokenOverlap(c.Canon, canonAnchor); ov > best {
			best = ov
		}
	}

	switch {
	case best >= anchorOverlapStrong:
		return anchorScoreStrong, false
	case best >= anchorOverlapWeak:
		return anchorScoreWeak, false
	case best > 0:
		return anchorScoreTrace, false
	default:
		return anchorScoreFloor, false
	}
}

// hintCheck is one declared geometric hint: the bound it imposes, the
// reason code it emits when violated, and the penalty it multiplies in.
type hintCheck struct {
	reason  types.ReasonCode
	penalty float64
	// violated inspects the candidate with the normalized tolerance.
	violated func(c Candidate, tol float64) bool
}

// hintScore evaluates every declared geometric hint. Each violation
// multiplies a fixed per-hint penalty into the score, so multiple
// violations compound. Violations are reported in a fixed order.
func hintScore(slot types.Slot, c Candidate, tol float64) (float64, []types.ReasonCode) {
	g := slot.Geometry
	if g == nil {
		return 1.0, nil
	}

	checks := buildHintChecks(g)
	s := 1.0
	var violations []types.ReasonCode
	for _, chk := range checks {
		if chk.violated(c, tol) {
			s *= chk.penalty
			violations = append(violations, chk.reason)
		}
	}
	return s, violations
}

// buildHintChecks expands the declared hints into concrete checks.
// Position hints penalize 0.70, normalized size hints 0.65, pixel size
// hints 0.60.
func buildHintChecks(g *types.GeoHints) []hintCheck {
	var checks []hintCheck

	addNorm := func(bound *float64, reason types.ReasonCode, penalty float64, v func(c Candidate, bound, tol float64) bool) {
		if bound == nil {
			return
		}
		b := *bound
		checks = append(checks, hintCheck{reason: reason, penalty: penalty, violated: func(c Candidate, tol float64) bool {
			return v(c, b, tol)
		}})
	}

	addNorm(g.MinXNorm, types.ReasonHintMinX, 0.70, func(c Candidate, b, tol float64) bool {
		return c.Norm.X0 < b-tol
	})
	addNorm(g.MaxXNorm, types.ReasonHintMaxX, 0.70, func(c Candidate, b, tol float64) bool {
		return c.Norm.X1 > b+tol
	})
	addNorm(g.MinYNorm, types.ReasonHintMinY, 0.70, func(c Candidate, b, tol float64) bool {
		return c.Norm.Y0 < b-tol
	})
	addNorm(g.MaxYNorm, types.ReasonHintMaxY, 0.70, func(c Candidate, b, tol float64) bool {
		return c.Norm.Y1 > b+tol
	})
	addNorm(g.MinWidthNorm, types.ReasonHintMinWidth, 0.65, func(c Candidate, b, tol float64) bool {
		return c.Norm.Width() < b-tol
	})
	addNorm(g.MaxWidthNorm, types.ReasonHintMaxWidth, 0.65, func(c Candidate, b, tol float64) bool {
		return c.Norm.Width() > b+tol
	})
	addNorm(g.MinHeightNorm, types.ReasonHintMinHeight, 0.65, func(c Candidate, b, tol float64) bool {
		return c.Norm.Height() < b-tol
	})
	addNorm(g.MaxHeightNorm, types.ReasonHintMaxHeight, 0.65, func(c Candidate, b, tol float64) bool {
		return c.Norm.Height() > b+tol
	})

	addPx := func(bound *int, reason types.ReasonCode, v func(img *types.ImageElement, bound int) bool) {
		if bound == nil {
			return
		}
		b := *bound
		checks = append(checks, hintCheck{reason: reason, penalty: 0.60, violated: func(c Candidate, _ float64) bool {
			img, ok := c.Element.(*types.ImageElement)
			if !ok {
				return false
			}
			return v(img, b)
		}})
	}

	addPx(g.MinWidthPx, types.ReasonHintMinWidthPx, func(img *types.ImageElement, b int) bool {
		return float64(img.WidthPx) < float64(b)*(1-pxMinTolerance)
	})
	addPx(g.MaxWidthPx, types.ReasonHintMaxWidthPx, func(img *types.ImageElement, b int) bool {
		return float64(img.WidthPx) > float64(b)*(1+pxMaxTolerance)
	})
	addPx(g.MinHeightPx, types.ReasonHintMinHeightPx, func(img *types.ImageElement, b int) bool {
		return float64(img.HeightPx) < float64(b)*(1-pxMinTolerance)
	})
	addPx(g.MaxHeightPx, types.ReasonHintMaxHeightPx, func(img *types.ImageElement, b int) bool {
		return float64(img.HeightPx) > float64(b)*(1+pxMaxTolerance)
	})

	return checks
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
