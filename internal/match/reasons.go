package match

import "github.com/pagefit/pagefit/internal/types"

// Diagnostic rule thresholds. Each rule fires independently; the rules run
// in a fixed order so the reason list is stable across runs.
const (
	lowIoUBelow        = 0.50
	highIoUFrom        = 0.70
	styleMismatchBelow = 0.70
	layoutShiftOver    = 0.15
	hintMismatchBelow  = 0.75
)

// buildReasons evaluates the diagnostic rules for a resolved slot and
// returns the ordered, deduplicated reason codes. This list is the only
// explanation surfaced to operators and to downstream remediation.
func buildReasons(status types.MatchStatus, winner scoredCandidate, tier types.SearchTier) []types.ReasonCode {
	b := winner.detail.breakdown

	var codes []types.ReasonCode
	switch status {
	case types.StatusMatchedHigh:
		codes = append(codes, types.ReasonScoreHigh)
	case types.StatusMatchedLow:
		codes = append(codes, types.ReasonScoreLow)
	case types.StatusMissing:
		codes = append(codes, types.ReasonScoreTooLow)
	}

	if b.IoU < lowIoUBelow {
		codes = append(codes, types.ReasonLowIoU)
	}
	if b.IoU >= highIoUFrom {
		codes = append(codes, types.ReasonHighIoU)
	}
	if b.Style < styleMismatchBelow {
		codes = append(codes, types.ReasonStyleMismatch)
	}
	if winner.detail.centroidDistance > layoutShiftOver {
		codes = append(codes, types.ReasonLayoutShift)
	}
	if winner.detail.anchorContained {
		codes = append(codes, types.ReasonAnchorMatch)
	}
	if b.Hint < hintMismatchBelow {
		codes = append(codes, types.ReasonHintMismatch)
	}
	codes = append(codes, winner.detail.hintViolations...)

	if winner.reused {
		codes = append(codes, types.ReasonCandidateReused)
	}
	switch tier {
	case types.TierRelaxedZone:
		codes = append(codes, types.ReasonCandidateRelaxedZone)
	case types.TierGlobalType:
		codes = append(codes, types.ReasonCandidateGlobalType)
	}

	return dedup(codes)
}

// dedup removes duplicate codes while preserving first-occurrence order.
func dedup(codes []types.ReasonCode) []types.ReasonCode {
	seen := make(map[types.ReasonCode]bool, len(codes))
	out := codes[:0]
	for _, c := range codes {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
