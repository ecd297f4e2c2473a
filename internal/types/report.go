package types

// MatchStatus is the discrete confidence classification of one slot.
type MatchStatus string

const (
	StatusMatchedHigh MatchStatus = "matched_high"
	StatusMatchedLow  MatchStatus = "matched_low"
	StatusMissing     MatchStatus = "missing"
)

// SearchTier records which relaxation tier produced the candidate set.
type SearchTier string

const (
	TierStrictZone  SearchTier = "strict_zone"
	TierRelaxedZone SearchTier = "relaxed_zone"
	TierGlobalType  SearchTier = "global_type"
)

// ReasonCode is one entry in a slot's diagnostic rationale. The ordered,
// deduplicated code list is the only explanation surfaced to operators
// and to downstream remediation.
type ReasonCode string

const (
	ReasonScoreHigh    ReasonCode = "score_high"
	ReasonScoreLow     ReasonCode = "score_low"
	ReasonScoreTooLow  ReasonCode = "score_too_low"
	ReasonNoCandidates ReasonCode = "no_candidates"

	ReasonLowIoU        ReasonCode = "low_iou"
	ReasonHighIoU       ReasonCode = "high_iou"
	ReasonStyleMismatch ReasonCode = "style_mismatch"
	ReasonLayoutShift   ReasonCode = "layout_shift"
	ReasonAnchorMatch   ReasonCode = "anchor_match"
	ReasonHintMismatch  ReasonCode = "hint_mismatch"

	ReasonHintMinX        ReasonCode = "hint_min_x"
	ReasonHintMaxX        ReasonCode = "hint_max_x"
	ReasonHintMinY        ReasonCode = "hint_min_y"
	ReasonHintMaxY        ReasonCode = "hint_max_y"
	ReasonHintMinWidth    ReasonCode = "hint_min_width"
	ReasonHintMaxWidth    ReasonCode = "hint_max_width"
	ReasonHintMinHeight   ReasonCode = "hint_min_height"
	ReasonHintMaxHeight   ReasonCode = "hint_max_height"
	ReasonHintMinWidthPx  ReasonCode = "hint_min_width_px"
	ReasonHintMaxWidthPx  ReasonCode = "hint_max_width_px"
	ReasonHintMinHeightPx ReasonCode = "hint_min_height_px"
	ReasonHintMaxHeightPx ReasonCode = "hint_max_height_px"

	ReasonCandidateReused      ReasonCode = "candidate_reused"
	ReasonCandidateRelaxedZone ReasonCode = "candidate_relaxed_zone"
	ReasonCandidateGlobalType  ReasonCode = "candidate_global_type"
)

// ScoreBreakdown is the per-factor score record for a resolved slot. All
// values are rounded to three decimals. Adjusted is Final minus any reuse
// penalty, floored at 0.
type ScoreBreakdown struct {
	IoU      float64 `json:"iou" yaml:"iou"`
	Distance float64 `json:"distance" yaml:"distance"`
	Style    float64 `json:"style" yaml:"style"`
	Anchor   float64 `json:"anchor" yaml:"anchor"`
	Hint     float64 `json:"hint" yaml:"hint"`
	Final    float64 `json:"final" yaml:"final"`
	Adjusted float64 `json:"adjusted" yaml:"adjusted"`
}

// MatchResult is the resolution outcome for one slot.
type MatchResult struct {
	Slot         string         `json:"slot" yaml:"slot"`
	Status       MatchStatus    `json:"status" yaml:"status"`
	CandidateID  string         `json:"candidate_id,omitempty" yaml:"candidate_id,omitempty"`
	Score        ScoreBreakdown `json:"score" yaml:"score"`
	Reasons      []ReasonCode   `json:"reasons" yaml:"reasons"`
	RunnersUp    []string       `json:"runners_up,omitempty" yaml:"runners_up,omitempty"`
	CandidateBox *BBox          `json:"candidate_bbox_norm,omitempty" yaml:"candidate_bbox_norm,omitempty"`
	Tier         SearchTier     `json:"tier,omitempty" yaml:"tier,omitempty"`
	NeedsPatch   bool           `json:"needs_patch" yaml:"needs_patch"`
	Escalate     bool           `json:"escalate" yaml:"escalate"`
	PatchPolicy  PatchPolicy    `json:"patch_policy,omitempty" yaml:"patch_policy,omitempty"`
	Value        string         `json:"value" yaml:"value"`
}

// Totals summarizes one page's results.
type Totals struct {
	Slots            int `json:"slots" yaml:"slots"`
	MatchedHigh      int `json:"matched_high" yaml:"matched_high"`
	MatchedLow       int `json:"matched_low" yaml:"matched_low"`
	Missing          int `json:"missing" yaml:"missing"`
	NeedsRemediation int `json:"needs_remediation" yaml:"needs_remediation"`
}

// Report is the full match report for one page against one template. It
// contains no timestamps or run identifiers so that identical inputs
// marshal to identical bytes.
type Report struct {
	Template  string            `json:"template" yaml:"template"`
	PageIndex int               `json:"page_index" yaml:"page_index"`
	Results   []MatchResult     `json:"results" yaml:"results"`
	Totals    Totals            `json:"totals" yaml:"totals"`
	Values    map[string]string `json:"values" yaml:"values"`
}
