package match

import (
	"log/slog"
	"math"
	"sort"

	"github.com/pagefit/pagefit/internal/config"
	"github.com/pagefit/pagefit/internal/types"
)

// Engine resolves slot templates against extracted pages. It is stateless
// across invocations and safe for concurrent use; all per-pass state lives
// in a resolveContext created inside ResolvePage.
type Engine struct {
	scoring     config.Scoring
	defaultZone string
	logger      *slog.Logger
}

// EngineConfig configures a new Engine.
type EngineConfig struct {
	// Scoring supplies weights and thresholds. Weights must already be
	// normalized (the config loader does this).
	Scoring config.Scoring

	// DefaultZone is assigned to elements matching no zone band.
	DefaultZone string

	Logger *slog.Logger
}

// NewEngine creates an Engine, falling back to defaults for unset fields.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	zone := cfg.DefaultZone
	if zone == "" {
		zone = DefaultConfig().Engine.DefaultZone
	}
	scoring := cfg.Scoring
	if scoring == (config.Scoring{}) {
		scoring = DefaultConfig().Scoring
	}
	scoring.Weights = scoring.Weights.Normalized()
	return &Engine{scoring: scoring, defaultZone: zone, logger: logger}
}

// DefaultConfig re-exports the loader's defaults for callers constructing
// an Engine without a config file.
func DefaultConfig() *config.Config { return config.DefaultConfig() }

// resolveContext threads the per-pass mutable state through sequential
// slot processing: the set of candidate IDs already assigned, which drives
// the reuse penalty. It is created per pass and discarded, never shared.
type resolveContext struct {
	used map[string]bool
}

// scoredCandidate pairs a candidate with its scoring outcome for one slot.
type scoredCandidate struct {
	cand     Candidate
	detail   scoreDetail
	adjusted float64
	reused   bool
}

// ResolvePage resolves every slot of the template against one page and
// returns the match report. The computation is pure and deterministic:
// no I/O, no randomness, no state outside the pass.
func (e *Engine) ResolvePage(page types.Page, tmpl types.Template) *types.Report {
	zones := NewZoneClassifier(tmpl.Zones, e.defaultZone)
	pool := prepare(page, zones)

	// Required slots first; ties keep declaration order.
	order := make([]int, len(tmpl.Slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return tmpl.Slots[order[a]].Required && !tmpl.Slots[order[b]].Required
	})

	rc := &resolveContext{used: make(map[string]bool)}
	report := &types.Report{
		Template:  tmpl.Name,
		PageIndex: page.Index,
		Results:   make([]types.MatchResult, 0, len(tmpl.Slots)),
		Values:    make(map[string]string, len(tmpl.Slots)),
	}

	for _, idx := range order {
		slot := tmpl.Slots[idx]
		res := e.resolveSlot(slot, pool, rc)
		report.Values[slot.Name] = res.Value
		report.Results = append(report.Results, res)
	}

	report.Totals = tally(report.Results)
	e.logger.Debug("page resolved",
		"template", tmpl.Name,
		"page", page.Index,
		"slots", report.Totals.Slots,
		"matched_high", report.Totals.MatchedHigh,
		"matched_low", report.Totals.MatchedLow,
		"missing", report.Totals.Missing)
	return report
}

// resolveSlot runs the candidate cascade and scoring for one slot and
// classifies the outcome.
func (e *Engine) resolveSlot(slot types.Slot, pool []Candidate, rc *resolveContext) types.MatchResult {
	cands, tier := candidates(slot, pool, e.scoring.Thresholds.ZoneRelaxDelta)
	if len(cands) == 0 {
		return e.emptyResult(slot)
	}

	scored := make([]scoredCandidate, 0, len(cands))
	for _, c := range cands {
		sc := scoredCandidate{cand: c, detail: score(slot, c, e.scoring)}
		sc.adjusted = sc.detail.breakdown.Final
		if rc.used[c.Element.ID()] {
			sc.reused = true
			sc.adjusted = round3(math.Max(0, sc.adjusted-e.scoring.Thresholds.ReusePenalty))
		}
		sc.detail.breakdown.Adjusted = sc.adjusted
		scored = append(scored, sc)
	}

	// Highest adjusted score wins; ties go to the earlier candidate in
	// canonical pool order, keeping selection deterministic.
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].adjusted > scored[best].adjusted {
			best = i
		}
	}
	winner := scored[best]
	rc.used[winner.cand.Element.ID()] = true

	runners := make([]scoredCandidate, 0, len(scored)-1)
	for i, sc := range scored {
		if i != best {
			runners = append(runners, sc)
		}
	}
	sort.SliceStable(runners, func(a, b int) bool {
		return runners[a].adjusted > runners[b].adjusted
	})
	runnerIDs := make([]string, 0, 3)
	for i := 0; i < len(runners) && i < 3; i++ {
		runnerIDs = append(runnerIDs, runners[i].cand.Element.ID())
	}

	status, needsPatch := e.classify(winner.adjusted, slot)
	box := winner.cand.Norm
	res := types.MatchResult{
		Slot:         slot.Name,
		Status:       status,
		CandidateID:  winner.cand.Element.ID(),
		Score:        winner.detail.breakdown,
		RunnersUp:    runnerIDs,
		CandidateBox: &box,
		Tier:         tier,
		NeedsPatch:   needsPatch,
		PatchPolicy:  slot.PatchPolicy,
	}
	if status == types.StatusMissing {
		res.Value = slot.Fallback
	} else {
		res.Value = candidateValue(winner.cand)
	}
	res.Escalate = e.escalate(slot, status, winner.adjusted, true)
	res.Reasons = buildReasons(status, winner, tier)
	return res
}

// emptyResult handles a slot whose cascade found nothing on the page.
func (e *Engine) emptyResult(slot types.Slot) types.MatchResult {
	return types.MatchResult{
		Slot:        slot.Name,
		Status:      types.StatusMissing,
		Reasons:     []types.ReasonCode{types.ReasonNoCandidates},
		NeedsPatch:  slot.Required,
		PatchPolicy: slot.PatchPolicy,
		Value:       slot.Fallback,
		Escalate:    e.escalate(slot, types.StatusMissing, 0, false),
	}
}

// classify maps an adjusted score to a status and the needs-patch flag.
func (e *Engine) classify(adjusted float64, slot types.Slot) (types.MatchStatus, bool) {
	t := e.scoring.Thresholds
	switch {
	case adjusted >= t.HighMatch:
		return types.StatusMatchedHigh, false
	case adjusted >= t.LowMatch:
		return types.StatusMatchedLow, true
	default:
		return types.StatusMissing, slot.Required
	}
}

// escalate decides whether the slot must go to the external patch agent
// rather than a direct local patch. The score rule only applies when a
// candidate was actually scored; optional slots with no candidates resolve
// silently to their fallback.
func (e *Engine) escalate(slot types.Slot, status types.MatchStatus, adjusted float64, hasCandidate bool) bool {
	if slot.PatchPolicy == types.PatchFragment || slot.PatchPolicy == types.PatchFallbackAbsolute {
		return true
	}
	if hasCandidate && adjusted < e.scoring.Thresholds.EscalateBelow {
		return true
	}
	return status == types.StatusMissing && slot.Required
}

// candidateValue extracts the resolved value: literal text for text and
// link slots, the source reference for images.
func candidateValue(c Candidate) string {
	switch el := c.Element.(type) {
	case *types.TextElement:
		return el.Text
	case *types.ImageElement:
		return el.Src
	}
	return ""
}

func tally(results []types.MatchResult) types.Totals {
	t := types.Totals{Slots: len(results)}
	for _, r := range results {
		switch r.Status {
		case types.StatusMatchedHigh:
			t.MatchedHigh++
		case types.StatusMatchedLow:
			t.MatchedLow++
		case types.StatusMissing:
			t.Missing++
		}
		if r.NeedsPatch || r.Escalate {
			t.NeedsRemediation++
		}
	}
	return t
}
