package match

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/pagefit/pagefit/internal/types"
)

func invoiceTemplate(slots ...types.Slot) types.Template {
	return types.Template{Name: "invoice", Zones: headerBodyZones(), Slots: slots}
}

func resultFor(t *testing.T, report *types.Report, slot string) types.MatchResult {
	t.Helper()
	for _, r := range report.Results {
		if r.Slot == slot {
			return r
		}
	}
	t.Fatalf("no result for slot %q", slot)
	return types.MatchResult{}
}

func TestResolvePage_HighMatch(t *testing.T) {
	tmpl := invoiceTemplate(types.Slot{
		Name:        "hero",
		Kind:        types.SlotImage,
		Zone:        "header",
		ExpectedBox: nbox(0, 0, 1, 0.1),
	})
	page := testPage(makeImage("img-1", box(0, 0, 1, 0.1), 0, "hero.png", 800, 100))

	report := testEngine().ResolvePage(page, tmpl)
	res := resultFor(t, report, "hero")

	if res.Status != types.StatusMatchedHigh {
		t.Fatalf("status = %s, want matched_high (score %v)", res.Status, res.Score.Final)
	}
	if res.CandidateID != "img-1" {
		t.Errorf("candidate = %q, want img-1", res.CandidateID)
	}
	if res.NeedsPatch || res.Escalate {
		t.Errorf("needs_patch=%v escalate=%v, want neither", res.NeedsPatch, res.Escalate)
	}
	if res.Tier != types.TierStrictZone {
		t.Errorf("tier = %s, want strict_zone", res.Tier)
	}
	if len(res.Reasons) == 0 || res.Reasons[0] != types.ReasonScoreHigh {
		t.Errorf("reasons = %v, want score_high first", res.Reasons)
	}
	if report.Values["hero"] != "hero.png" {
		t.Errorf("values[hero] = %q, want hero.png", report.Values["hero"])
	}
}

func TestResolvePage_Deterministic(t *testing.T) {
	tmpl := invoiceTemplate(
		types.Slot{Name: "title", Kind: types.SlotText, Zone: "header", ExpectedBox: nbox(0.1, 0.02, 0.9, 0.08), Anchors: []string{"invoice"}},
		types.Slot{Name: "total", Kind: types.SlotText, Zone: "body", ExpectedBox: nbox(0.5, 0.6, 0.9, 0.65), Required: true},
		types.Slot{Name: "logo", Kind: types.SlotImage, Zone: "header", ExpectedBox: nbox(0, 0, 0.2, 0.1)},
	)
	page := testPage(
		makeText("t1", box(0.1, 0.02, 0.9, 0.08), 1, "Invoice #1042"),
		makeText("t2", box(0.5, 0.61, 0.88, 0.66), 3, "Total: $129.00"),
		makeText("t3", box(0.1, 0.3, 0.4, 0.35), 2, "Line item"),
		makeImage("i1", box(0.02, 0.01, 0.18, 0.09), 0, "logo.png", 160, 80),
	)

	engine := testEngine()
	first, err := json.Marshal(engine.ResolvePage(page, tmpl))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(engine.ResolvePage(page, tmpl))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("reports differ across identical invocations:\n%s\n%s", first, second)
	}
}

func TestResolvePage_ReusePenalty(t *testing.T) {
	// Two identical slots compete for the one text element. The winner of
	// the first pass enters the used-set, so the second slot scores it
	// 0.08 lower. The first selection is never penalized.
	slot := types.Slot{Name: "a", Kind: types.SlotText, Zone: "body", ExpectedBox: nbox(0.1, 0.4, 0.9, 0.45)}
	slotB := slot
	slotB.Name = "b"
	tmpl := invoiceTemplate(slot, slotB)
	page := testPage(makeText("t1", box(0.1, 0.4, 0.9, 0.45), 0, "shared"))

	report := testEngine().ResolvePage(page, tmpl)
	a := resultFor(t, report, "a")
	b := resultFor(t, report, "b")

	if a.Score.Adjusted != a.Score.Final {
		t.Errorf("first selection adjusted = %v, want unpenalized %v", a.Score.Adjusted, a.Score.Final)
	}
	want := round3(a.Score.Final - 0.08)
	if b.Score.Adjusted != want {
		t.Errorf("second selection adjusted = %v, want %v", b.Score.Adjusted, want)
	}
	found := false
	for _, r := range b.Reasons {
		if r == types.ReasonCandidateReused {
			found = true
		}
	}
	if !found {
		t.Errorf("reasons = %v, want candidate_reused present", b.Reasons)
	}
}

func TestResolvePage_RunnersUp(t *testing.T) {
	tmpl := invoiceTemplate(types.Slot{
		Name:        "title",
		Kind:        types.SlotText,
		Zone:        "header",
		ExpectedBox: nbox(0.1, 0.02, 0.9, 0.08),
	})
	page := testPage(
		makeText("exact", box(0.1, 0.02, 0.9, 0.08), 0, "Invoice"),
		makeText("close", box(0.1, 0.1, 0.9, 0.16), 1, "Billing address"),
	)

	res := resultFor(t, testEngine().ResolvePage(page, tmpl), "title")
	if res.CandidateID != "exact" {
		t.Fatalf("candidate = %q, want exact", res.CandidateID)
	}
	if len(res.RunnersUp) != 1 || res.RunnersUp[0] != "close" {
		t.Errorf("runners_up = %v, want [close]", res.RunnersUp)
	}
}

func TestResolvePage_RequiredSlotsFirst(t *testing.T) {
	// The optional slot is declared first but processed second, so it pays
	// the reuse penalty while the required slot takes the element clean.
	opt := types.Slot{Name: "opt", Kind: types.SlotText, Zone: "body", ExpectedBox: nbox(0.1, 0.4, 0.9, 0.45)}
	req := opt
	req.Name = "req"
	req.Required = true
	tmpl := invoiceTemplate(opt, req)
	page := testPage(makeText("t1", box(0.1, 0.4, 0.9, 0.45), 0, "shared"))

	report := testEngine().ResolvePage(page, tmpl)
	if report.Results[0].Slot != "req" {
		t.Fatalf("first processed slot = %q, want req", report.Results[0].Slot)
	}
	if got := resultFor(t, report, "req").Score.Adjusted; got != resultFor(t, report, "req").Score.Final {
		t.Errorf("required slot adjusted = %v, want unpenalized", got)
	}
	optRes := resultFor(t, report, "opt")
	if optRes.Score.Adjusted >= optRes.Score.Final {
		t.Errorf("optional slot adjusted = %v, want below final %v", optRes.Score.Adjusted, optRes.Score.Final)
	}
}

func TestResolvePage_RequiredMissing(t *testing.T) {
	tmpl := invoiceTemplate(types.Slot{
		Name:        "logo",
		Kind:        types.SlotImage,
		Zone:        "header",
		ExpectedBox: nbox(0, 0, 0.2, 0.1),
		Required:    true,
		Fallback:    "placeholder.png",
	})
	// Text only: no image candidate anywhere on the page.
	page := testPage(makeText("t1", box(0.1, 0.4, 0.9, 0.45), 0, "body copy"))

	res := resultFor(t, testEngine().ResolvePage(page, tmpl), "logo")
	if res.Status != types.StatusMissing {
		t.Fatalf("status = %s, want missing", res.Status)
	}
	if !res.NeedsPatch {
		t.Error("needs_patch = false, want true for a required slot")
	}
	if !res.Escalate {
		t.Error("escalate = false, want true for a required missing slot")
	}
	if res.Value != "placeholder.png" {
		t.Errorf("value = %q, want fallback", res.Value)
	}
	if len(res.Reasons) != 1 || res.Reasons[0] != types.ReasonNoCandidates {
		t.Errorf("reasons = %v, want [no_candidates]", res.Reasons)
	}
}

func TestResolvePage_OptionalMissingIsSilent(t *testing.T) {
	tmpl := invoiceTemplate(types.Slot{
		Name:        "badge",
		Kind:        types.SlotImage,
		Zone:        "footer",
		ExpectedBox: nbox(0.8, 0.9, 0.95, 0.98),
	})
	page := testPage(makeText("t1", box(0.1, 0.4, 0.9, 0.45), 0, "body copy"))

	res := resultFor(t, testEngine().ResolvePage(page, tmpl), "badge")
	if res.Status != types.StatusMissing {
		t.Fatalf("status = %s, want missing", res.Status)
	}
	if res.NeedsPatch || res.Escalate {
		t.Errorf("needs_patch=%v escalate=%v, want an optional empty slot to resolve silently", res.NeedsPatch, res.Escalate)
	}
	if res.Value != "" {
		t.Errorf("value = %q, want empty without a fallback", res.Value)
	}
}

func TestResolvePage_LowMatch(t *testing.T) {
	// Disjoint boxes, centroid offset 0.15: IoU 0, distance 0.55, all
	// other factors 1.0 → final 0.514, between the low and high thresholds.
	tmpl := invoiceTemplate(types.Slot{
		Name:        "total",
		Kind:        types.SlotText,
		Zone:        "body",
		ExpectedBox: nbox(0.1, 0.55, 0.9, 0.6),
	})
	page := testPage(makeText("t1", box(0.1, 0.4, 0.9, 0.45), 0, "Total: $10"))

	res := resultFor(t, testEngine().ResolvePage(page, tmpl), "total")
	if res.Status != types.StatusMatchedLow {
		t.Fatalf("status = %s (score %v), want matched_low", res.Status, res.Score.Adjusted)
	}
	if math.Abs(res.Score.Final-0.514) > 1e-9 {
		t.Errorf("final = %v, want 0.514", res.Score.Final)
	}
	if !res.NeedsPatch {
		t.Error("needs_patch = false, want true for matched_low")
	}
	if res.Escalate {
		t.Error("escalate = true, want false above the escalation floor")
	}
}

func TestResolvePage_EscalatesVeryLowScore(t *testing.T) {
	// Zero IoU and distance, a weight mismatch, and no anchor overlap push
	// the score to 0.244, under the 0.30 escalation floor, for an optional
	// slot that would otherwise patch locally.
	tmpl := invoiceTemplate(types.Slot{
		Name:        "ref",
		Kind:        types.SlotText,
		Zone:        "body",
		ExpectedBox: nbox(0.1, 0.25, 0.9, 0.3),
		Anchors:     []string{"invoice number"},
		Style:       &types.StyleHints{FontWeight: "bold"},
	})
	page := testPage(makeStyledText("t1", box(0.1, 0.7, 0.9, 0.75), 0, "random words here",
		&types.TextStyle{FontWeight: "normal"}))

	res := resultFor(t, testEngine().ResolvePage(page, tmpl), "ref")
	if res.Status != types.StatusMissing {
		t.Fatalf("status = %s (score %v), want missing", res.Status, res.Score.Adjusted)
	}
	if res.NeedsPatch {
		t.Error("needs_patch = true, want false for an optional slot")
	}
	if !res.Escalate {
		t.Errorf("escalate = false, want true for adjusted score %v", res.Score.Adjusted)
	}
}

func TestResolvePage_PatchPolicyForcesEscalation(t *testing.T) {
	for _, policy := range []types.PatchPolicy{types.PatchFragment, types.PatchFallbackAbsolute} {
		t.Run(string(policy), func(t *testing.T) {
			tmpl := invoiceTemplate(types.Slot{
				Name:        "hero",
				Kind:        types.SlotImage,
				Zone:        "header",
				ExpectedBox: nbox(0, 0, 1, 0.1),
				PatchPolicy: policy,
			})
			page := testPage(makeImage("img-1", box(0, 0, 1, 0.1), 0, "hero.png", 800, 100))

			res := resultFor(t, testEngine().ResolvePage(page, tmpl), "hero")
			if res.Status != types.StatusMatchedHigh {
				t.Fatalf("status = %s, want matched_high", res.Status)
			}
			if !res.Escalate {
				t.Error("escalate = false, want policy to force escalation even on a high match")
			}
		})
	}
}

func TestResolvePage_Totals(t *testing.T) {
	tmpl := invoiceTemplate(
		// Perfect image match in the header.
		types.Slot{Name: "hero", Kind: types.SlotImage, Zone: "header", ExpectedBox: nbox(0, 0, 1, 0.1)},
		// Offset text: matched_low (see TestResolvePage_LowMatch).
		types.Slot{Name: "total", Kind: types.SlotText, Zone: "body", ExpectedBox: nbox(0.1, 0.55, 0.9, 0.6)},
		// Processed last; the only text element is already taken, so the
		// reuse-penalized score lands under the escalation floor.
		types.Slot{Name: "cta", Kind: types.SlotLink, Zone: "footer", ExpectedBox: nbox(0.3, 0.9, 0.7, 0.95)},
	)
	page := testPage(
		makeImage("img-1", box(0, 0, 1, 0.1), 0, "hero.png", 800, 100),
		makeText("t1", box(0.1, 0.4, 0.9, 0.45), 1, "Total: $10"),
	)

	report := testEngine().ResolvePage(page, tmpl)
	tot := report.Totals
	if tot.Slots != 3 || tot.MatchedHigh != 1 || tot.MatchedLow != 1 || tot.Missing != 1 {
		t.Errorf("totals = %+v, want slots=3 high=1 low=1 missing=1", tot)
	}
	// total needs a patch (matched_low); cta escalates (adjusted 0.28).
	if tot.NeedsRemediation != 2 {
		t.Errorf("needs_remediation = %d, want 2", tot.NeedsRemediation)
	}
}

func TestResolvePage_EmptyPage(t *testing.T) {
	tmpl := invoiceTemplate(
		types.Slot{Name: "a", Kind: types.SlotText, Zone: "body", ExpectedBox: nbox(0.1, 0.4, 0.9, 0.45)},
		types.Slot{Name: "b", Kind: types.SlotImage, Zone: "header", ExpectedBox: nbox(0, 0, 0.2, 0.1)},
	)
	report := testEngine().ResolvePage(testPage(), tmpl)

	if report.Totals.Slots != 2 || report.Totals.Missing != 2 {
		t.Errorf("totals = %+v, want two missing slots", report.Totals)
	}
	for _, res := range report.Results {
		if res.Status != types.StatusMissing {
			t.Errorf("slot %s status = %s, want missing", res.Slot, res.Status)
		}
	}
	if len(report.Values) != 2 {
		t.Errorf("values = %v, want an entry per slot", report.Values)
	}
}

func TestBuildReasons_OrderAndDedup(t *testing.T) {
	winner := scoredCandidate{
		detail: scoreDetail{
			breakdown: types.ScoreBreakdown{
				IoU:   0.2,
				Style: 0.6,
				Hint:  0.7,
			},
			centroidDistance: 0.2,
			hintViolations:   []types.ReasonCode{types.ReasonHintMinX, types.ReasonHintMinX},
		},
		reused: true,
	}
	got := buildReasons(types.StatusMatchedLow, winner, types.TierRelaxedZone)
	want := []types.ReasonCode{
		types.ReasonScoreLow,
		types.ReasonLowIoU,
		types.ReasonStyleMismatch,
		types.ReasonLayoutShift,
		types.ReasonHintMismatch,
		types.ReasonHintMinX,
		types.ReasonCandidateReused,
		types.ReasonCandidateRelaxedZone,
	}
	if len(got) != len(want) {
		t.Fatalf("reasons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reasons[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}
