package predict

import (
	"testing"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// userAtProgress builds a tier-10 user whose rating sits at the given
// percentage between the tier 10 (650) and tier 11 (800) thresholds.
func userAtProgress(pct float64) *solvedac.User {
	return &solvedac.User{
		Handle:      "hyeon",
		Tier:        10,
		Rating:      650 + int(pct/100*150),
		SolvedCount: 300,
	}
}

func TestPredict_HighConfidence(t *testing.T) {
	p := Predict(userAtProgress(85), 1, true)

	if p.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want High", p.Confidence)
	}
	if p.EstimatedTime != "1-2 weeks" {
		t.Errorf("estimatedTime = %q, want 1-2 weeks", p.EstimatedTime)
	}
	if len(p.Blockers) != 0 {
		t.Errorf("blockers = %v, want empty", p.Blockers)
	}
}

func TestPredict_MediumConfidenceListsBlockers(t *testing.T) {
	p := Predict(userAtProgress(60), 2, false)

	if p.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want Medium", p.Confidence)
	}
	if p.EstimatedTime != "1-2 months" {
		t.Errorf("estimatedTime = %q, want 1-2 months", p.EstimatedTime)
	}
	if len(p.Blockers) != 2 {
		t.Errorf("blockers = %v, want weakness and mastery blockers", p.Blockers)
	}
}

func TestPredict_LowConfidence(t *testing.T) {
	p := Predict(userAtProgress(40), 5, false)

	if p.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want Low", p.Confidence)
	}
	if p.EstimatedTime != "2-3 months" {
		t.Errorf("estimatedTime = %q, want 2-3 months", p.EstimatedTime)
	}
	found := false
	for _, b := range p.Blockers {
		if b == "needs foundational improvement" {
			found = true
		}
	}
	if !found {
		t.Errorf("blockers = %v, want foundational-improvement blocker", p.Blockers)
	}
}

func TestPredict_NextTierName(t *testing.T) {
	p := Predict(userAtProgress(85), 1, true)
	if p.NextTier != "Gold V" {
		t.Errorf("nextTier = %q, want Gold V", p.NextTier)
	}
}

func TestRecommendations_ThresholdDriven(t *testing.T) {
	u := &solvedac.User{Tier: 10, SolvedCount: 50}
	recs := recommendations(u, 4, false)

	// weakCount > 3, not ready, and solvedCount < 100 all trigger,
	// plus the standing daily-habit advice.
	if len(recs) != 4 {
		t.Errorf("got %d recommendations, want 4: %v", len(recs), recs)
	}
}
