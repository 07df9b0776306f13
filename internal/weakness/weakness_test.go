package weakness

import (
	"reflect"
	"testing"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

func TestIdentify_SingleCriticalTag(t *testing.T) {
	in := []solvedac.TagStat{{Tag: "dp", Solved: 2, Tried: 10}}
	out := Identify(in)

	if len(out) != 1 {
		t.Fatalf("got %d weak tags, want 1", len(out))
	}
	w := out[0]
	if w.Tag != "dp" {
		t.Errorf("tag = %q, want dp", w.Tag)
	}
	if w.Severity != SeverityCritical {
		t.Errorf("severity = %q, want Critical (accuracy 0.2)", w.Severity)
	}
	if w.EstimatedTime != "3-4 weeks" {
		t.Errorf("estimatedTime = %q, want 3-4 weeks", w.EstimatedTime)
	}
	// (1 - 0.2) * 10 = 8 → Medium potential.
	if w.ImprovementPotential != PotentialMedium {
		t.Errorf("potential = %q, want Medium", w.ImprovementPotential)
	}
}

func TestIdentify_OrderedWorstFirst(t *testing.T) {
	in := []solvedac.TagStat{
		{Tag: "graph", Solved: 5, Tried: 10},  // 0.5
		{Tag: "dp", Solved: 1, Tried: 10},     // 0.1
		{Tag: "string", Solved: 4, Tried: 10}, // 0.4
	}
	out := Identify(in)

	want := []string{"dp", "string", "graph"}
	for i, w := range out {
		if w.Tag != want[i] {
			t.Errorf("position %d = %q, want %q", i, w.Tag, want[i])
		}
	}
}

func TestIdentify_FiltersAndCaps(t *testing.T) {
	in := []solvedac.TagStat{
		{Tag: "a", Solved: 1, Tried: 10},
		{Tag: "b", Solved: 2, Tried: 10},
		{Tag: "c", Solved: 3, Tried: 10},
		{Tag: "d", Solved: 4, Tried: 10},
		{Tag: "e", Solved: 5, Tried: 10},
		{Tag: "f", Solved: 5, Tried: 11},
		{Tag: "too-few", Solved: 0, Tried: 2},   // tried < 3
		{Tag: "accurate", Solved: 9, Tried: 10}, // accuracy >= 0.6
	}
	out := Identify(in)

	if len(out) != 5 {
		t.Fatalf("got %d weak tags, want cap of 5", len(out))
	}
	for _, w := range out {
		if w.Tag == "too-few" || w.Tag == "accurate" {
			t.Errorf("tag %q should have been filtered", w.Tag)
		}
	}
}

func TestIdentify_Idempotent(t *testing.T) {
	in := []solvedac.TagStat{
		{Tag: "dp", Solved: 2, Tried: 10},
		{Tag: "graph", Solved: 3, Tried: 9},
	}
	first := Identify(in)
	second := Identify(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identify is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestIdentify_EmptyInput(t *testing.T) {
	if out := Identify(nil); len(out) != 0 {
		t.Errorf("got %d weak tags for nil input, want 0", len(out))
	}
}

func TestClassifySeverity_Thresholds(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     Severity
	}{
		{0.0, SeverityCritical},
		{0.29, SeverityCritical},
		{0.3, SeverityHigh},
		{0.49, SeverityHigh},
		{0.5, SeverityMedium},
		{0.59, SeverityMedium},
		{0.6, SeverityLow},
	}
	for _, tt := range tests {
		if got := classifySeverity(tt.accuracy); got != tt.want {
			t.Errorf("classifySeverity(%f) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}
