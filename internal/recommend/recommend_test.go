package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/bojcoach/internal/difficulty"
	"github.com/abhisek/bojcoach/internal/pattern"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/weakness"
	"github.com/abhisek/bojcoach/internal/weights"
)

func baseInput() Input {
	return Input{
		User: &solvedac.User{Handle: "solver", Tier: 10, Rating: 720, SolvedCount: 400},
		WeakTags: []weakness.WeakTag{
			{Tag: "dp", Solved: 2, Tried: 10, Accuracy: 0.2, SuccessRate: 20.0, Severity: weakness.SeverityCritical},
			{Tag: "graphs", Solved: 4, Tried: 9, Accuracy: 0.44, SuccessRate: 44.4, Severity: weakness.SeverityMedium},
		},
		Difficulty: difficulty.Performance{CurrentLevelMastery: 85, ReadyForNextLevel: true},
		Weights:    weights.Default(),
	}
}

func TestImmediatePrioritiesAndOrder(t *testing.T) {
	in := baseInput()
	in.Pattern = &pattern.Pattern{
		Preferences: map[string]pattern.Preference{
			"greedy": {Score: 0.8, UpdatedAt: time.Now()},
		},
	}
	s := Generate(in)

	if len(s.Immediate) != 3 {
		t.Fatalf("immediate count = %d, want 3", len(s.Immediate))
	}
	wantTypes := []string{"weakness_focus", "tier_challenge", "preference_based"}
	for i, want := range wantTypes {
		if s.Immediate[i].Type != want {
			t.Errorf("immediate[%d].Type = %q, want %q", i, s.Immediate[i].Type, want)
		}
	}
	if s.Immediate[0].Priority != PriorityHigh {
		t.Errorf("weakness focus priority = %q, want high", s.Immediate[0].Priority)
	}
	if !strings.Contains(s.Immediate[0].Action, "dp") {
		t.Errorf("weakness action %q should name the worst tag", s.Immediate[0].Action)
	}
	if s.Immediate[1].Difficulty != "Gold V" {
		t.Errorf("tier challenge difficulty = %q, want Gold V", s.Immediate[1].Difficulty)
	}
}

func TestImmediateRespectsWeightGates(t *testing.T) {
	in := baseInput()
	in.Weights = weights.Weights{Weakness: 0.2, Progress: 0.1, Preference: 0.1, Momentum: 0.1}
	s := Generate(in)
	if len(s.Immediate) != 0 {
		t.Fatalf("all gates closed, immediate = %+v", s.Immediate)
	}
}

func TestShortTermWeaknessGoals(t *testing.T) {
	s := Generate(baseInput())

	var goals []ShortTerm
	for _, r := range s.ShortTerm {
		if r.Type == "weekly_weakness" {
			goals = append(goals, r)
		}
	}
	if len(goals) != 2 {
		t.Fatalf("weekly weakness goals = %d, want 2", len(goals))
	}
	// ceil(10*0.3)+3 = 6 for the dp tag.
	if goals[0].TargetProblems != 6 {
		t.Errorf("dp target problems = %d, want 6", goals[0].TargetProblems)
	}
	if goals[0].TargetAccuracy != 30.0 {
		t.Errorf("dp target accuracy = %v, want 30", goals[0].TargetAccuracy)
	}
}

func TestShortTermAccuracyCap(t *testing.T) {
	in := baseInput()
	in.WeakTags = []weakness.WeakTag{
		{Tag: "string", Solved: 5, Tried: 9, Accuracy: 0.55, SuccessRate: 85.0},
	}
	s := Generate(in)
	if s.ShortTerm[0].TargetAccuracy != 90.0 {
		t.Errorf("target accuracy = %v, want capped at 90", s.ShortTerm[0].TargetAccuracy)
	}
}

func TestWeeklyVolumeBreakdown(t *testing.T) {
	s := Generate(baseInput())

	last := s.ShortTerm[len(s.ShortTerm)-1]
	if last.Type != "weekly_progress" {
		t.Fatalf("last short-term type = %q", last.Type)
	}
	// 400 solved / 50 = 8 problems, above the floor of 7.
	if !strings.Contains(last.Goal, "8 problems") {
		t.Errorf("goal = %q, want 8 problems", last.Goal)
	}
	b := last.Breakdown
	if b == nil {
		t.Fatal("weekly progress goal has no breakdown")
	}
	// ceil(8*0.4)=4, ceil(8*0.3)=3, floor(8*0.2)=1, floor(8*0.1)=0.
	if b.Weakness != 4 || b.Progress != 3 || b.Review != 1 || b.Challenge != 0 {
		t.Errorf("breakdown = %+v, want {4 3 1 0}", *b)
	}
}

func TestWeeklyTargetFloor(t *testing.T) {
	in := baseInput()
	in.User.SolvedCount = 40
	s := Generate(in)
	last := s.ShortTerm[len(s.ShortTerm)-1]
	if !strings.Contains(last.Goal, "7 problems") {
		t.Errorf("goal = %q, want the floor of 7 problems", last.Goal)
	}
}

func TestMonthlyTierGoal(t *testing.T) {
	in := baseInput()
	in.Pattern = &pattern.Pattern{Performance: pattern.Performance{Momentum: 15}}
	s := Generate(in)

	goal := s.LongTerm[0]
	if goal.Type != "monthly_tier_goal" {
		t.Fatalf("first long-term type = %q", goal.Type)
	}
	if goal.EstimatedRatingGain != 35 {
		t.Errorf("rating gain = %d, want 20+15", goal.EstimatedRatingGain)
	}
	if goal.RequiredEffort != 18 {
		t.Errorf("required effort = %d, want ceil(35*0.5)", goal.RequiredEffort)
	}
	if goal.CurrentTier != "Silver I" {
		t.Errorf("current tier = %q, want Silver I", goal.CurrentTier)
	}
	// Tier 10 sits in the 30-point band, so 35 rating covers one step.
	if goal.TargetTier != "Gold V" {
		t.Errorf("target tier = %q, want Gold V", goal.TargetTier)
	}
}

func TestMonthlyGainFloor(t *testing.T) {
	in := baseInput()
	in.Pattern = &pattern.Pattern{Performance: pattern.Performance{Momentum: -30}}
	s := Generate(in)
	if s.LongTerm[0].EstimatedRatingGain != 5 {
		t.Errorf("rating gain = %d, want floor of 5", s.LongTerm[0].EstimatedRatingGain)
	}
	if s.LongTerm[0].TargetTier != s.LongTerm[0].CurrentTier {
		t.Errorf("5 rating should not cross a 30-point gap")
	}
}

func TestSkillDevelopmentPlans(t *testing.T) {
	in := baseInput()
	in.Pattern = &pattern.Pattern{
		Preferences: map[string]pattern.Preference{
			"implementation": {Score: 0.9},
			"math":           {Score: 0.8},
			"graphs":         {Score: 0.2},
		},
	}
	s := Generate(in)

	var plans []LongTerm
	for _, r := range s.LongTerm {
		if r.Type == "skill_development" {
			plans = append(plans, r)
		}
	}
	if len(plans) != maxSkillPlans {
		t.Fatalf("skill plans = %d, want %d", len(plans), maxSkillPlans)
	}
	if plans[0].Area != "graphs" {
		t.Errorf("first plan area = %q, want graphs (first weak core skill)", plans[0].Area)
	}
	if plans[0].CurrentLevel != 0.2 || plans[0].TargetLevel != skillTargetLevel {
		t.Errorf("plan levels = %v -> %v", plans[0].CurrentLevel, plans[0].TargetLevel)
	}
	if len(plans[0].LearningPath) != 3 {
		t.Errorf("learning path steps = %d, want 3", len(plans[0].LearningPath))
	}
}

func TestReasoningMentionsTrend(t *testing.T) {
	in := baseInput()
	in.Weights.Weakness = 0.55
	in.Pattern = &pattern.Pattern{Performance: pattern.Performance{Trend: pattern.TrendDeclining}}
	s := Generate(in)

	joined := strings.Join(s.Reasoning, " ")
	if !strings.Contains(joined, "shoring them up") {
		t.Errorf("reasoning %q should mention weakness focus", joined)
	}
	if !strings.Contains(joined, "fundamentals") {
		t.Errorf("reasoning %q should mention the declining trend", joined)
	}
}

func TestAdaptiveFlag(t *testing.T) {
	if Generate(baseInput()).Adaptive {
		t.Error("no pattern should mean non-adaptive output")
	}
	in := baseInput()
	in.Pattern = &pattern.Pattern{}
	if Generate(in).Adaptive {
		t.Error("pattern without history should mean non-adaptive output")
	}
	in.Pattern = &pattern.Pattern{History: []pattern.ProgressEntry{{RatingChange: 10}}}
	if !Generate(in).Adaptive {
		t.Error("pattern with history should mean adaptive output")
	}
}

func TestEnrichFrustratedPrependsBoost(t *testing.T) {
	s := Generate(baseInput())
	Enrich(s, weights.Context{Mood: "frustrated"})
	if s.Immediate[0].Type != "confidence_boost" {
		t.Fatalf("first immediate = %q, want confidence_boost", s.Immediate[0].Type)
	}
	if s.Immediate[0].Priority != PriorityHigh {
		t.Errorf("boost priority = %q", s.Immediate[0].Priority)
	}
}

func TestEnrichMotivatedPromotesChallenge(t *testing.T) {
	s := Generate(baseInput())
	Enrich(s, weights.Context{Mood: "motivated"})
	for _, r := range s.Immediate {
		if r.Type == "tier_challenge" && r.Priority != PriorityHigh {
			t.Errorf("tier challenge priority = %q, want high", r.Priority)
		}
	}
}

func TestEnrichShortOnTimeFiltersLongActions(t *testing.T) {
	s := Generate(baseInput())
	Enrich(s, weights.Context{TimeAvailableMinutes: 25})
	for _, r := range s.Immediate {
		if min := minutesLowerBound(r.EstimatedTime); min > 25 {
			t.Errorf("kept %q with %d-minute floor", r.Type, min)
		}
	}
}

func TestMinutesLowerBound(t *testing.T) {
	cases := map[string]int{
		"30-45 minutes": 30,
		"15-20 minutes": 15,
		"about an hour": 0,
		"":              0,
	}
	for in, want := range cases {
		if got := minutesLowerBound(in); got != want {
			t.Errorf("minutesLowerBound(%q) = %d, want %d", in, got, want)
		}
	}
}
