// Package recommend turns analysis results into a prioritized set of
// immediate, short-term and long-term study recommendations.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/bojcoach/internal/difficulty"
	"github.com/abhisek/bojcoach/internal/pattern"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/tier"
	"github.com/abhisek/bojcoach/internal/weakness"
	"github.com/abhisek/bojcoach/internal/weights"
)

const (
	maxWeeklyGoals      = 2
	maxSkillPlans       = 3
	accuracyGainPoints  = 10
	accuracyCapPercent  = 90
	skillScoreThreshold = 0.5
	skillTargetLevel    = 0.7
)

// coreSkills are the areas every solver is expected to cover; a low
// preference score in one of them produces a skill-development plan.
var coreSkills = []string{"implementation", "math", "graphs", "dp", "greedy", "string", "sorting"}

// tierGaps holds the approximate rating distance to the next tier,
// indexed by tier/5 (one entry per tier color band).
var tierGaps = [...]float64{30, 30, 30, 30, 30, 50, 100, 100, 100, 150}

// Input carries everything the generator consumes. Pattern may be nil
// when the user has no tracked history yet.
type Input struct {
	User       *solvedac.User
	WeakTags   []weakness.WeakTag
	Difficulty difficulty.Performance
	Pattern    *pattern.Pattern
	Weights    weights.Weights
}

// Generate builds a full recommendation set from the analysis inputs.
// The output is deterministic for a given input. The set counts as
// adaptive once the pattern carries at least one tracked delta, since
// only then can trend and momentum have shaped the weights.
func Generate(in Input) *Set {
	s := &Set{
		Immediate: immediate(in),
		ShortTerm: shortTerm(in),
		LongTerm:  longTerm(in),
		Reasoning: reasoning(in),
		Adaptive:  in.Pattern != nil && len(in.Pattern.History) > 0,
	}
	return s
}

func immediate(in Input) []Immediate {
	var recs []Immediate
	cur := tier.Name(in.User.Tier)

	if len(in.WeakTags) > 0 && in.Weights.Weakness > 0.3 {
		w := in.WeakTags[0]
		recs = append(recs, Immediate{
			Type:          "weakness_focus",
			Priority:      PriorityHigh,
			Action:        fmt.Sprintf("Solve one %s problem", w.Tag),
			Reason:        fmt.Sprintf("%.1f%% accuracy makes this your weakest area", w.SuccessRate),
			EstimatedTime: "30-45 minutes",
			Difficulty:    cur,
		})
	}

	if in.Difficulty.ReadyForNextLevel && in.Weights.Progress > 0.25 {
		next := tier.Name(in.User.Tier + 1)
		recs = append(recs, Immediate{
			Type:          "tier_challenge",
			Priority:      PriorityMedium,
			Action:        fmt.Sprintf("Attempt a %s problem", next),
			Reason:        "your current tier mastery says you are ready for promotion",
			EstimatedTime: "45-60 minutes",
			Difficulty:    next,
		})
	}

	if tag, ok := favoriteTag(in.Pattern); ok && in.Weights.Preference > 0.15 {
		recs = append(recs, Immediate{
			Type:          "preference_based",
			Priority:      PriorityLow,
			Action:        fmt.Sprintf("Warm up with a %s problem", tag),
			Reason:        "starting from a favorite area builds momentum",
			EstimatedTime: "20-30 minutes",
			Difficulty:    cur,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityWeight(recs[i].Priority) > priorityWeight(recs[j].Priority)
	})
	return recs
}

// favoriteTag returns the highest-scoring preference, breaking score
// ties by tag name so the output is stable.
func favoriteTag(p *pattern.Pattern) (string, bool) {
	if p == nil || len(p.Preferences) == 0 {
		return "", false
	}
	best := ""
	bestScore := math.Inf(-1)
	for tag, pref := range p.Preferences {
		if pref.Score > bestScore || (pref.Score == bestScore && tag < best) {
			best, bestScore = tag, pref.Score
		}
	}
	return best, true
}

func shortTerm(in Input) []ShortTerm {
	var recs []ShortTerm

	for i, w := range in.WeakTags {
		if i >= maxWeeklyGoals {
			break
		}
		target := math.Min(w.SuccessRate+accuracyGainPoints, accuracyCapPercent)
		recs = append(recs, ShortTerm{
			Type:            "weekly_weakness",
			Goal:            fmt.Sprintf("Raise %s accuracy by %d points", w.Tag, accuracyGainPoints),
			TargetProblems:  int(math.Ceil(float64(w.Tried)*0.3)) + 3,
			CurrentAccuracy: w.SuccessRate,
			TargetAccuracy:  target,
			Timeline:        "this week",
		})
	}

	weekly := weeklyTarget(in.User.SolvedCount)
	recs = append(recs, ShortTerm{
		Type: "weekly_progress",
		Goal: fmt.Sprintf("Solve %d problems this week", weekly),
		Breakdown: &VolumeBreakdown{
			Weakness:  int(math.Ceil(float64(weekly) * in.Weights.Weakness)),
			Progress:  int(math.Ceil(float64(weekly) * in.Weights.Progress)),
			Review:    int(float64(weekly) * 0.2),
			Challenge: int(float64(weekly) * 0.1),
		},
		Timeline: "this week",
	})
	return recs
}

// weeklyTarget scales with total volume so heavy solvers get heavier
// weeks, with a floor of one problem per day.
func weeklyTarget(solvedCount int) int {
	if t := solvedCount / 50; t > 7 {
		return t
	}
	return 7
}

func longTerm(in Input) []LongTerm {
	var recs []LongTerm

	gain := 20.0
	if in.Pattern != nil {
		gain += in.Pattern.Performance.Momentum
	}
	if gain < 5 {
		gain = 5
	}
	target := targetTier(in.User.Tier, gain)
	recs = append(recs, LongTerm{
		Type:                "monthly_tier_goal",
		CurrentTier:         tier.Name(in.User.Tier),
		TargetTier:          tier.Name(target),
		EstimatedRatingGain: int(math.Round(gain)),
		RequiredEffort:      int(math.Ceil(gain * 0.5)),
		Timeline:            "this month",
	})

	for _, area := range coreSkills {
		if len(recs)-1 >= maxSkillPlans {
			break
		}
		score := 0.0
		if in.Pattern != nil {
			if pref, ok := in.Pattern.Preferences[area]; ok {
				score = pref.Score
			}
		}
		if score >= skillScoreThreshold {
			continue
		}
		recs = append(recs, LongTerm{
			Type:         "skill_development",
			Area:         area,
			CurrentLevel: score,
			TargetLevel:  skillTargetLevel,
			LearningPath: []string{
				fmt.Sprintf("5 basic %s problems", area),
				fmt.Sprintf("3 intermediate %s problems", area),
				fmt.Sprintf("2 mixed problems combining %s", area),
			},
			Timeline: "this month",
		})
	}
	return recs
}

// targetTier walks the gap table one tier at a time until the
// projected rating gain is spent.
func targetTier(current int, gain float64) int {
	t := current
	remaining := gain
	for remaining > 0 && t < tier.Max {
		band := t / 5
		if band >= len(tierGaps) {
			band = len(tierGaps) - 1
		}
		gap := tierGaps[band]
		if remaining < gap {
			break
		}
		remaining -= gap
		t++
	}
	return t
}

func reasoning(in Input) []string {
	var rs []string
	if in.Weights.Weakness > 0.4 {
		rs = append(rs, "Weak areas dominate the plan, so the focus is on shoring them up first.")
	}
	if in.Weights.Progress > 0.4 {
		rs = append(rs, "You are close to promotion, so the plan leans toward challenge problems.")
	}
	if in.Pattern != nil {
		switch in.Pattern.Performance.Trend {
		case pattern.TrendImproving:
			rs = append(rs, "Recent results are improving, which supports more ambitious goals.")
		case pattern.TrendDeclining:
			rs = append(rs, "Recent results dipped, so the plan returns to fundamentals.")
		}
	}
	if len(rs) == 0 {
		rs = append(rs, "Balanced plan based on your current solve profile.")
	}
	return rs
}

// Enrich adjusts an already generated set for the caller's mood and
// available time. It mutates s in place.
func Enrich(s *Set, ctx weights.Context) {
	if ctx.Mood == "frustrated" {
		s.Immediate = append([]Immediate{{
			Type:          "confidence_boost",
			Priority:      PriorityHigh,
			Action:        "Warm up with an easy problem you know you can solve",
			Reason:        "a quick win rebuilds confidence before harder work",
			EstimatedTime: "15-20 minutes",
		}}, s.Immediate...)
	}

	if ctx.Mood == "motivated" || ctx.TimeAvailableMinutes > 120 {
		for i := range s.Immediate {
			if s.Immediate[i].Type == "tier_challenge" {
				s.Immediate[i].Priority = PriorityHigh
			}
		}
	}

	if ctx.TimeAvailableMinutes > 0 && ctx.TimeAvailableMinutes < 30 {
		kept := s.Immediate[:0]
		for _, r := range s.Immediate {
			if minutesLowerBound(r.EstimatedTime) <= ctx.TimeAvailableMinutes {
				kept = append(kept, r)
			}
		}
		s.Immediate = kept
	}
}

// minutesLowerBound parses the leading number of an estimate like
// "30-45 minutes". Unparseable estimates count as zero so they are
// never filtered out.
func minutesLowerBound(estimate string) int {
	estimate = strings.TrimSpace(estimate)
	i := 0
	for i < len(estimate) && estimate[i] >= '0' && estimate[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(estimate[:i])
	if err != nil {
		return 0
	}
	return n
}
