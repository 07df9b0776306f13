// Package difficulty analyzes how well a user performs at their
// current difficulty tier and whether they are ready to move up.
package difficulty

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/bojcoach/internal/stats"
	"github.com/abhisek/bojcoach/internal/tier"
)

// masteryFloor is the minimum attempt denominator: a handful of lucky
// solves at a level should not read as mastery.
const masteryFloor = 10

// StrugglingLevel is a difficulty bucket the user underperforms at.
type StrugglingLevel struct {
	Level    int     `json:"level"`
	TierName string  `json:"tierName"`
	Mastery  float64 `json:"mastery"` // percent, one decimal
}

// Performance is the difficulty-tier assessment for one user.
type Performance struct {
	CurrentLevelMastery float64           `json:"currentLevelMastery"`
	ReadyForNextLevel   bool              `json:"readyForNextLevel"`
	StrugglingLevels    []StrugglingLevel `json:"strugglingLevels"`
	Recommendation      string            `json:"recommendation"`
}

// Analyze assesses mastery of the current tier from the difficulty
// aggregate. Missing buckets are treated as zero-state, never an error.
func Analyze(currentTier int, agg stats.DifficultyAggregate) Performance {
	mastery := LevelMastery(currentTier, agg.ByLevel)
	solved := 0
	if b, ok := agg.ByLevel[currentTier]; ok {
		solved = b.Solved
	}

	return Performance{
		CurrentLevelMastery: mastery,
		ReadyForNextLevel:   mastery >= 70 && solved >= 10,
		StrugglingLevels:    strugglingLevels(agg.ByLevel),
		Recommendation:      recommendation(currentTier, mastery),
	}
}

// LevelMastery is solved/max(total, 10) as a percentage for one level
// bucket, or 0 when the bucket has no data.
func LevelMastery(level int, byLevel map[int]stats.LevelBucket) float64 {
	b, ok := byLevel[level]
	if !ok || b.Total == 0 {
		return 0
	}
	denom := b.Total
	if denom < masteryFloor {
		denom = masteryFloor
	}
	return float64(b.Solved) / float64(denom) * 100
}

// strugglingLevels lists buckets with at least 3 attempts and raw
// mastery below 50%, ascending by level.
func strugglingLevels(byLevel map[int]stats.LevelBucket) []StrugglingLevel {
	var out []StrugglingLevel
	for lv, b := range byLevel {
		if b.Total < 3 {
			continue
		}
		mastery := float64(b.Solved) / float64(b.Total) * 100
		if mastery >= 50 {
			continue
		}
		out = append(out, StrugglingLevel{
			Level:    lv,
			TierName: tier.Name(lv),
			Mastery:  math.Round(mastery*10) / 10,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

func recommendation(currentTier int, mastery float64) string {
	switch {
	case mastery < 50:
		return fmt.Sprintf("Practice more problems at your current tier (%s)", tier.Name(currentTier))
	case mastery >= 70:
		return fmt.Sprintf("Try problems at the next tier (%s)", tier.Name(currentTier+1))
	default:
		return "Master your current tier before moving to the next"
	}
}
