// Package stats computes the metric primitives all higher-level
// analysis is built from: per-tag accuracy, per-difficulty success,
// and activity estimates. Everything here is a pure function of an
// immutable snapshot; empty input yields the documented zero-value
// shape, never an error.
package stats

import (
	"math"
	"sort"

	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/tier"
)

// TagAccuracy is a tag's solve statistics with derived accuracy.
type TagAccuracy struct {
	Tag         string  `json:"tag"`
	Solved      int     `json:"solved"`
	Tried       int     `json:"tried"`
	Accuracy    float64 `json:"accuracy"`
	SuccessRate float64 `json:"successRate"` // percent, one decimal
}

// TagAccuracies derives accuracy per tag, sorted descending by accuracy.
func TagAccuracies(tagStats []solvedac.TagStat) []TagAccuracy {
	out := make([]TagAccuracy, 0, len(tagStats))
	for _, s := range tagStats {
		acc := s.Accuracy()
		out = append(out, TagAccuracy{
			Tag:         s.Tag,
			Solved:      s.Solved,
			Tried:       s.Tried,
			Accuracy:    acc,
			SuccessRate: round1(acc * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Accuracy > out[j].Accuracy
	})
	return out
}

// LevelBucket aggregates solves at one difficulty level.
type LevelBucket struct {
	TierName string `json:"tierName"`
	Solved   int    `json:"solved"`
	Total    int    `json:"total"`
}

// DifficultySummary summarizes the difficulty spread.
type DifficultySummary struct {
	Easiest      string  `json:"easiest"`
	Hardest      string  `json:"hardest"`
	AverageLevel float64 `json:"averageLevel"` // solve-weighted mean, one decimal
	TotalSolved  int     `json:"totalSolved"`
}

// DifficultyAggregate is the per-level success breakdown.
type DifficultyAggregate struct {
	ByLevel map[int]LevelBucket `json:"byLevel"`
	Summary DifficultySummary   `json:"summary"`
}

// DifficultySuccess aggregates level stats into difficulty buckets.
// Levels with no solves or a non-positive rank are excluded.
func DifficultySuccess(levelStats []solvedac.LevelStat) DifficultyAggregate {
	byLevel := make(map[int]LevelBucket)
	totalLevel := 0
	totalCount := 0

	for _, s := range levelStats {
		if s.Level <= 0 || s.Solved <= 0 {
			continue
		}
		b := byLevel[s.Level]
		if b.TierName == "" {
			b.TierName = tier.Name(s.Level)
		}
		b.Solved += s.Solved
		b.Total += s.Solved
		byLevel[s.Level] = b

		totalLevel += s.Level * s.Solved
		totalCount += s.Solved
	}

	summary := DifficultySummary{Easiest: "N/A", Hardest: "N/A"}
	if totalCount > 0 {
		levels := make([]int, 0, len(byLevel))
		for lv := range byLevel {
			levels = append(levels, lv)
		}
		sort.Ints(levels)
		summary.Easiest = tier.Name(levels[0])
		summary.Hardest = tier.Name(levels[len(levels)-1])
		summary.AverageLevel = round1(float64(totalLevel) / float64(totalCount))
		summary.TotalSolved = totalCount
	}

	return DifficultyAggregate{ByLevel: byLevel, Summary: summary}
}

const (
	strengthMinTried   = 5
	strengthMinAcc     = 0.8
	improveMinTried    = 3
	improveMinAcc      = 0.5
	strengthReportSize = 5
)

// Strengths returns up to five tags the user has clearly mastered,
// strongest first. A tag qualifies with at least 5 tries at 80%
// accuracy or better.
func Strengths(tagStats []solvedac.TagStat) []TagAccuracy {
	var out []TagAccuracy
	for _, s := range tagStats {
		acc := s.Accuracy()
		if s.Tried < strengthMinTried || acc < strengthMinAcc {
			continue
		}
		out = append(out, TagAccuracy{
			Tag:         s.Tag,
			Solved:      s.Solved,
			Tried:       s.Tried,
			Accuracy:    acc,
			SuccessRate: round1(acc * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Accuracy > out[j].Accuracy
	})
	if len(out) > strengthReportSize {
		out = out[:strengthReportSize]
	}
	return out
}

// Improvements returns up to five tags in the 50-80% accuracy band
// with at least 3 tries, most room to grow first. These sit between
// mastered strengths and outright weaknesses.
func Improvements(tagStats []solvedac.TagStat) []TagAccuracy {
	var out []TagAccuracy
	for _, s := range tagStats {
		acc := s.Accuracy()
		if s.Tried < improveMinTried || acc < improveMinAcc || acc >= strengthMinAcc {
			continue
		}
		out = append(out, TagAccuracy{
			Tag:         s.Tag,
			Solved:      s.Solved,
			Tried:       s.Tried,
			Accuracy:    acc,
			SuccessRate: round1(acc * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Accuracy < out[j].Accuracy
	})
	if len(out) > strengthReportSize {
		out = out[:strengthReportSize]
	}
	return out
}

// Activity estimates solve cadence from lifetime totals.
type Activity struct {
	DailyAvg   float64 `json:"dailyAvg"`
	WeeklyAvg  float64 `json:"weeklyAvg"`
	MonthlyAvg float64 `json:"monthlyAvg"`
	Streak     int     `json:"streak"`
	Label      string  `json:"label"`
}

// ActivityPattern estimates daily/weekly/monthly averages from the
// lifetime solved count. A nil user yields the zero Activity.
func ActivityPattern(u *solvedac.User) Activity {
	if u == nil {
		return Activity{Label: activityLabel(0)}
	}
	a := Activity{
		Streak: u.MaxStreak,
		Label:  activityLabel(u.SolvedCount),
	}
	if u.SolvedCount > 0 {
		a.DailyAvg = round1(float64(u.SolvedCount) / 365)
		a.WeeklyAvg = round1(float64(u.SolvedCount) / 52)
		a.MonthlyAvg = round1(float64(u.SolvedCount) / 12)
	}
	return a
}

// activityLabel classifies lifetime volume into five experience bands.
func activityLabel(solved int) string {
	switch {
	case solved == 0:
		return "new user"
	case solved < 50:
		return "beginner (under 3 months)"
	case solved < 200:
		return "intermediate (3-12 months)"
	case solved < 500:
		return "advanced (1-2 years)"
	default:
		return "expert (2+ years)"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
