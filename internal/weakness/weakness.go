// Package weakness ranks a user's weakest tags and classifies how
// severe each weakness is and how quickly it could improve.
package weakness

import (
	"sort"

	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/stats"
)

// Severity is a coarse weakness-intensity classification.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Potential estimates how much room a tag has to improve.
type Potential string

const (
	PotentialHigh   Potential = "High"
	PotentialMedium Potential = "Medium"
	PotentialLow    Potential = "Low"
)

// minTried is the attempt floor below which accuracy is too noisy to judge.
const minTried = 3

// weakAccuracy is the accuracy ceiling for a tag to count as weak.
const weakAccuracy = 0.6

// maxWeakTags caps the ranked output.
const maxWeakTags = 5

// WeakTag is a tag identified as a weakness, worst-first in the ranked list.
type WeakTag struct {
	Tag                  string    `json:"tag"`
	Solved               int       `json:"solved"`
	Tried                int       `json:"tried"`
	Accuracy             float64   `json:"accuracy"`
	SuccessRate          float64   `json:"successRate"`
	Severity             Severity  `json:"severity"`
	ImprovementPotential Potential `json:"improvementPotential"`
	EstimatedTime        string    `json:"estimatedTime"`
}

// Identify returns up to five weak tags, ordered worst-first.
// A tag qualifies with at least 3 tries and accuracy below 0.6.
// The function is pure: identical input yields identical output.
func Identify(tagStats []solvedac.TagStat) []WeakTag {
	accs := stats.TagAccuracies(tagStats)

	candidates := make([]stats.TagAccuracy, 0, len(accs))
	for _, ta := range accs {
		if ta.Tried >= minTried && ta.Accuracy < weakAccuracy {
			candidates = append(candidates, ta)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Accuracy < candidates[j].Accuracy
	})
	if len(candidates) > maxWeakTags {
		candidates = candidates[:maxWeakTags]
	}

	out := make([]WeakTag, 0, len(candidates))
	for _, ta := range candidates {
		sev := classifySeverity(ta.Accuracy)
		out = append(out, WeakTag{
			Tag:                  ta.Tag,
			Solved:               ta.Solved,
			Tried:                ta.Tried,
			Accuracy:             ta.Accuracy,
			SuccessRate:          ta.SuccessRate,
			Severity:             sev,
			ImprovementPotential: classifyPotential(ta.Accuracy, ta.Tried),
			EstimatedTime:        estimateTime(sev),
		})
	}
	return out
}

func classifySeverity(accuracy float64) Severity {
	switch {
	case accuracy < 0.3:
		return SeverityCritical
	case accuracy < 0.5:
		return SeverityHigh
	case accuracy < 0.6:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// classifyPotential scores (1-accuracy)*tried: many failed attempts in
// one tag mean focused practice pays off quickly.
func classifyPotential(accuracy float64, tried int) Potential {
	score := (1 - accuracy) * float64(tried)
	switch {
	case score > 10:
		return PotentialHigh
	case score > 5:
		return PotentialMedium
	default:
		return PotentialLow
	}
}

func estimateTime(sev Severity) string {
	switch sev {
	case SeverityCritical:
		return "3-4 weeks"
	case SeverityHigh:
		return "2-3 weeks"
	case SeverityMedium:
		return "1-2 weeks"
	default:
		return "1 week"
	}
}
