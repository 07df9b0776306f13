// Package predict estimates how long a user needs to reach the next
// tier and how confident that estimate is.
package predict

import (
	"fmt"
	"math"

	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/tier"
)

// Confidence grades the reliability of a prediction.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Prediction is the tier-achievement estimate for one user.
type Prediction struct {
	NextTier        string     `json:"nextTier"`
	CurrentProgress float64    `json:"currentProgress"` // percent, one decimal
	EstimatedTime   string     `json:"estimatedTime"`
	Confidence      Confidence `json:"confidence"`
	Blockers        []string   `json:"blockers"`
	Recommendations []string   `json:"recommendations"`
}

// Predict applies the decision table to the current progress fraction,
// weak-tag count, and promotion readiness.
func Predict(u *solvedac.User, weakCount int, ready bool) Prediction {
	progress := tier.Progress(u.Rating, u.Tier)

	p := Prediction{
		NextTier:        tier.Name(u.Tier + 1),
		CurrentProgress: math.Round(progress*10) / 10,
		Blockers:        []string{},
	}

	switch {
	case progress >= 80 && weakCount <= 2 && ready:
		p.EstimatedTime = "1-2 weeks"
		p.Confidence = ConfidenceHigh
	case progress >= 50 && weakCount <= 3:
		p.EstimatedTime = "1-2 months"
		p.Confidence = ConfidenceMedium
		if weakCount > 0 {
			p.Blockers = append(p.Blockers, "tag weaknesses need improvement")
		}
		if !ready {
			p.Blockers = append(p.Blockers, "current tier mastery incomplete")
		}
	default:
		p.EstimatedTime = "2-3 months"
		p.Confidence = ConfidenceLow
		p.Blockers = append(p.Blockers, "needs foundational improvement")
	}

	p.Recommendations = recommendations(u, weakCount, ready)
	return p
}

func recommendations(u *solvedac.User, weakCount int, ready bool) []string {
	var recs []string
	if weakCount > 3 {
		recs = append(recs, "Focus on weak tags (3-4 problems per week)")
	}
	if !ready {
		recs = append(recs, fmt.Sprintf("More practice at your current tier (%s)", tier.Name(u.Tier)))
	}
	if u.SolvedCount < 100 {
		recs = append(recs, "Build fundamental problem-solving skills")
	}
	recs = append(recs, "Keep a steady daily habit (2-3 problems per day)")
	return recs
}
