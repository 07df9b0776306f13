package coach

import (
	"github.com/abhisek/bojcoach/internal/difficulty"
	"github.com/abhisek/bojcoach/internal/pattern"
	"github.com/abhisek/bojcoach/internal/predict"
	"github.com/abhisek/bojcoach/internal/recommend"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/stats"
	"github.com/abhisek/bojcoach/internal/weakness"
)

// TierStanding places the user's rating within their tier.
type TierStanding struct {
	Name         string  `json:"name"`
	NextName     string  `json:"nextName"`
	Progress     float64 `json:"progress"` // percent toward the next tier
	RatingToNext int     `json:"ratingToNext"`
}

// Analysis is the full profile report.
type Analysis struct {
	User        solvedac.User             `json:"user"`
	Tier        TierStanding              `json:"tier"`
	TagSkills   []stats.TagAccuracy       `json:"tagSkills"`
	Difficulty  stats.DifficultyAggregate `json:"difficulty"`
	Activity    stats.Activity            `json:"activity"`
	WeakTags    []weakness.WeakTag        `json:"weakTags"`
	Performance difficulty.Performance    `json:"performance"`
	Prediction  predict.Prediction        `json:"prediction"`
	Message     string                    `json:"message,omitempty"`
}

// WeaknessReport is the focused weak-area view.
type WeaknessReport struct {
	User     solvedac.User      `json:"user"`
	WeakTags []weakness.WeakTag `json:"weakTags"`
	Message  string             `json:"message,omitempty"`
}

// ProgressReport is the delta view produced by a tracking update,
// plus the current strength and growth picture.
type ProgressReport struct {
	User         solvedac.User             `json:"user"`
	Pattern      pattern.Pattern           `json:"pattern"`
	Strengths    []stats.TagAccuracy       `json:"strengths"`
	Improvements []stats.TagAccuracy       `json:"improvements"`
	Difficulty   stats.DifficultyAggregate `json:"difficulty"`
	Activity     stats.Activity            `json:"activity"`
	First        bool                      `json:"first"` // true when no prior snapshot existed
}

// RecommendationReport bundles the generated set with the inputs that
// shaped it, so callers can show the reasoning.
type RecommendationReport struct {
	User     solvedac.User      `json:"user"`
	Set      recommend.Set      `json:"recommendations"`
	WeakTags []weakness.WeakTag `json:"weakTags"`
	Adaptive bool               `json:"adaptive"`
}

// PredictionReport wraps the tier prediction with the profile it was
// computed from.
type PredictionReport struct {
	User       solvedac.User      `json:"user"`
	Prediction predict.Prediction `json:"prediction"`
}
