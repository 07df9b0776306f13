// Package pattern tracks per-user learning history for the process
// lifetime: progress deltas between profile snapshots, tag
// preferences, and a trend/momentum summary of recent performance.
package pattern

import (
	"time"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// Trend classifies the recent rating trajectory.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// ProgressEntry is the delta between two consecutive profile snapshots.
// Immutable once appended.
type ProgressEntry struct {
	Timestamp         time.Time `json:"timestamp"`
	RatingChange      int       `json:"ratingChange"`
	SolvedCountChange int       `json:"solvedCountChange"`
	TierChange        int       `json:"tierChange"`
	StreakChange      int       `json:"streakChange"`
}

// Performance summarizes the recent history window.
// Recomputed wholesale on every update; never patched incrementally.
type Performance struct {
	Trend           Trend   `json:"trend"`
	Momentum        float64 `json:"momentum"`
	AvgRatingChange float64 `json:"avgRatingChange"`
	AvgSolvedChange float64 `json:"avgSolvedChange"`
}

// Preference scores how much a user gravitates toward a tag,
// blending accuracy with practice volume.
type Preference struct {
	Score     float64   `json:"score"`
	Accuracy  float64   `json:"accuracy"`
	Volume    int       `json:"volume"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pattern is a copy of one user's tracked state, safe to read after
// the tracker moves on.
type Pattern struct {
	History      []ProgressEntry       `json:"history"`
	Preferences  map[string]Preference `json:"preferences"`
	Performance  Performance           `json:"performance"`
	LastSnapshot *solvedac.User        `json:"lastSnapshot"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// retention is how long progress entries stay in history.
const retention = 30 * 24 * time.Hour

// trendWindow is how many recent entries feed the trend average.
const trendWindow = 7

// momentumWeights weight the most recent entries, newest first.
var momentumWeights = [3]float64{0.5, 0.3, 0.2}

// trendDelta is the average rating change beyond which the trend
// reads as improving or declining.
const trendDelta = 5.0

// diff computes the ProgressEntry between two snapshots.
func diff(prev, cur *solvedac.User, at time.Time) ProgressEntry {
	return ProgressEntry{
		Timestamp:         at,
		RatingChange:      cur.Rating - prev.Rating,
		SolvedCountChange: cur.SolvedCount - prev.SolvedCount,
		TierChange:        cur.Tier - prev.Tier,
		StreakChange:      cur.MaxStreak - prev.MaxStreak,
	}
}

// prune drops entries older than the retention window relative to now,
// preserving insertion order.
func prune(history []ProgressEntry, now time.Time) []ProgressEntry {
	cutoff := now.Add(-retention)
	kept := history[:0]
	for _, e := range history {
		if e.Timestamp.After(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

// scorePreferences rescores every tag present in the latest stats,
// overwriting prior scores. Tags absent from the snapshot keep their
// old score; there is no decay.
func scorePreferences(prefs map[string]Preference, tagStats []solvedac.TagStat, now time.Time) {
	for _, s := range tagStats {
		volumeFactor := float64(s.Tried) / 20
		if volumeFactor > 1 {
			volumeFactor = 1
		}
		acc := s.Accuracy()
		prefs[s.Tag] = Preference{
			Score:     0.7*acc + 0.3*volumeFactor,
			Accuracy:  acc,
			Volume:    s.Tried,
			UpdatedAt: now,
		}
	}
}

// analyzePerformance recomputes trend and momentum from the last
// trendWindow entries.
func analyzePerformance(history []ProgressEntry) Performance {
	if len(history) < 2 {
		return Performance{Trend: TrendInsufficientData}
	}

	recent := history
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	var ratingSum, solvedSum int
	for _, e := range recent {
		ratingSum += e.RatingChange
		solvedSum += e.SolvedCountChange
	}
	avgRating := float64(ratingSum) / float64(len(recent))
	avgSolved := float64(solvedSum) / float64(len(recent))

	trend := TrendStable
	if avgRating > trendDelta {
		trend = TrendImproving
	} else if avgRating < -trendDelta {
		trend = TrendDeclining
	}

	return Performance{
		Trend:           trend,
		Momentum:        momentum(recent),
		AvgRatingChange: avgRating,
		AvgSolvedChange: avgSolved,
	}
}

// momentum is a recency-weighted sum over the newest entries of
// ratingChange + 2*solvedCountChange. Fewer than three entries simply
// contribute fewer terms.
func momentum(recent []ProgressEntry) float64 {
	var m float64
	for i := 0; i < len(momentumWeights) && i < len(recent); i++ {
		e := recent[len(recent)-1-i]
		m += float64(e.RatingChange+2*e.SolvedCountChange) * momentumWeights[i]
	}
	return m
}
