// Package weights derives the adaptive weighting across the four
// recommendation categories from the user's performance pattern and
// the caller's situational context.
package weights

import "github.com/abhisek/bojcoach/internal/pattern"

// Context carries caller-supplied situational hints for one request.
type Context struct {
	Urgency              string `json:"urgency,omitempty"`  // high | medium | low
	Focus                string `json:"focus,omitempty"`    // weakness | tier_up | general
	Mood                 string `json:"mood,omitempty"`     // motivated | frustrated | neutral
	TimeAvailableMinutes int    `json:"timeAvailableMinutes,omitempty"`
}

// Weights is the 4-way category weighting. The values are threshold
// comparators, not a probability distribution: they are never clamped
// or normalized, and adjustments may push them outside [0, 1].
type Weights struct {
	Weakness   float64 `json:"weakness"`
	Progress   float64 `json:"progress"`
	Preference float64 `json:"preference"`
	Momentum   float64 `json:"momentum"`
}

// Default returns the baseline weighting.
func Default() Weights {
	return Weights{
		Weakness:   0.4,
		Progress:   0.3,
		Preference: 0.2,
		Momentum:   0.1,
	}
}

// momentumThreshold is the |momentum| beyond which recent velocity
// earns extra weight.
const momentumThreshold = 10

// Calculate applies the adaptive adjustments to the defaults, in
// fixed order so each sees the running total. Trend and momentum
// adjustments need a tracked performance pattern; the context
// adjustments apply regardless.
func Calculate(perf *pattern.Performance, ctx Context) Weights {
	w := Default()

	if perf != nil {
		switch perf.Trend {
		case pattern.TrendDeclining:
			w.Weakness += 0.2
			w.Progress -= 0.1
		case pattern.TrendImproving:
			w.Progress += 0.2
			w.Weakness -= 0.1
		}

		if perf.Momentum > momentumThreshold || perf.Momentum < -momentumThreshold {
			w.Momentum += 0.1
			w.Preference -= 0.05
			w.Weakness -= 0.05
		}
	}

	if ctx.Urgency == "high" {
		w.Weakness += 0.15
		w.Preference -= 0.15
	}

	if ctx.Focus == "tier_up" {
		w.Progress += 0.2
		w.Weakness -= 0.1
	}

	return w
}
