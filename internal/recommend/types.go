package recommend

// Priority orders immediate recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// priorityWeight maps priority to its sort weight.
func priorityWeight(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Immediate is a recommendation for today.
type Immediate struct {
	Type          string   `json:"type"`
	Priority      Priority `json:"priority"`
	Action        string   `json:"action"`
	Reason        string   `json:"reason"`
	EstimatedTime string   `json:"estimatedTime"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// VolumeBreakdown allocates the weekly target across categories.
type VolumeBreakdown struct {
	Weakness  int `json:"weakness"`
	Progress  int `json:"progress"`
	Review    int `json:"review"`
	Challenge int `json:"challenge"`
}

// ShortTerm is a goal for this week. Breakdown is set only on the
// aggregate weekly-volume goal.
type ShortTerm struct {
	Type            string           `json:"type"`
	Goal            string           `json:"goal"`
	TargetProblems  int              `json:"targetProblems,omitempty"`
	CurrentAccuracy float64          `json:"currentAccuracy,omitempty"`
	TargetAccuracy  float64          `json:"targetAccuracy,omitempty"`
	Breakdown       *VolumeBreakdown `json:"breakdown,omitempty"`
	Timeline        string           `json:"timeline"`
}

// LongTerm is a goal for this month: either a tier goal or a
// skill-development plan, discriminated by Type.
type LongTerm struct {
	Type                string   `json:"type"`
	CurrentTier         string   `json:"currentTier,omitempty"`
	TargetTier          string   `json:"targetTier,omitempty"`
	EstimatedRatingGain int      `json:"estimatedRatingGain,omitempty"`
	RequiredEffort      int      `json:"requiredEffort,omitempty"`
	Area                string   `json:"area,omitempty"`
	CurrentLevel        float64  `json:"currentLevel,omitempty"`
	TargetLevel         float64  `json:"targetLevel,omitempty"`
	LearningPath        []string `json:"learningPath,omitempty"`
	Timeline            string   `json:"timeline"`
}

// Set is one request's full recommendation output. Generated fresh
// per request and never stored.
type Set struct {
	Immediate           []Immediate `json:"immediate"`
	ShortTerm           []ShortTerm `json:"shortTerm"`
	LongTerm            []LongTerm  `json:"longTerm"`
	Reasoning           []string    `json:"reasoning"`
	PersonalizedMessage string      `json:"personalizedMessage,omitempty"`
	Adaptive            bool        `json:"adaptive"`
}
