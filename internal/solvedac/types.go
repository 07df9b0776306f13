package solvedac

// User is a solved.ac profile snapshot for a handle.
// It is immutable once fetched; the engine stores only derived deltas.
type User struct {
	Handle      string `json:"handle"`
	Tier        int    `json:"tier"`
	Rating      int    `json:"rating"`
	SolvedCount int    `json:"solvedCount"`
	MaxStreak   int    `json:"maxStreak"`
}

// TagStat holds per-tag solve statistics.
// Invariant: Solved <= Tried.
type TagStat struct {
	Tag    string `json:"tag"`
	Solved int    `json:"solved"`
	Tried  int    `json:"tried"`
}

// Accuracy returns Solved/Tried, or 0 when nothing was tried.
func (s TagStat) Accuracy() float64 {
	if s.Tried <= 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Tried)
}

// LevelStat holds per-difficulty solve statistics.
type LevelStat struct {
	Level  int `json:"level"`
	Solved int `json:"solved"`
	Tried  int `json:"tried"`
}

// wire types for the solved.ac v3 API.

type tagStatItem struct {
	Tag struct {
		Key string `json:"key"`
	} `json:"tag"`
	Solved int `json:"solved"`
	Tried  int `json:"tried"`
}

type tagStatPage struct {
	Count int           `json:"count"`
	Items []tagStatItem `json:"items"`
}

type levelStatItem struct {
	Level  int `json:"level"`
	Solved int `json:"solved"`
	Tried  int `json:"tried"`
}
