package pattern

import (
	"sync"
	"time"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// Tracker is the process-wide learning-pattern store, keyed by user
// handle. Updates to the same handle are serialized on a per-key
// mutex: the read-modify-write (diff, prune, rescore, reanalyze) runs
// atomically with respect to other updates for that handle. State
// lives only in memory and ends with the process.
type Tracker struct {
	mu    sync.Mutex
	users map[string]*userState

	// now is swappable for tests.
	now func() time.Time
}

type userState struct {
	mu          sync.Mutex
	history     []ProgressEntry
	preferences map[string]Preference
	performance Performance
	snapshot    *solvedac.User
	updatedAt   time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		users: make(map[string]*userState),
		now:   time.Now,
	}
}

// Update records the latest snapshot for a handle and returns a copy
// of the refreshed pattern. The first call for a handle creates an
// empty pattern with no delta, since there is nothing to diff against.
func (t *Tracker) Update(handle string, snap *solvedac.User, tagStats []solvedac.TagStat) Pattern {
	st := t.state(handle)

	st.mu.Lock()
	defer st.mu.Unlock()

	now := t.now()

	if st.snapshot != nil && snap != nil {
		st.history = append(st.history, diff(st.snapshot, snap, now))
	}
	st.history = prune(st.history, now)
	scorePreferences(st.preferences, tagStats, now)
	st.performance = analyzePerformance(st.history)
	if snap != nil {
		copied := *snap
		st.snapshot = &copied
	}
	st.updatedAt = now

	return st.copyPattern()
}

// Seed installs a baseline snapshot for a handle without recording a
// history entry, so the next Update produces a real delta. A handle
// that is already tracked is left untouched.
func (t *Tracker) Seed(handle string, snap *solvedac.User, at time.Time) {
	if snap == nil {
		return
	}
	st := t.state(handle)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.snapshot != nil {
		return
	}
	copied := *snap
	st.snapshot = &copied
	st.updatedAt = at
	st.performance = Performance{Trend: TrendInsufficientData}
}

// Get returns a copy of the current pattern for a handle, if tracked.
func (t *Tracker) Get(handle string) (Pattern, bool) {
	t.mu.Lock()
	st, ok := t.users[handle]
	t.mu.Unlock()
	if !ok {
		return Pattern{}, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.copyPattern(), true
}

// Len reports the number of tracked handles.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.users)
}

// state returns the per-handle state, creating it on first use.
func (t *Tracker) state(handle string) *userState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.users[handle]
	if !ok {
		st = &userState{preferences: make(map[string]Preference)}
		t.users[handle] = st
	}
	return st
}

// copyPattern deep-copies the state. Caller must hold st.mu.
func (st *userState) copyPattern() Pattern {
	p := Pattern{
		History:     make([]ProgressEntry, len(st.history)),
		Preferences: make(map[string]Preference, len(st.preferences)),
		Performance: st.performance,
		UpdatedAt:   st.updatedAt,
	}
	copy(p.History, st.history)
	for k, v := range st.preferences {
		p.Preferences[k] = v
	}
	if st.snapshot != nil {
		snap := *st.snapshot
		p.LastSnapshot = &snap
	}
	return p
}
