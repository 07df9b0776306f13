package coach

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/store"
	"github.com/abhisek/bojcoach/internal/weights"
)

func testMock() *solvedac.Mock {
	return &solvedac.Mock{
		Profile: &solvedac.User{Handle: "solver", Tier: 10, Rating: 720, SolvedCount: 400, MaxStreak: 12},
		Tags: []solvedac.TagStat{
			{Tag: "implementation", Solved: 120, Tried: 140},
			{Tag: "dp", Solved: 2, Tried: 10},
			{Tag: "graphs", Solved: 4, Tried: 9},
		},
		Levels: []solvedac.LevelStat{
			{Level: 9, Solved: 40, Tried: 44},
			{Level: 10, Solved: 14, Tried: 16},
			{Level: 11, Solved: 3, Tried: 8},
		},
	}
}

func TestAnalysisAssemblesReport(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)

	a, err := svc.Analysis(context.Background(), "solver")
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}

	if a.Tier.Name != "Silver I" || a.Tier.NextName != "Gold V" {
		t.Errorf("tier standing = %+v", a.Tier)
	}
	if len(a.TagSkills) != 3 {
		t.Errorf("tag skills = %d, want 3", len(a.TagSkills))
	}
	// dp (2/10) and graphs (4/9) qualify as weak; implementation does not.
	if len(a.WeakTags) != 2 || a.WeakTags[0].Tag != "dp" {
		t.Errorf("weak tags = %+v", a.WeakTags)
	}
	// 14 solves at tier 10 gives full mastery.
	if !a.Performance.ReadyForNextLevel {
		t.Errorf("performance = %+v, want ready", a.Performance)
	}
	if a.Activity.Label == "" {
		t.Error("activity label missing")
	}
	if a.Message == "" {
		t.Error("explainer message missing")
	}
	if a.Prediction.NextTier != "Gold V" || a.Prediction.EstimatedTime == "" {
		t.Errorf("prediction = %+v, want Gold V outlook", a.Prediction)
	}
}

func TestAnalysisFetchesConcurrently(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)

	if _, err := svc.Analysis(context.Background(), "solver"); err != nil {
		t.Fatalf("analysis: %v", err)
	}
	for _, m := range []string{"User", "TagStats", "LevelStats"} {
		if mock.Calls[m] != 1 {
			t.Errorf("%s calls = %d, want 1", m, mock.Calls[m])
		}
	}
}

func TestAnalysisPropagatesClientError(t *testing.T) {
	mock := testMock()
	mock.Err = &solvedac.ErrNotFound{Handle: "ghost"}
	svc := NewService(mock)

	_, err := svc.Analysis(context.Background(), "ghost")
	var nf *solvedac.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestWeaknessSkipsLevelFetch(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)

	r, err := svc.Weakness(context.Background(), "solver")
	if err != nil {
		t.Fatalf("weakness: %v", err)
	}
	if len(r.WeakTags) != 2 {
		t.Errorf("weak tags = %d, want 2", len(r.WeakTags))
	}
	if mock.Calls["LevelStats"] != 0 {
		t.Errorf("level stats fetched %d times, want 0", mock.Calls["LevelStats"])
	}
}

func TestProgressTracksAcrossCalls(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)
	ctx := context.Background()

	r1, err := svc.Progress(ctx, "solver")
	if err != nil {
		t.Fatalf("first progress: %v", err)
	}
	if !r1.First {
		t.Error("first call should report First")
	}
	if len(r1.Pattern.History) != 0 {
		t.Errorf("first call history = %d, want 0", len(r1.Pattern.History))
	}
	// implementation (120/140) is the only tag past the strength bar.
	if len(r1.Strengths) != 1 || r1.Strengths[0].Tag != "implementation" {
		t.Errorf("strengths = %+v, want [implementation]", r1.Strengths)
	}
	if len(r1.Improvements) != 0 {
		t.Errorf("improvements = %+v, want none in the 50-80%% band", r1.Improvements)
	}
	if r1.Activity.Label == "" {
		t.Error("activity label missing")
	}
	if r1.Difficulty.Summary.TotalSolved == 0 {
		t.Error("difficulty summary missing")
	}

	mock.Profile = &solvedac.User{Handle: "solver", Tier: 10, Rating: 730, SolvedCount: 405}
	r2, err := svc.Progress(ctx, "solver")
	if err != nil {
		t.Fatalf("second progress: %v", err)
	}
	if r2.First {
		t.Error("second call should not report First")
	}
	if len(r2.Pattern.History) != 1 {
		t.Fatalf("second call history = %d, want 1", len(r2.Pattern.History))
	}
	if r2.Pattern.History[0].RatingChange != 10 {
		t.Errorf("rating change = %v, want 10", r2.Pattern.History[0].RatingChange)
	}
}

func TestRecommendationsWithoutHistory(t *testing.T) {
	svc := NewService(testMock())

	r, err := svc.Recommendations(context.Background(), "solver", weights.Context{})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if r.Adaptive {
		t.Error("first call has no tracked delta yet, should be non-adaptive")
	}
	if len(r.Set.Immediate) == 0 || len(r.Set.ShortTerm) == 0 || len(r.Set.LongTerm) == 0 {
		t.Errorf("set missing sections: %+v", r.Set)
	}
	if r.Set.PersonalizedMessage == "" {
		t.Error("personalized message missing")
	}
}

func TestRecommendationsUpdateTracker(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)
	ctx := context.Background()

	if _, err := svc.Recommendations(ctx, "solver", weights.Context{}); err != nil {
		t.Fatalf("first recommendations: %v", err)
	}
	if _, ok := svc.Tracker().Get("solver"); !ok {
		t.Fatal("recommendations should record a learning pattern")
	}

	mock.Profile = &solvedac.User{Handle: "solver", Tier: 10, Rating: 740, SolvedCount: 408}
	r, err := svc.Recommendations(ctx, "solver", weights.Context{})
	if err != nil {
		t.Fatalf("second recommendations: %v", err)
	}
	if !r.Adaptive {
		t.Error("second call should be adaptive once a delta exists")
	}

	pat, _ := svc.Tracker().Get("solver")
	if len(pat.History) != 1 {
		t.Fatalf("history = %d, want 1 delta between calls", len(pat.History))
	}
	if pat.History[0].RatingChange != 20 {
		t.Errorf("rating change = %d, want 20", pat.History[0].RatingChange)
	}
}

func TestRecommendationsAdaptiveAfterProgress(t *testing.T) {
	mock := testMock()
	svc := NewService(mock)
	ctx := context.Background()

	if _, err := svc.Progress(ctx, "solver"); err != nil {
		t.Fatalf("progress: %v", err)
	}

	r, err := svc.Recommendations(ctx, "solver", weights.Context{Mood: "frustrated"})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if !r.Adaptive {
		t.Error("tracked pattern should mean adaptive")
	}
	if r.Set.Immediate[0].Type != "confidence_boost" {
		t.Errorf("frustrated mood should prepend a confidence boost, got %q", r.Set.Immediate[0].Type)
	}
}

func TestPrediction(t *testing.T) {
	svc := NewService(testMock())

	r, err := svc.Prediction(context.Background(), "solver")
	if err != nil {
		t.Fatalf("prediction: %v", err)
	}
	if r.Prediction.NextTier != "Gold V" {
		t.Errorf("next tier = %q, want Gold V", r.Prediction.NextTier)
	}
	if r.Prediction.EstimatedTime == "" || r.Prediction.Confidence == "" {
		t.Errorf("prediction incomplete: %+v", r.Prediction)
	}
}

func TestRecordPersistsEvents(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "coach.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := NewService(testMock(), WithEventRepo(st.EventRepo()))
	ctx := context.Background()

	if _, err := svc.Analysis(ctx, "solver"); err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if _, err := svc.Weakness(ctx, "solver"); err != nil {
		t.Fatalf("weakness: %v", err)
	}

	events, err := st.EventRepo().RecentAnalyses(ctx, "solver", store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Operation != "weakness" || events[1].Operation != "analysis" {
		t.Errorf("operations = %q, %q", events[0].Operation, events[1].Operation)
	}
}

func TestProgressWarmStartsFromSnapshot(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "coach.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	// First process run records a snapshot.
	mock := testMock()
	svc := NewService(mock, WithSnapshotRepo(st.SnapshotRepo()))
	if _, err := svc.Progress(ctx, "solver"); err != nil {
		t.Fatalf("progress: %v", err)
	}

	// A fresh service simulates a restart: the stored snapshot seeds
	// the diff baseline so the first call already yields a delta.
	mock.Profile = &solvedac.User{Handle: "solver", Tier: 10, Rating: 735, SolvedCount: 406}
	svc2 := NewService(mock, WithSnapshotRepo(st.SnapshotRepo()))
	r, err := svc2.Progress(ctx, "solver")
	if err != nil {
		t.Fatalf("progress after restart: %v", err)
	}
	if r.First {
		t.Error("warm-started call should not report First")
	}
	if len(r.Pattern.History) != 1 {
		t.Fatalf("history = %d, want 1 delta from stored snapshot", len(r.Pattern.History))
	}
	if r.Pattern.History[0].RatingChange != 15 {
		t.Errorf("rating change = %d, want 15", r.Pattern.History[0].RatingChange)
	}

	// Both runs saved a snapshot; the latest reflects the new rating.
	latest, err := st.SnapshotRepo().Latest(ctx, "solver")
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if latest == nil || latest.User.Rating != 735 {
		t.Errorf("latest snapshot = %+v, want rating 735", latest)
	}
}

func TestTrackerExposed(t *testing.T) {
	svc := NewService(testMock())
	if svc.Tracker() == nil {
		t.Fatal("tracker should be non-nil")
	}
	svc.Tracker().Update("solver", &solvedac.User{Handle: "solver"}, nil)
	if _, ok := svc.Tracker().Get("solver"); !ok {
		t.Error("tracker update not visible")
	}
}
