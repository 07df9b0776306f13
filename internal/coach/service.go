// Package coach orchestrates the analysis pipeline: it fetches judge
// data, runs the analyzers, and assembles the reports every surface
// (CLI, HTTP, MCP, TUI) renders.
package coach

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/bojcoach/internal/difficulty"
	"github.com/abhisek/bojcoach/internal/explain"
	"github.com/abhisek/bojcoach/internal/pattern"
	"github.com/abhisek/bojcoach/internal/predict"
	"github.com/abhisek/bojcoach/internal/recommend"
	"github.com/abhisek/bojcoach/internal/solvedac"
	"github.com/abhisek/bojcoach/internal/stats"
	"github.com/abhisek/bojcoach/internal/store"
	"github.com/abhisek/bojcoach/internal/tier"
	"github.com/abhisek/bojcoach/internal/weakness"
	"github.com/abhisek/bojcoach/internal/weights"
)

// Service wires the solved.ac client to the analyzers. Events and
// snapshots are optional; when nil nothing is persisted.
type Service struct {
	client    solvedac.Client
	tracker   *pattern.Tracker
	explainer explain.Explainer
	events    store.EventRepo
	snapshots store.SnapshotRepo
	log       zerolog.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithExplainer replaces the default template explainer.
func WithExplainer(e explain.Explainer) Option {
	return func(s *Service) { s.explainer = e }
}

// WithEventRepo enables analysis event persistence.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// WithSnapshotRepo enables profile snapshot persistence. The latest
// stored snapshot seeds the tracker's diff baseline after a restart.
func WithSnapshotRepo(repo store.SnapshotRepo) Option {
	return func(s *Service) { s.snapshots = repo }
}

// WithLogger sets the structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a Service with a fresh pattern tracker.
func NewService(client solvedac.Client, opts ...Option) *Service {
	s := &Service{
		client:    client,
		tracker:   pattern.NewTracker(),
		explainer: explain.NewTemplateExplainer(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tracker exposes the pattern tracker for surfaces that pre-warm it.
func (s *Service) Tracker() *pattern.Tracker {
	return s.tracker
}

// profile is the raw material every operation starts from.
type profile struct {
	user   *solvedac.User
	tags   []solvedac.TagStat
	levels []solvedac.LevelStat
}

// fetch retrieves user, tag and level stats concurrently. Any failing
// leg fails the whole fetch; callers surface the typed client error.
func (s *Service) fetch(ctx context.Context, handle string, withLevels bool) (*profile, error) {
	var p profile
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u, err := s.client.User(gctx, handle)
		if err != nil {
			return err
		}
		p.user = u
		return nil
	})
	g.Go(func() error {
		tags, err := s.client.TagStats(gctx, handle)
		if err != nil {
			return err
		}
		p.tags = tags
		return nil
	})
	if withLevels {
		g.Go(func() error {
			levels, err := s.client.LevelStats(gctx, handle)
			if err != nil {
				return err
			}
			p.levels = levels
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Analysis builds the full profile report.
func (s *Service) Analysis(ctx context.Context, handle string) (*Analysis, error) {
	start := time.Now()
	p, err := s.fetch(ctx, handle, true)
	if err != nil {
		return nil, err
	}

	agg := stats.DifficultySuccess(p.levels)
	weak := weakness.Identify(p.tags)
	perf := difficulty.Analyze(p.user.Tier, agg)

	a := &Analysis{
		User:        *p.user,
		Tier:        standing(p.user),
		TagSkills:   stats.TagAccuracies(p.tags),
		Difficulty:  agg,
		Activity:    stats.ActivityPattern(p.user),
		WeakTags:    weak,
		Performance: perf,
		Prediction:  predict.Predict(p.user, len(weak), perf.ReadyForNextLevel),
	}

	trend := pattern.TrendInsufficientData
	if pat, ok := s.tracker.Get(handle); ok {
		trend = pat.Performance.Trend
	}
	msg, err := s.explainer.Explain(ctx, explain.Summary{
		User:     p.user,
		WeakTags: weak,
		Trend:    trend,
		Ready:    perf.ReadyForNextLevel,
	})
	if err == nil {
		a.Message = msg
	}

	s.record(ctx, "analysis", p.user, len(weak))
	s.log.Debug().Str("handle", handle).Dur("took", time.Since(start)).Msg("analysis complete")
	return a, nil
}

// Weakness builds the focused weak-area report.
func (s *Service) Weakness(ctx context.Context, handle string) (*WeaknessReport, error) {
	p, err := s.fetch(ctx, handle, false)
	if err != nil {
		return nil, err
	}

	weak := weakness.Identify(p.tags)
	r := &WeaknessReport{User: *p.user, WeakTags: weak}

	msg, err := s.explainer.Explain(ctx, explain.Summary{User: p.user, WeakTags: weak})
	if err == nil {
		r.Message = msg
	}

	s.record(ctx, "weakness", p.user, len(weak))
	return r, nil
}

// Progress records a fresh snapshot and returns the tracked pattern
// alongside the user's strength, growth and difficulty picture.
func (s *Service) Progress(ctx context.Context, handle string) (*ProgressReport, error) {
	p, err := s.fetch(ctx, handle, true)
	if err != nil {
		return nil, err
	}

	pat, known := s.track(ctx, handle, p)

	s.record(ctx, "progress", p.user, 0)
	return &ProgressReport{
		User:         *p.user,
		Pattern:      pat,
		Strengths:    stats.Strengths(p.tags),
		Improvements: stats.Improvements(p.tags),
		Difficulty:   stats.DifficultySuccess(p.levels),
		Activity:     stats.ActivityPattern(p.user),
		First:        !known,
	}, nil
}

// Recommendations runs a fresh tracker update and generates the
// adaptive study plan from the refreshed pattern, so repeated calls
// accumulate history and the weights react to trend and momentum.
func (s *Service) Recommendations(ctx context.Context, handle string, wctx weights.Context) (*RecommendationReport, error) {
	p, err := s.fetch(ctx, handle, true)
	if err != nil {
		return nil, err
	}

	agg := stats.DifficultySuccess(p.levels)
	weak := weakness.Identify(p.tags)
	perf := difficulty.Analyze(p.user.Tier, agg)

	pat, _ := s.track(ctx, handle, p)
	w := weights.Calculate(&pat.Performance, wctx)

	set := recommend.Generate(recommend.Input{
		User:       p.user,
		WeakTags:   weak,
		Difficulty: perf,
		Pattern:    &pat,
		Weights:    w,
	})
	recommend.Enrich(set, wctx)

	msg, err := s.explainer.Explain(ctx, explain.Summary{
		User:     p.user,
		WeakTags: weak,
		Trend:    pat.Performance.Trend,
		Ready:    perf.ReadyForNextLevel,
	})
	if err == nil {
		set.PersonalizedMessage = msg
	}

	s.record(ctx, "recommendations", p.user, len(weak))
	return &RecommendationReport{
		User:     *p.user,
		Set:      *set,
		WeakTags: weak,
		Adaptive: set.Adaptive,
	}, nil
}

// Prediction estimates when the user reaches the next tier.
func (s *Service) Prediction(ctx context.Context, handle string) (*PredictionReport, error) {
	p, err := s.fetch(ctx, handle, true)
	if err != nil {
		return nil, err
	}

	agg := stats.DifficultySuccess(p.levels)
	weak := weakness.Identify(p.tags)
	perf := difficulty.Analyze(p.user.Tier, agg)

	pred := predict.Predict(p.user, len(weak), perf.ReadyForNextLevel)

	s.record(ctx, "prediction", p.user, len(weak))
	return &PredictionReport{User: *p.user, Prediction: pred}, nil
}

func standing(u *solvedac.User) TierStanding {
	next := tier.Threshold(u.Tier + 1)
	toNext := next - u.Rating
	if toNext < 0 {
		toNext = 0
	}
	return TierStanding{
		Name:         tier.Name(u.Tier),
		NextName:     tier.Name(u.Tier + 1),
		Progress:     tier.Progress(u.Rating, u.Tier),
		RatingToNext: toNext,
	}
}

// track applies a fresh tracker update for the handle and persists
// the new snapshot. An unknown handle is first seeded from the latest
// stored snapshot so the update can diff against a pre-restart
// baseline. The second return reports whether the handle was known
// before this call.
func (s *Service) track(ctx context.Context, handle string, p *profile) (pattern.Pattern, bool) {
	_, known := s.tracker.Get(handle)
	if !known && s.snapshots != nil {
		if prev, err := s.snapshots.Latest(ctx, handle); err == nil && prev != nil {
			s.tracker.Seed(handle, &prev.User, prev.TakenAt)
			known = true
		}
	}
	pat := s.tracker.Update(handle, p.user, p.tags)
	s.saveSnapshot(ctx, handle, p.user)
	return pat, known
}

// snapshotKeep bounds stored snapshots per handle.
const snapshotKeep = 10

// saveSnapshot persists the fresh profile and prunes old entries,
// logging rather than failing when the store is unavailable.
func (s *Service) saveSnapshot(ctx context.Context, handle string, u *solvedac.User) {
	if s.snapshots == nil {
		return
	}
	snap := &store.Snapshot{Handle: handle, TakenAt: time.Now(), User: *u}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.log.Warn().Err(err).Str("handle", handle).Msg("save snapshot")
		return
	}
	if err := s.snapshots.Prune(ctx, handle, snapshotKeep); err != nil {
		s.log.Warn().Err(err).Str("handle", handle).Msg("prune snapshots")
	}
}

// record persists an analysis event, logging rather than failing when
// the store is unavailable.
func (s *Service) record(ctx context.Context, op string, u *solvedac.User, weakCount int) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnalysis(ctx, store.AnalysisEventData{
		Handle:       u.Handle,
		Operation:    op,
		Tier:         u.Tier,
		Rating:       u.Rating,
		WeakTagCount: weakCount,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("operation", op).Msg("record analysis event")
	}
}
