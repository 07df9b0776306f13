package store

import (
	"context"
	"time"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	From   time.Time // created_at >= From
	To     time.Time // created_at <= To
}

// AnalysisEventData records one completed analysis request.
type AnalysisEventData struct {
	Handle       string
	Operation    string
	Tier         int
	Rating       int
	WeakTagCount int
}

// AnalysisEvent is a stored analysis event.
type AnalysisEvent struct {
	Sequence  int64
	CreatedAt time.Time
	AnalysisEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	CreatedAt time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnalysis records a completed analysis operation.
	AppendAnalysis(ctx context.Context, data AnalysisEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAnalyses returns analysis events for a handle, newest first.
	RecentAnalyses(ctx context.Context, handle string, opts QueryOpts) ([]AnalysisEvent, error)

	// RecentLLMRequests returns LLM request events, newest first.
	RecentLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}

// Snapshot is a point-in-time capture of a user's judge profile, kept
// so the pattern tracker can warm-start across process restarts.
type Snapshot struct {
	ID       int
	Sequence int64
	Handle   string
	TakenAt  time.Time
	User     solvedac.User
}

// SnapshotRepo manages per-handle profile snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot for the handle.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the handle's most recent snapshot, or nil.
	Latest(ctx context.Context, handle string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots per handle.
	Prune(ctx context.Context, handle string, keep int) error
}
