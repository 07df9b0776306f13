// Package mcp exposes the coaching operations as MCP tools so LLM
// agents can pull live judge analysis into a conversation.
package mcp

import (
	"context"
	"fmt"
	"strings"

	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"

	"github.com/abhisek/bojcoach/internal/coach"
	"github.com/abhisek/bojcoach/internal/weights"
)

// Server wraps the MCP server around the coach service.
type Server struct {
	mcpServer *server.Server
	coach     *coach.Service
}

// NewServer creates the MCP server with all tools registered.
func NewServer(svc *coach.Service, version string) *Server {
	s := &Server{coach: svc}

	s.mcpServer = server.New(server.Info{
		Name:    "bojcoach",
		Version: version,
	}, server.WithInstructions(`
bojcoach analyzes Baekjoon Online Judge profiles through the solved.ac API.

Available tools:
- get_user_info: Basic profile (tier, rating, solved count)
- analyze_weakness: Weak algorithm tags with severity and study estimates
- track_progress: Record a snapshot and report deltas since the last one
- get_recommendations: Adaptive immediate / weekly / monthly study plan
- predict_tier: Estimated time to the next tier with blockers

Handles are solved.ac usernames. track_progress becomes more useful
once it has been called at least twice for the same handle.
`))

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("get_user_info").
		Description("Get a solved.ac user's tier, rating and solve counts.").
		Handler(s.handleUserInfo)

	s.mcpServer.Tool("analyze_weakness").
		Description("Identify the user's weakest algorithm tags with severity and time estimates.").
		Handler(s.handleWeakness)

	s.mcpServer.Tool("track_progress").
		Description("Record a progress snapshot and report rating and solve deltas.").
		Handler(s.handleProgress)

	s.mcpServer.Tool("get_recommendations").
		Description("Generate an adaptive study plan. Accepts optional mood, urgency, focus and available time.").
		Handler(s.handleRecommendations)

	s.mcpServer.Tool("predict_tier").
		Description("Predict when the user will reach the next tier, with blockers.").
		Handler(s.handlePredict)
}

// Input/Output types for tools

type HandleInput struct {
	Handle string `json:"handle" jsonschema:"description=solved.ac username"`
}

type UserInfoOutput struct {
	Handle      string `json:"handle"`
	Tier        string `json:"tier"`
	Rating      int    `json:"rating"`
	SolvedCount int    `json:"solved_count"`
	Progress    string `json:"progress"`
}

type WeakTagOutput struct {
	Tag           string  `json:"tag"`
	SuccessRate   float64 `json:"success_rate"`
	Tried         int     `json:"tried"`
	Severity      string  `json:"severity"`
	EstimatedTime string  `json:"estimated_time"`
}

type WeaknessOutput struct {
	Handle   string          `json:"handle"`
	WeakTags []WeakTagOutput `json:"weak_tags"`
	Message  string          `json:"message,omitempty"`
}

type TagAreaOutput struct {
	Tag         string  `json:"tag"`
	SuccessRate float64 `json:"success_rate"`
	Tried       int     `json:"tried"`
}

type ProgressOutput struct {
	Handle       string          `json:"handle"`
	First        bool            `json:"first_snapshot"`
	Trend        string          `json:"trend"`
	Momentum     float64         `json:"momentum"`
	RatingChange int             `json:"rating_change"`
	SolvedChange int             `json:"solved_change"`
	Strengths    []TagAreaOutput `json:"strengths,omitempty"`
	Improvements []TagAreaOutput `json:"improvements,omitempty"`
	Activity     string          `json:"activity"`
	Message      string          `json:"message"`
}

type RecommendationsInput struct {
	Handle  string `json:"handle" jsonschema:"description=solved.ac username"`
	Urgency string `json:"urgency,omitempty" jsonschema:"description=Urgency of improvement,enum=high,enum=medium,enum=low"`
	Focus   string `json:"focus,omitempty" jsonschema:"description=What to optimize for,enum=weakness,enum=tier_up,enum=general"`
	Mood    string `json:"mood,omitempty" jsonschema:"description=Current mood,enum=motivated,enum=neutral,enum=frustrated"`
	Minutes int    `json:"minutes,omitempty" jsonschema:"description=Minutes available to study today"`
}

type ActionOutput struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
	Time     string `json:"time"`
}

type RecommendationsOutput struct {
	Handle    string         `json:"handle"`
	Adaptive  bool           `json:"adaptive"`
	Immediate []ActionOutput `json:"immediate"`
	Weekly    []string       `json:"weekly"`
	Monthly   []string       `json:"monthly"`
	Reasoning []string       `json:"reasoning"`
	Message   string         `json:"message,omitempty"`
}

type PredictOutput struct {
	Handle          string   `json:"handle"`
	NextTier        string   `json:"next_tier"`
	Progress        float64  `json:"progress"`
	EstimatedTime   string   `json:"estimated_time"`
	Confidence      string   `json:"confidence"`
	Blockers        []string `json:"blockers,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// Tool handlers

func (s *Server) handleUserInfo(ctx context.Context, input HandleInput) (UserInfoOutput, error) {
	a, err := s.coach.Analysis(ctx, input.Handle)
	if err != nil {
		return UserInfoOutput{}, toolError(err)
	}
	return UserInfoOutput{
		Handle:      a.User.Handle,
		Tier:        a.Tier.Name,
		Rating:      a.User.Rating,
		SolvedCount: a.User.SolvedCount,
		Progress:    fmt.Sprintf("%.1f%% toward %s", a.Tier.Progress, a.Tier.NextName),
	}, nil
}

func (s *Server) handleWeakness(ctx context.Context, input HandleInput) (WeaknessOutput, error) {
	rep, err := s.coach.Weakness(ctx, input.Handle)
	if err != nil {
		return WeaknessOutput{}, toolError(err)
	}

	out := WeaknessOutput{Handle: rep.User.Handle, Message: rep.Message}
	for _, w := range rep.WeakTags {
		out.WeakTags = append(out.WeakTags, WeakTagOutput{
			Tag:           w.Tag,
			SuccessRate:   w.SuccessRate,
			Tried:         w.Tried,
			Severity:      string(w.Severity),
			EstimatedTime: w.EstimatedTime,
		})
	}
	return out, nil
}

func (s *Server) handleProgress(ctx context.Context, input HandleInput) (ProgressOutput, error) {
	rep, err := s.coach.Progress(ctx, input.Handle)
	if err != nil {
		return ProgressOutput{}, toolError(err)
	}

	out := ProgressOutput{
		Handle:   rep.User.Handle,
		First:    rep.First,
		Trend:    string(rep.Pattern.Performance.Trend),
		Momentum: rep.Pattern.Performance.Momentum,
		Activity: rep.Activity.Label,
	}
	for _, a := range rep.Strengths {
		out.Strengths = append(out.Strengths, TagAreaOutput{Tag: a.Tag, SuccessRate: a.SuccessRate, Tried: a.Tried})
	}
	for _, a := range rep.Improvements {
		out.Improvements = append(out.Improvements, TagAreaOutput{Tag: a.Tag, SuccessRate: a.SuccessRate, Tried: a.Tried})
	}
	if n := len(rep.Pattern.History); n > 0 {
		last := rep.Pattern.History[n-1]
		out.RatingChange = last.RatingChange
		out.SolvedChange = last.SolvedCountChange
	}
	if rep.First {
		out.Message = "First snapshot recorded. Call again later to see deltas."
	} else {
		out.Message = fmt.Sprintf("Since last snapshot: rating %+d, solved %+d.",
			out.RatingChange, out.SolvedChange)
	}
	return out, nil
}

func (s *Server) handleRecommendations(ctx context.Context, input RecommendationsInput) (RecommendationsOutput, error) {
	rep, err := s.coach.Recommendations(ctx, input.Handle, weights.Context{
		Urgency:              input.Urgency,
		Focus:                input.Focus,
		Mood:                 input.Mood,
		TimeAvailableMinutes: input.Minutes,
	})
	if err != nil {
		return RecommendationsOutput{}, toolError(err)
	}

	out := RecommendationsOutput{
		Handle:    rep.User.Handle,
		Adaptive:  rep.Adaptive,
		Reasoning: rep.Set.Reasoning,
		Message:   rep.Set.PersonalizedMessage,
	}
	for _, r := range rep.Set.Immediate {
		out.Immediate = append(out.Immediate, ActionOutput{
			Priority: string(r.Priority),
			Action:   r.Action,
			Reason:   r.Reason,
			Time:     r.EstimatedTime,
		})
	}
	for _, r := range rep.Set.ShortTerm {
		out.Weekly = append(out.Weekly, r.Goal)
	}
	for _, r := range rep.Set.LongTerm {
		switch r.Type {
		case "monthly_tier_goal":
			out.Monthly = append(out.Monthly,
				fmt.Sprintf("Reach %s (about %d rating)", r.TargetTier, r.EstimatedRatingGain))
		case "skill_development":
			out.Monthly = append(out.Monthly,
				fmt.Sprintf("Build up %s: %s", r.Area, strings.Join(r.LearningPath, ", ")))
		}
	}
	return out, nil
}

func (s *Server) handlePredict(ctx context.Context, input HandleInput) (PredictOutput, error) {
	rep, err := s.coach.Prediction(ctx, input.Handle)
	if err != nil {
		return PredictOutput{}, toolError(err)
	}
	return PredictOutput{
		Handle:          rep.User.Handle,
		NextTier:        rep.Prediction.NextTier,
		Progress:        rep.Prediction.CurrentProgress,
		EstimatedTime:   rep.Prediction.EstimatedTime,
		Confidence:      string(rep.Prediction.Confidence),
		Blockers:        rep.Prediction.Blockers,
		Recommendations: rep.Prediction.Recommendations,
	}, nil
}

// toolError flattens typed client errors into messages an agent can
// relay verbatim.
func toolError(err error) error {
	return fmt.Errorf("bojcoach: %w", err)
}

// ServeStdio starts the MCP server on stdio.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// MCPServer returns the underlying server for tests.
func (s *Server) MCPServer() *server.Server {
	return s.mcpServer
}
