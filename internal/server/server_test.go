package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/bojcoach/internal/coach"
	"github.com/abhisek/bojcoach/internal/solvedac"
)

func testServer(mock *solvedac.Mock) *Server {
	cfg := DefaultConfig()
	svc := coach.NewService(mock)
	return New(cfg, svc, zerolog.Nop())
}

func testMock() *solvedac.Mock {
	return &solvedac.Mock{
		Profile: &solvedac.User{Handle: "solver", Tier: 10, Rating: 720, SolvedCount: 400},
		Tags: []solvedac.TagStat{
			{Tag: "dp", Solved: 2, Tried: 10},
			{Tag: "implementation", Solved: 120, Tried: 140},
		},
		Levels: []solvedac.LevelStat{
			{Level: 10, Solved: 14, Tried: 16},
		},
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer(testMock()), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	rec := get(t, testServer(testMock()), "/api/user/solver/analysis")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body struct {
		Tier struct {
			Name string `json:"name"`
		} `json:"tier"`
		WeakTags []struct {
			Tag string `json:"tag"`
		} `json:"weakTags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Tier.Name != "Silver I" {
		t.Errorf("tier = %q, want Silver I", body.Tier.Name)
	}
	if len(body.WeakTags) != 1 || body.WeakTags[0].Tag != "dp" {
		t.Errorf("weak tags = %+v", body.WeakTags)
	}
}

func TestRecommendationsQueryParams(t *testing.T) {
	rec := get(t, testServer(testMock()), "/api/user/solver/recommendations?mood=frustrated&time=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var body struct {
		Recommendations struct {
			Immediate []struct {
				Type string `json:"type"`
			} `json:"immediate"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Recommendations.Immediate) == 0 ||
		body.Recommendations.Immediate[0].Type != "confidence_boost" {
		t.Errorf("immediate = %+v, want confidence_boost first", body.Recommendations.Immediate)
	}
}

func TestNotFoundMapsTo404(t *testing.T) {
	mock := testMock()
	mock.Err = &solvedac.ErrNotFound{Handle: "ghost"}
	rec := get(t, testServer(mock), "/api/user/ghost/analysis")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRateLimitMapsTo429WithRetryAfter(t *testing.T) {
	mock := testMock()
	mock.Err = &solvedac.ErrRateLimited{RetryAfter: 90 * time.Second}
	rec := get(t, testServer(mock), "/api/user/solver/analysis")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "90" {
		t.Errorf("Retry-After = %q, want 90", got)
	}
}

func TestUnavailableMapsTo503(t *testing.T) {
	mock := testMock()
	mock.Err = &solvedac.ErrUnavailable{}
	rec := get(t, testServer(mock), "/api/user/solver/weakness")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	s := testServer(testMock())

	rec := get(t, s, "/healthz")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("generated request ID missing")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	echo := httptest.NewRecorder()
	s.Handler().ServeHTTP(echo, req)
	if got := echo.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("request ID = %q, want caller-id preserved", got)
	}
}

func TestPredictionEndpoint(t *testing.T) {
	rec := get(t, testServer(testMock()), "/api/user/solver/prediction")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var body struct {
		Prediction struct {
			NextTier string `json:"nextTier"`
		} `json:"prediction"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Prediction.NextTier != "Gold V" {
		t.Errorf("next tier = %q, want Gold V", body.Prediction.NextTier)
	}
}
