package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/bojcoach/internal/solvedac"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"` // seconds
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps client errors to status codes. Upstream rate limits
// and outages become 429/503 with a Retry-After hint.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound    *solvedac.ErrNotFound
		rateLimited *solvedac.ErrRateLimited
		unavailable *solvedac.ErrUnavailable
	)

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound.Error()})
	case errors.As(err, &rateLimited):
		secs := int(rateLimited.RetryAfter / time.Second)
		if secs < 1 {
			secs = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		writeJSON(w, http.StatusTooManyRequests, errorBody{
			Error:      "upstream rate limit reached",
			RetryAfter: secs,
		})
	case errors.As(err, &unavailable):
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{
			Error:      "judge data temporarily unavailable",
			RetryAfter: 30,
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: "request timed out"})
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
