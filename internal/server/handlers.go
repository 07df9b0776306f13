package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/bojcoach/internal/weights"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.coach.Analysis(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleWeakness(w http.ResponseWriter, r *http.Request) {
	rep, err := s.coach.Weakness(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	rep, err := s.coach.Progress(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	rep, err := s.coach.Recommendations(r.Context(), chi.URLParam(r, "handle"), contextFromQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	rep, err := s.coach.Prediction(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// contextFromQuery reads the optional personalization parameters.
// Unknown or malformed values degrade to the zero value rather than
// failing the request.
func contextFromQuery(r *http.Request) weights.Context {
	q := r.URL.Query()
	ctx := weights.Context{
		Urgency: q.Get("urgency"),
		Focus:   q.Get("focus"),
		Mood:    q.Get("mood"),
	}
	if t := q.Get("time"); t != "" {
		if n, err := strconv.Atoi(t); err == nil && n > 0 {
			ctx.TimeAvailableMinutes = n
		}
	}
	return ctx
}
