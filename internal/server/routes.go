// internal/server/routes.go
package server

import (
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"speech-scorer/internal/common/config"
	"speech-scorer/internal/common/database"
	"speech-scorer/internal/common/errors"
	"speech-scorer/internal/common/logger"
	"speech-scorer/internal/common/metrics"
	"speech-scorer/internal/common/observability"
	"speech-scorer/internal/rubric"
	"speech-scorer/internal/scoring"
)

// Transcript character bounds enforced at the transport boundary; word count
// bounds are enforced inside the scorer.
const (
	minTranscriptChars = 10
	maxTranscriptChars = 5000
)

type Server struct {
	cfg    *config.Config
	scorer *scoring.Scorer
	rubric rubric.Provider
	redis  *database.RedisClient // nil when the redis cache is disabled
	obs    *observability.Observability
	logger logger.Logger
}

func New(cfg *config.Config, scorer *scoring.Scorer, rubricProvider rubric.Provider,
	redis *database.RedisClient, obs *observability.Observability, log logger.Logger) *http.Server {

	s := &Server{
		cfg:    cfg,
		scorer: scorer,
		rubric: rubricProvider,
		redis:  redis,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "http"}),
	}

	r := chi.NewRouter()
	r.Use(m.RealIP, m.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.root)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", s.scoreTranscript)
		r.Get("/rubric", s.getRubric)
	})
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}
}

type scoreRequest struct {
	Transcript string `json:"transcript"`
}

type errResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// root is the health/info endpoint.
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"message": "AI Communication Scoring API",
		"version": s.cfg.App.Version,
	})
}

func (s *Server) scoreTranscript(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordRequest(r, start, "bad_request")
		writeJSON(w, http.StatusBadRequest, errResp{"invalid request body: " + err.Error()})
		return
	}

	if chars := utf8.RuneCountInString(req.Transcript); chars < minTranscriptChars || chars > maxTranscriptChars {
		s.recordRequest(r, start, "bad_request")
		writeJSON(w, http.StatusBadRequest, errResp{"transcript must be between 10 and 5000 characters"})
		return
	}

	result, err := s.scorer.Score(r.Context(), req.Transcript)
	if err != nil {
		stdErr := errors.AsStandardError(err)
		status := stdErr.HTTPStatus()
		outcome := "bad_request"
		if status >= 500 {
			outcome = "error"
			s.logger.WithError(err).Error("error scoring transcript", map[string]interface{}{
				"requestId": requestIDFrom(r),
			})
		}
		s.recordRequest(r, start, outcome)
		writeJSON(w, status, errResp{stdErr.ClientMessage()})
		return
	}

	s.logger.Info("scored transcript", map[string]interface{}{
		"requestId":    requestIDFrom(r),
		"totalWords":   result.TotalWords,
		"overallScore": result.OverallScore,
	})
	s.recordRequest(r, start, "ok")
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getRubric(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rubric": s.rubric.Rubric(),
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "redis error"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) recordRequest(r *http.Request, start time.Time, status string) {
	duration := time.Since(start)
	metrics.ScoringRequestsTotal.WithLabelValues(status).Inc()
	metrics.ScoringRequestDuration.Observe(duration.Seconds())
	if s.obs != nil {
		s.obs.RecordRequestProcessed(r.Context(), status)
		s.obs.RecordRequestDuration(r.Context(), duration, status)
	}
}
