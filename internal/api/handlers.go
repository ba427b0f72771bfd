package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/michael-h-patrianna/prizewheel-go/internal/prize"
	"github.com/michael-h-patrianna/prizewheel-go/internal/rng"
	"github.com/michael-h-patrianna/prizewheel-go/internal/store"
	"github.com/michael-h-patrianna/prizewheel-go/internal/wheel"
)

// resolveSeed applies the JSON boundary rule for seeds: a fractional value
// is floored, a non-finite one rejected. A nil pointer means "no override".
func resolveSeed(raw *float64) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	if math.IsNaN(*raw) || math.IsInf(*raw, 0) {
		return nil, WheelError{Type: ErrTypeInvalidSeed, Message: "seed must be a finite number"}
	}
	seed := int64(math.Floor(*raw))
	return &seed, nil
}

// handleCreateSession builds a new prize session and, when a store is
// configured, records it for later replay.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	seed, err := resolveSeed(req.Seed)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidSeed, err.Error(), nil)
		return
	}

	sess, err := s.provider.Load(prize.Options{Count: req.Count, Seed: seed})
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	if s.db != nil {
		if err := s.db.SaveSession(sess); err != nil {
			s.errorHandler.HandleError(w, r, err)
			return
		}
	}

	s.logger.Printf(
		"session_created id=%s seed=%d count=%d winning_index=%d source=%s",
		sess.ID, sess.Seed, len(sess.Prizes), sess.WinningIndex, sess.Source,
	)

	s.writeJSON(w, http.StatusOK, SessionResponse{
		Session:       sess,
		Segments:      wheel.MapSegments(sess.Prizes),
		EngineVersion: EngineVersion,
	})
}

// handleReplaySession rebuilds a round from its count and seed without
// touching the store. Replay of a stored session uses its recorded seed.
func (s *Server) handleReplaySession(w http.ResponseWriter, r *http.Request) {
	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	sess, err := s.provider.Load(prize.Options{Count: req.Count, Seed: &req.Seed})
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SessionResponse{
		Session:       sess,
		Segments:      wheel.MapSegments(sess.Prizes),
		EngineVersion: EngineVersion,
	})
}

// handleGetSession fetches a stored session by id.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "session store not configured", nil)
		return
	}

	stored, err := s.db.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SessionResponse{
		Session:       &stored.Session,
		Segments:      wheel.MapSegments(stored.Prizes),
		EngineVersion: EngineVersion,
	})
}

// handleGetSegments returns only the wedge mapping for a stored session.
func (s *Server) handleGetSegments(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "session store not configured", nil)
		return
	}

	stored, err := s.db.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SegmentsResponse{
		SessionID:     stored.ID,
		Segments:      wheel.MapSegments(stored.Prizes),
		EngineVersion: EngineVersion,
	})
}

// handleListSessions returns a page of stored sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeJSON(w, http.StatusOK, SessionsResponse{
			SessionsList:  store.SessionsList{Sessions: []store.StoredSession{}, Page: 1, PerPage: 25},
			EngineVersion: EngineVersion,
		})
		return
	}

	query := store.SessionsQuery{
		Source:  r.URL.Query().Get("source"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "perPage", 25),
	}

	list, err := s.db.ListSessions(query)
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SessionsResponse{
		SessionsList:  *list,
		EngineVersion: EngineVersion,
	})
}

// handleSpinPlan computes the rotation path landing the requested segment.
func (s *Server) handleSpinPlan(w http.ResponseWriter, r *http.Request) {
	var req SpinPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if req.SegmentCount < prize.MinCount || req.SegmentCount > prize.MaxCount {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "segment count out of range", map[string]any{
			"segment_count": req.SegmentCount,
			"min":           prize.MinCount,
			"max":           prize.MaxCount,
		})
		return
	}
	if err := prize.ValidateWinningIndex(req.SegmentCount, req.WinningIndex); err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}
	if req.CurrentRotation < 0 || math.IsNaN(req.CurrentRotation) || math.IsInf(req.CurrentRotation, 0) {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "current rotation must be a non-negative finite angle", map[string]any{
			"current_rotation": req.CurrentRotation,
		})
		return
	}

	seedPtr, err := resolveSeed(req.Seed)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidSeed, err.Error(), nil)
		return
	}
	seed := rng.GenerateSeed()
	if seedPtr != nil {
		seed = *seedPtr
	}

	plan := wheel.ComputePlan(req.SegmentCount, req.WinningIndex, req.CurrentRotation, rng.New(seed), wheel.DefaultTiming())

	s.writeJSON(w, http.StatusOK, SpinPlanResponse{
		Plan:          plan,
		LandingIndex:  wheel.SegmentAt(plan.Target, req.SegmentCount),
		Seed:          seed,
		EngineVersion: EngineVersion,
	})
}

// handleHealth reports service health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbOK := s.db != nil
	if s.provider == nil || s.provider.PoolSize() < prize.MinCount {
		status = "unhealthy"
	}

	poolSize := 0
	if s.provider != nil {
		poolSize = s.provider.PoolSize()
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	s.writeJSON(w, code, HealthResponse{
		Status:        status,
		EngineVersion: EngineVersion,
		PoolSize:      poolSize,
		Database:      dbOK,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
