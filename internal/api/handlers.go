package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lottolab/powerpick/internal/lottery"
	"github.com/lottolab/powerpick/internal/prize"
	"github.com/lottolab/powerpick/internal/service"
	"github.com/lottolab/powerpick/internal/store"
	"github.com/lottolab/powerpick/pkg/common/logger"
)

const defaultDrawsLimit = 20

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	CachedDraws int       `json:"cached_draws"`
	LatestDraw  string    `json:"latest_draw,omitempty"`
}

type APIErrorResponse struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type DrawsResponse struct {
	Draws []lottery.Draw `json:"draws"`
	Count int            `json:"count"`
}

type OddsResponse struct {
	Overall string       `json:"overall"`
	Tiers   []prize.Tier `json:"tiers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
	}

	count, err := s.svc.Count()
	if err != nil {
		response.Status = "degraded"
	}
	response.CachedDraws = count

	if latest, err := s.svc.Latest(); err == nil {
		response.LatestDraw = latest.DateKey()
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleListDraws(w http.ResponseWriter, r *http.Request) {
	limit := defaultDrawsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		// Zero or below means the full history.
		limit = parsed
	}

	draws, err := s.svc.History(limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DrawsResponse{Draws: draws, Count: len(draws)})
}

func (s *Server) handleLatestDraw(w http.ResponseWriter, r *http.Request) {
	draw, err := s.svc.Latest()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draw)
}

func (s *Server) handleGetDraw(w http.ResponseWriter, r *http.Request) {
	draw, err := s.svc.DrawByDate(chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draw)
}

func (s *Server) handleJackpot(w http.ResponseWriter, r *http.Request) {
	jackpot, err := s.svc.Jackpot()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jackpot)
}

func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OddsResponse{
		Overall: "1 in " + prize.OverallOdds().String(),
		Tiers:   s.svc.Odds(),
	})
}

func (s *Server) handleGeneratePicks(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	batch := s.svc.GeneratePicks(req)
	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleCheckPick(w http.ResponseWriter, r *http.Request) {
	var req service.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := s.svc.CheckPick(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeServiceError maps service and store sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPick), errors.Is(err, service.ErrBadDrawDate):
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDrawNotFound), errors.Is(err, store.ErrNoDraws), errors.Is(err, store.ErrNoJackpot):
		writeErrorJSON(w, http.StatusNotFound, err.Error())
	default:
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "status", statusCode, "err", err)
	}
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIErrorResponse{
		Status:    "error",
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}
