package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mbenali/jobboard/internal/cache"
	"github.com/mbenali/jobboard/internal/types"
)

const (
	defaultGrowthDays = 30
	maxGrowthDays     = 365
)

// handleStats returns the dashboard headline numbers. The result is cached
// and invalidated on every job or application mutation.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var stats types.Stats
	if err := s.cache.Get(r.Context(), cache.KeyStats, &stats); err != nil {
		fresh, ferr := s.store.Stats(r.Context())
		if ferr != nil {
			s.logger.Error("failed to compute stats", zap.Error(ferr))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch stats")
			return
		}
		stats = *fresh
		if err := s.cache.Set(r.Context(), cache.KeyStats, stats, 0); err != nil {
			s.logger.Warn("failed to cache stats", zap.Error(err))
		}
	}
	s.successResponse(w, http.StatusOK, map[string]any{"stats": stats})
}

// handleGrowth returns daily job and application counts for charting.
func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	days := parseQueryInt(r, "days", defaultGrowthDays, maxGrowthDays)

	growth, err := s.store.Growth(r.Context(), days)
	if err != nil {
		s.logger.Error("failed to compute growth", zap.Int("days", days), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch growth data")
		return
	}

	s.successResponse(w, http.StatusOK, map[string]any{
		"jobGrowth":         growth.JobGrowth,
		"applicationGrowth": growth.ApplicationGrowth,
	})
}
