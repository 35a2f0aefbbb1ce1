package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mbenali/jobboard/internal/cache"
	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/types"
)

const (
	defaultJobsPerPage = 12
	homepageJobLimit   = 6
)

// parseQueryInt parses a query parameter as an int, falling back to def and
// clamping to max.
func parseQueryInt(r *http.Request, key string, def, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// parsePathUUID extracts the {id} path value as a UUID.
func parsePathUUID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func pagination(page, limit, total int) types.Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	return types.Pagination{Page: page, TotalPages: totalPages, Total: total}
}

// handleListJobs returns one page of postings. Search, category and type
// filtering all happen in the database.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	opts := db.ListJobsOptions{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
		Page:     parseQueryInt(r, "page", 1, 0),
		Limit:    parseQueryInt(r, "limit", defaultJobsPerPage, 50),
	}

	jobs, total, err := s.store.ListJobs(r.Context(), opts)
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []types.Job{}
	}

	s.successResponse(w, http.StatusOK, map[string]any{
		"jobs":       jobs,
		"pagination": pagination(opts.Page, opts.Limit, total),
	})
}

// handleFeaturedJobs returns the featured postings for the landing page,
// served from cache when warm.
func (s *Server) handleFeaturedJobs(w http.ResponseWriter, r *http.Request) {
	s.cachedJobList(w, r, cache.KeyFeaturedJobs, s.store.FeaturedJobs)
}

// handleLatestJobs returns the most recent postings for the landing page.
func (s *Server) handleLatestJobs(w http.ResponseWriter, r *http.Request) {
	s.cachedJobList(w, r, cache.KeyLatestJobs, s.store.LatestJobs)
}

func (s *Server) cachedJobList(w http.ResponseWriter, r *http.Request, key string,
	fetch func(ctx context.Context, limit int) ([]types.Job, error)) {

	var jobs []types.Job
	if err := s.cache.Get(r.Context(), key, &jobs); err != nil {
		var ferr error
		jobs, ferr = fetch(r.Context(), homepageJobLimit)
		if ferr != nil {
			s.logger.Error("failed to fetch jobs", zap.String("key", key), zap.Error(ferr))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch jobs")
			return
		}
		if err := s.cache.Set(r.Context(), key, jobs, 0); err != nil {
			s.logger.Warn("failed to cache jobs", zap.String("key", key), zap.Error(err))
		}
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	s.successResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleJobCategories returns posting counts per category.
func (s *Server) handleJobCategories(w http.ResponseWriter, r *http.Request) {
	var counts []types.CategoryCount
	if err := s.cache.Get(r.Context(), cache.KeyCategories, &counts); err != nil {
		var ferr error
		counts, ferr = s.store.CategoryCounts(r.Context())
		if ferr != nil {
			s.logger.Error("failed to count categories", zap.Error(ferr))
			s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		if err := s.cache.Set(r.Context(), cache.KeyCategories, counts, 0); err != nil {
			s.logger.Warn("failed to cache categories", zap.Error(err))
		}
	}
	if counts == nil {
		counts = []types.CategoryCount{}
	}
	s.successResponse(w, http.StatusOK, map[string]any{"categories": counts})
}

// handleGetJob returns a single posting and counts the view.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := parsePathUUID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJobAndCountView(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to get job", zap.String("job_id", jobID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.successResponse(w, http.StatusOK, map[string]any{"job": job})
}

// handleCreateJob creates a posting. Admin only, enforced by the router.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.CreateJob(r.Context(), &req)
	if err != nil {
		s.logger.Error("failed to create job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	s.invalidateJobCaches(r)
	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()), zap.String("title", job.Title))
	s.successResponse(w, http.StatusCreated, map[string]any{"job": job})
}

// handleToggleFeatured flips the featured flag of a posting.
func (s *Server) handleToggleFeatured(w http.ResponseWriter, r *http.Request) {
	jobID, err := parsePathUUID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.ToggleFeatured(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to toggle featured", zap.String("job_id", jobID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.invalidateJobCaches(r)
	s.successResponse(w, http.StatusOK, map[string]any{"job": job})
}

// handleDeleteJob removes a posting and, via cascade, its applications.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := parsePathUUID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := s.store.DeleteJob(r.Context(), jobID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.logger.Error("failed to delete job", zap.String("job_id", jobID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	s.invalidateJobCaches(r)
	s.logger.Info("job deleted", zap.String("job_id", jobID.String()))
	s.successResponse(w, http.StatusOK, map[string]any{"message": "Job deleted"})
}

// invalidateJobCaches drops the cached homepage and stats reads after any job
// mutation.
func (s *Server) invalidateJobCaches(r *http.Request) {
	if err := s.cache.Delete(r.Context(), cache.JobKeys...); err != nil {
		s.logger.Warn("failed to invalidate job caches", zap.Error(err))
	}
}
