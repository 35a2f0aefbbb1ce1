package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/server/middleware"
	"github.com/mbenali/jobboard/internal/types"
)

const defaultApplicationsPerPage = 15

// handleSubmitApplication records a candidate's application. The applicant
// identity always comes from the session, never from the request body.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = session.Name
	req.Email = session.Email
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := s.store.CreateApplication(r.Context(), &req)
	if err != nil {
		s.serviceError(w, err, "Failed to submit application")
		return
	}

	s.invalidateJobCaches(r)
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", app.JobID.String()))
	s.successResponse(w, http.StatusCreated, map[string]any{"application": app})
}

// handleListApplications returns one page of applications for review, with
// optional status filter and free-text search. Admin only.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !types.Status(status).IsValid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	opts := db.ListApplicationsOptions{
		Status: types.Status(status),
		Search: r.URL.Query().Get("search"),
		Page:   parseQueryInt(r, "page", 1, 0),
		Limit:  parseQueryInt(r, "limit", defaultApplicationsPerPage, 50),
	}

	apps, total, err := s.store.ListApplications(r.Context(), opts)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if apps == nil {
		apps = []types.Application{}
	}

	s.successResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"pagination":   pagination(opts.Page, opts.Limit, total),
	})
}

// handleMyApplications returns the caller's own applications. The email is
// forced to the session's, so a candidate can never read someone else's.
func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	apps, err := s.store.ListApplicationsByEmail(r.Context(), session.Email)
	if err != nil {
		s.logger.Error("failed to list applications", zap.String("email", session.Email), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if apps == nil {
		apps = []types.Application{}
	}

	s.successResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

// handleUpdateStatus moves an application to any workflow status. Transitions
// are unconstrained on purpose: reviewers correct mistakes by moving back.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appID, err := parsePathUUID(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := s.store.UpdateApplicationStatus(r.Context(), appID, req.Status)
	if err != nil {
		s.logger.Error("failed to update status",
			zap.String("application_id", appID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update application")
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	s.invalidateJobCaches(r)
	s.logger.Info("application status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(app.Status)))
	s.successResponse(w, http.StatusOK, map[string]any{"application": app})
}
