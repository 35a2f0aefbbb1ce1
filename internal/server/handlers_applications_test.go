package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenali/jobboard/internal/db"
	"github.com/mbenali/jobboard/internal/types"
)

func validApplicationPayload(jobID uuid.UUID) map[string]any {
	return map[string]any{
		"job_id":      jobID.String(),
		"resume_link": "https://example.com/resume.pdf",
	}
}

func TestSubmitApplication_UsesSessionIdentity(t *testing.T) {
	var got *types.SubmitApplicationRequest
	store := &mockStore{
		createApplicationFunc: func(_ context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
			got = req
			return &types.Application{ID: uuid.New(), JobID: req.JobID, Name: req.Name,
				Email: req.Email, Status: types.StatusPending}, nil
		},
	}
	s := newTestServer(t, store)
	token := tokenFor(t, s, uuid.New(), "Sam Carter", "sam@example.com", types.RoleUser)

	payload := validApplicationPayload(uuid.New())
	// body identity must be ignored in favor of the session
	payload["name"] = "Someone Else"
	payload["email"] = "spoofed@example.com"

	rec := doRequest(t, s, http.MethodPost, "/api/applications", token, payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Sam Carter", got.Name)
	assert.Equal(t, "sam@example.com", got.Email)

	app, ok := decodeBody(t, rec)["application"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pending", app["status"])
}

func TestSubmitApplication_InvalidResumeLinkNeverReachesStore(t *testing.T) {
	store := &mockStore{
		createApplicationFunc: func(context.Context, *types.SubmitApplicationRequest) (*types.Application, error) {
			t.Fatal("store must not be reached for an invalid resume link")
			return nil, nil
		},
	}
	s := newTestServer(t, store)
	token := tokenFor(t, s, uuid.New(), "Sam Carter", "sam@example.com", types.RoleUser)

	payload := validApplicationPayload(uuid.New())
	payload["resume_link"] = "not-a-url"
	rec := doRequest(t, s, http.MethodPost, "/api/applications", token, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestSubmitApplication_CoverNoteLength(t *testing.T) {
	tests := []struct {
		name      string
		coverNote string
		wantCode  int
	}{
		{"absent is fine", "", http.StatusCreated},
		{"nine characters rejected", "nine char", http.StatusBadRequest},
		{"exactly ten accepted", "ten chars!", http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &mockStore{})
			token := tokenFor(t, s, uuid.New(), "Sam Carter", "sam@example.com", types.RoleUser)

			payload := validApplicationPayload(uuid.New())
			if tt.coverNote != "" {
				payload["cover_note"] = tt.coverNote
			}
			rec := doRequest(t, s, http.MethodPost, "/api/applications", token, payload)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestSubmitApplication_DuplicateIsConflict(t *testing.T) {
	store := &mockStore{
		createApplicationFunc: func(context.Context, *types.SubmitApplicationRequest) (*types.Application, error) {
			return nil, db.ErrDuplicateApplication
		},
	}
	s := newTestServer(t, store)
	token := tokenFor(t, s, uuid.New(), "Sam Carter", "sam@example.com", types.RoleUser)

	rec := doRequest(t, s, http.MethodPost, "/api/applications", token,
		validApplicationPayload(uuid.New()))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You have already applied to this job", decodeBody(t, rec)["message"])
}

func TestListApplications_FilterAndPagination(t *testing.T) {
	var got db.ListApplicationsOptions
	store := &mockStore{
		listApplicationsFunc: func(_ context.Context, opts db.ListApplicationsOptions) ([]types.Application, int, error) {
			got = opts
			return []types.Application{{ID: uuid.New(), Status: types.StatusShortlisted}}, 1, nil
		},
	}
	s := newTestServer(t, store)
	adminToken := tokenFor(t, s, uuid.New(), "Admin", "admin@example.com", types.RoleAdmin)

	rec := doRequest(t, s, http.MethodGet,
		"/api/applications?status=shortlisted&search=sam&page=3", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.Status("shortlisted"), got.Status)
	assert.Equal(t, "sam", got.Search)
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, defaultApplicationsPerPage, got.Limit)
}

func TestListApplications_RejectsUnknownStatus(t *testing.T) {
	s := newTestServer(t, &mockStore{})
	adminToken := tokenFor(t, s, uuid.New(), "Admin", "admin@example.com", types.RoleAdmin)

	rec := doRequest(t, s, http.MethodGet, "/api/applications?status=archived", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyApplications_ScopedToSessionEmail(t *testing.T) {
	var gotEmail string
	store := &mockStore{
		listApplicationsByEmailFunc: func(_ context.Context, email string) ([]types.Application, error) {
			gotEmail = email
			return []types.Application{{ID: uuid.New(), Email: email, Status: types.StatusReviewed}}, nil
		},
	}
	s := newTestServer(t, store)
	token := tokenFor(t, s, uuid.New(), "Sam Carter", "sam@example.com", types.RoleUser)

	rec := doRequest(t, s, http.MethodGet, "/api/applications/my?email=other@example.com", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sam@example.com", gotEmail, "listing must ignore any email in the query")
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	appID := uuid.New()
	store := &mockStore{
		updateStatusFunc: func(_ context.Context, id uuid.UUID, status types.Status) (*types.Application, error) {
			return &types.Application{ID: id, Status: status}, nil
		},
	}
	s := newTestServer(t, store)
	adminToken := tokenFor(t, s, uuid.New(), "Admin", "admin@example.com", types.RoleAdmin)

	// hired back to pending is legal; reviewers undo mistakes this way
	for _, status := range []types.Status{types.StatusHired, types.StatusPending, types.StatusRejected} {
		rec := doRequest(t, s, http.MethodPatch,
			fmt.Sprintf("/api/applications/%s/status", appID), adminToken,
			map[string]any{"status": string(status)})

		require.Equal(t, http.StatusOK, rec.Code)
		app, ok := decodeBody(t, rec)["application"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, string(status), app["status"])
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	s := newTestServer(t, &mockStore{})
	adminToken := tokenFor(t, s, uuid.New(), "Admin", "admin@example.com", types.RoleAdmin)

	rec := doRequest(t, s, http.MethodPatch,
		fmt.Sprintf("/api/applications/%s/status", uuid.New()), adminToken,
		map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	s := newTestServer(t, &mockStore{})
	adminToken := tokenFor(t, s, uuid.New(), "Admin", "admin@example.com", types.RoleAdmin)

	rec := doRequest(t, s, http.MethodPatch,
		fmt.Sprintf("/api/applications/%s/status", uuid.New()), adminToken,
		map[string]any{"status": "reviewed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
