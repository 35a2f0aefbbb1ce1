package board

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/types"
)

func candidateSession() types.Session {
	return types.Session{
		UserID: uuid.New(),
		Name:   "Sam Carter",
		Email:  "sam@example.com",
		Role:   types.RoleUser,
	}
}

// newApplyForm builds a form whose API accepts everything. Tests that expect
// no traffic pass a bare mock instead.
func newApplyForm(t *testing.T, api *mockAPI) *ApplyForm {
	t.Helper()
	api.t = t
	return NewApplyForm(api, NewToaster(), uuid.New(), candidateSession())
}

func acceptingAPI() *mockAPI {
	return &mockAPI{
		submitApplicationFunc: func(_ context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
			return &types.Application{ID: uuid.New(), JobID: req.JobID, Name: req.Name,
				Email: req.Email, Status: types.StatusPending}, nil
		},
	}
}

func TestApplyForm_IdentityComesFromSession(t *testing.T) {
	var got *types.SubmitApplicationRequest
	api := &mockAPI{
		submitApplicationFunc: func(_ context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
			got = req
			return &types.Application{ID: uuid.New(), Status: types.StatusPending}, nil
		},
	}
	form := newApplyForm(t, api)
	form.ResumeLink = "https://example.com/resume.pdf"

	assert.Equal(t, "Sam Carter", form.Name())
	assert.Equal(t, "sam@example.com", form.Email())

	ok, err := form.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sam Carter", got.Name)
	assert.Equal(t, "sam@example.com", got.Email)
}

func TestApplyForm_InvalidResumeLinkSendsNothing(t *testing.T) {
	// submitApplicationFunc left nil: any network call fails the test
	form := newApplyForm(t, &mockAPI{})
	form.ResumeLink = "not a url"

	ok, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, form.FieldErrors()["resume_link"], "valid URL")
}

func TestApplyForm_ResumeLinkRequired(t *testing.T) {
	form := newApplyForm(t, &mockAPI{})

	ok, _ := form.Submit(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Resume link is required", form.FieldErrors()["resume_link"])
}

func TestApplyForm_CoverNoteLength(t *testing.T) {
	tests := []struct {
		name      string
		coverNote string
		wantOK    bool
	}{
		{"empty accepted", "", true},
		{"one character rejected", "x", false},
		{"nine characters rejected", "nine char", false},
		{"whitespace-padded short note rejected", "   short    ", false},
		{"exactly ten accepted", "ten chars!", true},
		{"long accepted", strings.Repeat("motivated ", 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var api *mockAPI
			if tt.wantOK {
				api = acceptingAPI()
			} else {
				api = &mockAPI{} // must stay silent
			}
			form := newApplyForm(t, api)
			form.ResumeLink = "https://example.com/resume.pdf"
			form.CoverNote = tt.coverNote

			ok, err := form.Submit(context.Background())
			if tt.wantOK {
				require.NoError(t, err)
				assert.True(t, ok)
			} else {
				assert.False(t, ok)
				assert.Contains(t, form.FieldErrors()["cover_note"], "at least 10")
			}
		})
	}
}

func TestApplyForm_OptionalURLsValidated(t *testing.T) {
	form := newApplyForm(t, &mockAPI{})
	form.ResumeLink = "https://example.com/resume.pdf"
	form.LinkedinURL = "linkedin-profile"
	form.PortfolioURL = "my portfolio"

	ok, _ := form.Submit(context.Background())
	assert.False(t, ok)
	assert.Contains(t, form.FieldErrors(), "linkedin_url")
	assert.Contains(t, form.FieldErrors(), "portfolio_url")
}

func TestApplyForm_SingleSubmission(t *testing.T) {
	calls := 0
	api := &mockAPI{
		submitApplicationFunc: func(_ context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
			calls++
			return &types.Application{ID: uuid.New(), Status: types.StatusPending}, nil
		},
	}
	form := newApplyForm(t, api)
	form.ResumeLink = "https://example.com/resume.pdf"

	ok, err := form.Submit(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	// the second click lands after success and must not re-apply
	ok, err = form.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestApplyForm_DuplicateSurfacesConflict(t *testing.T) {
	api := &mockAPI{
		submitApplicationFunc: func(context.Context, *types.SubmitApplicationRequest) (*types.Application, error) {
			return nil, &client.APIError{StatusCode: 409, Message: "You have already applied to this job"}
		},
	}
	toaster := NewToaster()
	form := NewApplyForm(api, toaster, uuid.New(), candidateSession())
	api.t = t
	form.ResumeLink = "https://example.com/resume.pdf"

	ok, err := form.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, form.Submitted(), "a rejected submission leaves the form open")

	active := toaster.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "You have already applied to this job", active[0].Message)
}
