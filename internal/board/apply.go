package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/types"
)

// ApplyForm drives the candidate application form for one job. Name and email
// come from the session and are read-only; the candidate fills in the links
// and an optional cover note. Validation runs the same rules as the server,
// so an invalid form never produces a request.
type ApplyForm struct {
	api     API
	toaster *Toaster

	jobID   uuid.UUID
	session types.Session

	ResumeLink   string
	LinkedinURL  string
	PortfolioURL string
	Phone        string
	CoverNote    string

	fieldErrors map[string]string
	submitting  bool
	submitted   *types.Application
}

// NewApplyForm creates a form for the given job, prefilled from the session.
func NewApplyForm(api API, toaster *Toaster, jobID uuid.UUID, session types.Session) *ApplyForm {
	return &ApplyForm{api: api, toaster: toaster, jobID: jobID, session: session}
}

// Name returns the read-only applicant name from the session.
func (f *ApplyForm) Name() string { return f.session.Name }

// Email returns the read-only applicant email from the session.
func (f *ApplyForm) Email() string { return f.session.Email }

// request assembles the submission from the session identity and the form
// fields.
func (f *ApplyForm) request() *types.SubmitApplicationRequest {
	return &types.SubmitApplicationRequest{
		JobID:        f.jobID,
		Name:         f.session.Name,
		Email:        f.session.Email,
		Phone:        strings.TrimSpace(f.Phone),
		ResumeLink:   strings.TrimSpace(f.ResumeLink),
		LinkedinURL:  strings.TrimSpace(f.LinkedinURL),
		PortfolioURL: strings.TrimSpace(f.PortfolioURL),
		CoverNote:    f.CoverNote,
	}
}

var fieldValidator = validator.New()

// Validate checks the form and records per-field messages. The rules match
// the server's exactly, so a form that passes here is never rejected for
// validation reasons. It returns true when the form may be submitted.
func (f *ApplyForm) Validate() bool {
	f.fieldErrors = map[string]string{}
	req := f.request()

	if req.ResumeLink == "" {
		f.fieldErrors["resume_link"] = "Resume link is required"
	} else if fieldValidator.Var(req.ResumeLink, "url") != nil {
		f.fieldErrors["resume_link"] = "Resume link must be a valid URL"
	}
	if req.LinkedinURL != "" && fieldValidator.Var(req.LinkedinURL, "url") != nil {
		f.fieldErrors["linkedin_url"] = "LinkedIn URL must be a valid URL"
	}
	if req.PortfolioURL != "" && fieldValidator.Var(req.PortfolioURL, "url") != nil {
		f.fieldErrors["portfolio_url"] = "Portfolio URL must be a valid URL"
	}
	if note := strings.TrimSpace(req.CoverNote); note != "" && len(note) < types.MinCoverNoteLen {
		f.fieldErrors["cover_note"] = fmt.Sprintf(
			"Cover note must be at least %d characters", types.MinCoverNoteLen)
	}
	return len(f.fieldErrors) == 0
}

// FieldErrors returns the messages from the last Validate call, keyed by
// field name.
func (f *ApplyForm) FieldErrors() map[string]string { return f.fieldErrors }

// Submitting reports whether a submission is in flight. The submit control
// stays disabled while true, so double clicks cannot double-apply.
func (f *ApplyForm) Submitting() bool { return f.submitting }

// Submitted returns the recorded application after a successful submission.
func (f *ApplyForm) Submitted() *types.Application { return f.submitted }

// Submit validates and sends the application. An invalid form returns false
// without any network traffic. A duplicate submission surfaces the server's
// conflict message.
func (f *ApplyForm) Submit(ctx context.Context) (bool, error) {
	if f.submitting || f.submitted != nil {
		return false, nil
	}
	if !f.Validate() {
		return false, nil
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	app, err := f.api.SubmitApplication(ctx, f.request())
	if err != nil {
		f.toaster.Error(errorMessage(err))
		return false, err
	}

	f.submitted = app
	f.toaster.Success("Application submitted")
	return true, nil
}
