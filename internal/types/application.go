package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Application represents a candidate's application to a single job.
// The job reference is always present; JobTitle and Company are denormalized
// from the posting for list and drawer views.
type Application struct {
	ID           uuid.UUID `json:"id"`
	JobID        uuid.UUID `json:"job_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	ResumeLink   string    `json:"resume_link"`
	LinkedinURL  string    `json:"linkedin_url,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	CoverNote    string    `json:"cover_note,omitempty"`
	Status       Status    `json:"status"`
	JobTitle     string    `json:"job_title,omitempty"`
	Company      string    `json:"company,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmitApplicationRequest represents a candidate's application submission.
// Name and email come from the session identity and are required; the resume
// link must be a URL, the profile links must be URLs when present, and the
// cover note is optional but meaningful when given.
type SubmitApplicationRequest struct {
	JobID        uuid.UUID `json:"job_id" validate:"required"`
	Name         string    `json:"name" validate:"required,min=1"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone,omitempty"`
	ResumeLink   string    `json:"resume_link" validate:"required,url"`
	LinkedinURL  string    `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	PortfolioURL string    `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	CoverNote    string    `json:"cover_note,omitempty"`
}

// MinCoverNoteLen is the minimum length of a cover note when one is provided.
const MinCoverNoteLen = 10

// Validate checks the submission. An empty cover note is fine; a non-empty
// one must carry at least MinCoverNoteLen characters after trimming.
func (r *SubmitApplicationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if note := strings.TrimSpace(r.CoverNote); note != "" && len(note) < MinCoverNoteLen {
		return fmt.Errorf("cover_note must be at least %d characters", MinCoverNoteLen)
	}
	return nil
}

// UpdateStatusRequest represents an admin relabeling an application.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// Validate ensures the target status is one of the five defined values.
func (r *UpdateStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("invalid status: %q", r.Status)
	}
	return nil
}
