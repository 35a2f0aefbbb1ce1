package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobType represents the employment arrangement of a posting.
type JobType string

// Job types offered on the board.
const (
	JobTypeFullTime   JobType = "Full Time"
	JobTypePartTime   JobType = "Part Time"
	JobTypeRemote     JobType = "Remote"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
)

// JobTypes lists every valid job type.
var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeRemote,
	JobTypeInternship,
	JobTypeContract,
}

// IsValid reports whether t is one of the defined job types.
func (t JobType) IsValid() bool {
	for _, jt := range JobTypes {
		if jt == t {
			return true
		}
	}
	return false
}

// Categories is the fixed category vocabulary for postings.
var Categories = []string{
	"Design",
	"Engineering",
	"Marketing",
	"Technology",
	"Business",
	"Finance",
	"Human Resource",
	"Sales",
	"Customer Service",
	"Operations",
}

// Tags is the fixed tag vocabulary jobs may be labeled with.
var Tags = []string{
	"Design",
	"Marketing",
	"Developer",
	"Technology",
	"Business",
	"Finance",
	"Management",
	"Sales",
	"Remote",
	"Startup",
}

// Currencies accepted for salary ranges.
var Currencies = []string{"USD", "EUR", "GBP", "CHF", "CAD", "AUD"}

// Job represents a posting on the board.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Category       string    `json:"category"`
	Type           JobType   `json:"type"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"`
	SalaryMin      *int      `json:"salary_min,omitempty"`
	SalaryMax      *int      `json:"salary_max,omitempty"`
	SalaryCurrency string    `json:"salary_currency,omitempty"`
	Tags           []string  `json:"tags"`
	LogoURL        string    `json:"logo_url,omitempty"`
	IsFeatured     bool      `json:"is_featured"`
	Views          int       `json:"views"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateJobRequest represents the admin request to create a posting.
type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,min=1"`
	Company        string   `json:"company" validate:"required,min=1"`
	Location       string   `json:"location" validate:"required,min=1"`
	Category       string   `json:"category" validate:"required"`
	Type           JobType  `json:"type" validate:"required"`
	Description    string   `json:"description" validate:"required,min=50"`
	Requirements   []string `json:"requirements,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty"`
	SalaryMax      *int     `json:"salary_max,omitempty"`
	SalaryCurrency string   `json:"salary_currency,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	LogoURL        string   `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// Validate checks the request against the board's posting rules: required
// fields, description length, fixed vocabularies, and a coherent salary range.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	if !r.Type.IsValid() {
		return fmt.Errorf("invalid job type: %q", r.Type)
	}
	if !contains(Categories, r.Category) {
		return fmt.Errorf("invalid category: %q", r.Category)
	}
	for _, tag := range r.Tags {
		if !contains(Tags, tag) {
			return fmt.Errorf("invalid tag: %q", tag)
		}
	}
	if r.SalaryCurrency != "" && !contains(Currencies, r.SalaryCurrency) {
		return fmt.Errorf("invalid salary currency: %q", r.SalaryCurrency)
	}
	if r.SalaryMin != nil && *r.SalaryMin < 0 {
		return fmt.Errorf("salary_min must be non-negative")
	}
	if r.SalaryMax != nil && *r.SalaryMax < 0 {
		return fmt.Errorf("salary_max must be non-negative")
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMin > *r.SalaryMax {
		return fmt.Errorf("salary_min cannot exceed salary_max")
	}
	return nil
}

// CategoryCount pairs a category with the number of open postings in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Pagination describes one page of a server-paginated listing.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
