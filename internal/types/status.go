// Package types provides type definitions for structured data used throughout the job board system.
package types

// Status represents the review state of an application.
type Status string

// Application statuses. Every application starts as StatusPending; admins may
// relabel an application to any of the five statuses at any time. There is no
// enforced ordering between them — the pipeline order below is presentational.
const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// Statuses lists every valid application status in pipeline order,
// with the terminal failure state last.
var Statuses = []Status{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusHired,
	StatusRejected,
}

// TimelineSteps is the success path shown on the candidate's status timeline.
// A rejected application branches off the timeline instead of progressing.
var TimelineSteps = []Status{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusHired,
}

// IsValid reports whether s is one of the five defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Terminal reports whether s is an end state on the candidate timeline.
// Terminal is presentational only: an admin may still relabel the application.
func (s Status) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// TimelineIndex returns the position of s on the success timeline, or -1 for
// rejected (which branches off) and unknown values.
func (s Status) TimelineIndex() int {
	for i, step := range TimelineSteps {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Status) String() string {
	return string(s)
}
