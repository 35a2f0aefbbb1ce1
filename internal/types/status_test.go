package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	invalid := []Status{"", "Pending", "archived", "HIRED", "in-review"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "status %q should be invalid", s)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusHired.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusReviewed.Terminal())
	assert.False(t, StatusShortlisted.Terminal())
}

func TestStatusTimelineIndex(t *testing.T) {
	assert.Equal(t, 0, StatusPending.TimelineIndex())
	assert.Equal(t, 1, StatusReviewed.TimelineIndex())
	assert.Equal(t, 2, StatusShortlisted.TimelineIndex())
	assert.Equal(t, 3, StatusHired.TimelineIndex())

	// Rejected branches off the success timeline.
	assert.Equal(t, -1, StatusRejected.TimelineIndex())
	assert.Equal(t, -1, Status("bogus").TimelineIndex())
}
