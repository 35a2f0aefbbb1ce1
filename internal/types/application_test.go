package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmitRequest() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		JobID:      uuid.New(),
		Name:       "Sara Lind",
		Email:      "sara@example.com",
		ResumeLink: "https://example.com/resume.pdf",
	}
}

func TestSubmitApplicationRequestValidate(t *testing.T) {
	req := validSubmitRequest()
	require.NoError(t, req.Validate())
}

func TestSubmitApplicationRequestValidate_ResumeLink(t *testing.T) {
	req := validSubmitRequest()
	req.ResumeLink = ""
	assert.Error(t, req.Validate())

	req = validSubmitRequest()
	req.ResumeLink = "not a url"
	assert.Error(t, req.Validate())
}

func TestSubmitApplicationRequestValidate_OptionalLinks(t *testing.T) {
	req := validSubmitRequest()
	req.LinkedinURL = "https://linkedin.com/in/sara"
	req.PortfolioURL = "https://sara.dev"
	assert.NoError(t, req.Validate())

	req.LinkedinURL = "linkedin dot com"
	assert.Error(t, req.Validate())

	req = validSubmitRequest()
	req.PortfolioURL = "::/bad"
	assert.Error(t, req.Validate())
}

func TestSubmitApplicationRequestValidate_CoverNote(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		wantErr bool
	}{
		{"absent", "", false},
		{"one char", "x", true},
		{"nine chars", "123456789", true},
		{"whitespace padded short", "   hi there   ", true},
		{"exactly ten", "1234567890", false},
		{"long note", "I have five years of relevant experience.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmitRequest()
			req.CoverNote = tt.note
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	for _, s := range Statuses {
		req := UpdateStatusRequest{Status: s}
		assert.NoError(t, req.Validate())
	}

	req := UpdateStatusRequest{Status: "archived"}
	assert.Error(t, req.Validate())

	req = UpdateStatusRequest{}
	assert.Error(t, req.Validate())
}
