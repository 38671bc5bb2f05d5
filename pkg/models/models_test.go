package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNormalized(t *testing.T) {
	testCases := []struct {
		status   Status
		expected string
	}{
		{StatusBacklog, "backlog"},
		{StatusReady, "ready"},
		{StatusInProgress, "in_progress"},
		{StatusInReview, "in_review"},
		{StatusDone, "done"},
		{Status("Blocked"), "backlog"},
		{Status(""), "backlog"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.Normalized())
		})
	}
}
