package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/tracksync/internal/config"
)

func TestNewClientValidation(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           config.GitHubConfig
		errorContains string
	}{
		{
			name: "valid configuration",
			cfg:  config.GitHubConfig{Token: "tok", Owner: "acme", Repo: "widgets"},
		},
		{
			name:          "missing token",
			cfg:           config.GitHubConfig{Owner: "acme", Repo: "widgets"},
			errorContains: "GITHUB_TOKEN",
		},
		{
			name:          "missing owner",
			cfg:           config.GitHubConfig{Token: "tok", Repo: "widgets"},
			errorContains: "github.owner",
		},
		{
			name:          "missing repo",
			cfg:           config.GitHubConfig{Token: "tok", Owner: "acme"},
			errorContains: "github.repo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(tc.cfg)
			if tc.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestNewClientEnterpriseDomain(t *testing.T) {
	client, err := NewClient(config.GitHubConfig{
		Token:  "tok",
		Owner:  "acme",
		Repo:   "widgets",
		Domain: "github.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/api/v3/", client.client.BaseURL.String())
}

func TestStatusLabel(t *testing.T) {
	client := &Client{cfg: config.GitHubConfig{
		StatusMapping: map[string]string{"in_review": "review"},
	}}
	assert.Equal(t, "status:review", client.statusLabel("in_review"))
	assert.Equal(t, "status:done", client.statusLabel("done"))
}

func TestParseIssueNumber(t *testing.T) {
	number, err := parseIssueNumber("42")
	require.NoError(t, err)
	assert.Equal(t, 42, number)

	_, err = parseIssueNumber("not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid github tracker id")
}
