// Package github implements the tracker adapter for GitHub Issues. Each work
// item becomes an issue in the configured repository; the normalized status is
// carried as a managed "status:" label and archiving closes the issue.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	gogithub "github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/tracksync/internal/config"
	"github.com/danielolaszy/tracksync/internal/logging"
	"github.com/danielolaszy/tracksync/internal/tracker"
)

const statusLabelPrefix = "status:"

func init() {
	tracker.Register("github", func(cfg *config.Config, docPath string) (tracker.Adapter, error) {
		return NewClient(cfg.GitHub)
	})
}

// Client pushes issues into a GitHub repository.
type Client struct {
	client *gogithub.Client
	cfg    config.GitHubConfig
}

// NewClient validates the GitHub configuration and returns an authenticated
// client. It supports GitHub Enterprise through the domain setting.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	var missing []string
	if cfg.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if cfg.Owner == "" {
		missing = append(missing, "github.owner")
	}
	if cfg.Repo == "" {
		missing = append(missing, "github.repo")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required github configuration: %v", missing)
	}

	domain := cfg.Domain
	if domain == "" {
		domain = "github.com"
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := gogithub.NewClient(tc)

	// GitHub Enterprise serves the API under /api/v3/ on the instance domain
	if domain != "github.com" {
		apiURL := fmt.Sprintf("https://%s/api/v3/", domain)
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	logging.Debug("github client configured",
		"domain", domain,
		"repository", cfg.Owner+"/"+cfg.Repo,
		"token", logging.MaskSensitive(cfg.Token))

	return &Client{client: client, cfg: cfg}, nil
}

// Create opens a new issue and labels it with the mapped status, complexity,
// and layers. The returned tracker ID is the issue number.
func (c *Client) Create(title, status, description, complexity, layers string) (string, error) {
	ctx := context.Background()

	labels := []string{c.statusLabel(status), "complexity:" + complexity}
	for _, layer := range strings.Split(layers, "|") {
		if layer = strings.TrimSpace(layer); layer != "" {
			labels = append(labels, layer)
		}
	}

	req := &gogithub.IssueRequest{
		Title:  gogithub.String(title),
		Body:   gogithub.String(description),
		Labels: &labels,
	}

	issue, _, err := c.client.Issues.Create(ctx, c.cfg.Owner, c.cfg.Repo, req)
	if err != nil {
		return "", &tracker.AdapterError{Vendor: "github", Op: "create", Err: err}
	}
	if issue.Number == nil {
		return "", &tracker.AdapterError{Vendor: "github", Op: "create",
			Err: fmt.Errorf("no issue number in response")}
	}

	return strconv.Itoa(*issue.Number), nil
}

// UpdateStatus swaps the issue's managed status label for the new one.
func (c *Client) UpdateStatus(trackerID, status string) error {
	ctx := context.Background()

	number, err := parseIssueNumber(trackerID)
	if err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "update_status", Err: err}
	}

	labels, _, err := c.client.Issues.ListLabelsByIssue(ctx, c.cfg.Owner, c.cfg.Repo, number, nil)
	if err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "update_status", Err: err}
	}

	for _, label := range labels {
		name := label.GetName()
		if strings.HasPrefix(name, statusLabelPrefix) {
			if _, err := c.client.Issues.RemoveLabelForIssue(ctx, c.cfg.Owner, c.cfg.Repo, number, name); err != nil {
				return &tracker.AdapterError{Vendor: "github", Op: "update_status", Err: err}
			}
		}
	}

	_, _, err = c.client.Issues.AddLabelsToIssue(ctx, c.cfg.Owner, c.cfg.Repo, number,
		[]string{c.statusLabel(status)})
	if err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "update_status", Err: err}
	}
	return nil
}

// UpdateDescription replaces the issue body. Empty descriptions are a no-op.
func (c *Client) UpdateDescription(trackerID, description string) error {
	if description == "" {
		return nil
	}

	number, err := parseIssueNumber(trackerID)
	if err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "update_description", Err: err}
	}

	req := &gogithub.IssueRequest{Body: gogithub.String(description)}
	if _, _, err := c.client.Issues.Edit(context.Background(), c.cfg.Owner, c.cfg.Repo, number, req); err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "update_description", Err: err}
	}
	return nil
}

// Archive closes the issue.
func (c *Client) Archive(trackerID string) error {
	number, err := parseIssueNumber(trackerID)
	if err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "archive", Err: err}
	}

	req := &gogithub.IssueRequest{State: gogithub.String("closed")}
	if _, _, err := c.client.Issues.Edit(context.Background(), c.cfg.Owner, c.cfg.Repo, number, req); err != nil {
		return &tracker.AdapterError{Vendor: "github", Op: "archive", Err: err}
	}
	return nil
}

// statusLabel renders the managed label for a normalized status. An unmapped
// token passes through unchanged.
func (c *Client) statusLabel(status string) string {
	if mapped, ok := c.cfg.StatusMapping[status]; ok {
		status = mapped
	}
	return statusLabelPrefix + status
}

func parseIssueNumber(trackerID string) (int, error) {
	number, err := strconv.Atoi(trackerID)
	if err != nil {
		return 0, fmt.Errorf("invalid github tracker id %q: %w", trackerID, err)
	}
	return number, nil
}
