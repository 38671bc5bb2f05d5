// Package jira implements the tracker adapter for JIRA projects using the
// go-jira client library.
package jira

import (
	"fmt"
	"strings"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/tracksync/internal/config"
	"github.com/danielolaszy/tracksync/internal/logging"
	"github.com/danielolaszy/tracksync/internal/tracker"
)

func init() {
	tracker.Register("jira", func(cfg *config.Config, docPath string) (tracker.Adapter, error) {
		return NewClient(cfg.Jira)
	})
}

// Client pushes issues into a JIRA project. Normalized statuses are applied by
// looking up a workflow transition whose name matches the mapped status label.
type Client struct {
	client *gojira.Client
	cfg    config.JiraConfig
}

// NewClient validates the JIRA configuration and returns a client.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "JIRA_URL")
	}
	if cfg.Username == "" {
		missing = append(missing, "JIRA_USERNAME")
	}
	if cfg.Token == "" {
		missing = append(missing, "JIRA_TOKEN")
	}
	if cfg.ProjectKey == "" {
		missing = append(missing, "jira.project_key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required jira configuration: %v", missing)
	}

	tp := gojira.BasicAuthTransport{
		Username: cfg.Username,
		Password: cfg.Token,
	}

	client, err := gojira.NewClient(tp.Client(), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	if cfg.IssueType == "" {
		cfg.IssueType = "Task"
	}
	if cfg.ArchiveTransition == "" {
		cfg.ArchiveTransition = "Done"
	}

	logging.Debug("jira client configured",
		"base_url", cfg.BaseURL,
		"project", cfg.ProjectKey,
		"token", logging.MaskSensitive(cfg.Token))

	return &Client{client: client, cfg: cfg}, nil
}

// Create makes a new JIRA issue and transitions it to the mapped status.
// Complexity and layers are carried as labels.
func (c *Client) Create(title, status, description, complexity, layers string) (string, error) {
	issue := &gojira.Issue{
		Fields: &gojira.IssueFields{
			Project:     gojira.Project{Key: c.cfg.ProjectKey},
			Summary:     title,
			Description: description,
			Type:        gojira.IssueType{Name: c.cfg.IssueType},
			Labels:      buildLabels(complexity, layers),
		},
	}

	created, resp, err := c.client.Issue.Create(issue)
	if err != nil {
		return "", &tracker.AdapterError{Vendor: "jira", Op: "create",
			Err: fmt.Errorf("%v (status: %d)", err, statusCode(resp))}
	}
	if created.Key == "" {
		return "", &tracker.AdapterError{Vendor: "jira", Op: "create",
			Err: fmt.Errorf("no issue key in response")}
	}

	// New issues start in the project's default status; move them if needed
	if err := c.transitionTo(created.Key, c.mapStatus(status)); err != nil {
		return "", &tracker.AdapterError{Vendor: "jira", Op: "create", Err: err}
	}

	return created.Key, nil
}

// UpdateStatus transitions an existing issue to the mapped status.
func (c *Client) UpdateStatus(trackerID, status string) error {
	if err := c.transitionTo(trackerID, c.mapStatus(status)); err != nil {
		return &tracker.AdapterError{Vendor: "jira", Op: "update_status", Err: err}
	}
	return nil
}

// UpdateDescription replaces the issue's description field. Empty descriptions
// are a no-op.
func (c *Client) UpdateDescription(trackerID, description string) error {
	if description == "" {
		return nil
	}

	data := map[string]interface{}{
		"fields": map[string]interface{}{
			"description": description,
		},
	}
	resp, err := c.client.Issue.UpdateIssue(trackerID, data)
	if err != nil {
		return &tracker.AdapterError{Vendor: "jira", Op: "update_description",
			Err: fmt.Errorf("%v (status: %d)", err, statusCode(resp))}
	}
	return nil
}

// Archive applies the configured archive transition (default "Done").
func (c *Client) Archive(trackerID string) error {
	if err := c.transitionTo(trackerID, c.cfg.ArchiveTransition); err != nil {
		return &tracker.AdapterError{Vendor: "jira", Op: "archive", Err: err}
	}
	return nil
}

// transitionTo finds the transition whose name or target status matches label
// and applies it. An issue already in the target status has no matching
// transition; that is not an error.
func (c *Client) transitionTo(trackerID, label string) error {
	transitions, resp, err := c.client.Issue.GetTransitions(trackerID)
	if err != nil {
		return fmt.Errorf("failed to get transitions for %s: %v (status: %d)",
			trackerID, err, statusCode(resp))
	}

	for _, t := range transitions {
		if strings.EqualFold(t.Name, label) || strings.EqualFold(t.To.Name, label) {
			if _, err := c.client.Issue.DoTransition(trackerID, t.ID); err != nil {
				return fmt.Errorf("failed to transition %s to %s: %v", trackerID, label, err)
			}
			return nil
		}
	}

	logging.Debug("no jira transition matches, leaving status as-is",
		"ticket", trackerID, "target", label)
	return nil
}

// mapStatus translates a normalized status token to the project's status
// label. An unmapped token passes through unchanged.
func (c *Client) mapStatus(status string) string {
	if mapped, ok := c.cfg.StatusMapping[status]; ok {
		return mapped
	}
	return status
}

// buildLabels encodes complexity and layers metadata as JIRA labels, which
// cannot contain spaces.
func buildLabels(complexity, layers string) []string {
	labels := []string{"complexity-" + complexity}
	for _, layer := range strings.Split(layers, "|") {
		layer = strings.TrimSpace(layer)
		if layer == "" {
			continue
		}
		labels = append(labels, strings.ReplaceAll(layer, " ", "-"))
	}
	return labels
}

func statusCode(resp *gojira.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
