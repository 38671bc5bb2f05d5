// Package config provides centralized configuration management for the application.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultPath is the config file location relative to the working directory.
const DefaultPath = ".sync-config.json"

// Config holds all configuration parameters for the application, loaded from
// the .sync-config.json file with environment variable overrides for secrets.
type Config struct {
	// Tracker selects which adapter implementation to use (e.g. "monday")
	Tracker string
	Monday  MondayConfig
	Jira    JiraConfig
	GitHub  GitHubConfig
}

// MondayConfig holds Monday.com specific configuration.
type MondayConfig struct {
	APIToken           string
	BoardID            string
	GroupMapping       map[string]string
	StatusColumnID     string
	ComplexityColumnID string
	LayersColumnID     string
	StatusMapping      map[string]string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	BaseURL           string
	Username          string
	Token             string
	ProjectKey        string
	IssueType         string
	ArchiveTransition string
	StatusMapping     map[string]string
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token         string
	Domain        string
	Owner         string
	Repo          string
	StatusMapping map[string]string
}

// LoadConfig reads the sync configuration file at path and applies environment
// variable overrides for credentials. A missing file or a config without a
// 'tracker' key is a hard error, reported before any remote call is attempted.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found, create one with:\n%s", path, Template)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("json")

	// Credentials may come from the environment instead of the config file
	v.BindEnv("monday.api_token", "MONDAY_API_TOKEN")
	v.BindEnv("jira.base_url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")

	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Viper lowercases map keys, which would break matching document paths
	// that contain uppercase letters, so the group mapping is decoded from
	// the raw JSON instead.
	groupMapping, err := decodeGroupMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config := &Config{
		Tracker: v.GetString("tracker"),
		Monday: MondayConfig{
			APIToken:           v.GetString("monday.api_token"),
			BoardID:            v.GetString("monday.board_id"),
			GroupMapping:       groupMapping,
			StatusColumnID:     v.GetString("monday.status_column_id"),
			ComplexityColumnID: v.GetString("monday.complexity_column_id"),
			LayersColumnID:     v.GetString("monday.layers_column_id"),
			StatusMapping:      v.GetStringMapString("monday.status_mapping"),
		},
		Jira: JiraConfig{
			BaseURL:           v.GetString("jira.base_url"),
			Username:          v.GetString("jira.username"),
			Token:             v.GetString("jira.token"),
			ProjectKey:        v.GetString("jira.project_key"),
			IssueType:         v.GetString("jira.issue_type"),
			ArchiveTransition: v.GetString("jira.archive_transition"),
			StatusMapping:     v.GetStringMapString("jira.status_mapping"),
		},
		GitHub: GitHubConfig{
			Token:         v.GetString("github.token"),
			Domain:        v.GetString("github.domain"),
			Owner:         v.GetString("github.owner"),
			Repo:          v.GetString("github.repo"),
			StatusMapping: v.GetStringMapString("github.status_mapping"),
		},
	}

	if config.Tracker == "" {
		return nil, fmt.Errorf("'tracker' not specified in %s", path)
	}

	return config, nil
}

// decodeGroupMapping reads monday.group_mapping with its keys exactly as
// written in the file. Keys are document paths, and paths are case-sensitive.
func decodeGroupMapping(raw []byte) (map[string]string, error) {
	var doc struct {
		Monday struct {
			GroupMapping map[string]string `json:"group_mapping"`
		} `json:"monday"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc.Monday.GroupMapping, nil
}

// Template is a starter configuration printed when no config file exists.
const Template = `{
  "tracker": "monday",
  "monday": {
    "api_token": "YOUR_MONDAY_API_TOKEN",
    "board_id": "YOUR_BOARD_ID",
    "group_mapping": {
      "specs/feature.issues.md": "GROUP_ID_FOR_FEATURE",
      "default": "GROUP_ID_FOR_UNGROUPED"
    },
    "status_column_id": "status",
    "status_mapping": {
      "backlog": "Backlog",
      "ready": "Ready",
      "in_progress": "In Progress",
      "in_review": "In Review",
      "done": "Done"
    }
  }
}`
