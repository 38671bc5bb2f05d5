// Package monday implements the tracker adapter for Monday.com boards via
// their GraphQL API.
package monday

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/danielolaszy/tracksync/internal/config"
	"github.com/danielolaszy/tracksync/internal/logging"
	"github.com/danielolaszy/tracksync/internal/tracker"
)

const apiURL = "https://api.monday.com/v2"

// Monday item updates cap out well above this, but long descriptions add no
// value in a board view.
const maxDescriptionLen = 5000

func init() {
	tracker.Register("monday", func(cfg *config.Config, docPath string) (tracker.Adapter, error) {
		return NewClient(cfg.Monday, docPath)
	})
}

// Client pushes issues to a Monday.com board.
type Client struct {
	httpClient *http.Client
	cfg        config.MondayConfig
	groupID    string
	endpoint   string
}

// NewClient validates the Monday configuration and returns a client. Missing
// credentials or template placeholder values are rejected here so a broken
// configuration never produces partial remote mutation.
func NewClient(cfg config.MondayConfig, docPath string) (*Client, error) {
	if cfg.APIToken == "" || cfg.APIToken == "YOUR_MONDAY_API_TOKEN" {
		return nil, fmt.Errorf("monday api token not configured, set 'monday.api_token' in the config file or MONDAY_API_TOKEN")
	}
	if cfg.BoardID == "" || cfg.BoardID == "YOUR_BOARD_ID" {
		return nil, fmt.Errorf("monday board id not configured, set 'monday.board_id' in the config file")
	}

	// Items land in the group mapped for this document, falling back to the
	// "default" group, falling back to the board's default.
	groupID := cfg.GroupMapping[docPath]
	if groupID == "" {
		groupID = cfg.GroupMapping["default"]
	}

	statusColumn := cfg.StatusColumnID
	if statusColumn == "" {
		statusColumn = "status"
	}
	cfg.StatusColumnID = statusColumn

	logging.Debug("monday client configured",
		"board_id", cfg.BoardID,
		"group_id", groupID,
		"token", logging.MaskSensitive(cfg.APIToken))

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
		groupID:    groupID,
		endpoint:   apiURL,
	}, nil
}

// Create makes a new board item and, when a description is given, attaches it
// as an item update (Monday has no native description field).
func (c *Client) Create(title, status, description, complexity, layers string) (string, error) {
	columnValues := map[string]any{
		c.cfg.StatusColumnID: map[string]string{"label": c.mapStatus(status)},
	}
	if c.cfg.ComplexityColumnID != "" {
		columnValues[c.cfg.ComplexityColumnID] = map[string]string{"label": complexity}
	}
	if c.cfg.LayersColumnID != "" && layers != "" {
		columnValues[c.cfg.LayersColumnID] = layers
	}

	columnJSON, err := json.Marshal(columnValues)
	if err != nil {
		return "", &tracker.AdapterError{Vendor: "monday", Op: "create", Err: err}
	}

	groupArg := ""
	if c.groupID != "" {
		groupArg = fmt.Sprintf("group_id: %q, ", c.groupID)
	}
	query := fmt.Sprintf(`mutation {
		create_item(board_id: %s, %sitem_name: %s, column_values: %s) { id }
	}`, c.cfg.BoardID, groupArg, graphqlString(title), graphqlString(string(columnJSON)))

	result, err := c.graphql(query)
	if err != nil {
		return "", &tracker.AdapterError{Vendor: "monday", Op: "create", Err: err}
	}

	itemID := result.itemID("create_item")
	if itemID == "" {
		return "", &tracker.AdapterError{Vendor: "monday", Op: "create",
			Err: fmt.Errorf("no item id in response")}
	}

	if description != "" {
		if err := c.postUpdate(itemID, description); err != nil {
			return "", &tracker.AdapterError{Vendor: "monday", Op: "create", Err: err}
		}
	}

	return itemID, nil
}

// UpdateStatus changes the status column of an existing item.
func (c *Client) UpdateStatus(trackerID, status string) error {
	value, err := json.Marshal(map[string]string{"label": c.mapStatus(status)})
	if err != nil {
		return &tracker.AdapterError{Vendor: "monday", Op: "update_status", Err: err}
	}

	query := fmt.Sprintf(`mutation {
		change_column_value(board_id: %s, item_id: %s, column_id: %q, value: %s) { id }
	}`, c.cfg.BoardID, trackerID, c.cfg.StatusColumnID, graphqlString(string(value)))

	if _, err := c.graphql(query); err != nil {
		return &tracker.AdapterError{Vendor: "monday", Op: "update_status", Err: err}
	}
	return nil
}

// UpdateDescription posts the description as a new item update. Empty
// descriptions are a no-op.
func (c *Client) UpdateDescription(trackerID, description string) error {
	if description == "" {
		return nil
	}
	if err := c.postUpdate(trackerID, description); err != nil {
		return &tracker.AdapterError{Vendor: "monday", Op: "update_description", Err: err}
	}
	return nil
}

// Archive marks the item inactive on the board.
func (c *Client) Archive(trackerID string) error {
	query := fmt.Sprintf(`mutation { archive_item(item_id: %s) { id } }`, trackerID)
	if _, err := c.graphql(query); err != nil {
		return &tracker.AdapterError{Vendor: "monday", Op: "archive", Err: err}
	}
	return nil
}

// mapStatus translates a normalized status token to the board's label. An
// unmapped token passes through unchanged.
func (c *Client) mapStatus(status string) string {
	if mapped, ok := c.cfg.StatusMapping[status]; ok {
		return mapped
	}
	return status
}

func (c *Client) postUpdate(itemID, body string) error {
	if len(body) > maxDescriptionLen {
		body = truncateRunes(body, maxDescriptionLen)
	}
	query := fmt.Sprintf(`mutation {
		create_update(item_id: %s, body: %s) { id }
	}`, itemID, graphqlString(body))
	_, err := c.graphql(query)
	return err
}

// truncateRunes cuts s to at most max bytes without splitting a rune, so
// checkbox glyphs near the limit never reach the API as mangled bytes.
func truncateRunes(s string, max int) string {
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// graphqlResult is the decoded "data" object of a GraphQL response.
type graphqlResult map[string]json.RawMessage

// itemID digs the created/changed item's id out of a mutation result.
func (r graphqlResult) itemID(field string) string {
	var item struct {
		ID string `json:"id"`
	}
	if raw, ok := r[field]; ok {
		if err := json.Unmarshal(raw, &item); err == nil {
			return item.ID
		}
	}
	return ""
}

// graphql executes one query against the Monday API.
func (c *Client) graphql(query string) (graphqlResult, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("API-Version", "2024-10")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("monday api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("monday api http %d: %s", resp.StatusCode, body)
	}

	var decoded struct {
		Data   graphqlResult `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("malformed monday api response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("monday api error: %s", decoded.Errors[0].Message)
	}

	return decoded.Data, nil
}

// graphqlString renders s as a quoted GraphQL string literal.
func graphqlString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
