// Package issues parses .issues.md documents into issue records and provides
// the queries and in-place edits the rest of the tool is built on.
//
// A document is a sequence of blocks separated by lines containing only "---".
// A block is an issue when it contains a header line of the form
// "### ISSUE-<n>: <title>"; blocks without a header (preambles, comments) are
// skipped. Fields are bold-labeled lines like "**Status:** Ready".
package issues

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/danielolaszy/tracksync/pkg/models"
)

var (
	headerPattern  = regexp.MustCompile(`###\s+(ISSUE-\d+):\s*(.+)`)
	issueIDPattern = regexp.MustCompile(`ISSUE-\d+`)

	statusPattern     = regexp.MustCompile(`\*\*Status:\*\*\s*(.+)`)
	depsPattern       = regexp.MustCompile(`\*\*Dependencies:\*\*\s*(.+)`)
	complexityPattern = regexp.MustCompile(`\*\*Complexity:\*\*\s*(.+)`)
	layersPattern     = regexp.MustCompile(`\*\*Layers:\*\*\s*(.+)`)
	filesPattern      = regexp.MustCompile(`\*\*Files likely touched:\*\*\s*(.+)`)
)

// ParseFile reads and parses an issues document. Failure to read the file is
// the only error condition; a file with no recognizable issues parses to an
// empty slice.
func ParseFile(path string) ([]models.Issue, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issues file: %w", err)
	}
	return Parse(string(content)), nil
}

// Parse turns document text into an ordered sequence of issue records,
// preserving document order.
func Parse(content string) []models.Issue {
	var issues []models.Issue

	for _, block := range splitBlocks(content) {
		header := headerPattern.FindStringSubmatch(block)
		if header == nil {
			continue
		}

		issue := models.Issue{
			ID:         header[1],
			Title:      strings.TrimSpace(header[2]),
			Status:     models.Status(extractField(block, statusPattern, string(models.StatusBacklog))),
			Complexity: extractField(block, complexityPattern, "M"),
			Layers:     extractField(block, layersPattern, ""),
			Files:      extractField(block, filesPattern, ""),
			RawBlock:   strings.TrimSpace(block),
		}

		depsRaw := extractField(block, depsPattern, "none")
		if !strings.EqualFold(strings.TrimSpace(depsRaw), "none") {
			issue.Dependencies = issueIDPattern.FindAllString(depsRaw, -1)
		}

		issues = append(issues, issue)
	}

	return issues
}

// splitBlocks splits document text on horizontal-rule delimiter lines.
func splitBlocks(content string) []string {
	var blocks []string
	var current []string

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimRight(line, "\r") == "---" {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	blocks = append(blocks, strings.Join(current, "\n"))

	return blocks
}

// extractField returns the first match of a bold-labeled field within a block,
// or the default when the field is absent. A missing field is never an error.
func extractField(block string, pattern *regexp.Regexp, fallback string) string {
	match := pattern.FindStringSubmatch(block)
	if match == nil {
		return fallback
	}
	return strings.TrimSpace(match[1])
}

// NextEligible scans issues in document order and returns the first one that
// is Ready and whose every dependency is Done elsewhere in the same document.
// A dependency that doesn't appear in the document is treated as unsatisfied.
// Returns nil when no issue is eligible.
func NextEligible(issues []models.Issue) *models.Issue {
	done := make(map[string]bool)
	for _, issue := range issues {
		if issue.Status == models.StatusDone {
			done[issue.ID] = true
		}
	}

	for i := range issues {
		if issues[i].Status != models.StatusReady {
			continue
		}
		eligible := true
		for _, dep := range issues[i].Dependencies {
			if !done[dep] {
				eligible = false
				break
			}
		}
		if eligible {
			return &issues[i]
		}
	}

	return nil
}

// Find returns the issue with the given ID, or nil if it isn't in the document.
func Find(issues []models.Issue, issueID string) *models.Issue {
	for i := range issues {
		if issues[i].ID == issueID {
			return &issues[i]
		}
	}
	return nil
}
