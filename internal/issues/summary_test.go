package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected string
	}{
		{
			name: "prose and criteria",
			block: `### ISSUE-1: Set up database schema

Create the initial tables for the feature.

**Status:** Ready
**Complexity:** S

**Acceptance criteria:**
- [ ] Tables created
- [x] Migration runs cleanly
`,
			expected: "Create the initial tables for the feature.\n\nCriteria:\n☐ Tables created\n✅ Migration runs cleanly",
		},
		{
			name: "prose only",
			block: `### ISSUE-2: Build API endpoints

Expose the schema through REST endpoints.
Keep the handlers thin.

**Status:** Ready
`,
			expected: "Expose the schema through REST endpoints.\nKeep the handlers thin.",
		},
		{
			name: "criteria only",
			block: `### ISSUE-3: Harden validation

**Acceptance criteria:**
- [ ] Rejects empty payloads
`,
			expected: "\nCriteria:\n☐ Rejects empty payloads",
		},
		{
			name: "free-form criterion lines kept verbatim",
			block: `### ISSUE-4: Migrate settings

**Acceptance criteria:**
- [ ] Old settings migrated
Settings older than v2 are dropped.
`,
			expected: "\nCriteria:\n☐ Old settings migrated\nSettings older than v2 are dropped.",
		},
		{
			name: "field line ends acceptance mode",
			block: `### ISSUE-5: Ship it

Some prose.

**Acceptance criteria:**
- [ ] Works

**Dev notes:** scribbles that must not leak
`,
			expected: "Some prose.\n\nCriteria:\n☐ Works",
		},
		{
			name: "metadata only yields empty",
			block: `### ISSUE-6: Placeholder

**Status:** Backlog
**Dependencies:** none
**Complexity:** M
`,
			expected: "",
		},
		{
			name:     "empty block yields empty",
			block:    "",
			expected: "",
		},
		{
			name: "leading blank lines dropped",
			block: `


First real line.
`,
			expected: "First real line.",
		},
		{
			name: "markdown headers are metadata",
			block: `### ISSUE-7: Title

## Background

Some context.
`,
			expected: "Some context.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSummary(tt.block))
		})
	}
}

func TestExtractSummaryFromParsedBlock(t *testing.T) {
	parsed := Parse(sampleDoc)
	require.Len(t, parsed, 3)

	summary := ExtractSummary(parsed[0].RawBlock)
	assert.Contains(t, summary, "Create the initial tables for the feature.")
	assert.Contains(t, summary, "Criteria:")
	assert.Contains(t, summary, "☐ Tables created")
	assert.Contains(t, summary, "✅ Migration runs cleanly")
	assert.NotContains(t, summary, "**Status:**")
	assert.NotContains(t, summary, "Dev notes")
	assert.NotContains(t, summary, "db/schema.sql")
}
