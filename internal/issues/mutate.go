package issues

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/danielolaszy/tracksync/internal/logging"
	"github.com/danielolaszy/tracksync/pkg/models"
)

// DevNotesPlaceholder is the scaffold text an untouched dev-notes field holds.
// Appending notes replaces it instead of accumulating after it.
const DevNotesPlaceholder = "_(filled by dev-loop during implementation)_"

const (
	statusLabel   = "**Status:**"
	devNotesLabel = "**Dev notes:**"
)

// UpdateStatus rewrites the status field of one issue in-place, preserving
// every other byte of the document. Failing to locate the issue or its status
// field is a fatal error and the document is not modified.
func UpdateStatus(path, issueID string, newStatus models.Status) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read issues file: %w", err)
	}
	content := string(raw)

	valueStart, valueEnd, ok := locateFieldValue(content, issueID, statusLabel, false)
	if !ok {
		return fmt.Errorf("could not find status field for %s", issueID)
	}

	updated := content[:valueStart] + " " + string(newStatus) + content[valueEnd:]
	return writeDocument(path, updated)
}

// AppendDevNotes appends to an issue's dev-notes field, separated from existing
// notes by a newline. Placeholder scaffold text is replaced rather than
// appended to. A missing dev-notes field is a warning, not an error, since
// notes are optional commentary; the document is left untouched.
func AppendDevNotes(path, issueID, notes string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read issues file: %w", err)
	}
	content := string(raw)

	valueStart, valueEnd, ok := locateFieldValue(content, issueID, devNotesLabel, true)
	if !ok {
		logging.Warn("no dev notes field found", "issue", issueID, "file", path)
		return nil
	}

	existing := strings.TrimSpace(content[valueStart:valueEnd])
	newNotes := notes
	if existing != "" && existing != DevNotesPlaceholder {
		newNotes = existing + "\n" + notes
	}

	updated := content[:valueStart] + " " + newNotes + content[valueEnd:]
	return writeDocument(path, updated)
}

// locateFieldValue finds the value span of the first bold-labeled field with
// the given label occurring after issueID's header line and before the next
// block delimiter or issue header. The returned span starts immediately after
// the label, with trailing whitespace excluded. Single-line fields end at the
// end of the label's line; multiline fields run to the next delimiter or
// header line, or to EOF.
func locateFieldValue(content, issueID, label string, multiline bool) (start, end int, ok bool) {
	headerRe := regexp.MustCompile(`###\s+` + regexp.QuoteMeta(issueID) + `:`)

	offset := 0
	inIssue := false
	valueStart := -1

	closeSpan := func(spanEnd int) (int, int, bool) {
		value := content[valueStart:spanEnd]
		return valueStart, valueStart + len(strings.TrimRight(value, " \t\r\n")), true
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimSpace(line)
		atBoundary := trimmed == "---" || strings.HasPrefix(trimmed, "###")

		if valueStart >= 0 && atBoundary {
			return closeSpan(offset)
		}

		switch {
		case headerRe.MatchString(line):
			inIssue = true
		case inIssue && atBoundary:
			inIssue = false
		case inIssue && strings.HasPrefix(trimmed, label):
			labelAt := offset + strings.Index(line, label) + len(label)
			if !multiline {
				lineEnd := offset + len(strings.TrimRight(line, "\r\n"))
				return labelAt, lineEnd, true
			}
			valueStart = labelAt
		}

		offset += len(line)
	}

	if valueStart >= 0 {
		return closeSpan(len(content))
	}
	return 0, 0, false
}

func writeDocument(path, content string) error {
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
