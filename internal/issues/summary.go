package issues

import "strings"

// Field labels and headers that are tooling metadata, not human content.
var metadataPrefixes = []string{
	"### ISSUE-",
	"**Status:**",
	"**Dependencies:**",
	"**Complexity:**",
	"**Layers:**",
	"**Files likely touched:**",
	"**Dev notes:**",
}

const acceptanceMarker = "**Acceptance criteria:**"

// ExtractSummary derives a human-readable description from a raw issue block:
// the prose explaining the work plus the acceptance checklist, with all
// tooling metadata stripped. Checkbox items are rewritten to plain-text
// markers so they read well in trackers that don't render markdown.
//
// An issue with no prose and no acceptance criteria yields an empty string,
// which callers treat as "no description to push".
func ExtractSummary(rawBlock string) string {
	var description []string
	var acceptance []string
	inAcceptance := false

	for _, line := range strings.Split(rawBlock, "\n") {
		stripped := strings.TrimSpace(line)

		// Drop blank lines before any content
		if stripped == "" && len(description) == 0 && !inAcceptance {
			continue
		}

		if isMetadata(stripped) {
			// A field line ends the acceptance section even when the field
			// itself is metadata to drop
			inAcceptance = false
			continue
		}

		if strings.HasPrefix(stripped, acceptanceMarker) {
			inAcceptance = true
			continue
		}

		if inAcceptance {
			switch {
			case strings.HasPrefix(stripped, "- ["):
				acceptance = append(acceptance, rewriteCheckbox(stripped))
			case strings.HasPrefix(stripped, "**"):
				inAcceptance = false
			case stripped != "":
				// Free-form criterion line, kept verbatim
				acceptance = append(acceptance, stripped)
			}
			continue
		}

		if stripped != "" && !strings.HasPrefix(stripped, "**") {
			description = append(description, stripped)
		}
	}

	var parts []string
	if len(description) > 0 {
		parts = append(parts, strings.Join(description, "\n"))
	}
	if len(acceptance) > 0 {
		parts = append(parts, "\nCriteria:\n"+strings.Join(acceptance, "\n"))
	}

	return strings.Join(parts, "\n")
}

func isMetadata(stripped string) bool {
	if strings.HasPrefix(stripped, "#") {
		return true
	}
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}

func rewriteCheckbox(stripped string) string {
	switch {
	case strings.HasPrefix(stripped, "- [x] "):
		return "✅ " + strings.TrimPrefix(stripped, "- [x] ")
	case strings.HasPrefix(stripped, "- [ ] "):
		return "☐ " + strings.TrimPrefix(stripped, "- [ ] ")
	}
	return stripped
}
