// Package models defines data structures shared across the application.
package models

// Status is the lifecycle state of an issue as written in the document.
type Status string

const (
	// StatusBacklog is the default state for issues without an explicit status.
	StatusBacklog Status = "Backlog"
	// StatusReady marks an issue as ready to be picked up.
	StatusReady Status = "Ready"
	// StatusInProgress marks an issue as actively being worked on.
	StatusInProgress Status = "In Progress"
	// StatusInReview marks an issue as implemented and awaiting review.
	StatusInReview Status = "In Review"
	// StatusDone marks an issue as complete.
	StatusDone Status = "Done"
)

// normalizedStatuses maps document statuses to the normalized tokens that cross
// the tracker adapter boundary. Adapters translate these to vendor vocabulary.
var normalizedStatuses = map[Status]string{
	StatusBacklog:    "backlog",
	StatusReady:      "ready",
	StatusInProgress: "in_progress",
	StatusInReview:   "in_review",
	StatusDone:       "done",
}

// Normalized returns the lowercase normalized token for a status. Unknown
// statuses normalize to "backlog", matching the parser's default.
func (s Status) Normalized() string {
	if n, ok := normalizedStatuses[s]; ok {
		return n
	}
	return "backlog"
}

// Issue represents a single unit of work parsed from an issues document.
type Issue struct {
	// ID is the stable identifier in the form "ISSUE-<n>" (e.g. "ISSUE-12")
	ID string

	// Title is the free-text title from the issue header line
	Title string

	// Status is the document status; defaults to Backlog when unspecified
	Status Status

	// Dependencies holds the IDs of issues this one depends on, in order of
	// appearance; empty means the issue has no blockers
	Dependencies []string

	// Complexity is S, M, or L; defaults to M
	Complexity string

	// Layers is free-text metadata (e.g. "DB | Backend"), opaque to sync
	Layers string

	// Files is the free-text "Files likely touched" metadata
	Files string

	// RawBlock is the full original text block for this issue, used to derive
	// the human-readable tracker description; never pushed verbatim
	RawBlock string
}

// SyncEntry is the stored record of one issue's remote projection.
type SyncEntry struct {
	// TrackerID is the opaque identifier assigned by the tracker on creation
	TrackerID string `json:"tracker_id"`

	// LastStatus is the normalized status last pushed to the tracker
	LastStatus string `json:"last_status"`

	// DescriptionHash is the fingerprint of the last description pushed.
	// Empty means no fingerprint has been recorded yet, which is distinct
	// from the fingerprint of an empty description.
	DescriptionHash string `json:"description_hash,omitempty"`
}

// SyncState maps issue IDs to their sync entries for one source document.
type SyncState map[string]SyncEntry
