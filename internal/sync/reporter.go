package sync

// Action identifies what the engine did (or would do) for one issue.
type Action string

const (
	// ActionCreate is a first-time creation of a remote item.
	ActionCreate Action = "create"
	// ActionUpdateStatus pushes a changed status to the remote item.
	ActionUpdateStatus Action = "update_status"
	// ActionUpdateDescription pushes a changed description to the remote item.
	ActionUpdateDescription Action = "update_description"
	// ActionArchive marks the remote item inactive because its issue left the document.
	ActionArchive Action = "archive"
	// ActionUnchanged means the issue needed no remote call.
	ActionUnchanged Action = "unchanged"
	// ActionSkip means resync had nothing to push for the issue.
	ActionSkip Action = "skip"
)

// Event describes one engine decision. The engine only emits these; the CLI
// layer owns formatting and color.
type Event struct {
	Action     Action
	IssueID    string
	Title      string
	TrackerID  string
	FromStatus string
	ToStatus   string
	DryRun     bool
}

// Summary tallies a full reconciliation pass.
type Summary struct {
	Created   int
	Updated   int
	Archived  int
	Unchanged int
	Skipped   int
	DryRun    bool
}

// Reporter receives structured progress events from the engine.
type Reporter interface {
	Action(Event)
	Summary(Summary)
}

// NopReporter discards all events. Useful in tests and as a default.
type NopReporter struct{}

// Action implements Reporter.
func (NopReporter) Action(Event) {}

// Summary implements Reporter.
func (NopReporter) Summary(Summary) {}
