package sync

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/tracksync/internal/issues"
	"github.com/danielolaszy/tracksync/internal/state"
	"github.com/danielolaszy/tracksync/internal/tracker"
	"github.com/danielolaszy/tracksync/pkg/models"
)

const docPath = "specs/feature.issues.md"

const twoIssueDoc = `### ISSUE-1: Set up database schema

Create the initial tables.

**Status:** Ready
**Dependencies:** none
**Complexity:** S

**Acceptance criteria:**
- [ ] Tables created

---

### ISSUE-2: Build API endpoints

Expose the schema through REST endpoints.

**Status:** Backlog
**Dependencies:** ISSUE-1
`

// fakeAdapter records every call and can be told to fail one operation.
type fakeAdapter struct {
	nextID int
	calls  []string
	failOp string
}

func (f *fakeAdapter) fail(op string) error {
	if f.failOp == op {
		return &tracker.AdapterError{Vendor: "fake", Op: op, Err: fmt.Errorf("remote said no")}
	}
	return nil
}

func (f *fakeAdapter) Create(title, status, description, complexity, layers string) (string, error) {
	f.calls = append(f.calls, "create "+title)
	if err := f.fail("create"); err != nil {
		return "", err
	}
	f.nextID++
	return fmt.Sprintf("item-%d", f.nextID), nil
}

func (f *fakeAdapter) UpdateStatus(trackerID, status string) error {
	f.calls = append(f.calls, "update_status "+trackerID+" "+status)
	return f.fail("update_status")
}

func (f *fakeAdapter) UpdateDescription(trackerID, description string) error {
	f.calls = append(f.calls, "update_description "+trackerID)
	return f.fail("update_description")
}

func (f *fakeAdapter) Archive(trackerID string) error {
	f.calls = append(f.calls, "archive "+trackerID)
	return f.fail("archive")
}

// recordingReporter captures events in emission order.
type recordingReporter struct {
	events    []Event
	summaries []Summary
}

func (r *recordingReporter) Action(ev Event) { r.events = append(r.events, ev) }

func (r *recordingReporter) Summary(s Summary) { r.summaries = append(r.summaries, s) }

func newTestEngine(t *testing.T, dryRun bool) (*Engine, *fakeAdapter, *state.Store, *recordingReporter) {
	t.Helper()
	adapter := &fakeAdapter{}
	store := state.NewStore(filepath.Join(t.TempDir(), ".sync-state.json"))
	reporter := &recordingReporter{}
	return NewEngine(adapter, store, reporter, dryRun), adapter, store, reporter
}

func TestSyncFirstRunCreates(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Created: 2}, summary)
	assert.Equal(t, []string{
		"create ISSUE-1: Set up database schema",
		"create ISSUE-2: Build API endpoints",
	}, adapter.calls)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	require.Len(t, st, 2)
	assert.Equal(t, "item-1", st["ISSUE-1"].TrackerID)
	assert.Equal(t, "ready", st["ISSUE-1"].LastStatus)
	assert.NotEmpty(t, st["ISSUE-1"].DescriptionHash)
	assert.Equal(t, "item-2", st["ISSUE-2"].TrackerID)
	assert.Equal(t, "backlog", st["ISSUE-2"].LastStatus)
}

func TestSyncIsIdempotent(t *testing.T) {
	engine, adapter, _, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	_, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)
	adapter.calls = nil

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Unchanged: 2}, summary)
	assert.Empty(t, adapter.calls, "no remote calls on an unchanged second run")
}

func TestSyncStatusChange(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	_, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)
	adapter.calls = nil

	parsed[0].Status = models.StatusInProgress
	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Updated: 1, Unchanged: 1}, summary)
	assert.Equal(t, []string{"update_status item-1 in_progress"}, adapter.calls)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", st["ISSUE-1"].LastStatus)
}

func TestSyncStatusChangeWinsOverDescriptionChange(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	// Seed state as if an older description had been pushed
	staleHash := Fingerprint("old description")
	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-1": {TrackerID: "item-9", LastStatus: "ready", DescriptionHash: staleHash},
		"ISSUE-2": {TrackerID: "item-10", LastStatus: "backlog", DescriptionHash: Fingerprint(issues.ExtractSummary(parsed[1].RawBlock))},
	}))

	parsed[0].Status = models.StatusInReview
	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	// Exactly one adapter call fires: the status update
	assert.Equal(t, Summary{Updated: 1, Unchanged: 1}, summary)
	assert.Equal(t, []string{"update_status item-9 in_review"}, adapter.calls)

	// The description hash was backfilled silently
	st, err := store.Load(docPath)
	require.NoError(t, err)
	expected := Fingerprint(issues.ExtractSummary(parsed[0].RawBlock))
	assert.Equal(t, expected, st["ISSUE-1"].DescriptionHash)
}

func TestSyncDescriptionChange(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-1": {TrackerID: "item-9", LastStatus: "ready", DescriptionHash: Fingerprint("old description")},
		"ISSUE-2": {TrackerID: "item-10", LastStatus: "backlog", DescriptionHash: Fingerprint(issues.ExtractSummary(parsed[1].RawBlock))},
	}))

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Updated: 1, Unchanged: 1}, summary)
	assert.Equal(t, []string{"update_description item-9"}, adapter.calls)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(issues.ExtractSummary(parsed[0].RawBlock)), st["ISSUE-1"].DescriptionHash)
}

func TestSyncBackfillsMissingHashWithoutRemoteCall(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	// Entries created before description hashing existed
	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-1": {TrackerID: "item-9", LastStatus: "ready"},
		"ISSUE-2": {TrackerID: "item-10", LastStatus: "backlog"},
	}))

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Unchanged: 2}, summary)
	assert.Empty(t, adapter.calls)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.NotEmpty(t, st["ISSUE-1"].DescriptionHash)
	assert.NotEmpty(t, st["ISSUE-2"].DescriptionHash)
}

func TestSyncArchivesOrphansFirst(t *testing.T) {
	engine, adapter, store, reporter := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-9": {TrackerID: "item-99", LastStatus: "done"},
	}))

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Created: 2, Archived: 1}, summary)
	require.NotEmpty(t, adapter.calls)
	assert.Equal(t, "archive item-99", adapter.calls[0], "archives happen before creates")
	require.NotEmpty(t, reporter.events)
	assert.Equal(t, ActionArchive, reporter.events[0].Action)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.NotContains(t, st, "ISSUE-9", "archived entry removed from state")
	assert.Len(t, st, 2)
}

func TestSyncDryRunTouchesNothing(t *testing.T) {
	engine, adapter, store, reporter := newTestEngine(t, true)
	parsed := issues.Parse(twoIssueDoc)

	summary, err := engine.Sync(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Created: 2, DryRun: true}, summary)
	assert.Empty(t, adapter.calls, "dry run calls no adapter method")

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.Empty(t, st, "dry run persists no state")

	require.Len(t, reporter.events, 2)
	assert.True(t, reporter.events[0].DryRun)
}

func TestSyncAdapterFailureAbortsWithoutPersisting(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	adapter.failOp = "create"
	parsed := issues.Parse(twoIssueDoc)

	_, err := engine.Sync(docPath, parsed)
	require.Error(t, err)

	var adapterErr *tracker.AdapterError
	assert.ErrorAs(t, err, &adapterErr)
	assert.Len(t, adapter.calls, 1, "first failure aborts the pass")

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.Empty(t, st, "nothing persisted after an aborted pass")
}

func TestResyncDescriptions(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)
	parsed := issues.Parse(twoIssueDoc)

	// ISSUE-1 is tracked, ISSUE-2 is not
	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-1": {TrackerID: "item-9", LastStatus: "ready"},
	}))

	summary, err := engine.ResyncDescriptions(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Updated: 1, Skipped: 1}, summary)
	assert.Equal(t, []string{"update_description item-9"}, adapter.calls)

	st, err := store.Load(docPath)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(issues.ExtractSummary(parsed[0].RawBlock)), st["ISSUE-1"].DescriptionHash)
}

func TestResyncSkipsEmptySummaries(t *testing.T) {
	engine, adapter, store, _ := newTestEngine(t, false)

	doc := "### ISSUE-1: Bare issue\n\n**Status:** Ready\n"
	parsed := issues.Parse(doc)
	require.Len(t, parsed, 1)

	require.NoError(t, store.Save(docPath, models.SyncState{
		"ISSUE-1": {TrackerID: "item-9", LastStatus: "ready"},
	}))

	summary, err := engine.ResyncDescriptions(docPath, parsed)
	require.NoError(t, err)

	assert.Equal(t, Summary{Skipped: 1}, summary)
	assert.Empty(t, adapter.calls)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("same text"), Fingerprint("same text"))
	assert.NotEqual(t, Fingerprint("one"), Fingerprint("two"))
	assert.NotEmpty(t, Fingerprint(""), "empty text has a real fingerprint, distinct from unrecorded")
	assert.Len(t, Fingerprint("anything"), 16)
}
