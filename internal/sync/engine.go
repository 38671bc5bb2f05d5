// Package sync implements the reconciliation engine: it compares parsed
// issues against stored sync state and drives a tracker adapter so that
// repeated runs converge to a consistent remote state.
package sync

import (
	"fmt"
	"sort"

	"github.com/danielolaszy/tracksync/internal/issues"
	"github.com/danielolaszy/tracksync/internal/logging"
	"github.com/danielolaszy/tracksync/internal/state"
	"github.com/danielolaszy/tracksync/internal/tracker"
	"github.com/danielolaszy/tracksync/pkg/models"
)

// Engine reconciles one document against its remote tracker projection.
//
// A pass mutates state in memory as each remote call succeeds and persists
// the store once at the end. The first failed adapter call aborts the pass
// without persisting, so the next run re-derives every remaining action from
// the stale stored state. A create that succeeds remotely right before such
// an abort is therefore re-created on retry, leaving a duplicate remote item
// to clean up by hand.
type Engine struct {
	adapter  tracker.Adapter
	store    *state.Store
	reporter Reporter
	dryRun   bool
}

// NewEngine wires an engine. A nil reporter discards progress events.
func NewEngine(adapter tracker.Adapter, store *state.Store, reporter Reporter, dryRun bool) *Engine {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Engine{
		adapter:  adapter,
		store:    store,
		reporter: reporter,
		dryRun:   dryRun,
	}
}

// Sync runs one reconciliation pass: archives orphans first, then walks the
// issues in document order deciding the minimal action for each. In dry-run
// mode every comparison is made and reported but no adapter call is issued
// and no state is persisted.
func (e *Engine) Sync(docPath string, parsed []models.Issue) (Summary, error) {
	st, err := e.store.Load(docPath)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{DryRun: e.dryRun}

	if err := e.archiveOrphans(parsed, st, &summary); err != nil {
		return summary, err
	}

	for _, issue := range parsed {
		if err := e.syncIssue(docPath, issue, st, &summary); err != nil {
			return summary, err
		}
	}

	if !e.dryRun {
		if err := e.store.Save(docPath, st); err != nil {
			return summary, err
		}
	}

	e.reporter.Summary(summary)
	return summary, nil
}

// archiveOrphans removes remote items whose issues disappeared from the
// document. They are processed before creates and updates so a dry-run
// report reads archived items first.
func (e *Engine) archiveOrphans(parsed []models.Issue, st models.SyncState, summary *Summary) error {
	present := make(map[string]bool, len(parsed))
	for _, issue := range parsed {
		present[issue.ID] = true
	}

	var orphans []string
	for issueID := range st {
		if !present[issueID] {
			orphans = append(orphans, issueID)
		}
	}
	sort.Strings(orphans)

	for _, issueID := range orphans {
		entry := st[issueID]
		e.reporter.Action(Event{
			Action:    ActionArchive,
			IssueID:   issueID,
			TrackerID: entry.TrackerID,
			DryRun:    e.dryRun,
		})
		summary.Archived++

		if e.dryRun {
			continue
		}
		if err := e.adapter.Archive(entry.TrackerID); err != nil {
			return fmt.Errorf("failed to archive %s: %w", issueID, err)
		}
		delete(st, issueID)
	}

	return nil
}

// syncIssue decides and applies the minimal action for one issue. Status
// changes take precedence over description changes: when both differ in the
// same run only the status update fires and the new description hash is
// backfilled silently. A missing stored hash is always backfilled without a
// remote call, so first-time hashing never looks like a content change.
func (e *Engine) syncIssue(docPath string, issue models.Issue, st models.SyncState, summary *Summary) error {
	normalized := issue.Status.Normalized()
	description := issues.ExtractSummary(issue.RawBlock)
	hash := Fingerprint(description)

	entry, tracked := st[issue.ID]

	switch {
	case !tracked:
		e.reporter.Action(Event{
			Action:   ActionCreate,
			IssueID:  issue.ID,
			Title:    issue.Title,
			ToStatus: normalized,
			DryRun:   e.dryRun,
		})
		summary.Created++

		if e.dryRun {
			return nil
		}
		trackerID, err := e.adapter.Create(
			issue.ID+": "+issue.Title,
			normalized,
			description,
			issue.Complexity,
			issue.Layers,
		)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", issue.ID, err)
		}
		st[issue.ID] = models.SyncEntry{
			TrackerID:       trackerID,
			LastStatus:      normalized,
			DescriptionHash: hash,
		}

	case entry.LastStatus != normalized:
		e.reporter.Action(Event{
			Action:     ActionUpdateStatus,
			IssueID:    issue.ID,
			Title:      issue.Title,
			TrackerID:  entry.TrackerID,
			FromStatus: entry.LastStatus,
			ToStatus:   normalized,
			DryRun:     e.dryRun,
		})
		summary.Updated++

		if e.dryRun {
			return nil
		}
		if err := e.adapter.UpdateStatus(entry.TrackerID, normalized); err != nil {
			return fmt.Errorf("failed to update status of %s: %w", issue.ID, err)
		}
		entry.LastStatus = normalized
		entry.DescriptionHash = hash
		st[issue.ID] = entry

	case entry.DescriptionHash != "" && entry.DescriptionHash != hash:
		e.reporter.Action(Event{
			Action:    ActionUpdateDescription,
			IssueID:   issue.ID,
			Title:     issue.Title,
			TrackerID: entry.TrackerID,
			DryRun:    e.dryRun,
		})
		summary.Updated++

		if e.dryRun {
			return nil
		}
		if err := e.adapter.UpdateDescription(entry.TrackerID, description); err != nil {
			return fmt.Errorf("failed to update description of %s: %w", issue.ID, err)
		}
		entry.DescriptionHash = hash
		st[issue.ID] = entry

	default:
		if entry.DescriptionHash == "" && !e.dryRun {
			// Entry predates description hashing; record the current hash
			// without a remote call so the next change is detected.
			logging.Debug("backfilling description hash", "issue", issue.ID, "file", docPath)
			entry.DescriptionHash = hash
			st[issue.ID] = entry
		}
		e.reporter.Action(Event{
			Action:    ActionUnchanged,
			IssueID:   issue.ID,
			Title:     issue.Title,
			TrackerID: entry.TrackerID,
			DryRun:    e.dryRun,
		})
		summary.Unchanged++
	}

	return nil
}

// ResyncDescriptions bypasses change detection and re-pushes the description
// of every tracked issue that still has derivable content. Issues with no
// stored tracker mapping, and issues whose summary is empty, are skipped and
// counted separately from updated ones.
func (e *Engine) ResyncDescriptions(docPath string, parsed []models.Issue) (Summary, error) {
	st, err := e.store.Load(docPath)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{DryRun: e.dryRun}

	for _, issue := range parsed {
		entry, tracked := st[issue.ID]
		description := issues.ExtractSummary(issue.RawBlock)

		if !tracked || description == "" {
			e.reporter.Action(Event{
				Action:  ActionSkip,
				IssueID: issue.ID,
				Title:   issue.Title,
				DryRun:  e.dryRun,
			})
			summary.Skipped++
			continue
		}

		e.reporter.Action(Event{
			Action:    ActionUpdateDescription,
			IssueID:   issue.ID,
			Title:     issue.Title,
			TrackerID: entry.TrackerID,
			DryRun:    e.dryRun,
		})
		summary.Updated++

		if e.dryRun {
			continue
		}
		if err := e.adapter.UpdateDescription(entry.TrackerID, description); err != nil {
			return summary, fmt.Errorf("failed to update description of %s: %w", issue.ID, err)
		}
		entry.DescriptionHash = Fingerprint(description)
		st[issue.ID] = entry
	}

	if !e.dryRun {
		if err := e.store.Save(docPath, st); err != nil {
			return summary, err
		}
	}

	e.reporter.Summary(summary)
	return summary, nil
}
