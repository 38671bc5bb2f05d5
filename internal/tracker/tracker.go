// Package tracker defines the capability contract every remote-tracker
// adapter implements, and the registry the CLI uses to select one by name.
// Reconciliation depends only on this contract, never on a vendor's wire
// format. The only status vocabulary that crosses this boundary is the
// normalized token set: backlog, ready, in_progress, in_review, done.
package tracker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielolaszy/tracksync/internal/config"
)

// Adapter is the minimal, idempotent operation set a remote tracker must
// support. All methods fail with *AdapterError on remote failure.
type Adapter interface {
	// Create makes a new item and returns the tracker-assigned identifier.
	Create(title, status, description, complexity, layers string) (string, error)

	// UpdateStatus moves an existing item to a new normalized status.
	UpdateStatus(trackerID, status string) error

	// UpdateDescription replaces an item's description. Implementations may
	// treat an empty description as a no-op.
	UpdateDescription(trackerID, description string) error

	// Archive marks the item inactive on the remote side.
	Archive(trackerID string) error
}

// AdapterError reports a failed remote call: which vendor, which operation,
// and the underlying cause.
type AdapterError struct {
	Vendor string
	Op     string
	Err    error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Vendor, e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Constructor builds an adapter from validated configuration. The docPath is
// the issues file being synced, for adapters that route items per document.
// Configuration errors (missing credentials, unresolved placeholders) must be
// returned here, before any reconciliation action is attempted.
type Constructor func(cfg *config.Config, docPath string) (Adapter, error)

var registry = map[string]Constructor{}

// Register makes an adapter constructor available under a tracker name.
// Vendor packages call this from init, selected by blank imports in cmd.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// New constructs the adapter named by cfg.Tracker. An unknown name is an
// error listing the registered trackers.
func New(cfg *config.Config, docPath string) (Adapter, error) {
	ctor, ok := registry[cfg.Tracker]
	if !ok {
		return nil, fmt.Errorf("unknown tracker %q (available: %s)", cfg.Tracker, strings.Join(Names(), ", "))
	}
	return ctor(cfg, docPath)
}

// Names returns the registered tracker names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
