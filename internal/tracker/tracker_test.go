package tracker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/tracksync/internal/config"
)

type stubAdapter struct{}

func (stubAdapter) Create(title, status, description, complexity, layers string) (string, error) {
	return "stub-1", nil
}
func (stubAdapter) UpdateStatus(trackerID, status string) error { return nil }

func (stubAdapter) UpdateDescription(trackerID, description string) error { return nil }

func (stubAdapter) Archive(trackerID string) error { return nil }

func TestRegistry(t *testing.T) {
	Register("stub", func(cfg *config.Config, docPath string) (Adapter, error) {
		return stubAdapter{}, nil
	})

	adapter, err := New(&config.Config{Tracker: "stub"}, "specs/feature.issues.md")
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestUnknownTrackerListsAvailable(t *testing.T) {
	Register("stub", func(cfg *config.Config, docPath string) (Adapter, error) {
		return stubAdapter{}, nil
	})

	_, err := New(&config.Config{Tracker: "fogbugz"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tracker "fogbugz"`)
	assert.Contains(t, err.Error(), "stub")
}

func TestConstructorErrorPropagates(t *testing.T) {
	Register("broken", func(cfg *config.Config, docPath string) (Adapter, error) {
		return nil, fmt.Errorf("api token not configured")
	})

	_, err := New(&config.Config{Tracker: "broken"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api token not configured")
}

func TestAdapterError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &AdapterError{Vendor: "monday", Op: "create", Err: cause}

	assert.Equal(t, "monday create: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
