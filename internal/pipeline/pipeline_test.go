package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerExecutesStagesInOrder(t *testing.T) {
	rc, _ := newTestContext(t)

	var runs []string
	runner := NewRunner(
		&recordingStage{name: "clean", runs: &runs},
		&recordingStage{name: "build", runs: &runs},
		&recordingStage{name: "verify", runs: &runs},
		&recordingStage{name: "publish", runs: &runs},
	)

	require.NoError(t, runner.Run(context.Background(), rc))
	assert.Equal(t, []string{"clean", "build", "verify", "publish"}, runs)
}

func TestRunnerFailFast(t *testing.T) {
	rc, _ := newTestContext(t)
	boom := errors.New("toolchain exploded")

	var runs []string
	runner := NewRunner(
		&recordingStage{name: "clean", runs: &runs},
		&recordingStage{name: "build", runs: &runs, err: boom},
		&recordingStage{name: "verify", runs: &runs},
		&recordingStage{name: "publish", runs: &runs},
	)

	err := runner.Run(context.Background(), rc)
	require.Error(t, err)

	// The failing stage ran; nothing after it did.
	assert.Equal(t, []string{"clean", "build"}, runs)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "build", stageErr.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	rc, _ := newTestContext(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var runs []string
	runner := NewRunner(&recordingStage{name: "clean", runs: &runs})

	err := runner.Run(ctx, rc)
	require.Error(t, err)
	assert.Empty(t, runs)
}

func TestStageErrorMessage(t *testing.T) {
	err := &StageError{Stage: "verify", Err: errors.New("no artifacts")}
	assert.Equal(t, "verify stage failed: no artifacts", err.Error())
}
