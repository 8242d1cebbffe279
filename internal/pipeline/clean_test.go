package pipeline

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRemovesPopulatedDir(t *testing.T) {
	rc, _ := newTestContext(t)
	populateOutputDir(t, rc, "old-0.1.0.tar.gz", "old_pkg-0.1.0-py3-none-any.whl")

	require.NoError(t, CleanStage{}.Run(context.Background(), rc))

	_, err := os.Stat(rc.OutputDir)
	assert.True(t, os.IsNotExist(err), "output directory should be gone after clean")
}

func TestCleanAbsentDirIsNoOp(t *testing.T) {
	rc, out := newTestContext(t)

	require.NoError(t, CleanStage{}.Run(context.Background(), rc))
	assert.Contains(t, out.String(), "Nothing to clean")
}

func TestCleanIsIdempotent(t *testing.T) {
	rc, _ := newTestContext(t)
	populateOutputDir(t, rc, "old-0.1.0.tar.gz")

	for i := 0; i < 2; i++ {
		require.NoError(t, CleanStage{}.Run(context.Background(), rc))

		_, err := os.Stat(rc.OutputDir)
		assert.True(t, os.IsNotExist(err), "run %d should leave the directory absent", i+1)
	}
}
