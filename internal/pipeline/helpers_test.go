package pipeline

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dosanma1/shipper-cli/internal/config"
	"github.com/dosanma1/shipper-cli/internal/manifest"
)

// newTestContext builds a run context over a temp project root for the
// deepdrive-api 0.2.0 package.
func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	m := &manifest.Manifest{Name: "deepdrive-api", Version: "0.2.0"}

	rc := NewContext(cfg, m, root)

	var out bytes.Buffer
	rc.Stdout = &out
	return rc, &out
}

// populateOutputDir drops the named files into the run's output directory.
func populateOutputDir(t *testing.T, rc *Context, names ...string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(rc.OutputDir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(rc.OutputDir, name), []byte("artifact"), 0644))
	}
}

// writeSdist writes a minimal valid source distribution into the output dir.
func writeSdist(t *testing.T, rc *Context, name string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(rc.OutputDir, 0755))

	f, err := os.Create(filepath.Join(rc.OutputDir, name))
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	content := "Name: deepdrive-api"
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:    "deepdrive-api-0.2.0/PKG-INFO",
		Size:    int64(len(content)),
		Mode:    0644,
		ModTime: time.Now(),
	}))
	_, err = tw.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

// recordingStage records whether and when it ran.
type recordingStage struct {
	name string
	runs *[]string
	err  error
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Run(_ context.Context, _ *Context) error {
	*s.runs = append(*s.runs, s.name)
	return s.err
}

// fakeBuilder writes the given files into the output directory, standing in
// for the external packaging toolchain.
type fakeBuilder struct {
	rc    *Context
	files []string
	err   error
}

func (b *fakeBuilder) Build(_ context.Context, _ string) error {
	if b.err != nil {
		return b.err
	}
	if err := os.MkdirAll(b.rc.OutputDir, 0755); err != nil {
		return err
	}
	for _, name := range b.files {
		if err := os.WriteFile(filepath.Join(b.rc.OutputDir, name), []byte("artifact"), 0644); err != nil {
			return err
		}
	}
	return nil
}

// fakeUploader records uploaded paths, standing in for the index client.
type fakeUploader struct {
	uploaded []string
	err      error
}

func (u *fakeUploader) URL() string { return "https://index.example.com/upload/" }

func (u *fakeUploader) Upload(_ context.Context, path string) error {
	if u.err != nil {
		return u.err
	}
	u.uploaded = append(u.uploaded, filepath.Base(path))
	return nil
}
