package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "package.yaml", cfg.Manifest)
	assert.Equal(t, "python", cfg.Build.Command)
	assert.Equal(t, []string{"setup.py", "sdist", "bdist_wheel"}, cfg.Build.Args)
	assert.Equal(t, DefaultProductionURL, cfg.Index.ProductionURL)
	assert.Equal(t, DefaultTestURL, cfg.Index.TestURL)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
output_dir: build
index:
  test_url: https://staging.example.com/upload/
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.OutputDir)
	assert.Equal(t, "https://staging.example.com/upload/", cfg.Index.TestURL)
	assert.Equal(t, DefaultProductionURL, cfg.Index.ProductionURL)
	assert.Equal(t, "python", cfg.Build.Command)
}

func TestLoadCustomToolchain(t *testing.T) {
	dir := t.TempDir()
	content := `
build:
  command: flit
  args: [build]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "flit", cfg.Build.Command)
	assert.Equal(t, []string{"build"}, cfg.Build.Args)
}

func TestLoadRejectsAbsoluteOutputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output_dir: /tmp/dist\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_dir must be relative")
}

func TestLoadRejectsCommandWithoutArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("build:\n  command: flit\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build.args is required")
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output_dir: [oops"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.OutputDir = "out"
	require.NoError(t, cfg.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "out", loaded.OutputDir)
}
