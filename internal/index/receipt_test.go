package index

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptRoundTrip(t *testing.T) {
	dir := t.TempDir()

	content := []byte("archive bytes")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deepdrive-api-0.2.0.tar.gz"), content, 0644))

	published := time.Date(2019, 4, 5, 3, 51, 57, 0, time.UTC)
	writer := &ReceiptWriter{
		IndexURL: "https://upload.pypi.org/legacy/",
		now:      func() time.Time { return published },
	}

	require.NoError(t, writer.Write(dir, []string{"deepdrive-api-0.2.0.tar.gz"}))

	receipt, err := ReadReceipt(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://upload.pypi.org/legacy/", receipt.Index)
	assert.True(t, receipt.PublishedAt.Equal(published))
	require.Len(t, receipt.Files, 1)

	digest := sha256.Sum256(content)
	assert.Equal(t, "deepdrive-api-0.2.0.tar.gz", receipt.Files[0].Name)
	assert.Equal(t, int64(len(content)), receipt.Files[0].Size)
	assert.Equal(t, hex.EncodeToString(digest[:]), receipt.Files[0].SHA256)
}

func TestReceiptWriteMissingArtifact(t *testing.T) {
	writer := NewReceiptWriter("https://upload.pypi.org/legacy/")

	err := writer.Write(t.TempDir(), []string{"gone-1.0.tar.gz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone-1.0.tar.gz")
}

func TestReadReceiptMissing(t *testing.T) {
	_, err := ReadReceipt(t.TempDir())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
