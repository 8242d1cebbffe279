package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dosanma1/shipper-cli/pkg/xos"
)

// ReceiptFileName is the record of what was uploaded, left in the output
// directory after a successful publish.
const ReceiptFileName = ".publish-receipt.yaml"

// Receipt records a completed publish of the artifact set.
type Receipt struct {
	Index       string        `yaml:"index"`
	PublishedAt time.Time     `yaml:"published_at"`
	Files       []ReceiptFile `yaml:"files"`
}

// ReceiptFile records one uploaded artifact.
type ReceiptFile struct {
	Name   string `yaml:"name"`
	Size   int64  `yaml:"size"`
	SHA256 string `yaml:"sha256"`
}

// ReceiptWriter writes publish receipts into the output directory.
type ReceiptWriter struct {
	IndexURL string

	// now is overridable for tests.
	now func() time.Time
}

// NewReceiptWriter creates a receipt writer for the given index endpoint.
func NewReceiptWriter(indexURL string) *ReceiptWriter {
	return &ReceiptWriter{IndexURL: indexURL, now: time.Now}
}

// Write records the uploaded files in a receipt inside dir. The receipt is
// written atomically so an interrupted run never leaves a half-written one.
func (w *ReceiptWriter) Write(dir string, files []string) error {
	now := w.now
	if now == nil {
		now = time.Now
	}

	receipt := Receipt{
		Index:       w.IndexURL,
		PublishedAt: now().UTC(),
	}

	for _, file := range files {
		path := filepath.Join(dir, file)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read uploaded artifact %s: %w", file, err)
		}

		digest := sha256.Sum256(content)
		receipt.Files = append(receipt.Files, ReceiptFile{
			Name:   file,
			Size:   int64(len(content)),
			SHA256: hex.EncodeToString(digest[:]),
		})
	}

	data, err := yaml.Marshal(&receipt)
	if err != nil {
		return fmt.Errorf("failed to marshal publish receipt: %w", err)
	}

	if err := xos.WriteFile(filepath.Join(dir, ReceiptFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write publish receipt: %w", err)
	}

	return nil
}

// ReadReceipt loads the publish receipt from dir, if one exists.
func ReadReceipt(dir string) (*Receipt, error) {
	data, err := os.ReadFile(filepath.Join(dir, ReceiptFileName))
	if err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := yaml.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("failed to parse publish receipt: %w", err)
	}

	return &receipt, nil
}
