// Package index uploads distribution artifacts to a package index over its
// legacy multipart upload API.
package index

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dosanma1/shipper-cli/internal/manifest"
)

// ErrDuplicate is returned when the index rejects an upload because the exact
// name and version already exist. Indices treat published artifacts as
// immutable, so a re-run with the same version must fail rather than
// overwrite.
var ErrDuplicate = errors.New("this version already exists on the index")

// ErrUnauthorized is returned when the index rejects the supplied credentials.
var ErrUnauthorized = errors.New("the index rejected the supplied credentials")

// Client uploads artifacts to a single package index endpoint.
type Client struct {
	url      string
	creds    Credentials
	manifest *manifest.Manifest

	httpClient *http.Client

	// ShowProgress renders a byte progress bar on stderr during uploads.
	ShowProgress bool
}

// NewClient creates an upload client for the given index endpoint.
func NewClient(url string, creds Credentials, m *manifest.Manifest) *Client {
	return &Client{
		url:        url,
		creds:      creds,
		manifest:   m,
		httpClient: &http.Client{},
	}
}

// URL returns the index endpoint this client uploads to.
func (c *Client) URL() string {
	return c.url
}

// Upload publishes a single artifact file to the index. There is no retry:
// any failure is returned to the caller for the operator to diagnose.
func (c *Client) Upload(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact: %w", err)
	}

	digest := sha256.Sum256(content)

	body, contentType, err := c.encodeForm(filepath.Base(path), content, hex.EncodeToString(digest[:]))
	if err != nil {
		return err
	}

	var reader io.Reader = body
	if c.ShowProgress {
		bar := newUploadBar(int64(body.Len()), filepath.Base(path))
		// progressbar.Reader implements io.Reader on its pointer receiver.
		pr := progressbar.NewReader(body, bar)
		reader = &pr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, reader)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(body.Len())
	req.SetBasicAuth(c.creds.Username, c.creds.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	return c.checkResponse(resp)
}

// encodeForm builds the multipart upload form for one artifact.
func (c *Client) encodeForm(filename string, content []byte, digest string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		":action":          "file_upload",
		"protocol_version": "1",
		"name":             c.manifest.Name,
		"version":          c.manifest.Version,
		"filetype":         fileType(filename),
		"sha256_digest":    digest,
		"metadata_version": "2.1",
	}
	if c.manifest.Description != "" {
		fields["summary"] = c.manifest.Description
	}
	if c.manifest.License != "" {
		fields["license"] = c.manifest.License
	}
	if c.manifest.Homepage != "" {
		fields["home_page"] = c.manifest.Homepage
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("failed to encode upload form: %w", err)
		}
	}

	part, err := w.CreateFormFile("content", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("failed to encode upload form: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode upload form: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

// checkResponse maps the index's HTTP response to the error taxonomy.
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(raw))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusConflict, isDuplicateBody(detail):
		return fmt.Errorf("%w: %s %s", ErrDuplicate, c.manifest.Name, c.manifest.Version)
	default:
		return fmt.Errorf("index rejected the upload (status %d): %s", resp.StatusCode, detail)
	}
}

// isDuplicateBody recognizes the duplicate-file rejections that indices
// report as generic 400/403 responses.
func isDuplicateBody(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "already exists") ||
		strings.Contains(lower, "file already exists") ||
		strings.Contains(lower, "duplicate")
}

func fileType(filename string) string {
	if strings.HasSuffix(filename, ".whl") {
		return "bdist_wheel"
	}
	return "sdist"
}

func newUploadBar(size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(fmt.Sprintf("Uploading %s", description)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
		progressbar.OptionFullWidth(),
	)
}
