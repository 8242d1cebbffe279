// Package archive provides read-only inspection of distribution archives.
// Archives are opened in listing mode only; nothing is extracted to disk and
// no contained code is executed.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

// ErrEmpty is returned when an archive opens cleanly but contains no entries.
var ErrEmpty = errors.New("archive contains no entries")

// Entry describes a single member of a distribution archive.
type Entry struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// List enumerates the table of contents of the archive at path. The archive
// format is inferred from the file extension: .tar.gz/.tgz for source
// distributions, .whl/.zip for binary wheels.
func List(path string) ([]Entry, error) {
	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return listTarGz(path)
	case strings.HasSuffix(path, ".whl"), strings.HasSuffix(path, ".zip"):
		return listZip(path)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", path)
	}
}

// Print writes a tar-tv-style table of contents for the archive at path to w.
func Print(w io.Writer, path string) error {
	entries, err := List(path)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s %9d %s %s\n",
			e.Mode, e.Size, e.ModTime.Format("2006-01-02 15:04"), e.Name)
	}

	return nil
}

func listTarGz(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid gzip archive: %w", path, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)

	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid tar archive: %w", path, err)
		}
		entries = append(entries, Entry{
			Name:    hdr.Name,
			Size:    hdr.Size,
			Mode:    hdr.FileInfo().Mode(),
			ModTime: hdr.ModTime,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return entries, nil
}

func listZip(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid zip archive: %w", path, err)
	}
	defer r.Close()

	var entries []Entry
	for _, f := range r.File {
		entries = append(entries, Entry{
			Name:    f.Name,
			Size:    int64(f.UncompressedSize64),
			Mode:    f.Mode(),
			ModTime: f.Modified,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return entries, nil
}
