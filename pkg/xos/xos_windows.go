//go:build windows
// +build windows

// Package xos provides atomic file writes. On Windows a same-directory temp
// file plus rename is used, since cross-drive atomic rename is not available.
package xos

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file via a temp file in the same
// directory followed by a rename.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return WriteReader(filename, bytes.NewReader(data), perm)
}

// WriteReader writes data from a reader to the named file via a temp file in
// the same directory followed by a rename.
func WriteReader(filename string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempName)
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return err
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}

	if err := tempFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tempName, perm); err != nil {
		return err
	}

	if err := os.Rename(tempName, filename); err != nil {
		return err
	}

	success = true
	return nil
}
