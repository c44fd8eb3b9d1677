// Package fileutil provides the copy primitive for emitting match groups.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"time"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// CopyFile copies src to dest, preserving the file mode and modification
// time. An existing dest is overwritten.
func CopyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	destFile, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		os.Remove(dest) // Clean up on failure
		return fmt.Errorf("failed to copy contents: %w", err)
	}
	if err := destFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}

	// Must happen after close or the write updates the timestamp again.
	if err := os.Chtimes(dest, time.Now(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve mod time: %w", err)
	}

	return nil
}
