// =============================================================================
// Sheet Generator - File Manager Utility
// =============================================================================
//
// This module provides the file system helpers shared by the converters and
// the command line:
//   - Recursive file discovery that tolerates unreadable entries
//   - Output path templating ({uuid}, {timestamp}, {date}, {time})
//   - Atomic output writing (temp file in the target directory, then rename)
//
// WRITE STRATEGY:
//   The document is written to "<dir>/.<name>.<uuid>.tmp" and renamed over
//   the target once it is complete, so a failed run never leaves a truncated
//   document at the output path.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// WalkFiles lists every regular file below root, recursively, in lexical
// order.
//
// Entries that cannot be read are skipped, as are symbolic links and other
// non-regular files. A root that is missing or is not a directory yields no
// files. WalkFiles never fails.
func WalkFiles(root string) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory or entry: skip it and keep walking.
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})

	return files
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// ExpandOutputPath fills placeholders in an output path.
//
// PARAMETERS:
//   - format: The path, optionally containing placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Date (YYYYMMDD)
//               {time}      - Time (HHMMSS)
//   - now: The time used for the date and time placeholders.
//
// RETURNS:
//   - The expanded path. A path with no placeholders is returned unchanged.
//
// EXAMPLE:
//   format: "reports/inventory_{date}.xml"
//   output: "reports/inventory_20240115.xml"
func ExpandOutputPath(format string, now time.Time) string {
	if !strings.Contains(format, "{") {
		return format
	}

	replacer := strings.NewReplacer(
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	)

	return replacer.Replace(format)
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteFileAtomic writes the content produced by src to path.
//
// The content goes to a uniquely named temporary file next to path, which is
// synced and renamed over path. On any failure the temporary file is removed
// and path is left as it was.
func WriteFileAtomic(path string, src io.WriterTo) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	cleanup := func() {
		f.Close()
		os.Remove(tmpPath)
	}

	if _, err := src.WriteTo(f); err != nil {
		cleanup()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists reports whether path names a regular file, following symbolic
// links. Directories do not count.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// GetFileSize returns the size of a file in bytes, following symbolic links.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
