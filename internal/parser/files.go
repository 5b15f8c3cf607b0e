package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNoDataRoot is returned when the configured data directory does not
// exist at all. Unlike per-file read errors, a missing root indicates
// misconfiguration and is surfaced as a hard failure.
var ErrNoDataRoot = errors.New("usage data root does not exist")

// FileMeta identifies one candidate log file.
type FileMeta struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Discover enumerates .jsonl files under root. Files that cannot be
// statted are skipped; a missing root is an error.
func Discover(root string) ([]FileMeta, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDataRoot, root)
		}
		return nil, fmt.Errorf("stat data root: %w", err)
	}

	var files []FileMeta
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, FileMeta{Path: path, ModTime: info.ModTime(), Size: info.Size()})
		return nil
	})
	return files, nil
}

// ProjectOf derives the project identifier from a log file path.
func ProjectOf(path string) string {
	return filepath.Dir(path)
}

// FilterModifiedToday keeps files whose modification time falls on now's
// local calendar day.
func FilterModifiedToday(files []FileMeta, now time.Time, tz *time.Location) []FileMeta {
	y, m, d := now.In(tz).Date()
	out := make([]FileMeta, 0, len(files))
	for _, f := range files {
		fy, fm, fd := f.ModTime.In(tz).Date()
		if fy == y && fm == m && fd == d {
			out = append(out, f)
		}
	}
	return out
}

// FilterModifiedWithinHours keeps files modified within the last n hours.
func FilterModifiedWithinHours(files []FileMeta, n int, now time.Time) []FileMeta {
	cutoff := now.Add(-time.Duration(n) * time.Hour)
	out := make([]FileMeta, 0, len(files))
	for _, f := range files {
		if !f.ModTime.Before(cutoff) {
			out = append(out, f)
		}
	}
	return out
}
