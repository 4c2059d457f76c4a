package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCheckpoint reads the plain-text integer checkpoint at path. A
// missing file is treated as "no checkpoint" (0, nil), not an error.
func ReadCheckpoint(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ingest: read checkpoint: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("ingest: parse checkpoint %q: %w", path, err)
	}
	return n, nil
}

// WriteCheckpoint atomically writes n to path: it writes a temp file in
// the same directory and renames it over path, so a crash mid-write
// never leaves a truncated checkpoint.
func WriteCheckpoint(path string, n int) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("ingest: create checkpoint temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := tmp.WriteString(strconv.Itoa(n)); err != nil {
		tmp.Close()
		return fmt.Errorf("ingest: write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ingest: close checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("ingest: rename checkpoint into place: %w", err)
	}
	return nil
}

// RemoveCheckpoint deletes the checkpoint file, if any, on clean
// completion.
func RemoveCheckpoint(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ingest: remove checkpoint: %w", err)
	}
	return nil
}
