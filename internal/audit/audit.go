// Package audit keeps a JSON copy of every import run on disk.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Auditor writes import reports to Dir, one file per run.
type Auditor struct {
	Dir    string
	Prefix string
}

func NewAuditor(dir string) *Auditor {
	return &Auditor{
		Dir:    dir,
		Prefix: "import",
	}
}

// SaveJSON writes data as indented JSON to <prefix>-<uuid>.json and returns
// the full path of the created file.
func (a *Auditor) SaveJSON(data any) (string, error) {
	if a.Dir == "" {
		return "", fmt.Errorf("audit directory is not configured")
	}
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit record: %w", err)
	}

	path := filepath.Join(a.Dir, a.filename())
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit record: %s", path)
	return path, nil
}

// List returns the audit files currently in Dir, oldest first.
func (a *Auditor) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.Dir, "*.json"))
	if err != nil {
		return nil, err
	}

	modified := make(map[string]time.Time, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat audit file: %w", err)
		}
		modified[path] = info.ModTime()
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return modified[matches[i]].Before(modified[matches[j]])
	})
	return matches, nil
}

func (a *Auditor) filename() string {
	id := uuid.New().String()
	prefix := strings.TrimSpace(a.Prefix)
	if prefix == "" {
		return id + ".json"
	}
	return prefix + "-" + id + ".json"
}
