// Package cache implements the incremental file-diff cache persisted at
// `<outDir>/.air-cache/manifest.json` (spec.md §4.7).
//
// The shape mirrors the teacher's internal/incremental signature/checker
// pair (a persisted content-hash record compared against a freshly computed
// one) but drops its storage.ObjectStore indirection: AirEngine's cache is
// a flat path→hash map on disk, not a generic content-addressed object
// store, since nothing else in the repo needs a generic store.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/airengine/airengine/internal/manifest"
)

// Version is the cache file's schema version.
const Version = 1

// FileName is the cache file's name within its directory.
const FileName = "manifest.json"

// DirName is the cache directory's name within the output directory.
const DirName = ".air-cache"

// Record is the on-disk shape of the incremental cache manifest.
type Record struct {
	Version    int               `json:"version"`
	SourceHash string            `json:"sourceHash"`
	Files      map[string]string `json:"files"`
	Timestamp  string            `json:"timestamp"`
}

// Diff is the result of comparing a freshly computed file set against a
// loaded Record.
type Diff struct {
	Skipped []string // path hash matched previous entry
	Changed []string // path is new or its hash differs
	Removed []string // path was in the previous record but not this set
}

// Path returns the cache file's path under outDir.
func Path(outDir string) string {
	return filepath.Join(outDir, DirName, FileName)
}

// Load reads the cache record at outDir, if any. A missing file is not an
// error — it returns a zero-value Record and ok=false.
func Load(outDir string) (Record, bool, error) {
	data, err := os.ReadFile(Path(outDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("cache: read: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("cache: unmarshal: %w", err)
	}
	return rec, true, nil
}

// Compute computes Diff against the previous record for a freshly generated
// file set. previous.ok == false is treated as an empty cache (every file is
// "changed").
func Compute(files []manifest.OutputFile, previous Record, previousOK bool) Diff {
	var d Diff
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.Path] = true
		hash := manifest.Hash16(f.Content)
		if previousOK {
			if prevHash, ok := previous.Files[f.Path]; ok && prevHash == hash {
				d.Skipped = append(d.Skipped, f.Path)
				continue
			}
		}
		d.Changed = append(d.Changed, f.Path)
	}
	if previousOK {
		for path := range previous.Files {
			if !seen[path] {
				d.Removed = append(d.Removed, path)
			}
		}
	}
	return d
}

// Build constructs the Record to persist after a transpile, covering every
// file in files (the cache always reflects the full current file set,
// regardless of which of those files were skipped/changed).
func Build(sourceHash string, files []manifest.OutputFile, timestampISO8601 string) Record {
	entries := make(map[string]string, len(files))
	for _, f := range files {
		entries[f.Path] = manifest.Hash16(f.Content)
	}
	return Record{
		Version:    Version,
		SourceHash: sourceHash,
		Files:      entries,
		Timestamp:  timestampISO8601,
	}
}

// Save writes rec to outDir's cache file, creating the .air-cache directory
// if needed. The manifest file is always rewritten, even when its content
// set is unchanged, since its timestamp always changes (spec.md §4.7).
func Save(outDir string, rec Record) error {
	dir := filepath.Join(outDir, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cache: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("cache: unexpected marshal failure: %v", err))
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("cache: write: %w", err)
	}
	return nil
}
