package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/airengine/airengine/internal/cache"
	"github.com/airengine/airengine/internal/manifest"
)

// writeOutputFile writes one generated file under outDir, containment-
// checked the way the teacher's templates.WriteGeneratedFile does, but
// with O_TRUNC instead of O_EXCL: a compiled project is regenerated in
// place on every run, unlike the teacher's append-only docs tree.
func writeOutputFile(outDir, relativePath, content string) error {
	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return fmt.Errorf("output path must be relative to outDir: %s", relativePath)
	}

	fullPath := filepath.Join(outDir, cleanRel)
	rel, err := filepath.Rel(outDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("output path escapes output directory: %s", relativePath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// #nosec G304 -- fullPath is validated to stay under outDir.
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// writeOutputs is the loop's final side effect (spec.md §4.8): it runs the
// incremental cache diff, writes changed/new files, removes files the
// cache remembers but the new set no longer produces, and persists the
// refreshed cache record.
func writeOutputs(outDir string, files []manifest.OutputFile, sourceHash, timestampISO8601 string) (cache.Diff, error) {
	previous, previousOK, err := cache.Load(outDir)
	if err != nil {
		return cache.Diff{}, fmt.Errorf("load incremental cache: %w", err)
	}

	diff := cache.Compute(files, previous, previousOK)

	changed := make(map[string]bool, len(diff.Changed))
	for _, p := range diff.Changed {
		changed[p] = true
	}
	for _, f := range files {
		if !changed[f.Path] {
			continue
		}
		if err := writeOutputFile(outDir, f.Path, f.Content); err != nil {
			return diff, err
		}
	}

	for _, p := range diff.Removed {
		full := filepath.Join(outDir, filepath.Clean(p))
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			return diff, fmt.Errorf("remove stale output file %s: %w", p, err)
		}
	}

	rec := cache.Build(sourceHash, files, timestampISO8601)
	if err := cache.Save(outDir, rec); err != nil {
		return diff, fmt.Errorf("save incremental cache: %w", err)
	}
	return diff, nil
}
