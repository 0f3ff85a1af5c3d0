package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/generators"
	"github.com/airengine/airengine/internal/manifest"
	"github.com/airengine/airengine/internal/metrics"
	"github.com/airengine/airengine/internal/transpile"
	"github.com/airengine/airengine/internal/version"
)

// entryFileNames are the project-entry equivalents stage 4 looks for
// (spec.md §4.8 step 4).
var entryFileNames = map[string]bool{
	"App.jsx":    true,
	"main.jsx":   true,
	"index.html": true,
}

// runSmokeStage runs the cheap structural checks described in spec.md
// §4.8 step 4 over the produced file set.
func runSmokeStage(result *LoopResult, files []manifest.OutputFile, rec metrics.Recorder) {
	start := time.Now()
	status := StagePass
	var reasons []string

	if len(files) == 0 {
		status = StageFail
		reasons = append(reasons, "no files produced")
	}

	hasEntry, hasDescriptor := false, false
	for _, f := range files {
		if strings.TrimSpace(f.Content) == "" {
			status = StageFail
			reasons = append(reasons, fmt.Sprintf("%s is empty or whitespace-only", f.Path))
		}
		base := baseName(f.Path)
		if entryFileNames[base] {
			hasEntry = true
		}
		if base == "package.json" {
			hasDescriptor = true
		}
	}
	if !hasEntry {
		status = StageFail
		reasons = append(reasons, "no entry file (App.jsx/main.jsx/index.html) found")
	}
	if !hasDescriptor {
		status = StageFail
		reasons = append(reasons, "no project descriptor (package.json) found")
	}

	rec.ObserveStageDuration(metrics.StageSmoke, time.Since(start))
	rec.IncStageResult(metrics.StageSmoke, resultFor(status))
	result.Stages = append(result.Stages, LoopStage{
		Name: "smoke", Status: status, DurationMs: time.Since(start).Milliseconds(),
		Details: strings.Join(reasons, "; "),
	})
}

func baseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// runDeterminismStage re-transpiles source from ast and compares file
// hashes against the first pass, excluding each run's own manifest entry
// (spec.md §4.8 step 5).
func runDeterminismStage(result *LoopResult, ast *airast.AirAST, source string, firstPass []manifest.OutputFile, rec metrics.Recorder) {
	start := time.Now()

	tctx := transpile.Build(ast)
	secondGenerated := generators.Generate(tctx)
	sourceHash := diagnostics.HashSource(source)
	secondPass := manifest.WithManifest("AirEngine", version.Version, sourceHash, secondGenerated, result.Timestamp)

	firstHashes := hashesExcludingManifest(firstPass)
	secondHashes := hashesExcludingManifest(secondPass)

	deterministic := equalHashSets(firstHashes, secondHashes)
	status := StagePass
	if !deterministic {
		status = StageFail
	}

	result.DeterminismCheck = DeterminismCheck{
		SourceHash:    sourceHash,
		OutputHashes:  sortedValues(firstHashes),
		Deterministic: deterministic,
	}

	rec.ObserveStageDuration(metrics.StageDeterminism, time.Since(start))
	rec.IncStageResult(metrics.StageDeterminism, resultFor(status))
	result.Stages = append(result.Stages, LoopStage{
		Name: "determinism", Status: status, DurationMs: time.Since(start).Milliseconds(),
	})
}

func hashesExcludingManifest(files []manifest.OutputFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		if f.Path == manifest.ManifestPath {
			continue
		}
		out[f.Path] = manifest.Hash16(f.Content)
	}
	return out
}

func equalHashSets(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for path, hash := range a {
		if b[path] != hash {
			return false
		}
	}
	return true
}

func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
