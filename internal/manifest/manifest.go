// Package manifest builds the `_airengine_manifest.json` file every
// generated output set carries, and provides the OutputFile value type
// generators produce (spec.md §3/§4.6.7).
//
// Build, Parse and Hash16 keep the teacher's manifest shape (a build
// manifest serialized to JSON with a derived content hash), re-specified
// from the teacher's repo/theme/plugin build record to AirEngine's
// generated-file record.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFile is a single generated file: a relative path and its full
// text content (spec.md §3).
type OutputFile struct {
	Path    string
	Content string
}

// FileEntry is one row in the manifest's files list.
type FileEntry struct {
	Path  string `json:"path"`
	Hash16 string `json:"hash16"`
	Lines int    `json:"lines"`
}

// Manifest is `_airengine_manifest.json`'s shape. Field order is fixed:
// generatedBy, version, sourceHash, files, timestamp.
type Manifest struct {
	GeneratedBy string      `json:"generatedBy"`
	Version     string      `json:"version"`
	SourceHash  string      `json:"sourceHash"`
	Files       []FileEntry `json:"files"`
	Timestamp   string      `json:"timestamp"`
}

const ManifestPath = "_airengine_manifest.json"

// ContentHash returns the full hex-encoded SHA-256 of content.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Hash16 returns the first 16 hex characters of the SHA-256 of content —
// the truncated hash the manifest stores per file (spec.md §3).
func Hash16(content string) string {
	return ContentHash(content)[:16]
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// Build computes a Manifest over files and returns it together with the
// manifest file itself; WithManifest appends that file to the set, per
// spec.md's invariant that every emitted file set contains exactly one
// manifest whose files list equals the remaining files.
func Build(generatedBy, version, sourceHash string, files []OutputFile, timestampISO8601 string) (Manifest, OutputFile) {
	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, FileEntry{
			Path:   f.Path,
			Hash16: Hash16(f.Content),
			Lines:  countLines(f.Content),
		})
	}
	m := Manifest{
		GeneratedBy: generatedBy,
		Version:     version,
		SourceHash:  sourceHash,
		Files:       entries,
		Timestamp:   timestampISO8601,
	}
	body, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		// Manifest fields are all plain strings/slices; MarshalIndent only
		// fails on unsupported types (channels, funcs, cyclic maps), none
		// of which Manifest contains.
		panic(fmt.Sprintf("manifest: unexpected marshal failure: %v", err))
	}
	return m, OutputFile{Path: ManifestPath, Content: string(body)}
}

// WithManifest appends the manifest file to files and returns the combined
// set (files + manifest), the canonical "generated file set" shape.
func WithManifest(generatedBy, version, sourceHash string, files []OutputFile, timestampISO8601 string) []OutputFile {
	_, manifestFile := Build(generatedBy, version, sourceHash, files, timestampISO8601)
	out := make([]OutputFile, 0, len(files)+1)
	out = append(out, files...)
	out = append(out, manifestFile)
	return out
}

// Parse deserializes a manifest from its JSON content.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: unmarshal: %w", err)
	}
	return m, nil
}
