package cache

import (
	"path/filepath"
	"testing"

	"github.com/airengine/airengine/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingCacheIsNotAnError(t *testing.T) {
	rec, ok, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Record{}, rec)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	outDir := t.TempDir()
	files := []manifest.OutputFile{
		{Path: "src/App.tsx", Content: "a"},
		{Path: "src/index.css", Content: "b"},
	}
	rec := Build("deadbeef", files, "2026-07-30T00:00:00Z")
	require.NoError(t, Save(outDir, rec))

	assert.FileExists(t, filepath.Join(outDir, DirName, FileName))

	loaded, ok, err := Load(outDir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Version, loaded.Version)
	assert.Equal(t, "deadbeef", loaded.SourceHash)
	assert.Len(t, loaded.Files, 2)
}

func TestComputeWithEmptyPreviousMarksEverythingChanged(t *testing.T) {
	files := []manifest.OutputFile{{Path: "a.ts", Content: "1"}}
	d := Compute(files, Record{}, false)
	assert.Equal(t, []string{"a.ts"}, d.Changed)
	assert.Empty(t, d.Skipped)
	assert.Empty(t, d.Removed)
}

func TestComputeSkipsUnchangedMarksChangedAndRemoved(t *testing.T) {
	previous := Build("hash1", []manifest.OutputFile{
		{Path: "a.ts", Content: "1"},
		{Path: "b.ts", Content: "2"},
	}, "t0")

	next := []manifest.OutputFile{
		{Path: "a.ts", Content: "1"},   // unchanged
		{Path: "c.ts", Content: "new"}, // new file
	}
	d := Compute(next, previous, true)
	assert.Equal(t, []string{"a.ts"}, d.Skipped)
	assert.Equal(t, []string{"c.ts"}, d.Changed)
	assert.Equal(t, []string{"b.ts"}, d.Removed)
}

func TestBuildRecordCoversFullFileSet(t *testing.T) {
	files := []manifest.OutputFile{
		{Path: "a.ts", Content: "1"},
		{Path: "b.ts", Content: "2"},
	}
	rec := Build("srchash", files, "2026-07-30T00:00:00Z")
	assert.Equal(t, Version, rec.Version)
	assert.Equal(t, manifest.Hash16("1"), rec.Files["a.ts"])
	assert.Equal(t, manifest.Hash16("2"), rec.Files["b.ts"])
}
