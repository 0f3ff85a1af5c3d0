package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactTimestampReplacesColonsAndDots(t *testing.T) {
	got := artifactTimestamp("2026-07-30T12:34:56.789Z")
	assert.Equal(t, "2026-07-30T12-34-56-789Z", got)
	assert.NotContains(t, got, ":")
	assert.NotContains(t, got, ".")
}

func TestWriteArtifactsProducesExpectedFiles(t *testing.T) {
	root := t.TempDir()
	result := &LoopResult{
		File:      "todo.air",
		Timestamp: "2026-07-30T12:00:00Z",
		Stages: []LoopStage{
			{Name: "validate", Status: StagePass},
		},
	}

	err := writeArtifacts(root, result)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.ArtifactDir)
	assert.Contains(t, result.ArtifactDir, root)
}

func TestWriteArtifactsOmitsRepairAttemptsFileWhenNoneRan(t *testing.T) {
	root := t.TempDir()
	result := &LoopResult{Timestamp: "2026-07-30T12:00:00Z"}
	require.NoError(t, writeArtifacts(root, result))

	_, err := os.Stat(filepath.Join(result.ArtifactDir, "repair_attempts.json"))
	assert.True(t, os.IsNotExist(err))
}
