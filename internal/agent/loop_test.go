package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSource = "@app:todo\n@state{items:[{id:int,text:str,done:bool}]}\n@ui(h1>\"Todo\")"

func TestRunHappyPathPassesAllStages(t *testing.T) {
	outDir := t.TempDir()
	result := Run("todo.air", validSource, Options{
		OutputDir:     outDir,
		SkipArtifacts: true,
	})

	require.True(t, result.Success())
	names := []string{}
	for _, s := range result.Stages {
		names = append(names, s.Name)
		if s.Name == "repair" {
			assert.Equal(t, StageSkip, s.Status)
		}
	}
	assert.Equal(t, []string{"validate", "repair", "transpile", "smoke", "determinism"}, names)
	require.NotNil(t, result.TranspileResult)
	assert.NotEmpty(t, result.TranspileResult.Files)

	manifestPath := filepath.Join(outDir, "_airengine_manifest.json")
	_, err := os.Stat(manifestPath)
	assert.NoError(t, err, "write stage should have produced the manifest file")
}

func TestRunFailsValidateOnMalformedSource(t *testing.T) {
	result := Run("broken.air", "not an air program", Options{
		OutputDir:     t.TempDir(),
		SkipArtifacts: true,
		SkipWrite:     true,
	})

	require.False(t, result.Success())
	require.GreaterOrEqual(t, len(result.Stages), 1)
	assert.Equal(t, "validate", result.Stages[0].Name)
	assert.Equal(t, StageFail, result.Stages[0].Status)

	for _, name := range []string{"transpile", "smoke", "determinism"} {
		st := stageByName(t, result, name)
		assert.Equal(t, StageSkip, st.Status)
	}
}

func TestRunDeterministicRepairFixesMissingAppDecl(t *testing.T) {
	missingApp := "@ui(h1>\"Todo\")"
	result := Run("missing-app.air", missingApp, Options{
		OutputDir:         t.TempDir(),
		RepairMode:        RepairDeterministic,
		MaxRepairAttempts: 2,
		SkipArtifacts:     true,
		SkipWrite:         true,
	})

	repairStage := stageByName(t, result, "repair")
	assert.NotEqual(t, StageSkip, repairStage.Status)
	require.NotEmpty(t, result.RepairAttempts)
}

func TestRunSkipsWriteWhenRequested(t *testing.T) {
	outDir := t.TempDir()
	Run("todo.air", validSource, Options{
		OutputDir:     outDir,
		SkipArtifacts: true,
		SkipWrite:     true,
	})

	_, err := os.Stat(filepath.Join(outDir, "_airengine_manifest.json"))
	assert.True(t, os.IsNotExist(err), "SkipWrite must leave outDir untouched")
}

func TestRunWritesArtifactsUnlessSkipped(t *testing.T) {
	artifactRoot := t.TempDir()
	result := Run("todo.air", validSource, Options{
		OutputDir:    t.TempDir(),
		ArtifactRoot: artifactRoot,
	})

	require.NotEmpty(t, result.ArtifactDir)
	_, err := os.Stat(filepath.Join(result.ArtifactDir, "loop_result.json"))
	assert.NoError(t, err)
}

func stageByName(t *testing.T, result *LoopResult, name string) LoopStage {
	t.Helper()
	for _, s := range result.Stages {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no stage named %q in %v", name, result.Stages)
	return LoopStage{}
}

func TestClassifyStopPriority(t *testing.T) {
	// success beats everything else once errors reach zero.
	assert.Equal(t, StopSuccess, classifyStop(1, 3, nil, 2, 0, true, "h1", nil))

	// a hash seen before is a cycle, even if errors technically improved.
	assert.Equal(t, StopCycleDetected, classifyStop(2, 3, nil, 2, 1, true, "h1", []string{"h1"}))

	// unchanged source with remaining errors is a noop.
	assert.Equal(t, StopNoop, classifyStop(1, 3, nil, 2, 2, false, "h1", nil))

	// errors did not go down: no improvement.
	assert.Equal(t, StopNoImprovement, classifyStop(1, 3, nil, 2, 2, true, "h1", nil))

	// improving but out of attempts: max_attempts.
	assert.Equal(t, StopMaxAttempts, classifyStop(3, 3, nil, 3, 1, true, "h1", nil))

	// improving, attempts remain: keep going.
	assert.Equal(t, StopReason(""), classifyStop(1, 3, nil, 3, 1, true, "h1", nil))
}
