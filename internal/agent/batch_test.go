package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManyCompilesEachSourceIntoItsOwnOutputDir(t *testing.T) {
	sources := []Source{
		{File: "a.air", Content: validSource, Options: Options{OutputDir: t.TempDir(), SkipArtifacts: true}},
		{File: "b.air", Content: "not an air program", Options: Options{OutputDir: t.TempDir(), SkipArtifacts: true, SkipWrite: true}},
	}

	results, err := RunMany(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success())
	assert.Equal(t, "a.air", results[0].File)

	assert.False(t, results[1].Success())
	assert.Equal(t, "b.air", results[1].File)
}

func TestRunManyStopsLaunchingAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []Source{
		{File: "a.air", Content: validSource, Options: Options{OutputDir: t.TempDir(), SkipArtifacts: true, SkipWrite: true}},
	}

	_, err := RunMany(ctx, sources)
	assert.Error(t, err)
}
