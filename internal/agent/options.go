package agent

import (
	"github.com/airengine/airengine/internal/metrics"
	"github.com/airengine/airengine/internal/repair"
)

// RepairMode selects how stage 2 handles blocking diagnostics.
type RepairMode string

const (
	RepairNone          RepairMode = "none"
	RepairDeterministic RepairMode = "deterministic"
	RepairLLM           RepairMode = "llm"
)

// Options configures one Run.
type Options struct {
	// OutputDir is where transpiled files are ultimately written.
	OutputDir string

	// ArtifactRoot is the parent directory for per-run audit artifacts,
	// default ".air-artifacts" (spec.md §6).
	ArtifactRoot string

	RepairMode        RepairMode
	MaxRepairAttempts int

	// Adapter is optional. When it is nil and RepairMode != RepairNone, the
	// deterministic rule engine (internal/repair.Repair) is called directly.
	Adapter repair.Adapter

	Recorder metrics.Recorder

	// SkipArtifacts disables artifact writing (used by tests).
	SkipArtifacts bool

	// SkipWrite disables the final write-to-disk side effect (used by
	// tests).
	SkipWrite bool
}

func (o Options) withDefaults() Options {
	if o.ArtifactRoot == "" {
		o.ArtifactRoot = ".air-artifacts"
	}
	if o.RepairMode == "" {
		o.RepairMode = RepairNone
	}
	if o.MaxRepairAttempts <= 0 {
		o.MaxRepairAttempts = 1
	}
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	return o
}
