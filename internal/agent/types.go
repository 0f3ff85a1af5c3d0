// Package agent implements the stage orchestrator from spec.md §4.8: a
// bounded retry loop over validate -> repair -> transpile -> smoke ->
// determinism, with per-run audit artifacts.
//
// The stage-sequencing shape is grounded on the teacher's
// internal/pipeline.Pipeline (a registry of named stages executed in
// order, each producing a StageExecution-like result), simplified since
// AirEngine's five stages are fixed and always run in the same order --
// there is no dependency graph to topologically sort.
package agent

import (
	"time"

	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/manifest"
	"github.com/airengine/airengine/internal/repair"
)

// StageStatus is a single stage's outcome.
type StageStatus string

const (
	StagePass StageStatus = "pass"
	StageFail StageStatus = "fail"
	StageSkip StageStatus = "skip"
)

// LoopStage records one stage's execution.
type LoopStage struct {
	Name       string      `json:"name"`
	Status     StageStatus `json:"status"`
	DurationMs int64       `json:"durationMs"`
	Details    string      `json:"details,omitempty"`
}

// StopReason is why the repair retry loop (stage 2) stopped.
type StopReason string

const (
	StopSuccess       StopReason = "success"
	StopNoop          StopReason = "noop"
	StopNoImprovement StopReason = "no_improvement"
	StopCycleDetected StopReason = "cycle_detected"
	StopMaxAttempts   StopReason = "max_attempts"
)

// RepairAttempt records one pass through the retry loop.
type RepairAttempt struct {
	AttemptNumber int                      `json:"attemptNumber"`
	SourceHash    string                   `json:"sourceHash"`
	ErrorsBefore  int                      `json:"errorsBefore"`
	ErrorsAfter   int                      `json:"errorsAfter"`
	Result        repair.Result            `json:"result"`
	Diagnostics   []diagnostics.Diagnostic `json:"diagnostics"`
	StopReason    StopReason               `json:"stopReason,omitempty"`
}

// DeterminismCheck is the stage-5 comparison result.
type DeterminismCheck struct {
	SourceHash    string   `json:"sourceHash"`
	OutputHashes  []string `json:"outputHashes"`
	Deterministic bool     `json:"deterministic"`
}

// TranspileResult is the file set produced by stage 3, handed to the
// writer as the loop's final side effect.
type TranspileResult struct {
	Files []manifest.OutputFile `json:"files"`
}

// LoopResult is the complete record of one source's run through the loop.
type LoopResult struct {
	File             string                   `json:"file"`
	Timestamp        string                   `json:"timestamp"`
	Stages           []LoopStage              `json:"stages"`
	Diagnostics      []diagnostics.Diagnostic `json:"diagnostics"`
	TranspileResult  *TranspileResult         `json:"transpileResult,omitempty"`
	OutputDir        string                   `json:"outputDir"`
	ArtifactDir      string                   `json:"artifactDir,omitempty"`
	DeterminismCheck DeterminismCheck         `json:"determinismCheck"`
	RepairResult     *repair.Result           `json:"repairResult,omitempty"`
	RepairAttempts   []RepairAttempt          `json:"repairAttempts,omitempty"`
}

// Success reports whether every non-skip stage passed.
func (r *LoopResult) Success() bool {
	for _, s := range r.Stages {
		if s.Status == StageFail {
			return false
		}
	}
	return true
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }
