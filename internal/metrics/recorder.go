package metrics

import "time"

// StageLabel names one of the agent loop's five stages (spec.md §4.8).
type StageLabel string

const (
	StageValidate    StageLabel = "validate"
	StageRepair      StageLabel = "repair"
	StageTranspile   StageLabel = "transpile"
	StageSmoke       StageLabel = "smoke"
	StageDeterminism StageLabel = "determinism"
)

// ResultLabel enumerates a stage's outcome for counters.
type ResultLabel string

const (
	ResultPass ResultLabel = "pass"
	ResultFail ResultLabel = "fail"
	ResultSkip ResultLabel = "skip"
)

// LoopOutcomeLabel is the agent loop's final stop reason (spec.md §4.8).
type LoopOutcomeLabel string

const (
	LoopOutcomeSuccess       LoopOutcomeLabel = "success"
	LoopOutcomeNoop          LoopOutcomeLabel = "noop"
	LoopOutcomeNoImprovement LoopOutcomeLabel = "no_improvement"
	LoopOutcomeCycleDetected LoopOutcomeLabel = "cycle_detected"
	LoopOutcomeMaxAttempts   LoopOutcomeLabel = "max_attempts"
)

// Recorder defines observability hooks for agent-loop and stage metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All
// methods must be safe for nil receivers when using NoopRecorder, allowing
// optional injection.
type Recorder interface {
	ObserveStageDuration(stage StageLabel, d time.Duration)
	ObserveLoopDuration(d time.Duration)
	IncStageResult(stage StageLabel, result ResultLabel)
	IncLoopOutcome(outcome LoopOutcomeLabel)
	IncRepairAttempt()
	IncRepairAttemptExhausted()
	SetCacheHitFiles(n int)
	SetCacheChangedFiles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(StageLabel, time.Duration) {}
func (NoopRecorder) ObserveLoopDuration(time.Duration)              {}
func (NoopRecorder) IncStageResult(StageLabel, ResultLabel)         {}
func (NoopRecorder) IncLoopOutcome(LoopOutcomeLabel)                {}
func (NoopRecorder) IncRepairAttempt()                              {}
func (NoopRecorder) IncRepairAttemptExhausted()                     {}
func (NoopRecorder) SetCacheHitFiles(int)                           {}
func (NoopRecorder) SetCacheChangedFiles(int)                       {}
