package metrics

import "time"

type testRecorder struct {
	stageDurations map[StageLabel]int
	stageResults   map[StageLabel]map[ResultLabel]int
	loopDurations  int
	loopOutcomes   map[LoopOutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[StageLabel]int{},
		stageResults:   map[StageLabel]map[ResultLabel]int{},
		loopOutcomes:   map[LoopOutcomeLabel]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage StageLabel, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveLoopDuration(_ time.Duration) { t.loopDurations++ }
func (t *testRecorder) IncStageResult(stage StageLabel, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncLoopOutcome(outcome LoopOutcomeLabel) { t.loopOutcomes[outcome]++ }
func (t *testRecorder) IncRepairAttempt()                       {}
func (t *testRecorder) IncRepairAttemptExhausted()              {}
func (t *testRecorder) SetCacheHitFiles(int)                    {}
func (t *testRecorder) SetCacheChangedFiles(int)                {}
