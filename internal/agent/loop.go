package agent

import (
	"fmt"
	"time"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/generators"
	"github.com/airengine/airengine/internal/manifest"
	"github.com/airengine/airengine/internal/metrics"
	"github.com/airengine/airengine/internal/parser"
	"github.com/airengine/airengine/internal/repair"
	"github.com/airengine/airengine/internal/transpile"
	"github.com/airengine/airengine/internal/validator"
	"github.com/airengine/airengine/internal/version"
)

// Run executes the five-stage agent loop over source (spec.md §4.8) and
// returns the complete LoopResult, writing output files and artifacts as
// its final side effects unless disabled in opts.
func Run(filename, source string, opts Options) *LoopResult {
	opts = opts.withDefaults()
	loopStart := time.Now()

	result := &LoopResult{
		File:      filename,
		Timestamp: nowISO(),
		OutputDir: opts.OutputDir,
	}

	ast, diags, parseErr := runValidateStage(result, source, opts.Recorder)

	repairedSource := source
	if parseErr != nil || hasErrors(diags) {
		ast, diags, parseErr, repairedSource = runRepairStage(result, source, ast, diags, parseErr, opts)
	} else {
		result.Stages = append(result.Stages, LoopStage{Name: "repair", Status: StageSkip, Details: "no blocking diagnostics"})
	}

	var files []manifest.OutputFile
	if parseErr == nil && !hasErrors(diags) {
		files = runTranspileStage(result, ast, repairedSource, opts.Recorder)
	} else {
		result.Stages = append(result.Stages, LoopStage{Name: "transpile", Status: StageSkip, Details: "validation did not pass"})
	}

	if files != nil {
		runSmokeStage(result, files, opts.Recorder)
		runDeterminismStage(result, ast, repairedSource, files, opts.Recorder)
	} else {
		result.Stages = append(result.Stages, LoopStage{Name: "smoke", Status: StageSkip})
		result.Stages = append(result.Stages, LoopStage{Name: "determinism", Status: StageSkip})
	}

	if files != nil {
		result.TranspileResult = &TranspileResult{Files: files}
		if !opts.SkipWrite {
			sourceHash := diagnostics.HashSource(repairedSource)
			diff, err := writeOutputs(opts.OutputDir, files, sourceHash, result.Timestamp)
			if err != nil {
				result.Stages = append(result.Stages, LoopStage{Name: "write", Status: StageFail, Details: err.Error()})
			} else {
				opts.Recorder.SetCacheHitFiles(len(diff.Skipped))
				opts.Recorder.SetCacheChangedFiles(len(diff.Changed))
			}
		}
	}

	result.Diagnostics = diagnostics.SortDiagnostics(diags)
	opts.Recorder.ObserveLoopDuration(time.Since(loopStart))
	recordOutcome(opts.Recorder, result)

	if !opts.SkipArtifacts {
		if err := writeArtifacts(opts.ArtifactRoot, result); err != nil {
			result.Stages = append(result.Stages, LoopStage{Name: "artifacts", Status: StageFail, Details: err.Error()})
		}
	}

	return result
}

func hasErrors(diags []diagnostics.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

func countErrors(diags []diagnostics.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == diagnostics.SeverityError {
			n++
		}
	}
	return n
}

func runValidateStage(result *LoopResult, source string, rec metrics.Recorder) (*airast.AirAST, []diagnostics.Diagnostic, error) {
	start := time.Now()
	ast, err := parser.Parse(source)
	if err != nil {
		d := diagnostics.WrapParseError(err)
		rec.ObserveStageDuration(metrics.StageValidate, time.Since(start))
		rec.IncStageResult(metrics.StageValidate, metrics.ResultFail)
		result.Stages = append(result.Stages, LoopStage{
			Name: "validate", Status: StageFail, DurationMs: time.Since(start).Milliseconds(),
			Details: d.Message,
		})
		return nil, []diagnostics.Diagnostic{d}, err
	}

	diags := validator.Validate(ast, validator.DefaultChain())
	status := StagePass
	if hasErrors(diags) {
		status = StageFail
	}
	rec.ObserveStageDuration(metrics.StageValidate, time.Since(start))
	rec.IncStageResult(metrics.StageValidate, resultFor(status))
	result.Stages = append(result.Stages, LoopStage{
		Name: "validate", Status: status, DurationMs: time.Since(start).Milliseconds(),
	})
	return ast, diags, nil
}

// runRepairStage drives stage 2: a bounded, semantic retry loop over the
// configured adapter. It returns the final AST/diagnostics/parse-error and
// the final source text, re-validated after the last attempt.
func runRepairStage(result *LoopResult, source string, ast *airast.AirAST, diags []diagnostics.Diagnostic, parseErr error, opts Options) (*airast.AirAST, []diagnostics.Diagnostic, error, string) {
	start := time.Now()

	if opts.RepairMode == RepairNone {
		result.Stages = append(result.Stages, LoopStage{Name: "repair", Status: StageSkip, Details: "repairMode=none"})
		return ast, diags, parseErr, source
	}

	var attempts []RepairAttempt
	var previousHashes []string
	currentSource := source
	currentAST, currentDiags, currentErr := ast, diags, parseErr
	finalStatus := StageFail

	for attempt := 1; attempt <= opts.MaxRepairAttempts; attempt++ {
		errorsBefore := countErrors(currentDiags)
		if currentErr != nil {
			errorsBefore = 1
		}

		res, adapterErr := callAdapter(opts, currentSource, currentDiags, currentErr, attempt, previousHashes)
		opts.Recorder.IncRepairAttempt()
		if adapterErr != nil {
			res.Status = repair.StatusFailed
			res.RepairedSource = currentSource
		}

		newAST, newErr := parser.Parse(res.RepairedSource)
		var newDiags []diagnostics.Diagnostic
		if newErr != nil {
			newDiags = []diagnostics.Diagnostic{diagnostics.WrapParseError(newErr)}
		} else {
			newDiags = validator.Validate(newAST, validator.DefaultChain())
		}
		errorsAfter := countErrors(newDiags)
		if newErr != nil {
			errorsAfter = 1
		}

		newHash := diagnostics.HashSource(res.RepairedSource)
		stop := classifyStop(attempt, opts.MaxRepairAttempts, newErr, errorsBefore, errorsAfter, res.SourceChanged, newHash, previousHashes)

		attempts = append(attempts, RepairAttempt{
			AttemptNumber: attempt,
			SourceHash:    newHash,
			ErrorsBefore:  errorsBefore,
			ErrorsAfter:   errorsAfter,
			Result:        res,
			Diagnostics:   newDiags,
			StopReason:    stop,
		})

		previousHashes = append(previousHashes, newHash)
		currentSource = res.RepairedSource
		currentAST, currentDiags, currentErr = newAST, newDiags, newErr

		if stop != "" {
			if stop == StopSuccess {
				finalStatus = StagePass
			}
			break
		}
		if attempt == opts.MaxRepairAttempts {
			opts.Recorder.IncRepairAttemptExhausted()
		}
	}

	result.RepairAttempts = attempts
	if len(attempts) > 0 {
		last := attempts[len(attempts)-1].Result
		result.RepairResult = &last
	}
	result.Stages = append(result.Stages, LoopStage{
		Name: "repair", Status: finalStatus, DurationMs: time.Since(start).Milliseconds(),
		Details: fmt.Sprintf("%d attempt(s)", len(attempts)),
	})
	opts.Recorder.IncStageResult(metrics.StageRepair, resultFor(finalStatus))
	opts.Recorder.ObserveStageDuration(metrics.StageRepair, time.Since(start))

	return currentAST, currentDiags, currentErr, currentSource
}

func callAdapter(opts Options, source string, diags []diagnostics.Diagnostic, parseErr error, attempt int, previousHashes []string) (repair.Result, error) {
	rctx := repair.Context{AttemptNumber: attempt, MaxAttempts: opts.MaxRepairAttempts, PreviousHashes: previousHashes}
	if opts.Adapter != nil {
		return opts.Adapter.Repair(source, diags, rctx)
	}
	// With no adapter configured, any repairing mode falls back to the
	// built-in rule engine directly.
	return repair.Repair(source, diags, parseErr), nil
}

func classifyStop(attempt, maxAttempts int, newParseErr error, errorsBefore, errorsAfter int, changed bool, newHash string, previousHashes []string) StopReason {
	if newParseErr == nil && errorsAfter == 0 {
		return StopSuccess
	}
	for _, h := range previousHashes {
		if h == newHash {
			return StopCycleDetected
		}
	}
	if !changed {
		return StopNoop
	}
	if errorsAfter >= errorsBefore {
		return StopNoImprovement
	}
	if attempt >= maxAttempts {
		return StopMaxAttempts
	}
	return ""
}

func runTranspileStage(result *LoopResult, ast *airast.AirAST, source string, rec metrics.Recorder) (files []manifest.OutputFile) {
	start := time.Now()
	status := StagePass
	defer func() {
		if r := recover(); r != nil {
			status = StageFail
			result.Stages = append(result.Stages, LoopStage{
				Name: "transpile", Status: StageFail, DurationMs: time.Since(start).Milliseconds(),
				Details: fmt.Sprintf("generator panic: %v", r),
			})
			rec.ObserveStageDuration(metrics.StageTranspile, time.Since(start))
			rec.IncStageResult(metrics.StageTranspile, metrics.ResultFail)
			files = nil
		}
	}()

	tctx := transpile.Build(ast)
	generated := generators.Generate(tctx)
	sourceHash := diagnostics.HashSource(source)
	files = manifest.WithManifest("AirEngine", version.Version, sourceHash, generated, result.Timestamp)

	rec.ObserveStageDuration(metrics.StageTranspile, time.Since(start))
	rec.IncStageResult(metrics.StageTranspile, resultFor(status))
	result.Stages = append(result.Stages, LoopStage{
		Name: "transpile", Status: status, DurationMs: time.Since(start).Milliseconds(),
		Details: fmt.Sprintf("%d files", len(files)),
	})
	return files
}

func resultFor(s StageStatus) metrics.ResultLabel {
	switch s {
	case StagePass:
		return metrics.ResultPass
	case StageSkip:
		return metrics.ResultSkip
	default:
		return metrics.ResultFail
	}
}

func recordOutcome(rec metrics.Recorder, result *LoopResult) {
	outcome := metrics.LoopOutcomeSuccess
	if len(result.RepairAttempts) > 0 {
		switch result.RepairAttempts[len(result.RepairAttempts)-1].StopReason {
		case StopNoop:
			outcome = metrics.LoopOutcomeNoop
		case StopNoImprovement:
			outcome = metrics.LoopOutcomeNoImprovement
		case StopCycleDetected:
			outcome = metrics.LoopOutcomeCycleDetected
		case StopMaxAttempts:
			outcome = metrics.LoopOutcomeMaxAttempts
		}
	}
	if !result.Success() && outcome == metrics.LoopOutcomeSuccess {
		outcome = metrics.LoopOutcomeMaxAttempts
	}
	rec.IncLoopOutcome(outcome)
}
