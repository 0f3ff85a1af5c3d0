// Package repair implements the two-layer repair engine from spec.md §4.4:
// a deterministic, single-pass rule engine that edits source text, and a
// pluggable RepairAdapter interface for LLM-backed repair.
//
// RepairAction/RepairResult follow the teacher's internal/lint FixResult
// shape (applied/skipped counts, before/after source tracking); the
// adapter's narrow one-method interface follows the teacher's build queue
// emitter style.
package repair

import (
	"strings"

	"github.com/airengine/airengine/internal/diagnostics"
)

// ActionKind is the kind of text edit a RepairAction performs.
type ActionKind string

const (
	ActionPrepend ActionKind = "prepend"
	ActionAppend  ActionKind = "append"
	ActionReplace ActionKind = "replace"
)

// Action records one planned or applied text edit.
type Action struct {
	Rule        string     `json:"rule"`
	Kind        ActionKind `json:"kind"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Applied     bool       `json:"applied"`
	Reason      string     `json:"reason,omitempty"`
}

// Status is the overall outcome of a repair attempt.
type Status string

const (
	StatusNoop     Status = "noop"
	StatusRepaired Status = "repaired"
	StatusPartial  Status = "partial"
	StatusFailed   Status = "failed"
)

// Result is the outcome of one repair call, deterministic or adapter-backed.
type Result struct {
	Status          Status
	OriginalSource  string
	RepairedSource  string
	SourceChanged   bool
	Actions         []Action
	AppliedCount    int
	SkippedCount    int
}

// Context carries retry-loop bookkeeping into a repair call, per spec.md §3
// RepairContext.
type Context struct {
	AttemptNumber int
	MaxAttempts   int
	PreviousHashes []string
}

const (
	stubApp = "@app:myapp\n"
	stubUI  = "\n@ui(h1>\"Hello World\")"
)

// Repair runs the deterministic rule engine described in spec.md §4.4:
//   - AIR-E001 (or the parse-error "Missing @app") -> prepend `@app:myapp\n`.
//   - AIR-E002 -> append the Hello World @ui stub.
//   - everything else is recorded as skipped with a stable reason.
//
// When the missing-@app parse error blocks the validator and the source
// heuristically has no @ui block, the @ui stub is speculatively appended
// too, since validation never ran far enough to emit AIR-E002 itself.
func Repair(source string, diags []diagnostics.Diagnostic, parseErr error) Result {
	if parseErr == nil && !hasErrorSeverity(diags) {
		return Result{Status: StatusNoop, OriginalSource: source, RepairedSource: source}
	}

	var actions []Action
	repaired := source

	if parseErr != nil {
		d := diagnostics.WrapParseError(parseErr)
		if strings.Contains(d.Message, "Missing @app") {
			actions = append(actions, Action{Rule: "AIR-E001", Kind: ActionPrepend, Text: stubApp,
				Description: "prepend default @app declaration", Applied: true})
			repaired = stubApp + repaired
			if !strings.Contains(source, "@ui") {
				actions = append(actions, Action{Rule: "AIR-E002", Kind: ActionAppend, Text: stubUI,
					Description: "speculatively append default @ui stub", Applied: true})
				repaired += stubUI
			}
		} else {
			actions = append(actions, Action{Rule: d.Code, Kind: ActionReplace, Applied: false,
				Reason: "parse errors other than Missing @app are not repaired"})
		}
		return finalize(source, repaired, actions)
	}

	hasErrorE001, hasErrorE002 := false, false
	for _, d := range diags {
		if d.Severity != diagnostics.SeverityError {
			continue
		}
		switch d.Code {
		case "AIR-E001":
			hasErrorE001 = true
		case "AIR-E002":
			hasErrorE002 = true
		default:
			actions = append(actions, Action{Rule: d.Code, Kind: ActionReplace, Applied: false,
				Reason: "no deterministic rule for " + d.Code})
		}
	}

	if hasErrorE001 {
		actions = append(actions, Action{Rule: "AIR-E001", Kind: ActionPrepend, Text: stubApp,
			Description: "prepend default @app declaration", Applied: true})
		repaired = stubApp + repaired
	}
	if hasErrorE002 {
		actions = append(actions, Action{Rule: "AIR-E002", Kind: ActionAppend, Text: stubUI,
			Description: "append default @ui stub", Applied: true})
		repaired += stubUI
	}

	return finalize(source, repaired, actions)
}

func hasErrorSeverity(diags []diagnostics.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

func finalize(original, repaired string, actions []Action) Result {
	applied, skipped := 0, 0
	for _, a := range actions {
		if a.Applied {
			applied++
		} else {
			skipped++
		}
	}

	status := StatusRepaired
	switch {
	case applied == 0:
		status = StatusFailed
	case skipped > 0:
		status = StatusPartial
	}

	return Result{
		Status:         status,
		OriginalSource: original,
		RepairedSource: repaired,
		SourceChanged:  repaired != original,
		Actions:        actions,
		AppliedCount:   applied,
		SkippedCount:   skipped,
	}
}

// Adapter is the pluggable repair backend interface (spec.md §4.4). An
// LLM-backed implementation lives in the repair/llm subpackage.
type Adapter interface {
	Name() string
	Repair(source string, diags []diagnostics.Diagnostic, ctx Context) (Result, error)
}
