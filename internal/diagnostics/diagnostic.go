// Package diagnostics implements the severity-tagged diagnostic model
// shared by the parser, validator, and repair engine (spec.md §3/§4.1).
//
// The shape here is the direct descendant of the teacher's lint.Issue /
// lint.Result types (Severity enum, per-issue Rule/Message/Fix, derived
// error/warning counts) re-specified for AIR source diagnostics instead of
// markdown-link lint issues.
package diagnostics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/airengine/airengine/internal/version"
)

// Severity is the importance level of a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Category groups a diagnostic by the kind of rule that produced it.
type Category string

const (
	CategorySyntax      Category = "syntax"
	CategoryStructural  Category = "structural"
	CategorySemantic    Category = "semantic"
	CategoryStyle       Category = "style"
	CategoryPerformance Category = "performance"
)

// Location pinpoints a diagnostic within the AIR source.
type Location struct {
	Line       int    `json:"line"`
	Col        int    `json:"col"`
	EndLine    int    `json:"endLine,omitempty"`
	EndCol     int    `json:"endCol,omitempty"`
	SourceLine string `json:"sourceLine,omitempty"`
}

// Fix describes a suggested remedy for a diagnostic.
type Fix struct {
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
}

// Diagnostic is a single finding emitted by the parser or validator.
//
// Field order is fixed and is the JSON wire order: encoding/json preserves
// struct field declaration order, which is how the serializer stays
// byte-stable (spec.md invariant 1) without a custom MarshalJSON.
type Diagnostic struct {
	Code     string    `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Category Category  `json:"category"`
	Location *Location `json:"location,omitempty"`
	Block    string    `json:"block,omitempty"`
	Path     string    `json:"path,omitempty"`
	Fix      *Fix      `json:"fix,omitempty"`
}

// Opts carries the optional fields for New.
type Opts struct {
	Location *Location
	Block    string
	Path     string
	Fix      *Fix
}

// New constructs a Diagnostic. Optional fields are supplied via Opts; a zero
// Opts produces a diagnostic with no location/block/path/fix.
func New(code string, severity Severity, message string, category Category, opts Opts) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Message:  message,
		Category: category,
		Location: opts.Location,
		Block:    opts.Block,
		Path:     opts.Path,
		Fix:      opts.Fix,
	}
}

// SortDiagnostics orders diagnostics by (severity, line-or-infinity, code),
// per spec.md §4.1/§8 invariant 3. The sort is stable so ties on all three
// keys preserve original emission order, keeping repeated sorts idempotent.
func SortDiagnostics(diags []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	copy(out, diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := a.Severity.rank(), b.Severity.rank(); ra != rb {
			return ra < rb
		}
		la, lb := lineOf(a), lineOf(b)
		if la != lb {
			return la < lb
		}
		return a.Code < b.Code
	})
	return out
}

func lineOf(d Diagnostic) int {
	if d.Location == nil {
		return int(^uint(0) >> 1) // +infinity, per spec.md sort key
	}
	return d.Location.Line
}

// Summary holds derived counts by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

func summarize(diags []Diagnostic) Summary {
	var s Summary
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}

// Result is the full, deterministic diagnostic report for one compile.
//
// Field order is fixed per spec.md §6: valid, diagnostics, summary,
// source_hash, airengine_version, schema_version.
type Result struct {
	Valid            bool         `json:"valid"`
	Diagnostics      []Diagnostic `json:"diagnostics"`
	Summary          Summary      `json:"summary"`
	SourceHash       string       `json:"source_hash"`
	AirEngineVersion string       `json:"airengine_version"`
	SchemaVersion    string       `json:"schema_version"`
}

// BuildResult sorts diags, derives the summary, and stamps the result with
// the current version and schema version. errors == 0 is the single source
// of truth for Valid (spec.md §7).
func BuildResult(diags []Diagnostic, sourceHash string) Result {
	sorted := SortDiagnostics(diags)
	summary := summarize(sorted)
	return Result{
		Valid:            summary.Errors == 0,
		Diagnostics:      sorted,
		Summary:          summary,
		SourceHash:       sourceHash,
		AirEngineVersion: version.Version,
		SchemaVersion:    version.SchemaVersion,
	}
}

// HashSource computes the hex-encoded SHA-256 of AIR source text.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// FormatCLI renders a diagnostic as a single human-readable line, with a
// caret under the offending column when a source line is available
// (spec.md §7 "CLI prints one formatted diagnostic per line").
func FormatCLI(d Diagnostic) string {
	if d.Location == nil {
		return fmt.Sprintf("%s [%s] %s", d.Code, d.Severity, d.Message)
	}
	base := fmt.Sprintf("%s:%d:%d %s [%s] %s", "-", d.Location.Line, d.Location.Col, d.Code, d.Severity, d.Message)
	if d.Location.SourceLine == "" {
		return base
	}
	caret := make([]byte, 0, d.Location.Col)
	for i := 1; i < d.Location.Col; i++ {
		caret = append(caret, ' ')
	}
	caret = append(caret, '^')
	return fmt.Sprintf("%s\n  %s\n  %s", base, d.Location.SourceLine, string(caret))
}
