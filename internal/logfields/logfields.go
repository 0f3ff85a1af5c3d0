// Package logfields provides canonical log field names and helpers for
// structured logging across AirEngine, avoiding key-name drift between
// packages that all log about the same stage/source/rule.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyStage       = "stage"
	KeyStatus      = "status"
	KeyDurationMS  = "duration_ms"
	KeySourceHash  = "source_hash"
	KeyCode        = "code"
	KeySeverity    = "severity"
	KeyRule        = "rule"
	KeyAttempt     = "attempt"
	KeyMaxAttempts = "max_attempts"
	KeyAdapter     = "adapter"
	KeyOutDir      = "out_dir"
	KeyFile        = "file"
	KeyRunID       = "run_id"
	KeyErrorCount  = "error_count"
	KeyCategory    = "category"
	KeyRetryable   = "retryable"
	KeyError       = "error"
	KeyName        = "name"
)

func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Status(status string) slog.Attr     { return slog.String(KeyStatus, status) }
func DurationMS(ms int64) slog.Attr      { return slog.Int64(KeyDurationMS, ms) }
func SourceHash(hash string) slog.Attr   { return slog.String(KeySourceHash, hash) }
func Code(code string) slog.Attr         { return slog.String(KeyCode, code) }
func Severity(sev string) slog.Attr      { return slog.String(KeySeverity, sev) }
func Rule(name string) slog.Attr         { return slog.String(KeyRule, name) }
func Attempt(n int) slog.Attr            { return slog.Int(KeyAttempt, n) }
func MaxAttempts(n int) slog.Attr        { return slog.Int(KeyMaxAttempts, n) }
func Adapter(name string) slog.Attr      { return slog.String(KeyAdapter, name) }
func OutDir(dir string) slog.Attr        { return slog.String(KeyOutDir, dir) }
func File(path string) slog.Attr         { return slog.String(KeyFile, path) }
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func ErrorCount(n int) slog.Attr         { return slog.Int(KeyErrorCount, n) }
func Category(category string) slog.Attr { return slog.String(KeyCategory, category) }
func Retryable(v bool) slog.Attr         { return slog.Bool(KeyRetryable, v) }
func Name(n string) slog.Attr            { return slog.String(KeyName, n) }

// Error returns a slog.Attr for an error, or an empty string if nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
