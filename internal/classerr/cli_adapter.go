package classerr

import (
	"context"
	"fmt"
	"log/slog"
)

// CLIAdapter maps ClassifiedErrors to CLI exit codes and user-facing text,
// per spec.md §6 ("0 success, 1 operational failure, 2 validation failure").
type CLIAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIAdapter(verbose bool, logger *slog.Logger) *CLIAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor maps an error to a process exit code.
func (a *CLIAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := As(err)
	if !ok {
		return 1
	}
	switch ce.Category() {
	case CategoryValidate:
		return 2
	case CategoryConfig:
		return 1
	default:
		return 1
	}
}

// Format renders an error for display, honoring verbosity.
func (a *CLIAdapter) Format(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := As(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ce.Error()
	}
	return fmt.Sprintf("Error: %s (use -v for details)", ce.Message())
}

// Log writes the error to the adapter's logger at a level derived from severity.
func (a *CLIAdapter) Log(err error) {
	ce, ok := As(err)
	if !ok {
		a.logger.Error("unclassified error", "error", err)
		return
	}
	level := levelFromSeverity(ce.Severity())
	attrs := []slog.Attr{slog.String("category", string(ce.Category()))}
	if ce.CanRetry() {
		attrs = append(attrs, slog.Bool("retryable", true))
	}
	a.logger.LogAttrs(context.Background(), level, ce.Message(), attrs...)
}

func levelFromSeverity(s Severity) slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
