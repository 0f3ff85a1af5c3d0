package classerr

import (
	"errors"
	"testing"
)

func TestBuilderBuildsClassifiedError(t *testing.T) {
	err := New(CategoryParse, "unexpected token").Fatal().Build()
	if err.Category() != CategoryParse {
		t.Fatalf("category = %s, want parse", err.Category())
	}
	if err.Severity() != SeverityFatal {
		t.Fatalf("severity = %s, want fatal", err.Severity())
	}
	if !err.IsFatal() {
		t.Fatal("expected IsFatal() true")
	}
	if err.CanRetry() {
		t.Fatal("fatal/never-retry error should not be retryable")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryAdapter, "transport failed").Retryable().Build()
	if !errors.Is(err, err) {
		t.Fatal("error should be Is-comparable to itself")
	}
	if errors.Unwrap(err) != cause {
		t.Fatal("Unwrap should return the original cause")
	}
	if !err.CanRetry() {
		t.Fatal("backoff retry strategy should be retryable")
	}
}

func TestWithContextIsImmutable(t *testing.T) {
	base := New(CategoryCache, "miss").Build()
	derived := base.WithContext("path", "/tmp/x")
	if _, ok := base.Context().Get("path"); ok {
		t.Fatal("original error context should not be mutated")
	}
	if v, ok := derived.Context().Get("path"); !ok || v != "/tmp/x" {
		t.Fatalf("derived error missing context value, got %v", v)
	}
}

func TestCategoryOfAndSeverityOfFallbacks(t *testing.T) {
	plain := errors.New("plain")
	if CategoryOf(plain) != CategoryInternal {
		t.Fatalf("expected fallback CategoryInternal, got %s", CategoryOf(plain))
	}
	if SeverityOf(plain) != SeverityError {
		t.Fatalf("expected fallback SeverityError, got %s", SeverityOf(plain))
	}
}

func TestCLIAdapterExitCodes(t *testing.T) {
	adapter := NewCLIAdapter(false, nil)
	if code := adapter.ExitCodeFor(nil); code != 0 {
		t.Fatalf("nil error should exit 0, got %d", code)
	}
	validateErr := ValidateError("blocking errors present").Build()
	if code := adapter.ExitCodeFor(validateErr); code != 2 {
		t.Fatalf("validate category should exit 2, got %d", code)
	}
	internalErr := InternalError("boom").Build()
	if code := adapter.ExitCodeFor(internalErr); code != 1 {
		t.Fatalf("internal category should exit 1, got %d", code)
	}
}
