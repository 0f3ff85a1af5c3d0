package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{}
	}{
		{"Stage", KeyStage, "validate", Stage("validate")},
		{"Status", KeyStatus, "pass", Status("pass")},
		{"SourceHash", KeySourceHash, "abc123", SourceHash("abc123")},
		{"Code", KeyCode, "AIR-E001", Code("AIR-E001")},
		{"Severity", KeySeverity, "error", Severity("error")},
		{"Rule", KeyRule, "missing_app", Rule("missing_app")},
		{"Adapter", KeyAdapter, "llm", Adapter("llm")},
		{"OutDir", KeyOutDir, "./out", OutDir("./out")},
		{"File", KeyFile, "App.jsx", File("App.jsx")},
		{"RunID", KeyRunID, "run-1", RunID("run-1")},
		{"Category", KeyCategory, "parse", Category("parse")},
		{"Name", KeyName, "n", Name("n")},
	}

	for _, tc := range cases {
		a := tc.attr.(slog.Attr)
		if a.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, a.Key)
		}
		if got := a.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & bool helpers.
func TestNumericHelpers(t *testing.T) {
	if v := DurationMS(125); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Attempt(2); v.Key != KeyAttempt {
		t.Fatalf("Attempt key mismatch: %s", v.Key)
	}
	if v := MaxAttempts(3); v.Key != KeyMaxAttempts {
		t.Fatalf("MaxAttempts key mismatch: %s", v.Key)
	}
	if v := ErrorCount(0); v.Key != KeyErrorCount {
		t.Fatalf("ErrorCount key mismatch: %s", v.Key)
	}
	if v := Retryable(true); v.Key != KeyRetryable {
		t.Fatalf("Retryable key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
