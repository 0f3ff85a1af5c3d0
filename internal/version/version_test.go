package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Version == "unknown" {
		t.Error("Version should have a meaningful default value")
	}
}

func TestBuildInfo(t *testing.T) {
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}
	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestSchemaVersion(t *testing.T) {
	if SchemaVersion != "1.0" {
		t.Errorf("SchemaVersion changed to %q; DiagnosticResult consumers pin to 1.0", SchemaVersion)
	}
}
