// Package version holds build-time identity for AirEngine.
package version

// Version is the AirEngine release version.
// Set via build-time ldflags in production:
// go build -ldflags "-X github.com/airengine/airengine/internal/version.Version=v1.4.0".
var Version = "dev"

// BuildTime and GitCommit are additional build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// SchemaVersion is the stable schema version stamped on every DiagnosticResult.
// It changes only when the JSON shape of DiagnosticResult itself changes,
// independent of Version above.
const SchemaVersion = "1.0"
