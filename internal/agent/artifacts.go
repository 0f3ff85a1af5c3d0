package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// artifactTimestamp formats iso8601 as the directory name spec.md §6 specifies:
// ISO-8601 with ':' and '.' replaced by '-', so the result is a valid
// filesystem path component on every platform.
func artifactTimestamp(iso8601 string) string {
	r := strings.NewReplacer(":", "-", ".", "-")
	return r.Replace(iso8601)
}

// writeArtifacts persists the per-run audit bundle under
// artifactRoot/<iso-timestamp>-<run-id>/ (spec.md §6): diagnostics JSON,
// repair actions JSON, before/after diagnostics, repaired source, output
// hashes, the stage report, and the full loop result.
//
// The run-id suffix (grounded on the teacher's frontmatterops.uid.go use
// of uuid.NewString for collision-free identifiers) keeps concurrent runs
// against the same source from racing on one directory name, since two
// loops started within the same second would otherwise collide.
func writeArtifacts(artifactRoot string, result *LoopResult) error {
	dirName := fmt.Sprintf("%s-%s", artifactTimestamp(result.Timestamp), uuid.NewString()[:8])
	dir := filepath.Join(artifactRoot, dirName)
	result.ArtifactDir = dir

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("agent: create artifact dir: %w", err)
	}

	writes := map[string]any{
		"diagnostics.json":  result.Diagnostics,
		"stage_report.json": result.Stages,
		"determinism.json":  result.DeterminismCheck,
		"loop_result.json":  result,
	}
	if result.RepairAttempts != nil {
		writes["repair_attempts.json"] = result.RepairAttempts
	}

	for name, v := range writes {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}

	if len(result.RepairAttempts) > 0 {
		last := result.RepairAttempts[len(result.RepairAttempts)-1]
		if err := os.WriteFile(filepath.Join(dir, "repaired_source.air"), []byte(last.Result.RepairedSource), 0o600); err != nil {
			return fmt.Errorf("agent: write repaired source: %w", err)
		}
	}

	return nil
}

func writeJSON(path string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("agent: marshal artifact %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return fmt.Errorf("agent: write artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
