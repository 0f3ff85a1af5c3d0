// Package commands implements airengine's kong subcommands, one file per
// command, following the teacher's cmd/docbuilder/commands layout.
package commands

import (
	"os"

	"github.com/airengine/airengine/internal/agent"
	"github.com/airengine/airengine/internal/classerr"
	"github.com/airengine/airengine/internal/config"
	"github.com/airengine/airengine/internal/repair/llm"
)

// Global carries state shared across subcommands.
type Global struct {
	Config string
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classerr.Wrap(err, classerr.CategoryIO, "read source file").
			Retryable().WithContext("path", path).Build()
	}
	return string(data), nil
}

// loopOptions builds agent.Options from a loaded config.Config and a
// possible CLI --repair-mode/--max-repair-attempts override.
func loopOptions(cfg config.Config, outDir, repairMode string, maxAttempts int) agent.Options {
	mode := agent.RepairMode(cfg.RepairMode)
	if repairMode != "" {
		mode = agent.RepairMode(repairMode)
	}
	attempts := cfg.MaxRepairAttempts
	if maxAttempts > 0 {
		attempts = maxAttempts
	}

	opts := agent.Options{
		OutputDir:         outDir,
		ArtifactRoot:      cfg.ArtifactRoot,
		RepairMode:        mode,
		MaxRepairAttempts: attempts,
	}
	if mode == agent.RepairLLM && cfg.Adapter.Endpoint != "" {
		a := llm.New(cfg.Adapter.Endpoint, cfg.APIKey())
		if cfg.Adapter.MaxRetries > 0 {
			a.Policy.MaxRetries = cfg.Adapter.MaxRetries
		}
		opts.Adapter = a
	}
	return opts
}
