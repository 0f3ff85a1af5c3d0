package commands

import (
	"fmt"

	"github.com/airengine/airengine/internal/agent"
	"github.com/airengine/airengine/internal/classerr"
	"github.com/airengine/airengine/internal/config"
)

// LoopCmd implements `loop <input.air> -o <outDir> [--repair-mode]
// [--max-repair-attempts N]` (spec.md §6): the full agent loop.
type LoopCmd struct {
	Input             string `arg:"" help:"Path to the AIR source file" type:"existingfile"`
	Output            string `short:"o" help:"Output directory for the generated project" default:"./out"`
	RepairMode        string `name:"repair-mode" help:"none|deterministic|llm" enum:"none,deterministic,llm,"`
	MaxRepairAttempts int    `name:"max-repair-attempts" help:"Maximum repair retry attempts"`
}

func (c *LoopCmd) Run(g *Global) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return classerr.Wrap(err, classerr.CategoryConfig, "load configuration").Build()
	}

	source, err := readSource(c.Input)
	if err != nil {
		return err
	}

	outDir := c.Output
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	opts := loopOptions(cfg, outDir, c.RepairMode, c.MaxRepairAttempts)
	result := agent.Run(c.Input, source, opts)

	fmt.Printf("loop %s -> %s\n", c.Input, outDir)
	for _, s := range result.Stages {
		fmt.Printf("  %-12s %s\n", s.Name, s.Status)
	}
	if result.ArtifactDir != "" {
		fmt.Printf("artifacts: %s\n", result.ArtifactDir)
	}

	if !result.Success() {
		return classerr.New(classerr.CategoryInternal, "agent loop did not pass all stages").Build()
	}
	return nil
}
