package commands

import (
	"fmt"

	"github.com/airengine/airengine/internal/agent"
	"github.com/airengine/airengine/internal/classerr"
	"github.com/airengine/airengine/internal/config"
)

// CompileCmd implements `compile <input.air> -o <outDir>` (spec.md §6):
// parse -> validate -> transpile -> write, no repair loop.
type CompileCmd struct {
	Input  string `arg:"" help:"Path to the AIR source file" type:"existingfile"`
	Output string `short:"o" help:"Output directory for the generated project" default:"./out"`
}

func (c *CompileCmd) Run(g *Global) error {
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

	opts := agent.Options{
		OutputDir:    outDir,
		ArtifactRoot: cfg.ArtifactRoot,
		RepairMode:   agent.RepairNone,
		// compile is a one-shot pipeline with no audit trail; the agent
		// loop's artifact bundle is `loop`'s concern.
		SkipArtifacts: true,
	}

	result := agent.Run(c.Input, source, opts)
	if !stagePassed(result, "validate") {
		return classerr.New(classerr.CategoryValidate, "source has blocking validation errors").Build()
	}
	if !stagePassed(result, "transpile") {
		return classerr.New(classerr.CategoryTranspile, "transpile failed").Build()
	}

	fmt.Printf("compiled %s -> %s (%d files)\n", c.Input, outDir, len(result.TranspileResult.Files))
	return nil
}

func stagePassed(result *agent.LoopResult, name string) bool {
	for _, s := range result.Stages {
		if s.Name == name {
			return s.Status == agent.StagePass
		}
	}
	return false
}
