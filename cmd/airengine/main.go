// Command airengine is the thin CLI wrapper around the AirEngine compiler
// library (spec.md §6): compile, loop, and validate subcommands over one
// AIR source file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/airengine/airengine/cmd/airengine/commands"
	"github.com/airengine/airengine/internal/classerr"
)

var version = "dev"

// CLI is the root command set, mirroring the teacher's cmd/docbuilder.CLI
// shape: global flags plus one struct field per subcommand.
type CLI struct {
	Config  string           `short:"c" help:"Loop/CLI configuration file path" default:"airengine.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile  commands.CompileCmd  `cmd:"" help:"Parse, validate, transpile, and write a project (one-shot)"`
	Loop     commands.LoopCmd     `cmd:"" help:"Run the full agent loop: validate, repair, transpile, smoke, determinism"`
	Validate commands.ValidateCmd `cmd:"" help:"Print a formatted diagnostics report for a source file"`
}

func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	cli := &CLI{}
	parser := kong.Parse(cli,
		kong.Description("AirEngine: compile AIR source into a React/Express project."),
		kong.Vars{"version": version},
	)

	adapter := classerr.NewCLIAdapter(cli.Verbose, slog.Default())

	globals := &commands.Global{Config: cli.Config}
	err := parser.Run(globals)
	if err == nil {
		os.Exit(0)
	}

	adapter.Log(err)
	fmt.Fprintln(os.Stderr, adapter.Format(err))
	os.Exit(adapter.ExitCodeFor(err))
}
