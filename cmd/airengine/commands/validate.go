package commands

import (
	"fmt"

	"github.com/airengine/airengine/internal/classerr"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/parser"
	"github.com/airengine/airengine/internal/validator"
)

// ValidateCmd implements `validate <input.air>` (spec.md §6): prints a
// formatted diagnostics report, exit 0 iff valid.
type ValidateCmd struct {
	Input string `arg:"" help:"Path to the AIR source file" type:"existingfile"`
}

func (c *ValidateCmd) Run(g *Global) error {
	source, err := readSource(c.Input)
	if err != nil {
		return err
	}

	sourceHash := diagnostics.HashSource(source)

	ast, parseErr := parser.Parse(source)
	var diags []diagnostics.Diagnostic
	if parseErr != nil {
		diags = []diagnostics.Diagnostic{diagnostics.WrapParseError(parseErr)}
	} else {
		diags = validator.Validate(ast, validator.DefaultChain())
	}

	result := diagnostics.BuildResult(diags, sourceHash)
	for _, d := range result.Diagnostics {
		fmt.Println(diagnostics.FormatCLI(d))
	}
	fmt.Printf("%d error(s), %d warning(s), %d info\n", result.Summary.Errors, result.Summary.Warnings, result.Summary.Info)

	if !result.Valid {
		return classerr.New(classerr.CategoryValidate, "source has blocking validation errors").Build()
	}
	return nil
}
