package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// envValidatorFile emits a module that hard-fails at boot when a declared
// @env variable is missing from process.env (spec.md §4.6.5).
func envValidatorFile(ctx *transpile.Context) fileT {
	var names []string
	for _, item := range ctx.Env.Items {
		name, _ := splitEnvItem(item)
		names = append(names, name)
	}

	var sb strings.Builder
	sb.WriteString("const required = [\n")
	for _, n := range names {
		sb.WriteString(`  "` + n + `",` + "\n")
	}
	sb.WriteString("];\n\n")
	sb.WriteString("const missing = required.filter((key) => !process.env[key]);\n")
	sb.WriteString("if (missing.length > 0) {\n")
	sb.WriteString("  throw new Error(`missing required environment variables: ${missing.join(\", \")}`);\n")
	sb.WriteString("}\n")
	return fileT{Path: "server/env.ts", Content: sb.String()}
}
