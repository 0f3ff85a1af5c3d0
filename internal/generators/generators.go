// Package generators turns a transpile.Context into the deterministic
// OutputFile set described in spec.md §4.6: client scaffold, pages and
// components, resource hooks, server and schema, and supporting templates.
//
// Every generator here is a pure function of its Context argument — no
// wall-clock reads, no randomness, no environment lookups — mirroring the
// teacher's internal/hugo config/content generators, which are likewise
// plain functions from a resolved BuildPlan to emitted file bytes.
package generators

import (
	"fmt"
	"sort"
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/manifest"
	"github.com/airengine/airengine/internal/transpile"
)

// fileT is a local alias for manifest.OutputFile, used throughout this
// package's generator functions.
type fileT = manifest.OutputFile

// Generate runs every applicable generator over ctx and returns the full
// output set, not yet including the manifest (callers append that via
// manifest.WithManifest once the source hash and version are known).
func Generate(ctx *transpile.Context) []manifest.OutputFile {
	analysis := transpile.NormalizeUI(ctx.UINodes)

	var files []manifest.OutputFile
	files = append(files, clientScaffold(ctx)...)
	files = append(files, pagesAndComponents(ctx, analysis)...)
	files = append(files, resourceHooks(ctx)...)
	if ctx.HasBackend {
		files = append(files, serverFiles(ctx)...)
		files = append(files, schemaFiles(ctx)...)
		files = append(files, authFiles(ctx)...)
		if ctx.Cron != nil {
			files = append(files, cronFile(ctx))
		}
		if ctx.Queue != nil {
			files = append(files, queueFile(ctx))
		}
		if ctx.Email != nil {
			files = append(files, emailFile(ctx))
		}
		if ctx.Env != nil {
			files = append(files, envValidatorFile(ctx))
		}
	}
	return files
}

func sortedModelNames(db *airast.DBBlock) []string {
	names := make([]string, 0, len(db.Models))
	for _, m := range db.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

func pascalCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func camelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// pluralize is a tiny, deliberately simple English pluralizer — good enough
// for the model-name vocabulary AIR declares (Todo, Task, User, Category).
func pluralize(s string) string {
	if s == "" {
		return s
	}
	last := s[len(s)-1]
	switch last {
	case 'y':
		if len(s) > 1 && !isVowel(s[len(s)-2]) {
			return s[:len(s)-1] + "ies"
		}
	case 's', 'x', 'z':
		return s + "es"
	}
	return s + "s"
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func writeLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func fmtf(format string, args ...any) string { return fmt.Sprintf(format, args...) }
