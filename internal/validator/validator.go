// Package validator runs the rule chain over a parsed AST and produces the
// diagnostics list described in spec.md §4.3.
//
// The Rule/RuleChain/Context shape mirrors the teacher's
// internal/build/validation package almost exactly: a gathered Context
// struct built once, handed to every rule, each rule independently
// appending diagnostics rather than short-circuiting the chain (AIR rules
// are independent, unlike the teacher's first-failure-wins build
// validation).
package validator

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
)

// Rule inspects a Context and appends any diagnostics it finds.
type Rule interface {
	Name() string
	Check(ctx *Context) []diagnostics.Diagnostic
}

// Context gathers per-kind state over app.blocks in a single pass so rules
// never re-walk the AST themselves.
type Context struct {
	AST *airast.AirAST

	HasState   bool
	HasStyle   bool
	HasAPI     bool
	HasDB      bool
	HasAuth    bool
	HasPersist bool
	HasNav     bool

	StateFields []airast.Field
	Pages       []airast.UINode
	UINodes     []airast.UINode
	APIRoutes   []airast.Route
	AuthBlock   *airast.AuthBlock
	DBModels    []airast.Model
	NavRoutes   []airast.NavRoute

	ModelNames map[string]bool
}

// Gather builds a Context from ast in one pass over app.blocks.
func Gather(ast *airast.AirAST) *Context {
	ctx := &Context{AST: ast, ModelNames: map[string]bool{}}
	for _, b := range ast.App.Blocks {
		switch b.Kind {
		case airast.BlockState:
			ctx.HasState = true
			ctx.StateFields = append(ctx.StateFields, b.State.Fields...)
		case airast.BlockStyle:
			ctx.HasStyle = true
		case airast.BlockUI:
			ctx.UINodes = append(ctx.UINodes, b.UI.Children...)
			ctx.Pages = append(ctx.Pages, airast.Pages(b.UI.Children)...)
		case airast.BlockAPI:
			ctx.HasAPI = true
			ctx.APIRoutes = append(ctx.APIRoutes, b.API.Routes...)
		case airast.BlockAuth:
			ctx.HasAuth = true
			ctx.AuthBlock = b.Auth
		case airast.BlockPersist:
			ctx.HasPersist = true
		case airast.BlockNav:
			ctx.HasNav = true
			ctx.NavRoutes = append(ctx.NavRoutes, b.Nav.Routes...)
		case airast.BlockDB:
			ctx.HasDB = true
			ctx.DBModels = append(ctx.DBModels, b.DB.Models...)
			for _, m := range b.DB.Models {
				ctx.ModelNames[m.Name] = true
			}
		}
	}
	return ctx
}

// DefaultChain returns the full, stable rule set from spec.md §4.3.
func DefaultChain() []Rule {
	return []Rule{
		missingAppRule{},
		noUIRule{},
		apiModelRule{},
		duplicatePageRule{},
		navTargetRule{},
		crudModelRule{},
		noStateRule{},
		dbNoAPIRule{},
		ambiguousRelationRule{},
		unreferencedStateRule{},
		authLookingRouteRule{},
		noPrimaryKeyRule{},
		authRequiredNoLoginRule{},
		noPersistRule{},
		noStyleRule{},
	}
}

// Validate gathers a Context and runs every rule in chain, returning the
// concatenated, unsorted diagnostics (sorting is diagnostics.BuildResult's
// job, so Validate itself stays a pure producer).
func Validate(ast *airast.AirAST, chain []Rule) []diagnostics.Diagnostic {
	ctx := Gather(ast)
	var diags []diagnostics.Diagnostic
	for _, rule := range chain {
		diags = append(diags, rule.Check(ctx)...)
	}
	return diags
}
