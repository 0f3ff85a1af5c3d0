// Package transpile computes the TranspileContext from an AST in a single
// pass, so every code generator is a pure function of the context alone
// (spec.md §3/§4.5).
//
// The single-precomputation-pass shape mirrors the teacher's
// internal/build/validation.Context: a plain struct gathered once up front
// and handed, read-only, to every downstream consumer.
package transpile

import (
	"strings"

	"github.com/airengine/airengine/internal/airast"
)

// ExpandedRoute is one concrete HTTP route after CRUD expansion.
type ExpandedRoute struct {
	Method  string
	Path    string
	Handler string
	Params  []airast.Field
	Source  airast.Route
}

// ResolvedRelation is a Relation annotated with whether it is ambiguous
// with another relation between the same pair of models (spec.md
// §4.5/§4.6.6); FK side and optionality are not recorded here.
type ResolvedRelation struct {
	airast.Relation
	Ambiguous bool
}

// Context is the precomputed, read-only summary every generator consumes.
type Context struct {
	AppName string

	State []airast.Field
	Style *airast.StyleBlock

	UINodes []airast.UINode

	APIRoutes      []airast.Route
	ExpandedRoutes []ExpandedRoute

	PersistKeys   []string
	PersistMethod string

	HasBackend bool

	Auth    *airast.AuthBlock
	DB      *airast.DBBlock
	Webhook *airast.ListBlock
	Env     *airast.ListBlock
	Cron    *airast.ListBlock
	Queue   *airast.ListBlock
	Email   *airast.ListBlock

	Nav *airast.NavBlock

	Relations []ResolvedRelation
}

// Build computes the TranspileContext from ast in one pass (spec.md §4.5).
func Build(ast *airast.AirAST) *Context {
	ctx := &Context{AppName: ast.App.Name}

	for _, b := range ast.App.Blocks {
		switch b.Kind {
		case airast.BlockState:
			ctx.State = append(ctx.State, b.State.Fields...)
		case airast.BlockStyle:
			ctx.Style = b.Style
		case airast.BlockUI:
			ctx.UINodes = append(ctx.UINodes, b.UI.Children...)
		case airast.BlockAPI:
			ctx.APIRoutes = append(ctx.APIRoutes, b.API.Routes...)
		case airast.BlockPersist:
			ctx.PersistKeys = append(ctx.PersistKeys, b.Persist.Keys...)
			ctx.PersistMethod = b.Persist.Method
		case airast.BlockAuth:
			ctx.Auth = b.Auth
		case airast.BlockDB:
			ctx.DB = b.DB
		case airast.BlockWebhook:
			ctx.Webhook = b.Webhook
		case airast.BlockEnv:
			ctx.Env = b.Env
		case airast.BlockCron:
			ctx.Cron = b.Cron
		case airast.BlockQueue:
			ctx.Queue = b.Queue
		case airast.BlockEmail:
			ctx.Email = b.Email
		case airast.BlockNav:
			ctx.Nav = b.Nav
		}
	}

	ctx.HasBackend = ctx.DB != nil || len(ctx.APIRoutes) > 0
	ctx.ExpandedRoutes = expandRoutes(ctx.APIRoutes)
	if ctx.DB != nil {
		ctx.Relations = resolveRelations(ctx.DB.Relations)
	}

	return ctx
}

// expandRoutes turns each RouteCRUD shortcut into the five method-specific
// routes, leaving RouteHTTP entries as a single expanded route each.
func expandRoutes(routes []airast.Route) []ExpandedRoute {
	var out []ExpandedRoute
	for _, r := range routes {
		if r.Kind != airast.RouteCRUD {
			out = append(out, ExpandedRoute{Method: r.Method, Path: r.Path, Handler: crudHandler(r.Handler, "custom"), Params: r.Params, Source: r})
			continue
		}
		model := strings.TrimSuffix(strings.TrimPrefix(r.Handler, "~db."), ".")
		idPath := r.Path + "/:id"
		out = append(out,
			ExpandedRoute{Method: "GET", Path: r.Path, Handler: "~db." + model + ".findMany", Source: r},
			ExpandedRoute{Method: "GET", Path: idPath, Handler: "~db." + model + ".findUnique", Source: r},
			ExpandedRoute{Method: "POST", Path: r.Path, Handler: "~db." + model + ".create", Source: r},
			ExpandedRoute{Method: "PUT", Path: idPath, Handler: "~db." + model + ".update", Source: r},
			ExpandedRoute{Method: "DELETE", Path: idPath, Handler: "~db." + model + ".delete", Source: r},
		)
	}
	return out
}

func crudHandler(handler, _ string) string { return handler }

// resolveRelations flags relations that share the same (from-model,
// to-model) pair as ambiguous, mirroring validator's AIR-W003 check so the
// schema generator can emit a // TODO comment instead of guessing.
func resolveRelations(relations []airast.Relation) []ResolvedRelation {
	type key struct{ from, to string }
	counts := map[key]int{}
	for _, r := range relations {
		fromModel := strings.SplitN(r.From, ".", 2)[0]
		toModel := strings.SplitN(r.To, ".", 2)[0]
		counts[key{fromModel, toModel}]++
	}
	out := make([]ResolvedRelation, len(relations))
	for i, r := range relations {
		fromModel := strings.SplitN(r.From, ".", 2)[0]
		toModel := strings.SplitN(r.To, ".", 2)[0]
		out[i] = ResolvedRelation{Relation: r, Ambiguous: counts[key{fromModel, toModel}] > 1}
	}
	return out
}
