package validator

import (
	"fmt"
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
)

// navDirectiveWhitelist names nav targets that are directive-like rather
// than page references, so AIR-E005 does not flag them as undefined pages.
// Per SPEC_FULL.md's Open Question decision, this whitelist is fixed, not
// configurable.
var navDirectiveWhitelist = map[string]bool{
	"redirect": true, "back": true, "reload": true,
	"replace": true, "push": true, "pop": true,
}

func loc(line int) *diagnostics.Location {
	if line == 0 {
		return nil
	}
	return &diagnostics.Location{Line: line}
}

type missingAppRule struct{}

func (missingAppRule) Name() string { return "missing-app" }
func (missingAppRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if ctx.AST.App.Name != "" {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-E001", diagnostics.SeverityError, "missing @app:name declaration", diagnostics.CategoryStructural, diagnostics.Opts{}),
	}
}

type noUIRule struct{}

func (noUIRule) Name() string { return "no-ui" }
func (noUIRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if len(ctx.UINodes) > 0 {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-E002", diagnostics.SeverityError, "no @ui block declared", diagnostics.CategoryStructural, diagnostics.Opts{}),
	}
}

type apiModelRule struct{}

func (apiModelRule) Name() string { return "api-model" }
func (apiModelRule) Check(ctx *Context) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, r := range ctx.APIRoutes {
		if r.Kind != airast.RouteHTTP {
			continue
		}
		model, ok := modelFromHandler(r.Handler)
		if !ok || ctx.ModelNames[model] {
			continue
		}
		out = append(out, diagnostics.New("AIR-E003", diagnostics.SeverityError,
			fmt.Sprintf("@api handler %q references undefined model %q", r.Handler, model),
			diagnostics.CategorySemantic, diagnostics.Opts{Location: loc(r.Line), Block: "api"}))
	}
	return out
}

type crudModelRule struct{}

func (crudModelRule) Name() string { return "crud-model" }
func (crudModelRule) Check(ctx *Context) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, r := range ctx.APIRoutes {
		if r.Kind != airast.RouteCRUD {
			continue
		}
		model, ok := modelFromHandler(r.Handler)
		if !ok || ctx.ModelNames[model] {
			continue
		}
		out = append(out, diagnostics.New("AIR-E007", diagnostics.SeverityError,
			fmt.Sprintf("CRUD: handler %q references undefined model %q", r.Handler, model),
			diagnostics.CategorySemantic, diagnostics.Opts{Location: loc(r.Line), Block: "api"}))
	}
	return out
}

// modelFromHandler extracts the model name from a `~db.Model.op` or
// `~db.Model` handler reference.
func modelFromHandler(handler string) (string, bool) {
	h := strings.TrimPrefix(handler, "~")
	parts := strings.Split(h, ".")
	if len(parts) < 2 || parts[0] != "db" {
		return "", false
	}
	return parts[1], true
}

type duplicatePageRule struct{}

func (duplicatePageRule) Name() string { return "duplicate-page" }
func (duplicatePageRule) Check(ctx *Context) []diagnostics.Diagnostic {
	seen := map[string]bool{}
	var out []diagnostics.Diagnostic
	for _, page := range ctx.Pages {
		if seen[page.ScopeName] {
			out = append(out, diagnostics.New("AIR-E004", diagnostics.SeverityError,
				fmt.Sprintf("duplicate @page:%s", page.ScopeName), diagnostics.CategoryStructural,
				diagnostics.Opts{Location: loc(page.Line), Block: "ui"}))
			continue
		}
		seen[page.ScopeName] = true
	}
	return out
}

type navTargetRule struct{}

func (navTargetRule) Name() string { return "nav-target" }
func (navTargetRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if !ctx.HasNav {
		return nil
	}
	pageNames := map[string]bool{}
	for _, p := range ctx.Pages {
		pageNames[p.ScopeName] = true
	}
	var out []diagnostics.Diagnostic
	for _, route := range ctx.NavRoutes {
		for _, ref := range []string{route.Target, route.Fallback} {
			if ref == "" || navDirectiveWhitelist[ref] || pageNames[ref] || looksLikeRoute(ref) {
				continue
			}
			out = append(out, diagnostics.New("AIR-E005", diagnostics.SeverityError,
				fmt.Sprintf("@nav references undefined page %q", ref), diagnostics.CategorySemantic,
				diagnostics.Opts{Block: "nav"}))
		}
	}
	return out
}

func looksLikeRoute(s string) bool { return strings.HasPrefix(s, "/") }

type noStateRule struct{}

func (noStateRule) Name() string { return "no-state" }
func (noStateRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if ctx.HasState {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-W001", diagnostics.SeverityWarning, "no @state block declared", diagnostics.CategoryStyle, diagnostics.Opts{}),
	}
}

type dbNoAPIRule struct{}

func (dbNoAPIRule) Name() string { return "db-no-api" }
func (dbNoAPIRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if !ctx.HasDB || ctx.HasAPI {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-W002", diagnostics.SeverityWarning, "@db present but no @api declared", diagnostics.CategoryStructural, diagnostics.Opts{}),
	}
}

type ambiguousRelationRule struct{}

func (ambiguousRelationRule) Name() string { return "ambiguous-relation" }
func (ambiguousRelationRule) Check(ctx *Context) []diagnostics.Diagnostic {
	// Group ref-typed fields by (owning model, referenced model); more than
	// one field on the same model pointing at the same referenced model is
	// an ambiguous relation (spec.md §4.3 AIR-W003).
	type key struct{ model, ref string }
	counts := map[key][]string{}
	for _, m := range ctx.DBModels {
		for _, f := range m.Fields {
			t := f.Type
			if t.Kind == airast.TypeOptional && t.Elem != nil {
				t = *t.Elem
			}
			if t.Kind != airast.TypeRef {
				continue
			}
			k := key{model: m.Name, ref: t.RefName}
			counts[k] = append(counts[k], f.Name)
		}
	}
	var out []diagnostics.Diagnostic
	for k, fields := range counts {
		if len(fields) < 2 {
			continue
		}
		out = append(out, diagnostics.New("AIR-W003", diagnostics.SeverityWarning,
			fmt.Sprintf("model %q has ambiguous relation to %q via fields %s", k.model, k.ref, strings.Join(fields, ", ")),
			diagnostics.CategorySemantic, diagnostics.Opts{Block: "db"}))
	}
	return out
}

type unreferencedStateRule struct{}

func (unreferencedStateRule) Name() string { return "unreferenced-state" }
func (unreferencedStateRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if len(ctx.StateFields) == 0 {
		return nil
	}
	referenced := map[string]bool{}
	airast.WalkAll(ctx.UINodes, func(n airast.UINode) {
		for name := range collectTextReferences(n) {
			referenced[name] = true
		}
	})
	var out []diagnostics.Diagnostic
	for _, f := range ctx.StateFields {
		if referenced[f.Name] {
			continue
		}
		out = append(out, diagnostics.New("AIR-W004", diagnostics.SeverityWarning,
			fmt.Sprintf("state field %q is not referenced from any @ui block", f.Name),
			diagnostics.CategoryStyle, diagnostics.Opts{Block: "state"}))
	}
	return out
}

// collectTextReferences extracts candidate identifiers a single node's own
// textual content might name — $-bound values and element names — since
// AIR-W004 is a textual, not semantic, reference check.
func collectTextReferences(n airast.UINode) map[string]bool {
	out := map[string]bool{}
	switch n.Kind {
	case airast.UIValue:
		out[strings.TrimPrefix(n.Value, "$")] = true
	case airast.UIUnary:
		if n.UnaryOp == airast.OpDollar && n.UnaryOperand != nil && n.UnaryOperand.Kind == airast.UIElement {
			out[n.UnaryOperand.ElementName] = true
		}
	case airast.UIElement:
		out[n.ElementName] = true
	}
	return out
}

type authLookingRouteRule struct{}

func (authLookingRouteRule) Name() string { return "auth-looking-route" }
func (authLookingRouteRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if ctx.HasAuth {
		return nil
	}
	var out []diagnostics.Diagnostic
	for _, r := range ctx.APIRoutes {
		if isAuthLookingPath(r.Path) {
			out = append(out, diagnostics.New("AIR-W005", diagnostics.SeverityWarning,
				fmt.Sprintf("route %q looks auth-related but no @auth block is declared", r.Path),
				diagnostics.CategoryStructural, diagnostics.Opts{Location: loc(r.Line), Block: "api"}))
		}
	}
	return out
}

func isAuthLookingPath(path string) bool {
	for _, p := range []string{"/auth/login", "/signup", "/register"} {
		if path == p || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

type noPrimaryKeyRule struct{}

func (noPrimaryKeyRule) Name() string { return "no-primary-key" }
func (noPrimaryKeyRule) Check(ctx *Context) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, m := range ctx.DBModels {
		hasPrimary := false
		for _, f := range m.Fields {
			if f.Primary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			out = append(out, diagnostics.New("AIR-W007", diagnostics.SeverityWarning,
				fmt.Sprintf("model %q has no field marked primary", m.Name),
				diagnostics.CategoryStructural, diagnostics.Opts{Location: loc(m.Line), Block: "db"}))
		}
	}
	return out
}

type authRequiredNoLoginRule struct{}

func (authRequiredNoLoginRule) Name() string { return "auth-required-no-login" }
func (authRequiredNoLoginRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if ctx.AuthBlock == nil || !ctx.AuthBlock.Required {
		return nil
	}
	for _, r := range ctx.APIRoutes {
		if strings.HasPrefix(r.Path, "/login") {
			return nil
		}
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-W008", diagnostics.SeverityWarning, "@auth(required) declared without a /login route", diagnostics.CategoryStructural, diagnostics.Opts{Block: "auth"}),
	}
}

type noPersistRule struct{}

func (noPersistRule) Name() string { return "no-persist" }
func (noPersistRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if !ctx.HasState || ctx.HasPersist || ctx.HasAPI || ctx.HasDB {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-L001", diagnostics.SeverityInfo, "frontend-only app has @state but no @persist", diagnostics.CategoryStyle, diagnostics.Opts{}),
	}
}

type noStyleRule struct{}

func (noStyleRule) Name() string { return "no-style" }
func (noStyleRule) Check(ctx *Context) []diagnostics.Diagnostic {
	if ctx.HasStyle {
		return nil
	}
	return []diagnostics.Diagnostic{
		diagnostics.New("AIR-L002", diagnostics.SeverityInfo, "no @style block declared", diagnostics.CategoryStyle, diagnostics.Opts{}),
	}
}
