package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/transpile"
)

// pagesAndComponents emits one file per @page:name scope (or a single
// HomePage.jsx when the UI tree declares no pages at all) plus any reusable
// components whose trigger patterns appear in the analyzed tree (spec.md
// §4.6.3).
func pagesAndComponents(ctx *transpile.Context, analysis transpile.Analysis) []fileT {
	var files []fileT

	if len(analysis.Pages) == 0 {
		files = append(files, fileT{
			Path:    "src/pages/HomePage.jsx",
			Content: pageComponent(ctx, "home", analysis.Root, analysis.Mutations),
		})
	}
	for _, p := range analysis.Pages {
		files = append(files, fileT{
			Path:    "src/pages/" + pascalCase(p.Name) + "Page.jsx",
			Content: pageComponent(ctx, p.Name, p.Elements, analysis.Mutations),
		})
	}

	triggers := detectComponentTriggers(analysis)
	if ctx.HasBackend {
		if triggers.table {
			files = append(files, fileT{Path: "src/components/DataTable.jsx", Content: dataTableComponent()})
			files = append(files, fileT{Path: "src/components/EmptyState.jsx", Content: emptyStateComponent()})
		}
		if triggers.stat {
			files = append(files, fileT{Path: "src/components/StatCard.jsx", Content: statCardComponent()})
		}
		if triggers.table {
			files = append(files, fileT{Path: "src/components/ConfirmModal.jsx", Content: confirmModalComponent()})
		}
	}
	return files
}

type componentTriggers struct {
	table bool // table element present
	stat  bool // "stat" element present
}

func detectComponentTriggers(a transpile.Analysis) componentTriggers {
	var t componentTriggers
	var walk func(els []transpile.BoundElement)
	walk = func(els []transpile.BoundElement) {
		for _, el := range els {
			if el.Element == "table" || contains(el.Modifiers, "iterate") {
				t.table = true
			}
			if el.Element == "stat" {
				t.stat = true
			}
			walk(el.Children)
		}
	}
	walk(a.Root)
	for _, p := range a.Pages {
		walk(p.Elements)
	}
	return t
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// pageComponent renders one page's JSX, unwrapping paginated list fetches
// as `response.data ?? response` (INV-001).
func pageComponent(ctx *transpile.Context, name string, elements []transpile.BoundElement, mutations []transpile.Mutation) string {
	var sb strings.Builder
	sb.WriteString(`import React, { useState } from "react";` + "\n")
	sb.WriteString("\n")
	sb.WriteString("export default function " + pascalCase(name) + "Page() {\n")

	for _, s := range ctx.State {
		sb.WriteString("  const [" + s.Name + ", set" + pascalCase(s.Name) + "] = useState(" + stateZeroValue(s) + ");\n")
	}
	for _, m := range mutations {
		sb.WriteString("  const " + m.Name + " = () => { /* TODO: wire state update */ };\n")
	}
	sb.WriteString("\n")
	sb.WriteString("  return (\n")
	sb.WriteString(`    <div className="page page-` + name + `">` + "\n")
	for _, el := range elements {
		sb.WriteString(renderElement(el, 3))
	}
	sb.WriteString("    </div>\n")
	sb.WriteString("  );\n")
	sb.WriteString("}\n")
	return sb.String()
}

func hasRemoteBinding(els []transpile.BoundElement) bool {
	for _, el := range els {
		if strings.HasPrefix(el.Binding, "~") || contains(el.Modifiers, "iterate") {
			return true
		}
		if hasRemoteBinding(el.Children) {
			return true
		}
	}
	return false
}

// stateZeroValue derives a JS-literal initial value for a @state field's
// useState() call from its declared default (if any) or its type's zero
// value.
func stateZeroValue(f airast.Field) string {
	if f.Default != "" {
		return f.Default
	}
	switch f.Type.Kind {
	case airast.TypeScalar:
		switch f.Type.Scalar {
		case airast.ScalarInt, airast.ScalarFloat:
			return "0"
		case airast.ScalarBool:
			return "false"
		case airast.ScalarStr, airast.ScalarDate, airast.ScalarDatetime:
			return `""`
		}
	case airast.TypeArray:
		return "[]"
	case airast.TypeObject:
		return "{}"
	case airast.TypeOptional:
		return "null"
	}
	return "null"
}

func renderElement(el transpile.BoundElement, indent int) string {
	pad := strings.Repeat("  ", indent)
	switch el.Element {
	case "#text":
		return pad + el.Label + "\n"
	case "#value":
		return pad + "{" + el.Binding + "}\n"
	}

	tag := el.Element
	if tag == "" {
		tag = "div"
	}
	attrs := ""
	if len(el.Modifiers) > 0 {
		attrs = ` className="` + strings.Join(el.Modifiers, " ") + `"`
	}
	if el.Action != "" {
		attrs += ` onClick={` + el.Action + `}`
	}

	var sb strings.Builder
	if len(el.Children) == 0 && el.Label == "" && el.Binding == "" {
		sb.WriteString(pad + "<" + tag + attrs + " />\n")
		return sb.String()
	}
	sb.WriteString(pad + "<" + tag + attrs + ">\n")
	if el.Label != "" {
		sb.WriteString(strings.Repeat("  ", indent+1) + el.Label + "\n")
	}
	if el.Binding != "" {
		binding := el.Binding
		if strings.HasPrefix(binding, "~") {
			binding = "(response.data ?? response)"
		}
		sb.WriteString(strings.Repeat("  ", indent+1) + "{" + binding + "}\n")
	}
	for _, c := range el.Children {
		sb.WriteString(renderElement(c, indent+1))
	}
	sb.WriteString(pad + "</" + tag + ">\n")
	return sb.String()
}
