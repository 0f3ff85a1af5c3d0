package generators

import (
	"sort"
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// authPageNames are the @page names that must never be wrapped in the
// dashboard layout (INV-002).
var authPageNames = map[string]bool{
	"login":    true,
	"signup":   true,
	"register": true,
}

// clientScaffold emits the project descriptor, entry HTML, entry script,
// root component, and main stylesheet — always present regardless of
// backend presence (spec.md §4.6.2).
func clientScaffold(ctx *transpile.Context) []fileT {
	return []fileT{
		{Path: "package.json", Content: projectDescriptor(ctx)},
		{Path: "index.html", Content: entryHTML(ctx)},
		{Path: "src/main.jsx", Content: entryScript()},
		{Path: "src/App.jsx", Content: rootComponent(ctx)},
		{Path: "src/index.css", Content: mainStylesheet(ctx)},
	}
}

func projectDescriptor(ctx *transpile.Context) string {
	deps := []string{`"react": "^18.3.1"`, `"react-dom": "^18.3.1"`}
	analysis := transpile.NormalizeUI(ctx.UINodes)
	needsRouter := len(analysis.Pages) > 1 || (ctx.Nav != nil && len(ctx.Nav.Routes) > 0)
	if needsRouter {
		deps = append(deps, `"react-router-dom": "^6.26.0"`)
	}
	sort.Strings(deps[1:]) // keep react first, router after, deterministic otherwise

	var sb strings.Builder
	sb.WriteString("{\n")
	sb.WriteString(`  "name": "` + ctx.AppName + `",` + "\n")
	sb.WriteString("  \"private\": true,\n")
	sb.WriteString("  \"version\": \"0.0.0\",\n")
	sb.WriteString("  \"type\": \"module\",\n")
	sb.WriteString("  \"scripts\": {\n")
	sb.WriteString("    \"dev\": \"vite\",\n")
	sb.WriteString("    \"build\": \"vite build\",\n")
	sb.WriteString("    \"preview\": \"vite preview\"\n")
	sb.WriteString("  },\n")
	sb.WriteString("  \"dependencies\": {\n")
	for i, d := range deps {
		sb.WriteString("    " + d)
		if i < len(deps)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"devDependencies\": {\n")
	sb.WriteString("    \"vite\": \"^5.4.0\",\n")
	sb.WriteString("    \"@vitejs/plugin-react\": \"^4.3.1\"\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")
	return sb.String()
}

func entryHTML(ctx *transpile.Context) string {
	return writeLines(
		"<!doctype html>",
		`<html lang="en">`,
		"  <head>",
		`    <meta charset="UTF-8" />`,
		`    <meta name="viewport" content="width=device-width, initial-scale=1.0" />`,
		"    <title>"+pascalCase(ctx.AppName)+"</title>",
		`    <link rel="stylesheet" href="/src/index.css" />`,
		"  </head>",
		"  <body>",
		`    <div id="root"></div>`,
		`    <script type="module" src="/src/main.jsx"></script>`,
		"  </body>",
		"</html>",
	)
}

func entryScript() string {
	return writeLines(
		`import React from "react";`,
		`import ReactDOM from "react-dom/client";`,
		`import App from "./App.jsx";`,
		`import "./index.css";`,
		"",
		`ReactDOM.createRoot(document.getElementById("root")).render(`,
		"  <React.StrictMode>",
		"    <App />",
		"  </React.StrictMode>,",
		");",
	)
}

// rootComponent emits the top-level component. When the UI declares any
// @page scopes it wraps them in a router switch (@nav is not consulted);
// auth pages are rendered outside the
// dashboard layout wrapper per INV-002.
func rootComponent(ctx *transpile.Context) string {
	analysis := transpile.NormalizeUI(ctx.UINodes)

	if len(analysis.Pages) == 0 {
		return writeLines(
			`import React from "react";`,
			"",
			"export default function App() {",
			"  return (",
			`    <div className="app">`,
			"      <h1>"+pascalCase(ctx.AppName)+"</h1>",
			"    </div>",
			"  );",
			"}",
		)
	}

	var sb strings.Builder
	sb.WriteString(`import React from "react";` + "\n")
	sb.WriteString(`import { BrowserRouter, Routes, Route } from "react-router-dom";` + "\n")
	for _, p := range analysis.Pages {
		sb.WriteString(`import ` + pascalCase(p.Name) + `Page from "./pages/` + pascalCase(p.Name) + `Page.jsx";` + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString("export default function App() {\n")
	sb.WriteString("  return (\n")
	sb.WriteString("    <BrowserRouter>\n")
	sb.WriteString("      <Routes>\n")
	for _, p := range analysis.Pages {
		path := "/" + strings.ToLower(p.Name)
		if p.Name == "home" {
			path = "/"
		}
		element := pascalCase(p.Name) + "Page"
		if !authPageNames[p.Name] {
			element = "DashboardLayout><" + element + " /></DashboardLayout"
			sb.WriteString(`        <Route path="` + path + `" element={<` + element + `} />` + "\n")
			continue
		}
		sb.WriteString(`        <Route path="` + path + `" element={<` + element + ` />} />` + "\n")
	}
	sb.WriteString("      </Routes>\n")
	sb.WriteString("    </BrowserRouter>\n")
	sb.WriteString("  );\n")
	sb.WriteString("}\n")
	return sb.String()
}

// mainStylesheet carries a theme layer derived from @style custom
// properties, a fixed z-index scale, and a responsive 1/2/3 column grid
// (spec.md §4.6.2). It never emits an unscoped submit-button width rule
// (INV-003).
func mainStylesheet(ctx *transpile.Context) string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	if ctx.Style != nil {
		for _, rule := range ctx.Style.Rules {
			if rule.Selector != ":root" {
				continue
			}
			for _, prop := range rule.PropOrder {
				sb.WriteString("  --" + prop + ": " + rule.Props[prop] + ";\n")
			}
		}
	}
	sb.WriteString("  --z-base: 0;\n")
	sb.WriteString("  --z-dropdown: 100;\n")
	sb.WriteString("  --z-sticky: 200;\n")
	sb.WriteString("  --z-overlay: 300;\n")
	sb.WriteString("  --z-modal: 400;\n")
	sb.WriteString("  --z-toast: 500;\n")
	sb.WriteString("}\n\n")

	sb.WriteString("* { box-sizing: border-box; }\n\n")
	sb.WriteString("body { margin: 0; font-family: system-ui, sans-serif; }\n\n")

	sb.WriteString(".grid { display: grid; gap: 1rem; grid-template-columns: 1fr; }\n")
	sb.WriteString("@media (min-width: 640px) { .grid { grid-template-columns: repeat(2, 1fr); } }\n")
	sb.WriteString("@media (min-width: 1024px) { .grid { grid-template-columns: repeat(3, 1fr); } }\n\n")

	if ctx.Style != nil {
		for _, rule := range ctx.Style.Rules {
			if rule.Selector == ":root" {
				continue
			}
			sb.WriteString(scopedSelector(rule.Selector) + " {\n")
			for _, prop := range rule.PropOrder {
				sb.WriteString("  " + prop + ": " + rule.Props[prop] + ";\n")
			}
			sb.WriteString("}\n")
		}
	}
	return sb.String()
}

// scopedSelector wraps a bare typography selector (e.g. "h1") under an
// ".app" root to avoid collisions with the dashboard layout's own styles.
func scopedSelector(selector string) string {
	if strings.HasPrefix(selector, ".") || strings.HasPrefix(selector, "#") {
		return selector
	}
	return ".app " + selector
}
