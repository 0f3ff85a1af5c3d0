package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/transpile"
)

// resourceHooks emits a useModels hook for each @db model with a matching
// GET findMany route and a matching array state variable (pluralized,
// lowercase first letter). Hooks without a state consumer are dead code
// and are not emitted (spec.md §4.6.4).
func resourceHooks(ctx *transpile.Context) []fileT {
	if ctx.DB == nil {
		return nil
	}
	stateNames := make(map[string]bool, len(ctx.State))
	for _, s := range ctx.State {
		stateNames[s.Name] = true
	}

	var files []fileT
	for _, model := range ctx.DB.Models {
		wantHandler := "~db." + model.Name + ".findMany"
		hasFindMany := false
		var listPath string
		for _, r := range ctx.ExpandedRoutes {
			if r.Method == "GET" && r.Handler == wantHandler {
				hasFindMany = true
				listPath = r.Path
				break
			}
		}
		if !hasFindMany {
			continue
		}
		stateVar := camelCase(pluralize(model.Name))
		if !stateNames[stateVar] {
			continue
		}
		files = append(files, fileT{
			Path:    "src/hooks/use" + pascalCase(pluralize(model.Name)) + ".js",
			Content: useModelsHook(model.Name, listPath),
		})
	}
	return files
}

// useModelsHook renders the useModels hook body: pagination (page, limit,
// search), loading/error state, a total count read from X-Total-Count, and
// a refetch callback.
func useModelsHook(modelName, listPath string) string {
	hookName := "use" + pascalCase(pluralize(modelName))
	var sb strings.Builder
	sb.WriteString(`import { useState, useEffect, useCallback } from "react";` + "\n\n")
	sb.WriteString("export function " + hookName + "({ page = 1, limit = 20, search = \"\" } = {}) {\n")
	sb.WriteString("  const [data, setData] = useState([]);\n")
	sb.WriteString("  const [total, setTotal] = useState(0);\n")
	sb.WriteString("  const [loading, setLoading] = useState(true);\n")
	sb.WriteString("  const [error, setError] = useState(null);\n\n")
	sb.WriteString("  const refetch = useCallback(async () => {\n")
	sb.WriteString("    setLoading(true);\n")
	sb.WriteString("    setError(null);\n")
	sb.WriteString("    try {\n")
	sb.WriteString(`      const params = new URLSearchParams({ page, limit, search });` + "\n")
	sb.WriteString(`      const res = await fetch(` + "`" + listPath + "?${params}`" + `);` + "\n")
	sb.WriteString(`      if (!res.ok) throw new Error(` + "`request failed: ${res.status}`" + `);` + "\n")
	sb.WriteString("      const response = await res.json();\n")
	sb.WriteString("      setData(response.data ?? response);\n")
	sb.WriteString(`      setTotal(Number(res.headers.get("X-Total-Count")) || 0);` + "\n")
	sb.WriteString("    } catch (err) {\n")
	sb.WriteString("      setError(err);\n")
	sb.WriteString("    } finally {\n")
	sb.WriteString("      setLoading(false);\n")
	sb.WriteString("    }\n")
	sb.WriteString("  }, [page, limit, search]);\n\n")
	sb.WriteString("  useEffect(() => {\n")
	sb.WriteString("    refetch();\n")
	sb.WriteString("  }, [refetch]);\n\n")
	sb.WriteString("  return { data, total, loading, error, refetch };\n")
	sb.WriteString("}\n")
	return sb.String()
}
