package generators

import (
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/transpile"
)

// serverFiles emits the server project descriptor, .env, the DB client
// singleton, the seed module, and the API router (spec.md §4.6.5).
func serverFiles(ctx *transpile.Context) []fileT {
	return []fileT{
		{Path: "server/package.json", Content: serverDescriptor(ctx)},
		{Path: "server/.env", Content: envFile(ctx)},
		{Path: "server/db.ts", Content: dbClientModule()},
		{Path: "server/seed.ts", Content: seedModule(ctx)},
		{Path: "server/routes.ts", Content: apiRouter(ctx)},
	}
}

func serverDescriptor(ctx *transpile.Context) string {
	return writeLines(
		"{",
		`  "name": "`+ctx.AppName+`-server",`,
		`  "private": true,`,
		`  "version": "0.0.0",`,
		`  "type": "module",`,
		`  "scripts": {`,
		`    "dev": "tsx watch routes.ts",`,
		`    "build": "tsc",`,
		`    "db:push": "prisma db push",`,
		`    "db:seed": "tsx seed.ts"`,
		`  },`,
		`  "dependencies": {`,
		`    "express": "^4.21.0",`,
		`    "@prisma/client": "^5.20.0",`,
		`    "jsonwebtoken": "^9.0.2"`,
		`  },`,
		`  "devDependencies": {`,
		`    "prisma": "^5.20.0",`,
		`    "tsx": "^4.19.0",`,
		`    "typescript": "^5.6.0"`,
		`  }`,
		"}",
	)
}

// envFile dedupes @env declarations against built-in defaults: a missing
// DATABASE_URL defaults to file:./dev.db, a missing JWT_SECRET gets a
// placeholder (spec.md §4.6.5).
func envFile(ctx *transpile.Context) string {
	vars := map[string]string{
		"DATABASE_URL": "file:./dev.db",
		"JWT_SECRET":   "replace-me-in-production",
	}
	var declaredOrder []string
	if ctx.Env != nil {
		for _, item := range ctx.Env.Items {
			name, value := splitEnvItem(item)
			if _, builtin := vars[name]; !builtin {
				declaredOrder = append(declaredOrder, name)
			}
			vars[name] = value
		}
	}

	keys := []string{"DATABASE_URL", "JWT_SECRET"}
	keys = append(keys, declaredOrder...)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k + "=" + vars[k] + "\n")
	}
	return sb.String()
}

func splitEnvItem(item string) (name, value string) {
	if idx := strings.Index(item, "="); idx >= 0 {
		return strings.TrimSpace(item[:idx]), strings.TrimSpace(item[idx+1:])
	}
	return strings.TrimSpace(item), ""
}

func dbClientModule() string {
	return writeLines(
		`import { PrismaClient } from "@prisma/client";`,
		"",
		`const globalForPrisma = globalThis as unknown as { prisma?: PrismaClient };`,
		"",
		`export const db = globalForPrisma.prisma ?? new PrismaClient();`,
		"",
		`if (process.env.NODE_ENV !== "production") globalForPrisma.prisma = db;`,
	)
}

func seedModule(ctx *transpile.Context) string {
	lines := []string{`import { db } from "./db.js";`, "", "async function main() {"}
	if ctx.DB != nil {
		for _, name := range sortedModelNames(ctx.DB) {
			lines = append(lines, `  // TODO: seed `+name+` records`)
		}
	}
	lines = append(lines, "}", "", "main()", `  .then(() => db.$disconnect())`, "  .catch((err) => {", "    console.error(err);", "    process.exit(1);", "  });")
	return writeLines(lines...)
}

// apiRouter emits one Express handler per expanded route. ID parameters are
// coerced per primary-key type; handlers for ~db.Model.op map to the six
// primitive operations; /public/* routes bypass auth middleware (INV-004/005).
func apiRouter(ctx *transpile.Context) string {
	primaryKeyIsInt := map[string]bool{}
	if ctx.DB != nil {
		for _, m := range ctx.DB.Models {
			for _, f := range m.Fields {
				if f.Primary {
					primaryKeyIsInt[m.Name] = f.Type.Kind == airast.TypeScalar && f.Type.Scalar == airast.ScalarInt
				}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(`import express from "express";` + "\n")
	sb.WriteString(`import { db } from "./db.js";` + "\n")
	sb.WriteString(`import { requireAuth } from "./auth.js";` + "\n\n")
	sb.WriteString("export const router = express.Router();\n\n")

	hasPublic := false
	routes := ctx.ExpandedRoutes
	for _, r := range routes {
		if strings.HasPrefix(r.Path, "/public/") {
			hasPublic = true
		}
	}
	if hasPublic {
		sb.WriteString("// /public/* routes bypass requireAuth; all others stay behind it.\n")
	}
	sb.WriteString("router.use(requireAuth);\n\n")

	for _, r := range routes {
		sb.WriteString(renderRouteHandler(r, primaryKeyIsInt))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderRouteHandler(r transpile.ExpandedRoute, primaryKeyIsInt map[string]bool) string {
	method := strings.ToLower(r.Method)
	expressPath := r.Path

	model, op := modelAndOpFromHandler(r.Handler)
	if op == "" {
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  res.status(501).json({ error: "handler not implemented: `+r.Handler+`" });`,
			`});`,
		)
	}

	idCoercion := `req.params.id`
	if primaryKeyIsInt[model] {
		idCoercion = `Number(req.params.id)`
	}

	switch op {
	case "findMany":
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  const rows = await db.`+camelCase(model)+`.findMany();`,
			`  res.setHeader("X-Total-Count", String(rows.length));`,
			`  res.json({ data: rows });`,
			`});`,
		)
	case "findUnique":
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  const row = await db.`+camelCase(model)+`.findUnique({ where: { id: `+idCoercion+` } });`,
			`  if (!row) return res.status(404).json({ error: "not found" });`,
			`  res.json(row);`,
			`});`,
		)
	case "create":
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  if (!req.body) return res.status(400).json({ error: "missing body" });`,
			`  try {`,
			`    const row = await db.`+camelCase(model)+`.create({ data: req.body });`,
			`    res.status(201).json(row);`,
			`  } catch (err: any) {`,
			`    res.status(500).json({ error: err.message });`,
			`  }`,
			`});`,
		)
	case "update":
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  try {`,
			`    const row = await db.`+camelCase(model)+`.update({ where: { id: `+idCoercion+` }, data: req.body });`,
			`    res.json(row);`,
			`  } catch (err: any) {`,
			`    res.status(500).json({ error: err.message });`,
			`  }`,
			`});`,
		)
	case "delete":
		return writeLines(
			`router.`+method+`("`+expressPath+`", async (req, res) => {`,
			`  await db.`+camelCase(model)+`.delete({ where: { id: `+idCoercion+` } });`,
			`  res.status(204).end();`,
			`});`,
		)
	}
	return ""
}

func modelAndOpFromHandler(handler string) (model, op string) {
	rest := strings.TrimPrefix(handler, "~db.")
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
