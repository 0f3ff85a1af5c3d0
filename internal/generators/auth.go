package generators

import "github.com/airengine/airengine/internal/transpile"

// authFiles emits server/auth.ts with a requireAuth middleware and, when a
// role is declared, a requireRole guard (spec.md §4.6.5).
func authFiles(ctx *transpile.Context) []fileT {
	return []fileT{{Path: "server/auth.ts", Content: authModule(ctx)}}
}

func authModule(ctx *transpile.Context) string {
	lines := []string{
		`import type { Request, Response, NextFunction } from "express";`,
		`import jwt from "jsonwebtoken";`,
		"",
		`export function requireAuth(req: Request, res: Response, next: NextFunction) {`,
		`  if (req.path.startsWith("/public/")) return next();`,
		`  const header = req.headers.authorization;`,
		`  if (!header || !header.startsWith("Bearer ")) {`,
		`    return res.status(401).json({ error: "missing bearer token" });`,
		`  }`,
		`  try {`,
		`    const token = header.slice("Bearer ".length);`,
		`    (req as any).user = jwt.verify(token, process.env.JWT_SECRET as string);`,
		`    next();`,
		`  } catch {`,
		`    res.status(401).json({ error: "invalid token" });`,
		`  }`,
		`}`,
	}
	if ctx.Auth != nil && ctx.Auth.Role != "" {
		lines = append(lines,
			"",
			`export function requireRole(role: string) {`,
			`  return (req: Request, res: Response, next: NextFunction) => {`,
			`    const user = (req as any).user;`,
			`    if (!user || user.role !== role) {`,
			`      return res.status(403).json({ error: "forbidden" });`,
			`    }`,
			`    next();`,
			`  };`,
			`}`,
		)
	}
	return writeLines(lines...)
}
