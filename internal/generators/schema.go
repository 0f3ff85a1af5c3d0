package generators

import (
	"fmt"
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/transpile"
)

// schemaFiles emits prisma/schema.prisma translating @db into a Prisma-flavored
// schema string (spec.md §4.6.6).
func schemaFiles(ctx *transpile.Context) []fileT {
	if ctx.DB == nil {
		return nil
	}
	return []fileT{{Path: "prisma/schema.prisma", Content: renderSchema(ctx)}}
}

// renderSchema translates every declared model plus resolved relations and
// indexes into one schema string.
func renderSchema(ctx *transpile.Context) string {
	var sb strings.Builder
	sb.WriteString("datasource db {\n")
	sb.WriteString(`  provider = "sqlite"` + "\n")
	sb.WriteString(`  url      = env("DATABASE_URL")` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("generator client {\n")
	sb.WriteString(`  provider = "prisma-client-js"` + "\n")
	sb.WriteString("}\n\n")

	relationsByModel := relationFieldsByModel(ctx.DB, ctx.Relations)

	for _, model := range ctx.DB.Models {
		sb.WriteString("model " + model.Name + " {\n")
		for _, f := range model.Fields {
			sb.WriteString("  " + renderDBField(f) + "\n")
		}
		for _, rf := range relationsByModel[model.Name] {
			sb.WriteString("  " + rf + "\n")
		}
		for _, idx := range ctx.DB.Indexes {
			if idx.Model != model.Name {
				continue
			}
			sb.WriteString("  " + renderIndex(idx) + "\n")
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

// schemaTypeOf maps an AIR scalar/array/optional type to its Prisma-
// flavored type string.
func schemaTypeOf(t airast.Type) string {
	switch t.Kind {
	case airast.TypeScalar:
		switch t.Scalar {
		case airast.ScalarStr:
			return "String"
		case airast.ScalarInt:
			return "Int"
		case airast.ScalarFloat:
			return "Float"
		case airast.ScalarBool:
			return "Boolean"
		case airast.ScalarDate, airast.ScalarDatetime:
			return "DateTime"
		}
		return "String"
	case airast.TypeArray:
		return schemaTypeOf(*t.Elem) + "[]"
	case airast.TypeOptional:
		return schemaTypeOf(*t.Elem) + "?"
	case airast.TypeEnum:
		// The target database is assumed not to support enums natively.
		return "String // enum: " + strings.Join(t.EnumValues, ", ")
	case airast.TypeRef:
		return t.RefName
	case airast.TypeObject:
		return "Json"
	}
	return "String"
}

func renderDBField(f airast.DbField) string {
	typ := schemaTypeOf(f.Type)
	var attrs []string
	if f.Primary {
		attrs = append(attrs, "@id")
	}
	if f.Auto {
		switch f.Type.Kind {
		case airast.TypeScalar:
			switch f.Type.Scalar {
			case airast.ScalarInt:
				attrs = append(attrs, "@default(autoincrement())")
			case airast.ScalarDatetime, airast.ScalarDate:
				attrs = append(attrs, "@default(now())")
			}
		}
	}
	if f.Name == "updated_at" {
		attrs = append(attrs, "@updatedAt")
	}
	if f.Default != "" && !f.Auto {
		attrs = append(attrs, "@default("+f.Default+")")
	}
	if f.Required && f.Type.Kind != airast.TypeOptional {
		// required is the default for non-optional fields; nothing to add.
	}
	line := f.Name + " " + typ
	if len(attrs) > 0 {
		line += " " + strings.Join(attrs, " ")
	}
	return line
}

func renderIndex(idx airast.Index) string {
	if len(idx.Fields) == 0 {
		return "// TODO: index with no fields declared on " + idx.Model
	}
	if len(idx.Fields) == 1 {
		return "@@unique([" + idx.Fields[0] + "])"
	}
	return "@@index([" + strings.Join(idx.Fields, ", ") + "])"
}

// relationFieldsByModel resolves each declared relation into a field line
// on both sides. The declared ref field itself is the FK column; the
// relation field is named after it with any trailing `Id` trimmed.
// Ambiguous relations (flagged by transpile.Context) are emitted as a
// // TODO comment rather than guessed at (spec.md §4.6.6).
func relationFieldsByModel(db *airast.DBBlock, resolved []transpile.ResolvedRelation) map[string][]string {
	out := map[string][]string{}
	for _, r := range resolved {
		fromParts := strings.SplitN(r.From, ".", 2)
		toParts := strings.SplitN(r.To, ".", 2)
		if len(fromParts) < 2 || len(toParts) < 2 {
			continue
		}
		fromModel, fromField := fromParts[0], fromParts[1]
		toModel := toParts[0]

		if r.Ambiguous {
			out[fromModel] = append(out[fromModel], fmt.Sprintf(
				"// TODO: ambiguous relation %s -> %s (multiple refs to the same model); resolve manually", r.From, r.To))
			continue
		}

		onDelete := onDeleteClause(r.OnDelete)
		out[fromModel] = append(out[fromModel], fmt.Sprintf(
			"%s %s @relation(fields: [%s], references: [id]%s)",
			strings.TrimSuffix(fromField, "Id"), toModel, fromField, onDelete))
		out[toModel] = append(out[toModel], fmt.Sprintf(
			"%s %s[]", camelCase(pluralize(fromModel)), fromModel))
	}
	return out
}

func onDeleteClause(action airast.OnDelete) string {
	switch action {
	case airast.OnDeleteCascade:
		return ", onDelete: Cascade"
	case airast.OnDeleteSetNull:
		return ", onDelete: SetNull"
	case airast.OnDeleteRestrict:
		return ", onDelete: Restrict"
	}
	return ""
}
