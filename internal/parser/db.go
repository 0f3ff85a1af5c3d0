package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parseDBBody parses `{Model{field:type:modifier,...}, Model2{...}}` for
// @db. Relations are derived, not separately declared: a field typed
// `ref(Other)` produces a Relation from `Model.field` to `Other.<primary
// field>` (or `Other.id` if no primary field is declared), defaulting
// OnDelete to restrict — the validator flags ambiguous cases (two fields
// referencing the same model) via AIR-W003.
func (p *parser) parseDBBody(closer lexer.Kind) (*airast.DBBlock, error) {
	var models []airast.Model
	for !p.at(closer) {
		modelTok, err := p.expect(lexer.Ident, "model name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LBrace, "{"); err != nil {
			return nil, err
		}
		var dbFields []airast.DbField
		for !p.at(lexer.RBrace) {
			field, mods, err := p.parseField()
			if err != nil {
				return nil, err
			}
			dbField := airast.DbField{Field: field}
			for _, m := range mods {
				switch m.name {
				case "primary":
					dbField.Primary = true
				case "auto":
					dbField.Auto = true
				case "required":
					dbField.Required = true
				}
			}
			dbFields = append(dbFields, dbField)
			if p.at(lexer.Comma) {
				p.advance()
			}
		}
		if _, err := p.expect(lexer.RBrace, "}"); err != nil {
			return nil, err
		}
		models = append(models, airast.Model{Name: modelTok.Text, Fields: dbFields, Line: modelTok.Line})
		if p.at(lexer.Comma) {
			p.advance()
		}
	}

	relations := deriveRelations(models)
	return &airast.DBBlock{Models: models, Relations: relations}, nil
}

func deriveRelations(models []airast.Model) []airast.Relation {
	primaryByModel := map[string]string{}
	for _, m := range models {
		for _, f := range m.Fields {
			if f.Primary {
				primaryByModel[m.Name] = f.Name
				break
			}
		}
		if _, ok := primaryByModel[m.Name]; !ok {
			primaryByModel[m.Name] = "id"
		}
	}

	var relations []airast.Relation
	for _, m := range models {
		for _, f := range m.Fields {
			target := f.Type
			if target.Kind == airast.TypeOptional && target.Elem != nil {
				target = *target.Elem
			}
			if target.Kind != airast.TypeRef {
				continue
			}
			to := primaryByModel[target.RefName]
			relations = append(relations, airast.Relation{
				From:     m.Name + "." + f.Name,
				To:       target.RefName + "." + to,
				OnDelete: airast.OnDeleteRestrict,
			})
		}
	}
	return relations
}
