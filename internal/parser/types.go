package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/lexer"
)

var scalarKinds = map[string]airast.ScalarKind{
	"str":      airast.ScalarStr,
	"int":      airast.ScalarInt,
	"float":    airast.ScalarFloat,
	"bool":     airast.ScalarBool,
	"date":     airast.ScalarDate,
	"datetime": airast.ScalarDatetime,
}

// parseType parses a Type: a scalar keyword, `enum(v1,v2)`, `ref(Model)`,
// `[T]` for an array, or `{field:type,...}` for an inline object. A
// trailing `?` operator marks the type optional.
func (p *parser) parseType() (airast.Type, error) {
	var t airast.Type
	switch {
	case p.at(lexer.LBracket):
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return airast.Type{}, err
		}
		if _, err := p.expect(lexer.RBracket, "]"); err != nil {
			return airast.Type{}, err
		}
		t = airast.Type{Kind: airast.TypeArray, Elem: &elem}
	case p.at(lexer.LBrace):
		p.advance()
		fields, err := p.parseFieldList(lexer.RBrace)
		if err != nil {
			return airast.Type{}, err
		}
		if _, err := p.expect(lexer.RBrace, "}"); err != nil {
			return airast.Type{}, err
		}
		t = airast.Type{Kind: airast.TypeObject, Fields: fields}
	case p.at(lexer.Ident):
		nameTok := p.advance()
		switch nameTok.Text {
		case "enum":
			values, def, err := p.parseEnumArgs()
			if err != nil {
				return airast.Type{}, err
			}
			t = airast.Type{Kind: airast.TypeEnum, EnumValues: values, EnumDefault: def}
		case "ref":
			if _, err := p.expect(lexer.LParen, "("); err != nil {
				return airast.Type{}, err
			}
			refTok, err := p.expect(lexer.Ident, "referenced model name")
			if err != nil {
				return airast.Type{}, err
			}
			if _, err := p.expect(lexer.RParen, ")"); err != nil {
				return airast.Type{}, err
			}
			t = airast.Type{Kind: airast.TypeRef, RefName: refTok.Text}
		default:
			scalar, ok := scalarKinds[nameTok.Text]
			if !ok {
				return airast.Type{}, parseErr(diagnostics.KindInvalidType, nameTok.Line, nameTok.Col, nameTok.SourceLine,
					"invalid type \""+nameTok.Text+"\"", "", "", nameTok.Text)
			}
			t = airast.Type{Kind: airast.TypeScalar, Scalar: scalar}
		}
	default:
		tok := p.peek()
		return airast.Type{}, parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected a type", "type", tokenText(tok), "")
	}

	if p.at(lexer.Operator) && p.peek().Text == string(airast.OpQuestion) {
		p.advance()
		t = airast.Type{Kind: airast.TypeOptional, Elem: &t}
	}
	return t, nil
}

// parseEnumArgs parses `(v1,v2,...)` optionally followed by `:default(v)`
// consumed by the caller as a field modifier instead, so this only parses
// the value list.
func (p *parser) parseEnumArgs() ([]string, string, error) {
	if _, err := p.expect(lexer.LParen, "("); err != nil {
		return nil, "", err
	}
	var values []string
	for !p.at(lexer.RParen) {
		tok, err := p.expect(lexer.Ident, "enum value")
		if err != nil {
			return nil, "", err
		}
		values = append(values, tok.Text)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RParen, ")"); err != nil {
		return nil, "", err
	}
	return values, "", nil
}

// parseField parses `name:type[:modifier]*`, returning the base Field and
// any modifiers recognized so db.go can promote it to a DbField.
func (p *parser) parseField() (airast.Field, []fieldModifier, error) {
	nameTok, err := p.expect(lexer.Ident, "field name")
	if err != nil {
		return airast.Field{}, nil, err
	}
	if _, err := p.expect(lexer.Colon, ":"); err != nil {
		return airast.Field{}, nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return airast.Field{}, nil, err
	}

	field := airast.Field{Name: nameTok.Text, Type: typ}
	var mods []fieldModifier
	for p.at(lexer.Colon) {
		p.advance()
		mod, err := p.parseFieldModifier()
		if err != nil {
			return airast.Field{}, nil, err
		}
		if mod.name == "default" {
			field.Default = mod.value
		}
		mods = append(mods, mod)
	}
	return field, mods, nil
}

type fieldModifier struct {
	name  string
	value string
}

func (p *parser) parseFieldModifier() (fieldModifier, error) {
	nameTok, err := p.expect(lexer.Ident, "field modifier")
	if err != nil {
		return fieldModifier{}, err
	}
	if !p.at(lexer.LParen) {
		return fieldModifier{name: nameTok.Text}, nil
	}
	p.advance()
	value, err := p.parseLiteralText()
	if err != nil {
		return fieldModifier{}, err
	}
	if _, err := p.expect(lexer.RParen, ")"); err != nil {
		return fieldModifier{}, err
	}
	return fieldModifier{name: nameTok.Text, value: value}, nil
}

// parseLiteralText consumes a single literal token (ident, number, string,
// true, false) and returns its raw textual form.
func (p *parser) parseLiteralText() (string, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Ident, lexer.Number:
		p.advance()
		return tok.Text, nil
	case lexer.String:
		p.advance()
		return tok.Text, nil
	case lexer.True, lexer.False:
		p.advance()
		return tok.Text, nil
	default:
		return "", parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected a literal value", "literal", tokenText(tok), "")
	}
}

// parseFieldList parses comma-separated fields until closer, without
// consuming closer.
func (p *parser) parseFieldList(closer lexer.Kind) ([]airast.Field, error) {
	var fields []airast.Field
	for !p.at(closer) {
		field, _, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return fields, nil
}
