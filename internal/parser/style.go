package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/lexer"
)

// parseStyleBody parses `{selector{prop:value,...}, ...}` for @style.
// A selector is a run of operator-prefixed or bare identifiers (e.g. `h1`,
// `.card`, `#root`) read verbatim up to the opening brace.
func (p *parser) parseStyleBody(closer lexer.Kind) (*airast.StyleBlock, error) {
	var rules []airast.StyleRule
	for !p.at(closer) {
		selector, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LBrace, "{"); err != nil {
			return nil, err
		}
		props := map[string]string{}
		var order []string
		for !p.at(lexer.RBrace) {
			nameTok, err := p.expect(lexer.Ident, "style property")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.Colon, ":"); err != nil {
				return nil, err
			}
			value, err := p.parseStyleValue()
			if err != nil {
				return nil, err
			}
			if _, ok := props[nameTok.Text]; !ok {
				order = append(order, nameTok.Text)
			}
			props[nameTok.Text] = value
			if p.at(lexer.Comma) {
				p.advance()
			}
		}
		if _, err := p.expect(lexer.RBrace, "}"); err != nil {
			return nil, err
		}
		rules = append(rules, airast.StyleRule{Selector: selector, Props: props, PropOrder: order})
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return &airast.StyleBlock{Rules: rules}, nil
}

func (p *parser) parseSelector() (string, error) {
	var sb []byte
	for {
		switch {
		case p.at(lexer.Operator) && (p.peek().Text == "." || p.peek().Text == "#"):
			sb = append(sb, p.advance().Text...)
		case p.at(lexer.Ident):
			sb = append(sb, p.advance().Text...)
		default:
			if len(sb) == 0 {
				tok := p.peek()
				return "", parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
					"expected a style selector", "selector", tokenText(tok), "")
			}
			return string(sb), nil
		}
		if !p.at(lexer.LBrace) {
			continue
		}
		return string(sb), nil
	}
}

// parseStyleValue reads a CSS value as a run of tokens (idents, numbers,
// operators like `-`) up to the next comma or closing brace. Tokens adjacent
// in the source are joined with no separator and one space stands wherever
// the source separates them on the same line — CSS values such as `10px`,
// `sans-serif` or `1px solid` don't fit the literal grammar used elsewhere.
func (p *parser) parseStyleValue() (string, error) {
	var sb []byte
	var prev lexer.Token
	for !p.at(lexer.Comma) && !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		tok := p.advance()
		if len(sb) > 0 && tok.Line == prev.Line && tok.Col > tokenEndCol(prev) {
			sb = append(sb, ' ')
		}
		sb = append(sb, tok.Text...)
		prev = tok
	}
	if len(sb) == 0 {
		tok := p.peek()
		return "", parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected a style value", "value", tokenText(tok), "")
	}
	return string(sb), nil
}
