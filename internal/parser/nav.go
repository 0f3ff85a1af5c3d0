package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parseNavBody parses `(path:target, path:target:fallback, ...)` for @nav.
func (p *parser) parseNavBody(closer lexer.Kind) (*airast.NavBlock, error) {
	var routes []airast.NavRoute
	for !p.at(closer) {
		pathTok, err := p.expect(lexer.Ident, "nav path")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, ":"); err != nil {
			return nil, err
		}
		targetTok, err := p.expect(lexer.Ident, "nav target")
		if err != nil {
			return nil, err
		}
		route := airast.NavRoute{Path: pathTok.Text, Target: targetTok.Text}
		if p.at(lexer.Colon) {
			p.advance()
			fallbackTok, err := p.expect(lexer.Ident, "nav fallback")
			if err != nil {
				return nil, err
			}
			route.Fallback = fallbackTok.Text
		}
		routes = append(routes, route)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return &airast.NavBlock{Routes: routes}, nil
}
