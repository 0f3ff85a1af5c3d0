package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parseAuthBody parses `(required, role:admin)` for @auth. Both arguments
// are optional and may appear in either order.
func (p *parser) parseAuthBody(closer lexer.Kind) (*airast.AuthBlock, error) {
	auth := &airast.AuthBlock{}
	for !p.at(closer) {
		nameTok, err := p.expect(lexer.Ident, "auth argument")
		if err != nil {
			return nil, err
		}
		switch nameTok.Text {
		case "required":
			auth.Required = true
		case "role":
			if _, err := p.expect(lexer.Colon, ":"); err != nil {
				return nil, err
			}
			valueTok, err := p.expect(lexer.Ident, "role name")
			if err != nil {
				return nil, err
			}
			auth.Role = valueTok.Text
		}
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return auth, nil
}
