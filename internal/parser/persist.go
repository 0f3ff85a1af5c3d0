package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parsePersistBody parses `(key1, key2, method:localStorage)` for
// @persist: a list of state keys to persist, plus an optional trailing
// `method:<name>` pair naming the storage method.
func (p *parser) parsePersistBody(closer lexer.Kind) (*airast.PersistBlock, error) {
	persist := &airast.PersistBlock{}
	for !p.at(closer) {
		nameTok, err := p.expect(lexer.Ident, "persist key or method")
		if err != nil {
			return nil, err
		}
		if nameTok.Text == "method" && p.at(lexer.Colon) {
			p.advance()
			methodTok, err := p.expect(lexer.Ident, "persist method")
			if err != nil {
				return nil, err
			}
			persist.Method = methodTok.Text
		} else {
			persist.Keys = append(persist.Keys, nameTok.Text)
		}
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	if persist.Method == "" {
		persist.Method = "localStorage"
	}
	return persist, nil
}
