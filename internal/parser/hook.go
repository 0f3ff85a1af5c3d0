package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parseHookBody parses `(name1, name2, ...)` for @hook.
func (p *parser) parseHookBody(closer lexer.Kind) (*airast.HookBlock, error) {
	hook := &airast.HookBlock{}
	for !p.at(closer) {
		nameTok, err := p.expect(lexer.Ident, "hook name")
		if err != nil {
			return nil, err
		}
		hook.Names = append(hook.Names, nameTok.Text)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return hook, nil
}
