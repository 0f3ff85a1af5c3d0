package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/lexer"
)

// parseStateBody parses `{field:type, field:type, ...}` for @state.
func (p *parser) parseStateBody(closer lexer.Kind) (*airast.StateBlock, error) {
	fields, err := p.parseFieldList(closer)
	if err != nil {
		return nil, err
	}
	return &airast.StateBlock{Fields: fields}, nil
}
