package parser

import (
	"unicode/utf8"

	"github.com/airengine/airengine/internal/lexer"
)

// parseListBody parses a plain, comma-separated list of declared items for
// the six block kinds that carry no further structure of their own
// (cron/webhook/queue/email/env/deploy; spec.md §3). Each item is read as
// raw text up to the next top-level comma, so items may themselves contain
// nested parens (e.g. a cron schedule expression or a webhook URL with a
// query string).
func (p *parser) parseListBody(closer lexer.Kind) ([]string, error) {
	var items []string
	for !p.at(closer) {
		item, err := p.parseRawItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return items, nil
}

// parseRawItem reads tokens up to the next depth-0 comma or closing
// delimiter, reconstructing their source text with light spacing rules:
// tokens adjacent in the source are joined directly, and one space stands
// wherever the source separates two tokens on the same line.
func (p *parser) parseRawItem() (string, error) {
	var sb []byte
	var prev lexer.Token
	started := false
	depth := 0
	for {
		tok := p.peek()
		if depth == 0 && (tok.Kind == lexer.Comma || tok.Kind == lexer.RParen || tok.Kind == lexer.RBrace || tok.Kind == lexer.RBracket || tok.Kind == lexer.EOF) {
			break
		}
		switch tok.Kind {
		case lexer.LParen, lexer.LBrace, lexer.LBracket:
			depth++
		case lexer.RParen, lexer.RBrace, lexer.RBracket:
			depth--
		}
		p.advance()
		if started && tok.Line == prev.Line && tok.Col > tokenEndCol(prev) {
			sb = append(sb, ' ')
		}
		prev, started = tok, true
		switch tok.Kind {
		case lexer.String:
			sb = append(sb, '"')
			sb = append(sb, tok.Text...)
			sb = append(sb, '"')
		default:
			sb = append(sb, tok.Text...)
		}
	}
	return string(sb), nil
}

// tokenEndCol returns the column just past tok on its source line.
func tokenEndCol(tok lexer.Token) int {
	n := utf8.RuneCountInString(tok.Text)
	if tok.Kind == lexer.String {
		n += 2
	}
	return tok.Col + n
}
