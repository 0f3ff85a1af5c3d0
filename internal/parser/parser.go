// Package parser implements a hand-written recursive descent parser over
// AIR source: a top-level `@app:name` directive followed by zero or more
// `@block(...)` or `@block{...}` forms. It either returns a fully-formed
// AST or fails with exactly one diagnostics.Diagnostic — never a partial
// tree (spec.md §4.2).
//
// The parser is organized one function per syntactic form, the same way
// the teacher's config loader dedicates one function per nested config
// section rather than a single monolithic decode.
package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/lexer"
)

// parseErr wraps a positioned syntax problem into a *diagnostics.ParseError
// so the single error the parser returns is directly convertible via
// diagnostics.WrapParseError.
func parseErr(kind diagnostics.ParseErrorKind, line, col int, sourceLine, message, expected, got, name string) error {
	return &diagnostics.ParseError{
		Kind:     kind,
		Pos:      diagnostics.SourcePos{Line: line, Col: col, SourceLine: sourceLine},
		Message:  message,
		Expected: expected,
		Got:      got,
		Name:     name,
	}
}

// parser holds cursor state over a pre-tokenized stream.
type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() lexer.Token  { return p.toks[p.pos] }
func (p *parser) at(k lexer.Kind) bool { return p.peek().Kind == k }

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// skipNewlines consumes any run of Newline tokens; Newlines are otherwise
// insignificant whitespace between top-level blocks.
func (p *parser) skipNewlines() {
	for p.at(lexer.Newline) {
		p.advance()
	}
}

func (p *parser) expect(k lexer.Kind, expected string) (lexer.Token, error) {
	if !p.at(k) {
		tok := p.peek()
		return lexer.Token{}, parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected "+expected+", got "+tokenText(tok), expected, tokenText(tok), "")
	}
	return p.advance(), nil
}

func tokenText(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "EOF"
	}
	if t.Text != "" {
		return t.Text
	}
	return "token"
}

// Parse lexes and parses src into a complete AST, or returns exactly one
// error convertible via diagnostics.WrapParseError.
func Parse(src string) (*airast.AirAST, error) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		le, ok := lexErr.(*lexer.Error)
		if !ok {
			return nil, parseErr(diagnostics.KindGeneric, 0, 0, "", lexErr.Error(), "", "", "")
		}
		kind := diagnostics.KindGeneric
		if le.Message == "unterminated string literal" {
			kind = diagnostics.KindUnterminatedString
		}
		return nil, parseErr(kind, le.Line, le.Col, le.SourceLine, le.Message, "", "", "")
	}

	p := &parser{toks: toks}
	p.skipNewlines()

	appName, err := p.parseAppDecl()
	if err != nil {
		return nil, err
	}

	ast := &airast.AirAST{App: airast.App{Name: appName}}
	p.skipNewlines()

	for !p.at(lexer.EOF) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ast.App.Blocks = append(ast.App.Blocks, block)
		p.skipNewlines()
	}

	return ast, nil
}

// parseAppDecl parses the mandatory leading `@app:name`. Its absence is the
// single "Missing @app" parse error the repair engine's deterministic rule
// specifically recognizes (spec.md §4.4).
func (p *parser) parseAppDecl() (string, error) {
	if !p.at(lexer.At) {
		tok := p.peek()
		return "", parseErr(diagnostics.KindGeneric, tok.Line, tok.Col, tok.SourceLine, "Missing @app declaration", "@app:name", tokenText(tok), "")
	}
	atTok := p.advance()

	ident, err := p.expect(lexer.Ident, "block name")
	if err != nil {
		return "", err
	}
	if ident.Text != "app" {
		return "", parseErr(diagnostics.KindGeneric, atTok.Line, atTok.Col, atTok.SourceLine, "Missing @app declaration", "@app:name", "@"+ident.Text, "")
	}
	if _, err := p.expect(lexer.Colon, ":"); err != nil {
		return "", err
	}
	nameTok, err := p.expect(lexer.Ident, "app name")
	if err != nil {
		return "", err
	}
	return nameTok.Text, nil
}

var knownBlocks = map[string]airast.BlockKind{
	"state":   airast.BlockState,
	"style":   airast.BlockStyle,
	"ui":      airast.BlockUI,
	"api":     airast.BlockAPI,
	"auth":    airast.BlockAuth,
	"nav":     airast.BlockNav,
	"persist": airast.BlockPersist,
	"hook":    airast.BlockHook,
	"db":      airast.BlockDB,
	"cron":    airast.BlockCron,
	"webhook": airast.BlockWebhook,
	"queue":   airast.BlockQueue,
	"email":   airast.BlockEmail,
	"env":     airast.BlockEnv,
	"deploy":  airast.BlockDeploy,
}

// parseBlock parses one `@kind(...)` or `@kind{...}` top-level form.
func (p *parser) parseBlock() (airast.Block, error) {
	atTok, err := p.expect(lexer.At, "@")
	if err != nil {
		return airast.Block{}, err
	}
	nameTok, err := p.expect(lexer.Ident, "block name")
	if err != nil {
		return airast.Block{}, err
	}
	kind, ok := knownBlocks[nameTok.Text]
	if !ok {
		return airast.Block{}, parseErr(diagnostics.KindUnknownBlock, atTok.Line, atTok.Col, atTok.SourceLine,
			"unknown block @"+nameTok.Text, "", "", "@"+nameTok.Text)
	}

	var opener, closer lexer.Kind
	switch {
	case p.at(lexer.LParen):
		opener, closer = lexer.LParen, lexer.RParen
	case p.at(lexer.LBrace):
		opener, closer = lexer.LBrace, lexer.RBrace
	default:
		tok := p.peek()
		return airast.Block{}, parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected ( or { after @"+nameTok.Text, "( or {", tokenText(tok), "")
	}
	if _, err := p.expect(opener, string(rune(opener))); err != nil {
		return airast.Block{}, err
	}

	block := airast.Block{Kind: kind, Line: atTok.Line}
	var parseBodyErr error
	switch kind {
	case airast.BlockState:
		block.State, parseBodyErr = p.parseStateBody(closer)
	case airast.BlockStyle:
		block.Style, parseBodyErr = p.parseStyleBody(closer)
	case airast.BlockUI:
		block.UI, parseBodyErr = p.parseUIBody(closer)
	case airast.BlockAPI:
		block.API, parseBodyErr = p.parseAPIBody(closer)
	case airast.BlockAuth:
		block.Auth, parseBodyErr = p.parseAuthBody(closer)
	case airast.BlockNav:
		block.Nav, parseBodyErr = p.parseNavBody(closer)
	case airast.BlockPersist:
		block.Persist, parseBodyErr = p.parsePersistBody(closer)
	case airast.BlockHook:
		block.Hook, parseBodyErr = p.parseHookBody(closer)
	case airast.BlockDB:
		block.DB, parseBodyErr = p.parseDBBody(closer)
	case airast.BlockCron, airast.BlockWebhook, airast.BlockQueue, airast.BlockEmail, airast.BlockEnv, airast.BlockDeploy:
		items, err := p.parseListBody(closer)
		parseBodyErr = err
		list := &airast.ListBlock{Items: items}
		switch kind {
		case airast.BlockCron:
			block.Cron = list
		case airast.BlockWebhook:
			block.Webhook = list
		case airast.BlockQueue:
			block.Queue = list
		case airast.BlockEmail:
			block.Email = list
		case airast.BlockEnv:
			block.Env = list
		case airast.BlockDeploy:
			block.Deploy = list
		}
	}
	if parseBodyErr != nil {
		return airast.Block{}, parseBodyErr
	}

	if _, err := p.expect(closer, string(rune(closer))); err != nil {
		return airast.Block{}, err
	}
	return block, nil
}
