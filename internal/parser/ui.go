package parser

import (
	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/lexer"
)

var uiBinaryOps = map[string]bool{
	">": true, "+": true, ":": true, "?": true, "*": true,
}

var uiUnaryOps = map[string]bool{
	"!": true, "#": true, "~": true, "^": true, "$": true, "-": true,
}

// parseUIBody parses the comma-separated top-level expressions of @ui(...),
// e.g. `@ui(h1>"Todo")` or `@ui(@page:home(...), @page:about(...))`.
func (p *parser) parseUIBody(closer lexer.Kind) (*airast.UIBlock, error) {
	children, err := p.parseUIExprList(closer)
	if err != nil {
		return nil, err
	}
	return &airast.UIBlock{Children: children}, nil
}

func (p *parser) parseUIExprList(closer lexer.Kind) ([]airast.UINode, error) {
	var nodes []airast.UINode
	for !p.at(closer) {
		node, err := p.parseUIExpr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return nodes, nil
}

// parseUIExpr parses a chain of terms joined by the left-associative
// binary operators `> + : ? *`, per spec.md §3's UI mini-expression
// language.
func (p *parser) parseUIExpr() (airast.UINode, error) {
	left, err := p.parseUITerm()
	if err != nil {
		return airast.UINode{}, err
	}
	for p.at(lexer.Operator) && uiBinaryOps[p.peek().Text] {
		opTok := p.advance()
		right, err := p.parseUITerm()
		if err != nil {
			return airast.UINode{}, err
		}
		l, r := left, right
		left = airast.UINode{
			Kind: airast.UIBinary, Line: opTok.Line,
			BinaryOp: airast.UIOperator(opTok.Text), Left: &l, Right: &r,
		}
	}
	return left, nil
}

func (p *parser) parseUITerm() (airast.UINode, error) {
	tok := p.peek()
	switch {
	case tok.Kind == lexer.Operator && uiUnaryOps[tok.Text]:
		p.advance()
		operand, err := p.parseUITerm()
		if err != nil {
			return airast.UINode{}, err
		}
		return airast.UINode{Kind: airast.UIUnary, Line: tok.Line, UnaryOp: airast.UIOperator(tok.Text), UnaryOperand: &operand}, nil

	case tok.Kind == lexer.String:
		p.advance()
		return airast.UINode{Kind: airast.UIText, Line: tok.Line, Text: tok.Text}, nil

	case tok.Kind == lexer.Number || tok.Kind == lexer.True || tok.Kind == lexer.False:
		p.advance()
		return airast.UINode{Kind: airast.UIValue, Line: tok.Line, Value: tok.Text}, nil

	case tok.Kind == lexer.At:
		return p.parseScopedNode()

	case tok.Kind == lexer.LParen:
		p.advance()
		inner, err := p.parseUIExpr()
		if err != nil {
			return airast.UINode{}, err
		}
		if _, err := p.expect(lexer.RParen, ")"); err != nil {
			return airast.UINode{}, err
		}
		return inner, nil

	case tok.Kind == lexer.Ident:
		return p.parseElementOrCall()

	default:
		return airast.UINode{}, parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected a UI expression", "UI expression", tokenText(tok), "")
	}
}

func (p *parser) parseScopedNode() (airast.UINode, error) {
	atTok, err := p.expect(lexer.At, "@")
	if err != nil {
		return airast.UINode{}, err
	}
	kindTok, err := p.expect(lexer.Ident, "page or section")
	if err != nil {
		return airast.UINode{}, err
	}
	var scopeKind airast.ScopeKind
	switch kindTok.Text {
	case "page":
		scopeKind = airast.ScopePage
	case "section":
		scopeKind = airast.ScopeSection
	default:
		return airast.UINode{}, parseErr(diagnostics.KindExpectedGot, kindTok.Line, kindTok.Col, kindTok.SourceLine,
			"expected page or section", "page|section", kindTok.Text, "")
	}
	if _, err := p.expect(lexer.Colon, ":"); err != nil {
		return airast.UINode{}, err
	}
	nameTok, err := p.expect(lexer.Ident, "scoped node name")
	if err != nil {
		return airast.UINode{}, err
	}

	var children []airast.UINode
	if p.at(lexer.LParen) {
		p.advance()
		children, err = p.parseUIExprList(lexer.RParen)
		if err != nil {
			return airast.UINode{}, err
		}
		if _, err := p.expect(lexer.RParen, ")"); err != nil {
			return airast.UINode{}, err
		}
	}
	return airast.UINode{
		Kind: airast.UIScoped, Line: atTok.Line,
		ScopeKind: scopeKind, ScopeName: nameTok.Text, ScopeChildren: children,
	}, nil
}

// parseElementOrCall parses a bare element name (`h1`) or a call-style
// element/component with a parenthesized child list (`DataTable(...)`).
func (p *parser) parseElementOrCall() (airast.UINode, error) {
	nameTok, err := p.expect(lexer.Ident, "element name")
	if err != nil {
		return airast.UINode{}, err
	}
	node := airast.UINode{Kind: airast.UIElement, Line: nameTok.Line, ElementName: nameTok.Text}
	if p.at(lexer.LParen) {
		p.advance()
		children, err := p.parseUIExprList(lexer.RParen)
		if err != nil {
			return airast.UINode{}, err
		}
		if _, err := p.expect(lexer.RParen, ")"); err != nil {
			return airast.UINode{}, err
		}
		node.ElementChildren = children
	}
	return node, nil
}
