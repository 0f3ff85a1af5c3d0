package parser

import (
	"strings"

	"github.com/airengine/airengine/internal/airast"
	"github.com/airengine/airengine/internal/diagnostics"
	"github.com/airengine/airengine/internal/lexer"
)

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// parseAPIBody parses comma-separated routes of the form
// `METHOD:/path>handler` or `CRUD:/path>~db.Model` for @api.
func (p *parser) parseAPIBody(closer lexer.Kind) (*airast.APIBlock, error) {
	var routes []airast.Route
	for !p.at(closer) {
		route, err := p.parseRoute()
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
		if p.at(lexer.Comma) {
			p.advance()
		}
	}
	return &airast.APIBlock{Routes: routes}, nil
}

func (p *parser) parseRoute() (airast.Route, error) {
	methodTok, err := p.expect(lexer.Ident, "HTTP method or CRUD")
	if err != nil {
		return airast.Route{}, err
	}
	if _, err := p.expect(lexer.Colon, ":"); err != nil {
		return airast.Route{}, err
	}
	pathTok, err := p.expect(lexer.Ident, "route path")
	if err != nil {
		return airast.Route{}, err
	}
	if !strings.HasPrefix(pathTok.Text, "/") {
		return airast.Route{}, parseErr(diagnostics.KindExpectedGot, pathTok.Line, pathTok.Col, pathTok.SourceLine,
			"expected a route path starting with /", "/path", pathTok.Text, "")
	}
	if err := p.expectOperator(">"); err != nil {
		return airast.Route{}, err
	}
	handler, err := p.parseHandlerRef()
	if err != nil {
		return airast.Route{}, err
	}

	kind := airast.RouteHTTP
	method := methodTok.Text
	if methodTok.Text == "CRUD" {
		kind = airast.RouteCRUD
		method = ""
	} else if !httpMethods[methodTok.Text] {
		return airast.Route{}, parseErr(diagnostics.KindExpectedGot, methodTok.Line, methodTok.Col, methodTok.SourceLine,
			"expected an HTTP method or CRUD", "GET|POST|PUT|PATCH|DELETE|CRUD", methodTok.Text, "")
	}

	return airast.Route{Kind: kind, Method: method, Path: pathTok.Text, Handler: handler, Line: methodTok.Line}, nil
}

func (p *parser) expectOperator(op string) error {
	if !p.at(lexer.Operator) || p.peek().Text != op {
		tok := p.peek()
		return parseErr(diagnostics.KindExpectedGot, tok.Line, tok.Col, tok.SourceLine,
			"expected "+op, op, tokenText(tok), "")
	}
	p.advance()
	return nil
}

// parseHandlerRef reads a handler reference such as `~db.Task.findMany`,
// reassembling the `.`-operator-separated identifier chain the lexer
// tokenized individually.
func (p *parser) parseHandlerRef() (string, error) {
	var sb strings.Builder
	if p.at(lexer.Operator) && p.peek().Text == string(airast.OpTilde) {
		sb.WriteString(p.advance().Text)
	}
	first, err := p.expect(lexer.Ident, "handler reference")
	if err != nil {
		return "", err
	}
	sb.WriteString(first.Text)
	for p.at(lexer.Operator) && p.peek().Text == "." {
		p.advance()
		sb.WriteString(".")
		part, err := p.expect(lexer.Ident, "handler path segment")
		if err != nil {
			return "", err
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
