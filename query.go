// ═══════════════════════════════════════════════════════════════════════════════
// QUERY LANGUAGE: LEXER AND PARSER
// ═══════════════════════════════════════════════════════════════════════════════
// Queries are boolean expressions over terms:
//
//	expr    = and_expr ("OR" and_expr)*
//	and     = unary    ("AND" unary)*
//	unary   = "NOT" unary | primary
//	primary = TERM | "(" expr ")"
//
// Precedence NOT > AND > OR, left-associative. Operators are recognized
// case-insensitively ("and", "And", "AND" all work — the fold also covers
// Cyrillic, so operator detection and term folding share one code path).
// A leading "-" is shorthand for NOT.
//
// TERM tokens carry the ORIGINAL text; folding happens at evaluation time so
// the AST can be printed back for error messages.
// ═══════════════════════════════════════════════════════════════════════════════

package ir

import (
	"errors"
	"fmt"
)

// ErrParse marks any query syntax error. Compare with errors.Is.
var ErrParse = errors.New("query parse error")

type tokKind int

const (
	tokTerm tokKind = iota
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokEnd
)

type queryToken struct {
	kind tokKind
	text string
}

// lexQuery splits a query string into tokens. A word is a maximal run of
// non-space, non-paren characters; '-' standing alone is NOT.
func lexQuery(q string) []queryToken {
	var out []queryToken
	i := 0
	for i < len(q) {
		for i < len(q) && isQuerySpace(q[i]) {
			i++
		}
		if i >= len(q) {
			break
		}
		switch q[i] {
		case '(':
			out = append(out, queryToken{tokLParen, "("})
			i++
			continue
		case ')':
			out = append(out, queryToken{tokRParen, ")"})
			i++
			continue
		case '-':
			out = append(out, queryToken{tokNot, "-"})
			i++
			continue
		}
		j := i
		for j < len(q) && !isQuerySpace(q[j]) && q[j] != '(' && q[j] != ')' {
			j++
		}
		word := q[i:j]
		switch Fold(word) {
		case "and":
			out = append(out, queryToken{tokAnd, word})
		case "or":
			out = append(out, queryToken{tokOr, word})
		case "not":
			out = append(out, queryToken{tokNot, word})
		default:
			out = append(out, queryToken{tokTerm, word})
		}
		i = j
	}
	return append(out, queryToken{tokEnd, ""})
}

func isQuerySpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Node kinds of the query AST.
type NodeKind int

const (
	NodeTerm NodeKind = iota
	NodeAnd
	NodeOr
	NodeNot
)

// Node is one query AST node. Term is set for NodeTerm; A (and B for binary
// operators) for the rest.
type Node struct {
	Kind NodeKind
	Term string
	A, B *Node
}

// parser is a recursive-descent parser over the lexed token stream.
type parser struct {
	toks []queryToken
	pos  int
}

func (p *parser) cur() queryToken { return p.toks[p.pos] }

// ParseQuery compiles a query string into an AST. Trailing tokens after a
// complete expression are a parse error.
func ParseQuery(q string) (*Node, error) {
	p := &parser{toks: lexQuery(q)}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEnd {
		return nil, fmt.Errorf("%w: trailing tokens near %q", ErrParse, p.cur().text)
	}
	return n, nil
}

func (p *parser) parseExpr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokOr {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeOr, A: left, B: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokAnd {
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeAnd, A: left, B: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (*Node, error) {
	if p.cur().kind == tokNot {
		p.pos++
		a, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeNot, A: a}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*Node, error) {
	switch p.cur().kind {
	case tokTerm:
		n := &Node{Kind: NodeTerm, Term: p.cur().text}
		p.pos++
		return n, nil
	case tokLParen:
		p.pos++
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' near %q", ErrParse, p.cur().text)
		}
		p.pos++
		return n, nil
	}
	return nil, fmt.Errorf("%w: expected term or '(' near %q", ErrParse, p.cur().text)
}
