// Copyright © 2025 The Whisker authors

// Package parser implements a recursive-descent parser for Whisker Script.
//
// The parser never fails fatally on malformed input: it records a
// diagnostic, enters panic mode to suppress cascading noise, synchronizes at
// the next safe token, and keeps going.  The result is always a best-effort
// *ast.Script plus whatever diagnostics accumulated, so editors and linters
// can surface multiple independent problems in a single pass.
package parser

import (
	"strconv"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/ast"
	"github.com/whiskertales/whisker/parser/lexer"
	"github.com/whiskertales/whisker/parser/token"
	"github.com/whiskertales/whisker/source"
)

const (
	// DefaultMaxErrors caps recorded parser diagnostics.  Parsing continues
	// past the cap; recording does not.
	DefaultMaxErrors = 50

	// DefaultMaxNesting bounds expression and list nesting depth.
	DefaultMaxNesting = 64
)

// Option configures a Parser.
type Option func(*Parser)

// WithMaxErrors caps the number of recorded diagnostics.
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = n }
}

// WithMaxNesting bounds expression nesting depth.
func WithMaxNesting(n int) Option {
	return func(p *Parser) { p.maxNesting = n }
}

// Parser consumes a token stream and produces an AST.
type Parser struct {
	toks  []token.Token
	index int
	prev  token.Token
	rep   *diagnostic.Reporter

	panicMode  bool
	errs       int
	maxErrors  int
	suppressed bool

	contexts   []string
	nesting    int
	maxNesting int
}

// New returns a Parser over toks reporting diagnostics to rep.  The token
// slice must be EOF-terminated, as produced by the lexer.
func New(rep *diagnostic.Reporter, toks []token.Token, opts ...Option) *Parser {
	p := &Parser{
		toks:       toks,
		rep:        rep,
		maxErrors:  DefaultMaxErrors,
		maxNesting: DefaultMaxNesting,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse lexes and parses src in one step.
func Parse(rep *diagnostic.Reporter, src string, opts ...Option) *ast.Script {
	toks := lexer.Scan(rep, src)
	return New(rep, toks, opts...).ParseScript()
}

// ParseScript parses the whole token stream.
func (p *Parser) ParseScript() *ast.Script {
	script := &ast.Script{}
	start := p.peek(0).Span.Start

	for {
		p.skipBlank()
		tok := p.peek(0)
		switch tok.Kind {
		case token.EOF:
			script.SrcSpan = source.NewSpan(start, tok.Span.End)
			return script
		case token.METADATA:
			if d := p.parseMetadata(); d != nil {
				script.Metadata = append(script.Metadata, d)
			}
		case token.INCLUDE:
			if d := p.parseInclude(); d != nil {
				script.Includes = append(script.Includes, d)
			}
		case token.PASSAGE:
			if d := p.parsePassage(); d != nil {
				script.Passages = append(script.Passages, d)
			}
		case token.INDENT:
			p.errorAt(diagnostic.ParseUnexpectedIndent, tok)
			p.advance()
			p.syncStatement()
		default:
			p.errorAt(diagnostic.ParseExpectedPassage, tok, describe(tok))
			p.syncBlock()
		}
	}
}

// parseMetadata parses '@@ key: value'.
func (p *Parser) parseMetadata() *ast.MetadataDecl {
	at := p.advance() // '@@'
	key, ok := p.expect(token.IDENT, diagnostic.ParseExpectedIdentifier)
	if !ok {
		p.syncStatement()
		return nil
	}
	if _, ok := p.expect(token.COLON, diagnostic.ParseUnexpectedToken); !ok {
		p.syncStatement()
		return nil
	}
	value, ok := p.parseValue()
	if !ok {
		p.syncStatement()
		return nil
	}
	end := p.prev.Span.End
	p.expectLineEnd()
	return &ast.MetadataDecl{
		Key:     key.Literal,
		Value:   value,
		SrcSpan: source.NewSpan(at.Span.Start, end),
	}
}

// parseValue parses a typed literal value: quoted string, number, boolean
// keyword, bare identifier, or bracketed list.
func (p *Parser) parseValue() (ast.Value, bool) {
	tok := p.peek(0)
	switch tok.Kind {
	case token.STRING:
		p.advance()
		return ast.Value{Kind: ast.StringValue, Str: tok.Literal, SrcSpan: tok.Span}, true
	case token.NUMBER:
		p.advance()
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorAt(diagnostic.ParseExpectedExpression, tok, describe(tok))
			return ast.Value{}, false
		}
		return ast.Value{Kind: ast.NumberValue, Num: n, SrcSpan: tok.Span}, true
	case token.TRUE, token.FALSE:
		p.advance()
		return ast.Value{Kind: ast.BooleanValue, Bool: tok.Kind == token.TRUE, SrcSpan: tok.Span}, true
	case token.IDENT:
		p.advance()
		return ast.Value{Kind: ast.IdentValue, Str: tok.Literal, SrcSpan: tok.Span}, true
	case token.LBRACKET:
		return p.parseListValue()
	default:
		p.errorAt(diagnostic.ParseExpectedExpression, tok, describe(tok))
		return ast.Value{}, false
	}
}

func (p *Parser) parseListValue() (ast.Value, bool) {
	open := p.advance() // '['
	if !p.enterNesting(open) {
		return ast.Value{}, false
	}
	defer p.leaveNesting()

	list := ast.Value{Kind: ast.ListValue}
	for {
		if p.check(token.RBRACKET) {
			break
		}
		elem, ok := p.parseValue()
		if !ok {
			return ast.Value{}, false
		}
		list.List = append(list.List, elem)
		if !p.match(token.COMMA) {
			break
		}
	}
	closing, ok := p.expect(token.RBRACKET, diagnostic.ParseUnexpectedToken)
	if !ok {
		return ast.Value{}, false
	}
	list.SrcSpan = source.NewSpan(open.Span.Start, closing.Span.End)
	return list, true
}

// parseInclude parses '@include "path" [as alias]'.
func (p *Parser) parseInclude() *ast.IncludeDecl {
	at := p.advance() // '@include'
	path, ok := p.expect(token.STRING, diagnostic.ParseExpectedExpression)
	if !ok {
		p.syncStatement()
		return nil
	}
	decl := &ast.IncludeDecl{Path: path.Literal}
	end := path.Span.End
	if p.match(token.AS) {
		alias, ok := p.expect(token.IDENT, diagnostic.ParseExpectedIdentifier)
		if !ok {
			p.syncStatement()
			return nil
		}
		decl.Alias = alias.Literal
		end = alias.Span.End
	}
	decl.SrcSpan = source.NewSpan(at.Span.Start, end)
	p.expectLineEnd()
	return decl
}

// parsePassage parses ':: Name [tags]' and its indented body.
func (p *Parser) parsePassage() *ast.Passage {
	at := p.advance() // '::'
	p.pushContext("passage")
	defer p.popContext()

	name, ok := p.expect(token.IDENT, diagnostic.ParseExpectedIdentifier)
	if !ok {
		p.syncStatement()
		return nil
	}
	passage := &ast.Passage{Name: name.Literal}
	end := name.Span.End

	if p.check(token.LBRACKET) {
		tags, tagEnd, ok := p.parseTagList()
		if ok {
			passage.Tags = tags
			end = tagEnd
		}
	}
	p.expectLineEnd()

	passage.Body = p.parseBody()
	if n := len(passage.Body); n > 0 {
		end = passage.Body[n-1].Span().End
	}
	passage.SrcSpan = source.NewSpan(at.Span.Start, end)
	return passage
}

func (p *Parser) parseTagList() ([]ast.Tag, source.Position, bool) {
	open := p.advance() // '['
	var tags []ast.Tag
	for {
		if p.check(token.RBRACKET) {
			break
		}
		name, ok := p.expect(token.IDENT, diagnostic.ParseExpectedIdentifier)
		if !ok {
			p.syncStatement()
			return nil, open.Span.End, false
		}
		tag := ast.Tag{Name: name.Literal, SrcSpan: name.Span}
		if p.match(token.COLON) {
			value, ok := p.parseValue()
			if !ok {
				p.syncStatement()
				return nil, open.Span.End, false
			}
			tag.Value = &value
			tag.SrcSpan = tag.SrcSpan.Merge(value.SrcSpan)
		}
		tags = append(tags, tag)
		if !p.match(token.COMMA) {
			break
		}
	}
	closing, ok := p.expect(token.RBRACKET, diagnostic.ParseUnexpectedToken)
	if !ok {
		p.syncStatement()
		return nil, open.Span.End, false
	}
	return tags, closing.Span.End, true
}

// parseBody parses the indented statements under a passage header.  A
// following CondStmt's '{ else }' arm is attached to its conditional.
func (p *Parser) parseBody() []ast.Stmt {
	var body []ast.Stmt
	for {
		switch p.peek(0).Kind {
		case token.NEWLINE, token.COMMENT:
			p.advance()
			continue
		case token.INDENT:
			p.advance()
			if p.check(token.COMMENT) {
				p.advance()
				continue
			}
			if p.isElseArm() {
				if stmt := p.parseElseArm(body); stmt != nil {
					body = append(body, stmt)
				}
				continue
			}
			if stmt := p.parseStatement(); stmt != nil {
				body = append(body, stmt)
			}
		default:
			return body
		}
	}
}

// isElseArm reports whether the upcoming tokens are '{ else }'.
func (p *Parser) isElseArm() bool {
	return p.check(token.LBRACE) && p.peek(1).Kind == token.ELSE
}

// parseElseArm parses '{ else } stmt' and attaches the guarded statement to
// the preceding conditional when one exists.
func (p *Parser) parseElseArm(body []ast.Stmt) ast.Stmt {
	open := p.advance() // '{'
	p.advance()         // 'else'
	if _, ok := p.expect(token.RBRACE, diagnostic.ParseUnexpectedToken); !ok {
		p.syncStatement()
		return nil
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	if n := len(body); n > 0 {
		if cond, ok := body[n-1].(*ast.CondStmt); ok && cond.Else == nil {
			cond.Else = stmt
			cond.SrcSpan = cond.SrcSpan.Merge(stmt.Span())
			return nil
		}
	}
	// An else with no conditional to hang off of.
	p.errorSpan(diagnostic.ParseUnexpectedToken, open.Span, "'else'")
	return stmt
}

// parseStatement parses a single passage-body statement.
func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek(0)
	switch tok.Kind {
	case token.TEXT:
		p.advance()
		return &ast.TextStmt{Text: tok.Literal, SrcSpan: tok.Span}
	case token.DIVERT:
		return p.parseDivert()
	case token.CHOICE:
		return p.parseChoice()
	case token.LBRACE:
		return p.parseConditional()
	case token.SET:
		return p.parseSet()
	default:
		p.errorAt(diagnostic.ParseExpectedStatement, tok, describe(tok))
		bad := &ast.BadStmt{SrcSpan: tok.Span}
		p.syncStatement()
		return bad
	}
}

func (p *Parser) parseDivert() ast.Stmt {
	at := p.advance() // '->'
	target, ok := p.expect(token.IDENT, diagnostic.ParseExpectedDivertTarget)
	if !ok {
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: at.Span}
	}
	stmt := &ast.DivertStmt{
		Target:  target.Literal,
		SrcSpan: source.NewSpan(at.Span.Start, target.Span.End),
	}
	p.expectLineEnd()
	return stmt
}

func (p *Parser) parseChoice() ast.Stmt {
	at := p.advance() // '*'
	p.pushContext("choice")
	defer p.popContext()

	text, ok := p.expect(token.TEXT, diagnostic.ParseExpectedChoiceText)
	if !ok {
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: at.Span}
	}
	stmt := &ast.ChoiceStmt{
		Text:    text.Literal,
		SrcSpan: source.NewSpan(at.Span.Start, text.Span.End),
	}
	if p.match(token.DIVERT) {
		target, ok := p.expect(token.IDENT, diagnostic.ParseExpectedDivertTarget)
		if !ok {
			p.syncStatement()
			return stmt
		}
		stmt.Target = target.Literal
		stmt.SrcSpan = source.NewSpan(at.Span.Start, target.Span.End)
	}
	p.expectLineEnd()
	return stmt
}

func (p *Parser) parseConditional() ast.Stmt {
	open := p.advance() // '{'
	p.pushContext("condition")

	if p.check(token.RBRACE) {
		p.errorAt(diagnostic.ParseExpectedCondition, p.peek(0))
		p.popContext()
		p.advance()
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: open.Span}
	}
	cond := p.parseExpression()
	if _, ok := p.expect(token.RBRACE, diagnostic.ParseUnexpectedToken); !ok {
		p.popContext()
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: open.Span}
	}
	p.popContext()

	if p.check(token.NEWLINE) || p.check(token.EOF) {
		p.errorAt(diagnostic.ParseExpectedStatement, p.peek(0), describe(p.peek(0)))
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: source.NewSpan(open.Span.Start, p.prev.Span.End)}
	}
	then := p.parseStatement()
	stmt := &ast.CondStmt{
		Cond:    cond,
		Then:    then,
		SrcSpan: source.NewSpan(open.Span.Start, p.prev.Span.End),
	}
	return stmt
}

func (p *Parser) parseSet() ast.Stmt {
	at := p.advance() // '~'
	target := p.peek(0)
	if target.Kind != token.VARIABLE {
		p.errorAt(diagnostic.ParseInvalidAssignTarget, target, describe(target))
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: at.Span}
	}
	p.advance()
	if _, ok := p.expect(token.ASSIGN, diagnostic.ParseUnexpectedToken); !ok {
		p.syncStatement()
		return &ast.BadStmt{SrcSpan: at.Span}
	}
	value := p.parseExpression()
	stmt := &ast.SetStmt{
		Name:    target.Literal,
		Value:   value,
		SrcSpan: source.NewSpan(at.Span.Start, p.prev.Span.End),
	}
	p.expectLineEnd()
	return stmt
}
