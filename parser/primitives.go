// Copyright © 2025 The Whisker authors

package parser

import (
	"fmt"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/token"
	"github.com/whiskertales/whisker/source"
)

// peek returns the token at the given offset from the current position
// without consuming it.  Past the end of the stream it returns the final
// EOF token, which may be requested any number of times.
func (p *Parser) peek(offset int) token.Token {
	i := p.index + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	tok := p.peek(0)
	if p.index < len(p.toks)-1 {
		p.index++
	}
	p.prev = tok
	return tok
}

// previous returns the last consumed token.
func (p *Parser) previous() token.Token {
	return p.prev
}

// check reports whether the current token has the given kind.
func (p *Parser) check(kind token.Kind) bool {
	return p.peek(0).Kind == kind
}

// checkAny reports whether the current token has any of the given kinds.
func (p *Parser) checkAny(kinds ...token.Kind) bool {
	cur := p.peek(0).Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// match consumes the current token if it has the given kind.
func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// matchAny consumes the current token if it has any of the given kinds.
func (p *Parser) matchAny(kinds ...token.Kind) bool {
	if !p.checkAny(kinds...) {
		return false
	}
	p.advance()
	return true
}

// expect consumes a token of the given kind or records a diagnostic with
// the supplied code at the offending token.
func (p *Parser) expect(kind token.Kind, code diagnostic.Code) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	tok := p.peek(0)
	p.errorAt(code, tok, describe(tok))
	return tok, false
}

// expectLineEnd consumes the end of the current line: an optional trailing
// comment, then a newline or EOF.  Anything else is an error followed by
// statement-level synchronization.
func (p *Parser) expectLineEnd() {
	p.match(token.COMMENT)
	if p.check(token.EOF) || p.match(token.NEWLINE) {
		return
	}
	tok := p.peek(0)
	p.errorAt(diagnostic.ParseExpectedNewline, tok, describe(tok))
	p.syncStatement()
}

// skipBlank consumes blank lines and full-line comments between top-level
// declarations.
func (p *Parser) skipBlank() {
	for p.matchAny(token.NEWLINE, token.COMMENT) {
	}
}

// errorAt records a diagnostic at tok and enters panic mode.  While in
// panic mode further diagnostics are suppressed until a synchronization
// point clears it, so one root error does not cascade.
func (p *Parser) errorAt(code diagnostic.Code, tok token.Token, args ...interface{}) {
	p.errorSpan(code, tok.Span, args...)
}

func (p *Parser) errorSpan(code diagnostic.Code, span source.Span, args ...interface{}) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	if p.suppressed {
		return
	}
	if p.errs >= p.maxErrors {
		p.rep.Reportf(diagnostic.ParseTooManyErrors, span.Start, p.maxErrors)
		p.suppressed = true
		return
	}
	p.errs++
	p.rep.ReportSpan(code, span, args...)
}

// syncStatement advances to the next statement boundary: a newline followed
// by a structural token, indentation, or a declaration; or EOF.  It clears
// panic mode.
func (p *Parser) syncStatement() {
	for !p.check(token.EOF) {
		if p.match(token.NEWLINE) {
			break
		}
		p.advance()
	}
	p.panicMode = false
}

// syncBlock advances to the next passage declaration (or EOF), skipping
// whole malformed blocks.  It clears panic mode.
func (p *Parser) syncBlock() {
	for !p.check(token.EOF) && !p.check(token.PASSAGE) {
		p.advance()
	}
	p.panicMode = false
}

// synchronize is the general fallback: advance until one of the safe kinds,
// or a newline directly followed by a structural token, or EOF.
func (p *Parser) synchronize(safe ...token.Kind) {
	for !p.check(token.EOF) {
		if p.checkAny(safe...) {
			break
		}
		if p.check(token.NEWLINE) && p.peek(1).Kind.Structural() {
			p.advance()
			break
		}
		p.advance()
	}
	p.panicMode = false
}

// pushContext records a named grammar context ("passage", "choice",
// "condition") for disambiguation during nested parses.
func (p *Parser) pushContext(name string) {
	p.contexts = append(p.contexts, name)
}

func (p *Parser) popContext() {
	if len(p.contexts) > 0 {
		p.contexts = p.contexts[:len(p.contexts)-1]
	}
}

// inContext reports whether the named context is anywhere on the stack.
func (p *Parser) inContext(name string) bool {
	for _, c := range p.contexts {
		if c == name {
			return true
		}
	}
	return false
}

// enterNesting bumps the nesting depth counter, reporting an error at tok
// when the configured bound is exceeded.
func (p *Parser) enterNesting(tok token.Token) bool {
	if p.nesting >= p.maxNesting {
		p.errorAt(diagnostic.ParseUnexpectedToken,
			tok, fmt.Sprintf("nesting deeper than %d levels", p.maxNesting))
		return false
	}
	p.nesting++
	return true
}

func (p *Parser) leaveNesting() {
	if p.nesting > 0 {
		p.nesting--
	}
}

// describe renders a token for use in diagnostics.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indentation"
	case token.TEXT, token.IDENT, token.STRING, token.NUMBER:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
	case token.VARIABLE:
		return fmt.Sprintf("variable $%s", tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}
