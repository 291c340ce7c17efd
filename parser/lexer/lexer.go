// Copyright © 2025 The Whisker authors

// Package lexer converts Whisker Script source text into a token stream.
//
// The lexer is line-oriented: a structural sigil at the start of a line
// (after indentation) selects structured scanning for the rest of the line,
// while any other line is narrative text and becomes a single TEXT token.
// Scanning is total — every character is covered by exactly one token or
// consumed as insignificant whitespace — and never fails: malformed input
// produces diagnostics through the attached reporter and scanning resumes at
// the next plausible boundary, up to a configured error cap.
package lexer

import (
	"strings"
	"unicode"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/token"
	"github.com/whiskertales/whisker/source"
)

// DefaultMaxErrors is the lexer error cap when none is configured.
const DefaultMaxErrors = 25

// Option configures a Lexer.
type Option func(*Lexer)

// WithMaxErrors caps the number of diagnostics the lexer reports before it
// emits a terminal too-many-errors diagnostic and stops.
func WithMaxErrors(n int) Option {
	return func(l *Lexer) { l.maxErrors = n }
}

// Lexer scans one source stream.
type Lexer struct {
	src       []rune
	index     int
	pos       source.Position
	rep       *diagnostic.Reporter
	tokens    []token.Token
	maxErrors int
	errs      int
	stopped   bool
}

// New returns a Lexer over src reporting diagnostics to rep.
func New(rep *diagnostic.Reporter, src string, opts ...Option) *Lexer {
	l := &Lexer{
		src:       []rune(src),
		pos:       source.StartPosition(),
		rep:       rep,
		maxErrors: DefaultMaxErrors,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Scan tokenizes the entire input and returns the token slice.  The result
// always ends with an EOF token whose span is empty; token spans are
// non-overlapping and non-decreasing in offset.
func Scan(rep *diagnostic.Reporter, src string, opts ...Option) []token.Token {
	return New(rep, src, opts...).Scan()
}

// Scan tokenizes the remaining input.
func (l *Lexer) Scan() []token.Token {
	for !l.eof() && !l.stopped {
		l.scanLine()
	}
	l.emitAt(token.EOF, l.pos, "")
	return l.tokens
}

// scanLine consumes one full line including its terminating newline.
func (l *Lexer) scanLine() {
	indentStart := l.pos
	indent := l.acceptRun(" \t")

	switch {
	case l.eof():
		return
	case l.cur() == '\n':
		// Blank line: the indentation is insignificant.
		l.scanNewline()
		return
	}
	if indent != "" {
		l.emitSpan(token.INDENT, indentStart, indent)
	}

	switch {
	case l.hasPrefix("//"):
		l.scanComment()
	case l.hasPrefix("::"):
		l.scanPassageHeader()
	case l.hasPrefix("@@"):
		start := l.pos
		l.advanceN(2)
		l.emitSpan(token.METADATA, start, "@@")
		l.scanStructured()
	case l.hasWordPrefix("@include"):
		start := l.pos
		l.advanceN(len("@include"))
		l.emitSpan(token.INCLUDE, start, "@include")
		l.scanStructured()
	default:
		l.scanStatement()
	}
	if l.stopped {
		return
	}
	if !l.eof() && l.cur() == '\n' {
		l.scanNewline()
	}
}

// scanStatement scans a passage-body statement after any indentation.  It
// loops so that an inline conditional guard can be followed by the statement
// it guards on the same line.
func (l *Lexer) scanStatement() {
	for !l.eof() && !l.stopped {
		l.skipSpaces()
		switch {
		case l.eof() || l.cur() == '\n':
			return
		case l.hasPrefix("//"):
			l.scanComment()
			return
		case l.hasPrefix("->"):
			start := l.pos
			l.advanceN(2)
			l.emitSpan(token.DIVERT, start, "->")
			l.scanName("")
			// Anything after a divert target is part of the name; the
			// line is done.
			return
		case l.cur() == '*':
			start := l.pos
			l.advance()
			l.emitSpan(token.CHOICE, start, "*")
			l.scanChoiceText()
		case l.cur() == '~':
			start := l.pos
			l.advance()
			l.emitSpan(token.SET, start, "~")
			l.scanStructured()
			return
		case l.cur() == '{':
			l.scanBraced()
		default:
			l.scanText()
			return
		}
	}
}

// scanPassageHeader scans ':: Name [tags]'.
func (l *Lexer) scanPassageHeader() {
	start := l.pos
	l.advanceN(2)
	l.emitSpan(token.PASSAGE, start, "::")
	l.scanName("[")
	l.skipSpaces()
	if !l.eof() && l.cur() == '[' {
		l.scanStructured()
	}
}

// scanChoiceText scans the text of a choice up to an optional '->' or the
// end of the line.
func (l *Lexer) scanChoiceText() {
	l.skipSpaces()
	start := l.pos
	end := l.pos
	var text []rune
	for !l.eof() && l.cur() != '\n' && !l.hasPrefix("->") {
		c := l.advance()
		text = append(text, c)
		if !unicode.IsSpace(c) {
			end = l.pos
		}
	}
	trimmed := strings.TrimRightFunc(string(text), unicode.IsSpace)
	if trimmed != "" {
		l.tokens = append(l.tokens, token.Token{
			Kind:    token.TEXT,
			Literal: trimmed,
			Span:    source.NewSpan(start, end),
		})
	}
}

// scanName scans a passage or divert name: free text running to the end of
// the line or to any rune in stop.  Names may contain spaces; surrounding
// whitespace is not part of the name.  Nothing is emitted for an empty
// name — the parser reports the missing token.
func (l *Lexer) scanName(stop string) {
	l.skipSpaces()
	start := l.pos
	end := l.pos
	var text []rune
	for !l.eof() && l.cur() != '\n' && !strings.ContainsRune(stop, l.cur()) {
		c := l.advance()
		text = append(text, c)
		if !unicode.IsSpace(c) {
			end = l.pos
		}
	}
	trimmed := strings.TrimRightFunc(string(text), unicode.IsSpace)
	if trimmed != "" {
		l.tokens = append(l.tokens, token.Token{
			Kind:    token.IDENT,
			Literal: trimmed,
			Span:    source.NewSpan(start, end),
		})
	}
}

// scanBraced scans a brace-delimited condition '{ ... }' with structured
// tokens, tracking nesting so an unbalanced brace does not consume the rest
// of the file.
func (l *Lexer) scanBraced() {
	depth := 0
	for !l.eof() && !l.stopped && l.cur() != '\n' {
		l.skipSpaces()
		if l.eof() || l.cur() == '\n' {
			return
		}
		switch l.cur() {
		case '{':
			depth++
		case '}':
			depth--
		}
		if !l.scanStructuredToken() {
			continue
		}
		if depth == 0 {
			return
		}
	}
}

// scanStructured scans structured tokens to the end of the line.
func (l *Lexer) scanStructured() {
	for !l.eof() && !l.stopped && l.cur() != '\n' {
		l.skipSpaces()
		if l.eof() || l.cur() == '\n' {
			return
		}
		if l.hasPrefix("//") {
			l.scanComment()
			return
		}
		l.scanStructuredToken()
	}
}

// scanStructuredToken scans a single operator, literal, variable, or word.
// It reports unrecognized characters and consumes them.  The return value
// is false when nothing was emitted.
func (l *Lexer) scanStructuredToken() bool {
	start := l.pos
	c := l.cur()
	switch {
	case c == '"':
		l.scanString()
		return true
	case c >= '0' && c <= '9':
		l.scanNumber()
		return true
	case c == '$':
		l.scanVariable()
		return true
	case isWordStart(c):
		word := l.acceptWhile(isWord)
		l.emitSpan(token.Keyword(word), start, word)
		return true
	}

	type op struct {
		text string
		kind token.Kind
	}
	// Longest match first.
	ops := []op{
		{"->", token.DIVERT},
		{"==", token.EQ},
		{"!=", token.NEQ},
		{"<=", token.LTE},
		{">=", token.GTE},
		{"<", token.LT},
		{">", token.GT},
		{"=", token.ASSIGN},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"*", token.STAR},
		{"/", token.SLASH},
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"[", token.LBRACKET},
		{"]", token.RBRACKET},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
		{":", token.COLON},
		{",", token.COMMA},
	}
	for _, o := range ops {
		if l.hasPrefix(o.text) {
			l.advanceN(len(o.text))
			l.emitSpan(o.kind, start, o.text)
			return true
		}
	}

	l.advance()
	l.lexError(diagnostic.LexUnexpectedChar, source.NewSpan(start, l.pos), quoteRune(c))
	return false
}

// scanString scans a double-quoted string literal with escape sequences.
// The emitted literal is the decoded value without quotes.
func (l *Lexer) scanString() {
	start := l.pos
	l.advance() // opening quote
	var value []rune
	for {
		if l.eof() || l.cur() == '\n' {
			l.lexError(diagnostic.LexUnterminatedString, source.NewSpan(start, l.pos))
			l.emitSpan(token.ILLEGAL, start, string(value))
			return
		}
		c := l.advance()
		if c == '"' {
			break
		}
		if c != '\\' {
			value = append(value, c)
			continue
		}
		if l.eof() || l.cur() == '\n' {
			l.lexError(diagnostic.LexUnterminatedString, source.NewSpan(start, l.pos))
			l.emitSpan(token.ILLEGAL, start, string(value))
			return
		}
		escStart := l.pos
		e := l.advance()
		switch e {
		case 'n':
			value = append(value, '\n')
		case 't':
			value = append(value, '\t')
		case '"':
			value = append(value, '"')
		case '\\':
			value = append(value, '\\')
		default:
			l.lexError(diagnostic.LexInvalidEscape, source.NewSpan(escStart, l.pos), `\`+string(e))
			value = append(value, e)
		}
	}
	l.emitSpan(token.STRING, start, string(value))
}

// scanNumber scans an integer or decimal literal.
func (l *Lexer) scanNumber() {
	start := l.pos
	text := l.acceptWhile(isDigit)
	if !l.eof() && l.cur() == '.' {
		l.advance()
		frac := l.acceptWhile(isDigit)
		if frac == "" {
			l.lexError(diagnostic.LexInvalidNumber, source.NewSpan(start, l.pos), text+".")
			l.emitSpan(token.NUMBER, start, text)
			return
		}
		text += "." + frac
	}
	l.emitSpan(token.NUMBER, start, text)
}

// scanVariable scans a '$'-sigiled variable reference.  The sigil requires
// an identifier-start character immediately after it.
func (l *Lexer) scanVariable() {
	start := l.pos
	l.advance() // '$'
	if l.eof() || !isWordStart(l.cur()) {
		l.lexError(diagnostic.LexInvalidVariableName, source.NewSpan(start, l.pos))
		l.emitSpan(token.ILLEGAL, start, "$")
		return
	}
	name := l.acceptWhile(isWord)
	l.emitSpan(token.VARIABLE, start, name)
}

// scanText scans a narrative text line as a single TEXT token.
func (l *Lexer) scanText() {
	start := l.pos
	end := l.pos
	var text []rune
	for !l.eof() && l.cur() != '\n' {
		c := l.advance()
		text = append(text, c)
		if !unicode.IsSpace(c) {
			end = l.pos
		}
	}
	trimmed := strings.TrimRightFunc(string(text), unicode.IsSpace)
	if trimmed == "" {
		return
	}
	l.tokens = append(l.tokens, token.Token{
		Kind:    token.TEXT,
		Literal: trimmed,
		Span:    source.NewSpan(start, end),
	})
}

// scanComment scans a '//' comment to the end of the line.
func (l *Lexer) scanComment() {
	start := l.pos
	var text []rune
	for !l.eof() && l.cur() != '\n' {
		text = append(text, l.advance())
	}
	l.emitSpan(token.COMMENT, start, string(text))
}

func (l *Lexer) scanNewline() {
	start := l.pos
	l.advance()
	l.emitSpan(token.NEWLINE, start, "\n")
}

// lexError reports a diagnostic unless the error cap is reached, in which
// case a terminal too-many-errors diagnostic is reported and scanning stops.
func (l *Lexer) lexError(code diagnostic.Code, span source.Span, args ...interface{}) {
	if l.stopped {
		return
	}
	if l.errs >= l.maxErrors {
		l.rep.Reportf(diagnostic.LexTooManyErrors, span.Start, l.maxErrors)
		l.stopped = true
		return
	}
	l.errs++
	l.rep.ReportSpan(code, span, args...)
}

func (l *Lexer) emitSpan(kind token.Kind, start source.Position, literal string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Literal: literal,
		Span:    source.NewSpan(start, l.pos),
	})
}

func (l *Lexer) emitAt(kind token.Kind, pos source.Position, literal string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Literal: literal,
		Span:    source.PointSpan(pos),
	})
}

func (l *Lexer) cur() rune {
	if l.eof() {
		return 0
	}
	return l.src[l.index]
}

func (l *Lexer) eof() bool {
	return l.index >= len(l.src)
}

func (l *Lexer) advance() rune {
	c := l.src[l.index]
	l.index++
	l.pos = l.pos.Advance(c)
	return c
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.eof(); i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.index+len(s) > len(l.src) {
		return false
	}
	return string(l.src[l.index:l.index+len(s)]) == s
}

// hasWordPrefix reports whether the input continues with s followed by a
// non-word boundary.
func (l *Lexer) hasWordPrefix(s string) bool {
	if !l.hasPrefix(s) {
		return false
	}
	rest := l.index + len(s)
	return rest >= len(l.src) || !isWord(l.src[rest])
}

func (l *Lexer) skipSpaces() {
	for !l.eof() && (l.cur() == ' ' || l.cur() == '\t') {
		l.advance()
	}
}

func (l *Lexer) acceptRun(set string) string {
	var out []rune
	for !l.eof() && strings.ContainsRune(set, l.cur()) {
		out = append(out, l.advance())
	}
	return string(out)
}

func (l *Lexer) acceptWhile(pred func(rune) bool) string {
	var out []rune
	for !l.eof() && pred(l.cur()) {
		out = append(out, l.advance())
	}
	return string(out)
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func quoteRune(c rune) string {
	return "'" + string(c) + "'"
}
