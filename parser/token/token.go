// Copyright © 2025 The Whisker authors

// Package token defines the token kinds produced by the Whisker Script
// lexer.
package token

import (
	"fmt"

	"github.com/whiskertales/whisker/source"
)

// Token is a single lexeme with its covering source span.
type Token struct {
	Kind    Kind
	Literal string
	Span    source.Span
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}

// Kind classifies a token.
type Kind uint

const (
	ILLEGAL Kind = iota
	EOF

	// Layout
	NEWLINE
	INDENT
	COMMENT

	// Declarations and statement sigils
	METADATA // @@
	INCLUDE  // @include
	PASSAGE  // ::
	DIVERT   // ->
	CHOICE   // * at the start of a statement
	SET      // ~

	// Delimiters
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COLON
	COMMA
	ASSIGN

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	EQ
	NEQ
	LT
	GT
	LTE
	GTE

	// Keywords
	AND
	OR
	NOT
	AS
	ELSE
	TRUE
	FALSE

	// Literals and names
	IDENT
	VARIABLE
	STRING
	NUMBER
	TEXT

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		ILLEGAL:  "illegal",
		EOF:      "EOF",
		NEWLINE:  "newline",
		INDENT:   "indent",
		COMMENT:  "comment",
		METADATA: "@@",
		INCLUDE:  "@include",
		PASSAGE:  "::",
		DIVERT:   "->",
		CHOICE:   "*",
		SET:      "~",
		LBRACKET: "[",
		RBRACKET: "]",
		LPAREN:   "(",
		RPAREN:   ")",
		LBRACE:   "{",
		RBRACE:   "}",
		COLON:    ":",
		COMMA:    ",",
		ASSIGN:   "=",
		PLUS:     "+",
		MINUS:    "-",
		STAR:     "*",
		SLASH:    "/",
		EQ:       "==",
		NEQ:      "!=",
		LT:       "<",
		GT:       ">",
		LTE:      "<=",
		GTE:      ">=",
		AND:      "and",
		OR:       "or",
		NOT:      "not",
		AS:       "as",
		ELSE:     "else",
		TRUE:     "true",
		FALSE:    "false",
		IDENT:    "identifier",
		VARIABLE: "variable",
		STRING:   "string",
		NUMBER:   "number",
		TEXT:     "text",
	}
	if k >= numKinds {
		return kindStrings[ILLEGAL]
	}
	return kindStrings[k]
}

// Keyword returns the keyword kind for a scanned word, or IDENT when the
// word is not reserved.
func Keyword(word string) Kind {
	switch word {
	case "and":
		return AND
	case "or":
		return OR
	case "not":
		return NOT
	case "as":
		return AS
	case "else":
		return ELSE
	case "true":
		return TRUE
	case "false":
		return FALSE
	}
	return IDENT
}

// Structural reports whether k starts a declaration or statement, marking a
// safe point for parser error recovery.
func (k Kind) Structural() bool {
	switch k {
	case METADATA, INCLUDE, PASSAGE, DIVERT, CHOICE, SET, LBRACE:
		return true
	}
	return false
}
