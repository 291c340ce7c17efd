// Copyright © 2025 The Whisker authors

package diagnostic

import (
	"fmt"
	"regexp"
	"strings"
)

// Code is a stable, stage-namespaced identifier for a diagnostic.  The
// namespace is the text before the first colon: "lexer", "parser",
// "semantic", or "generator".  Codes are keys into the message table and
// form part of the tooling contract; they must never be renamed.
type Code string

// Lexer codes.
const (
	LexUnexpectedChar      Code = "lexer:unexpected-character"
	LexUnterminatedString  Code = "lexer:unterminated-string"
	LexInvalidNumber       Code = "lexer:invalid-number"
	LexInvalidEscape       Code = "lexer:invalid-escape"
	LexUnexpectedEOF       Code = "lexer:unexpected-eof"
	LexInvalidVariableName Code = "lexer:invalid-variable-name"
	LexTooManyErrors       Code = "lexer:too-many-errors"
)

// Parser codes.
const (
	ParseExpectedPassage      Code = "parser:expected-passage"
	ParseExpectedIdentifier   Code = "parser:expected-identifier"
	ParseExpectedExpression   Code = "parser:expected-expression"
	ParseExpectedStatement    Code = "parser:expected-statement"
	ParseExpectedNewline      Code = "parser:expected-newline"
	ParseExpectedCondition    Code = "parser:expected-condition"
	ParseExpectedDivertTarget Code = "parser:expected-divert-target"
	ParseExpectedChoiceText   Code = "parser:expected-choice-text"
	ParseUnexpectedToken      Code = "parser:unexpected-token"
	ParseUnexpectedIndent     Code = "parser:unexpected-indent"
	ParseInvalidAssignTarget  Code = "parser:invalid-assignment-target"
	ParseTooManyErrors        Code = "parser:too-many-errors"
)

// Semantic codes.  These are reserved for an analysis pass layered on top of
// the parser; nothing in this module produces them.
const (
	SemaUndefinedPassage   Code = "semantic:undefined-passage"
	SemaUndefinedVariable  Code = "semantic:undefined-variable"
	SemaUndefinedFunction  Code = "semantic:undefined-function"
	SemaDuplicatePassage   Code = "semantic:duplicate-passage"
	SemaDuplicateVariable  Code = "semantic:duplicate-variable"
	SemaUninitializedVar   Code = "semantic:uninitialized-variable"
	SemaWrongArgumentCount Code = "semantic:wrong-argument-count"
	SemaTunnelReturnMisuse Code = "semantic:tunnel-return-misuse"
	SemaUnreachablePassage Code = "semantic:unreachable-passage"
	SemaUnusedVariable     Code = "semantic:unused-variable"
)

// Generator codes, reserved for export tooling.
const (
	GenUnsupportedNode Code = "generator:unsupported-node"
)

// Stage returns the namespace prefix of c ("lexer", "parser", ...).
func (c Code) Stage() string {
	if i := strings.IndexByte(string(c), ':'); i >= 0 {
		return string(c)[:i]
	}
	return string(c)
}

// Entry describes one row of the message table.
type Entry struct {
	Severity   Severity
	Template   string
	Suggestion string
}

// unknownEntry is the degraded entry returned for codes missing from the
// table so that formatting never fails.
var unknownEntry = Entry{
	Severity: SeverityError,
	Template: "unknown error",
}

// codeTable is the single source of truth for diagnostic messages and
// suggestions.  It is never mutated after initialization.
var codeTable = map[Code]Entry{
	LexUnexpectedChar: {
		Severity:   SeverityError,
		Template:   "unexpected character %1",
		Suggestion: "remove the character or check for a typo in the surrounding text",
	},
	LexUnterminatedString: {
		Severity:   SeverityError,
		Template:   "unterminated string literal",
		Suggestion: "close the string with a double quote before the end of the line",
	},
	LexInvalidNumber: {
		Severity:   SeverityError,
		Template:   "malformed number %1",
		Suggestion: "numbers look like 12 or 3.5",
	},
	LexInvalidEscape: {
		Severity:   SeverityError,
		Template:   "invalid escape sequence %1",
		Suggestion: `supported escapes are \n, \t, \", and \\`,
	},
	LexUnexpectedEOF: {
		Severity: SeverityError,
		Template: "unexpected end of input",
	},
	LexInvalidVariableName: {
		Severity:   SeverityError,
		Template:   "invalid variable name after $",
		Suggestion: "variable names start with a letter or underscore, like $health",
	},
	LexTooManyErrors: {
		Severity:   SeverityError,
		Template:   "too many lexer errors; giving up after %1",
		Suggestion: "fix the reported problems and run again",
	},

	ParseExpectedPassage: {
		Severity:   SeverityError,
		Template:   "expected a passage declaration, found %1",
		Suggestion: "passages are declared as ':: Name'",
	},
	ParseExpectedIdentifier: {
		Severity: SeverityError,
		Template: "expected an identifier, found %1",
	},
	ParseExpectedExpression: {
		Severity: SeverityError,
		Template: "expected an expression, found %1",
	},
	ParseExpectedStatement: {
		Severity: SeverityError,
		Template: "expected a statement, found %1",
	},
	ParseExpectedNewline: {
		Severity: SeverityError,
		Template: "expected end of line, found %1",
	},
	ParseExpectedCondition: {
		Severity:   SeverityError,
		Template:   "expected a condition after '{'",
		Suggestion: "conditions look like '{ $gold > 10 }'",
	},
	ParseExpectedDivertTarget: {
		Severity:   SeverityError,
		Template:   "expected a passage name after '->'",
		Suggestion: "diverts name the destination passage, like '-> Cellar'",
	},
	ParseExpectedChoiceText: {
		Severity:   SeverityError,
		Template:   "expected choice text after '*'",
		Suggestion: "choices look like '* Open the door -> Cellar'",
	},
	ParseUnexpectedToken: {
		Severity: SeverityError,
		Template: "unexpected %1",
	},
	ParseUnexpectedIndent: {
		Severity:   SeverityError,
		Template:   "unexpected indentation",
		Suggestion: "only passage bodies are indented",
	},
	ParseInvalidAssignTarget: {
		Severity:   SeverityError,
		Template:   "cannot assign to %1",
		Suggestion: "assignment targets must be variables, like '~ $gold = 10'",
	},
	ParseTooManyErrors: {
		Severity:   SeverityError,
		Template:   "too many parser errors; further errors suppressed after %1",
		Suggestion: "fix the reported problems and run again",
	},

	SemaUndefinedPassage: {
		Severity:   SeverityError,
		Template:   "divert to undefined passage %1",
		Suggestion: "declare the passage with ':: %1' or fix the divert target",
	},
	SemaUndefinedVariable: {
		Severity: SeverityError,
		Template: "variable %1 is never set",
	},
	SemaUndefinedFunction: {
		Severity: SeverityError,
		Template: "call to undefined macro %1",
	},
	SemaDuplicatePassage: {
		Severity:   SeverityError,
		Template:   "passage %1 is declared more than once",
		Suggestion: "rename one of the passages",
	},
	SemaDuplicateVariable: {
		Severity: SeverityWarning,
		Template: "variable %1 is declared more than once",
	},
	SemaUninitializedVar: {
		Severity: SeverityWarning,
		Template: "variable %1 may be read before it is set",
	},
	SemaWrongArgumentCount: {
		Severity: SeverityError,
		Template: "macro %1 expects %2 arguments, got %3",
	},
	SemaTunnelReturnMisuse: {
		Severity: SeverityError,
		Template: "tunnel return outside of a tunnel",
	},
	SemaUnreachablePassage: {
		Severity: SeverityHint,
		Template: "passage %1 is unreachable",
	},
	SemaUnusedVariable: {
		Severity: SeverityHint,
		Template: "variable %1 is set but never read",
	},

	GenUnsupportedNode: {
		Severity: SeverityError,
		Template: "cannot generate output for %1",
	},
}

// Lookup returns the table entry for code.  Unknown codes degrade to a
// generic unknown-error entry instead of failing.
func Lookup(code Code) Entry {
	if e, ok := codeTable[code]; ok {
		return e
	}
	return unknownEntry
}

var placeholderPattern = regexp.MustCompile(`%[1-9]`)

// expand substitutes positional placeholders %1, %2, ... in template and
// strips any placeholders without a matching argument.
func expand(template string, args []interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(ph string) string {
		n := int(ph[1] - '0')
		if n > len(args) {
			return ""
		}
		return fmt.Sprint(args[n-1])
	})
}
