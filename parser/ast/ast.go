// Copyright © 2025 The Whisker authors

// Package ast defines the syntax tree produced by the Whisker Script
// parser.  Downstream consumers (renderers, converters, exporters) walk the
// tree through the Stmt and Expr interfaces and must treat statement kinds
// they do not recognize as pass-through no-ops, since the grammar is
// expected to grow.
package ast

import "github.com/whiskertales/whisker/source"

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Script is the root of a parsed source stream.  Declaration order within
// each list matches source order.
type Script struct {
	Metadata []*MetadataDecl
	Includes []*IncludeDecl
	Passages []*Passage
	SrcSpan  source.Span
}

func (s *Script) Span() source.Span { return s.SrcSpan }

// ValueKind discriminates metadata and tag values by their literal form.
type ValueKind int

const (
	StringValue ValueKind = iota
	NumberValue
	BooleanValue
	IdentValue
	ListValue
)

// Value is a typed metadata or tag value.
type Value struct {
	Kind    ValueKind
	Str     string  // StringValue and IdentValue
	Num     float64 // NumberValue
	Bool    bool    // BooleanValue
	List    []Value // ListValue
	SrcSpan source.Span
}

func (v Value) Span() source.Span { return v.SrcSpan }

// MetadataDecl is a '@@ key: value' declaration.
type MetadataDecl struct {
	Key     string
	Value   Value
	SrcSpan source.Span
}

func (d *MetadataDecl) Span() source.Span { return d.SrcSpan }

// IncludeDecl is an '@include "path" [as alias]' declaration.
type IncludeDecl struct {
	Path    string
	Alias   string // empty when no alias was given
	SrcSpan source.Span
}

func (d *IncludeDecl) Span() source.Span { return d.SrcSpan }

// Tag is one entry of a passage's bracketed tag list.  Value is nil for a
// bare tag.
type Tag struct {
	Name    string
	Value   *Value
	SrcSpan source.Span
}

func (t Tag) Span() source.Span { return t.SrcSpan }

// Passage is a named unit of narrative content.  Duplicate passage names
// are representable; rejecting them is a semantic-analysis concern outside
// the parser.
type Passage struct {
	Name    string
	Tags    []Tag
	Body    []Stmt
	SrcSpan source.Span
}

func (p *Passage) Span() source.Span { return p.SrcSpan }

// Stmt is a passage-body statement.
type Stmt interface {
	Node
	stmtNode()
}

// TextStmt is a line of narrative text.
type TextStmt struct {
	Text    string
	SrcSpan source.Span
}

// DivertStmt is an unconditional jump to another passage.
type DivertStmt struct {
	Target  string
	SrcSpan source.Span
}

// ChoiceStmt offers the reader an option; Target is empty when the choice
// has no inline divert.
type ChoiceStmt struct {
	Text    string
	Target  string
	SrcSpan source.Span
}

// CondStmt guards a statement with a condition.  Else is nil unless an
// '{ else }' arm follows.
type CondStmt struct {
	Cond    Expr
	Then    Stmt
	Else    Stmt
	SrcSpan source.Span
}

// SetStmt assigns the value of an expression to a variable.
type SetStmt struct {
	Name    string // variable name without the '$' sigil
	Value   Expr
	SrcSpan source.Span
}

// BadStmt is a placeholder covering tokens that could not be parsed as a
// statement.  It keeps the statement list positionally complete for
// editor tooling.
type BadStmt struct {
	SrcSpan source.Span
}

func (s *TextStmt) Span() source.Span   { return s.SrcSpan }
func (s *DivertStmt) Span() source.Span { return s.SrcSpan }
func (s *ChoiceStmt) Span() source.Span { return s.SrcSpan }
func (s *CondStmt) Span() source.Span   { return s.SrcSpan }
func (s *SetStmt) Span() source.Span    { return s.SrcSpan }
func (s *BadStmt) Span() source.Span    { return s.SrcSpan }

func (*TextStmt) stmtNode()   {}
func (*DivertStmt) stmtNode() {}
func (*ChoiceStmt) stmtNode() {}
func (*CondStmt) stmtNode()   {}
func (*SetStmt) stmtNode()    {}
func (*BadStmt) stmtNode()    {}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// StringLit is a quoted string literal.
type StringLit struct {
	Value   string
	SrcSpan source.Span
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value   float64
	SrcSpan source.Span
}

// BoolLit is a 'true' or 'false' literal.
type BoolLit struct {
	Value   bool
	SrcSpan source.Span
}

// Ident is a bare identifier.
type Ident struct {
	Name    string
	SrcSpan source.Span
}

// VarRef is a '$'-sigiled variable reference.
type VarRef struct {
	Name    string // without the sigil
	SrcSpan source.Span
}

// UnaryExpr is 'not x' or '-x'.
type UnaryExpr struct {
	Op      string
	X       Expr
	SrcSpan source.Span
}

// BinaryExpr is a binary operation; Op is the operator lexeme.
type BinaryExpr struct {
	Op      string
	X, Y    Expr
	SrcSpan source.Span
}

// BadExpr covers tokens that could not be parsed as an expression.
type BadExpr struct {
	SrcSpan source.Span
}

func (e *StringLit) Span() source.Span  { return e.SrcSpan }
func (e *NumberLit) Span() source.Span  { return e.SrcSpan }
func (e *BoolLit) Span() source.Span    { return e.SrcSpan }
func (e *Ident) Span() source.Span      { return e.SrcSpan }
func (e *VarRef) Span() source.Span     { return e.SrcSpan }
func (e *UnaryExpr) Span() source.Span  { return e.SrcSpan }
func (e *BinaryExpr) Span() source.Span { return e.SrcSpan }
func (e *BadExpr) Span() source.Span    { return e.SrcSpan }

func (*StringLit) exprNode()  {}
func (*NumberLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*Ident) exprNode()      {}
func (*VarRef) exprNode()     {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*BadExpr) exprNode()    {}
