// Copyright © 2025 The Whisker authors

// Package story assembles a playable story model from a parsed script.
// Assembly performs no semantic validation; duplicate passage names and
// dangling divert targets pass through untouched for downstream tooling
// to judge.
package story

import "github.com/whiskertales/whisker/parser/ast"

// Story is the engine-facing view of a script.
type Story struct {
	// Title is the "title" metadata entry, when present.
	Title string

	// Metadata holds every metadata declaration, last declaration
	// winning on duplicate keys.
	Metadata map[string]interface{}

	// Includes lists include paths in declaration order.
	Includes []Include

	// Passages lists passages in declaration order, duplicates kept.
	Passages []*Passage
}

// Include is one resolved include declaration.
type Include struct {
	Path  string
	Alias string
}

// Passage is a named unit of narrative content.
type Passage struct {
	Name string
	Tags []Tag

	// Statements is the passage body.  Consumers must treat unknown
	// statement kinds as pass-through no-ops; the grammar grows.
	Statements []ast.Stmt
}

// Tag is a passage tag with an optional value (nil when bare).
type Tag struct {
	Name  string
	Value interface{}
}

// Choice is a selectable option extracted from a passage body.
type Choice struct {
	Text   string
	Target string
}

// FromScript assembles a Story from a parsed script.
func FromScript(script *ast.Script) *Story {
	s := &Story{Metadata: make(map[string]interface{})}
	for _, m := range script.Metadata {
		s.Metadata[m.Key] = valueOf(m.Value)
	}
	if title, ok := s.Metadata["title"].(string); ok {
		s.Title = title
	}
	for _, inc := range script.Includes {
		s.Includes = append(s.Includes, Include{Path: inc.Path, Alias: inc.Alias})
	}
	for _, p := range script.Passages {
		passage := &Passage{Name: p.Name, Statements: p.Body}
		for _, t := range p.Tags {
			tag := Tag{Name: t.Name}
			if t.Value != nil {
				tag.Value = valueOf(*t.Value)
			}
			passage.Tags = append(passage.Tags, tag)
		}
		s.Passages = append(s.Passages, passage)
	}
	return s
}

// Passage returns the first passage with the given name.
func (s *Story) Passage(name string) (*Passage, bool) {
	for _, p := range s.Passages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// HasTag reports whether the passage carries a tag with the given name.
func (p *Passage) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Choices extracts the selectable options from the passage body, in
// order.  Choices nested under conditionals are not descended into; the
// engine evaluates those at render time.
func (p *Passage) Choices() []Choice {
	var choices []Choice
	for _, stmt := range p.Statements {
		if c, ok := stmt.(*ast.ChoiceStmt); ok {
			choices = append(choices, Choice{Text: c.Text, Target: c.Target})
		}
	}
	return choices
}

// valueOf converts a parsed metadata or tag value to its Go
// representation.
func valueOf(v ast.Value) interface{} {
	switch v.Kind {
	case ast.StringValue, ast.IdentValue:
		return v.Str
	case ast.NumberValue:
		return v.Num
	case ast.BooleanValue:
		return v.Bool
	case ast.ListValue:
		out := make([]interface{}, len(v.List))
		for i, elem := range v.List {
			out[i] = valueOf(elem)
		}
		return out
	default:
		return nil
	}
}
