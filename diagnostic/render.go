// Copyright © 2025 The Whisker authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/whiskertales/whisker/source"
)

// Renderer formats diagnostics for terminal or log consumption.  The plain
// and annotated forms are human-oriented; the structured form lives in
// structured.go and is the machine contract.
type Renderer struct {
	// Color controls ANSI color output.  Default is ColorAuto.
	Color ColorMode

	// Context is the number of context lines shown before and after the
	// offending line in annotated output.  Default is 2.
	Context int
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.  This avoids checking every fmt.Fprintf return value.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

// Plain writes d as a single-line header, an inline caret-underlined excerpt
// when the reporter has a source file attached, and the suggestion if the
// code table defines one.
func (r *Renderer) Plain(w io.Writer, rep *Reporter, d Diagnostic) error {
	p := newPalette(r.Color)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	ew.printf("%s:%s: %s: %s\n",
		rep.Path(), d.Pos,
		p.sev(d.Severity).Sprintf("%s[%s]", d.Severity, d.Code),
		p.bold.Sprint(d.Message))

	if f := rep.File(); f != nil {
		if line, ok := f.Line(d.Pos.Line); ok {
			display := expandTabs(line)
			ew.printf("    %s\n", display)
			ew.printf("    %s%s\n", strings.Repeat(" ", caretPad(d)), p.caret.Sprint(carets(d)))
		}
	}
	if d.Suggestion != "" {
		ew.printf("  %s %s\n", p.help.Sprint("suggestion:"), d.Suggestion)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// PlainAll writes every accumulated diagnostic in report order followed by
// the reporter's summary line.
func (r *Renderer) PlainAll(w io.Writer, rep *Reporter) error {
	for _, d := range rep.Diagnostics() {
		if err := r.Plain(w, rep, d); err != nil {
			return err
		}
	}
	if rep.Len() > 0 {
		if _, err := fmt.Fprintf(w, "%s\n", rep.Summary()); err != nil {
			return err
		}
	}
	return nil
}

// Annotated writes d with a multi-line gutter: context lines around the
// offending line and a caret span underneath it.
func (r *Renderer) Annotated(w io.Writer, rep *Reporter, d Diagnostic) error {
	p := newPalette(r.Color)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	ew.printf("%s: %s\n",
		p.sev(d.Severity).Sprintf("%s[%s]", d.Severity, d.Code),
		p.bold.Sprint(d.Message))
	ew.printf("  %s %s:%s\n", p.gutter.Sprint("-->"), rep.Path(), d.Pos)

	f := rep.File()
	if f == nil || f.LineCount() == 0 {
		ew.printf("   %s\n", p.gutter.Sprint("|"))
	} else {
		n := r.Context
		if n <= 0 {
			n = 2
		}
		window := f.Context(d.Pos, n)
		width := gutterWidth(window)
		pad := strings.Repeat(" ", width)

		ew.printf(" %s %s\n", pad, p.gutter.Sprint("|"))
		for _, line := range window {
			ew.printf(" %s %s %s\n",
				p.gutter.Sprintf("%*d", width, line.Number),
				p.gutter.Sprint("|"),
				expandTabs(line.Text))
			if line.Number == d.Pos.Line {
				ew.printf(" %s %s %s%s\n",
					pad, p.gutter.Sprint("|"),
					strings.Repeat(" ", caretPad(d)),
					p.caret.Sprint(carets(d)))
			}
		}
		ew.printf(" %s %s\n", pad, p.gutter.Sprint("|"))
	}
	if d.Suggestion != "" {
		ew.printf("   %s %s\n", p.help.Sprint("= help:"), d.Suggestion)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// AnnotatedAll writes all diagnostics in annotated form separated by blank
// lines.
func (r *Renderer) AnnotatedAll(w io.Writer, rep *Reporter) error {
	for i, d := range rep.Diagnostics() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Annotated(w, rep, d); err != nil {
			return err
		}
	}
	return nil
}

// gutterWidth returns the digit width of the widest line number shown.
func gutterWidth(window []source.ContextLine) int {
	width := 1
	for _, line := range window {
		if n := len(fmt.Sprint(line.Number)); n > width {
			width = n
		}
	}
	return width
}

func carets(d Diagnostic) string {
	n := d.Length
	if n < 1 {
		n = 1
	}
	return strings.Repeat("^", n)
}

func caretPad(d Diagnostic) int {
	if d.Pos.Column < 1 {
		return 0
	}
	return d.Pos.Column - 1
}

// expandTabs replaces tabs with spaces using the same 8-wide tab stops the
// lexer uses for column tracking, so caret columns line up.
func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var b strings.Builder
	col := 1
	for _, c := range line {
		if c == '\t' {
			next := ((col-1)/8+1)*8 + 1
			for col < next {
				b.WriteByte(' ')
				col++
			}
			continue
		}
		b.WriteRune(c)
		col++
	}
	return b.String()
}
