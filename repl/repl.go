// Copyright © 2025 The Whisker authors

// Package repl implements an interactive scratchpad for Whisker Script.
// Submitted chunks are parsed, and the resulting tokens, script shape,
// and diagnostics are printed back.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser"
	"github.com/whiskertales/whisker/parser/lexer"
	"github.com/whiskertales/whisker/source"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures the REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// session holds the REPL's accumulation and display state.
type session struct {
	out        io.Writer
	buffer     []string
	showTokens bool
	colorMode  diagnostic.ColorMode
}

// RunRepl runs the interactive scratchpad until EOF or :quit.
func RunRepl(prompt string, opts ...Option) {
	cfg := newConfig(opts...)
	out := io.Writer(os.Stderr)
	if cfg.stderr != nil {
		out = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	if cfg.stderr != nil {
		rlCfg.Stdout = cfg.stderr
		rlCfg.Stderr = cfg.stderr
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		fmt.Fprintln(out, err) //nolint:errcheck // best-effort error display
		return
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	s := &session{out: out, colorMode: diagnostic.ColorAuto}
	cont := strings.Repeat(".", len(prompt)-1) + " "
	for {
		if len(s.buffer) > 0 {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			s.buffer = nil
			continue
		}
		if err != nil {
			s.submit()
			return
		}
		if quit := s.handleLine(line); quit {
			return
		}
	}
}

// handleLine feeds one input line to the session and reports whether the
// REPL should exit.
func (s *session) handleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	if trimmed == "" {
		s.submit()
		return false
	}
	s.buffer = append(s.buffer, line)
	return false
}

// command executes a colon-prefixed REPL command.
func (s *session) command(cmd string) bool {
	switch cmd {
	case ":quit", ":exit", ":q":
		return true
	case ":tokens":
		s.showTokens = !s.showTokens
		if s.showTokens {
			fmt.Fprintln(s.out, "token dump on") //nolint:errcheck
		} else {
			fmt.Fprintln(s.out, "token dump off") //nolint:errcheck
		}
	case ":reset":
		s.buffer = nil
		fmt.Fprintln(s.out, "input buffer cleared") //nolint:errcheck
	case ":help":
		fmt.Fprint(s.out, helpText) //nolint:errcheck
	default:
		fmt.Fprintf(s.out, "unknown command %s (:help lists commands)\n", cmd) //nolint:errcheck
	}
	return false
}

const helpText = `Enter Whisker Script; an empty line parses the buffered input.
  :tokens   toggle token dumps
  :reset    discard buffered input
  :quit     leave the scratchpad
`

// submit parses the buffered chunk and prints the outcome.
func (s *session) submit() {
	if len(s.buffer) == 0 {
		return
	}
	src := strings.Join(s.buffer, "\n") + "\n"
	s.buffer = nil

	rep := diagnostic.NewReporter("repl")
	rep.AttachFile(source.NewFile("repl", src))

	if s.showTokens {
		for _, tok := range lexer.Scan(diagnostic.NewReporter("repl"), src) {
			fmt.Fprintf(s.out, "%10s %q %s\n", tok.Kind, tok.Literal, tok.Span.Start) //nolint:errcheck
		}
	}

	script := parser.Parse(rep, src)
	if rep.Len() > 0 {
		r := &diagnostic.Renderer{Color: s.colorMode}
		_ = r.PlainAll(s.out, rep)
		fmt.Fprintln(s.out, rep.Summary()) //nolint:errcheck
	}
	fmt.Fprintf(s.out, "parsed: %d metadata, %d includes, %d passages\n", //nolint:errcheck
		len(script.Metadata), len(script.Includes), len(script.Passages))
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whisker_history")
}

// ensureHistoryFilePermissions creates the history file with restricted
// permissions, tightening an existing file if needed.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600)
	if err == nil {
		f.Close() //nolint:errcheck,gosec // best-effort cleanup
	}
	_ = os.Chmod(path, 0600)
}
