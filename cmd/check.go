// Copyright © 2025 The Whisker authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser"
	"github.com/whiskertales/whisker/source"
)

var (
	checkFormat  string
	checkContext int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse Whisker scripts and report diagnostics",
	Long: `Parse one or more Whisker scripts and report every problem found.

Parsing recovers from errors, so a single run reports as many independent
problems as possible. The exit status is non-zero when any file has
errors; warnings and hints do not affect it.

Output formats:
  plain       One line per diagnostic with a caret-marked source excerpt
  annotated   Multi-line gutter output with context lines
  json        Structured diagnostics for editor/IDE tooling

Examples:
  whisker check story.ws
  whisker check --format annotated --context 3 story.ws
  whisker check -f json chapters/*.ws`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			rep, err := checkFile(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed = true
				continue
			}
			if rep.HasErrors() {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

// checkFile parses one script and renders its diagnostics to stdout.
func checkFile(path string) (*diagnostic.Reporter, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	rep := diagnostic.NewReporter(path)
	rep.AttachFile(source.NewFile(path, string(content)))
	parser.Parse(rep, string(content))

	r := &diagnostic.Renderer{Color: colorMode(), Context: checkContext}
	switch checkFormat {
	case "json":
		err = diagnostic.WriteJSON(os.Stdout, rep)
	case "annotated":
		err = r.AnnotatedAll(os.Stdout, rep)
	case "plain":
		err = r.PlainAll(os.Stdout, rep)
	default:
		return nil, fmt.Errorf("check: unknown format %q", checkFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	if checkFormat != "json" && rep.Len() > 0 {
		fmt.Printf("%s: %s\n", path, rep.Summary())
	}
	return rep, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "plain",
		`Diagnostic output format: "plain", "annotated", or "json".`)
	checkCmd.Flags().IntVar(&checkContext, "context", 2,
		"Context lines around each annotated diagnostic.")
}
