// Copyright © 2025 The Whisker authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/whiskertales/whisker/diagnostic"
	"github.com/whiskertales/whisker/parser/lexer"
	"github.com/whiskertales/whisker/source"
)

// tokensCmd represents the tokens command
var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a Whisker script",
	Long: `Scan a Whisker script and print one token per line with its kind,
literal value, and source position. Lexer diagnostics, if any, are
printed after the stream.

Example:
  whisker tokens story.ws`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		rep := diagnostic.NewReporter(path)
		rep.AttachFile(source.NewFile(path, string(content)))

		for _, tok := range lexer.Scan(rep, string(content)) {
			fmt.Printf("%-12s %-24q %s\n", tok.Kind, tok.Literal, tok.Span.Start)
		}
		if rep.Len() > 0 {
			r := &diagnostic.Renderer{Color: colorMode()}
			if err := r.PlainAll(os.Stderr, rep); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
