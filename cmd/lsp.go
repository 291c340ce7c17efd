// Copyright © 2025 The Whisker authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/whiskertales/whisker/lsp"
)

var (
	lspStdio bool
	lspPort  int
)

// lspCmd represents the lsp command
var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the Whisker Language Server Protocol server",
	Long: `Start an LSP server for Whisker Script files.

The server publishes parse diagnostics for open documents as they are
edited and saved.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  whisker lsp                        Start with stdio transport
  whisker lsp --stdio                Same as above (explicit)
  whisker lsp --port 7998            Start with TCP on port 7998

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "whisker lsp --stdio" for .ws files.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		srv := lsp.New()

		if !lspStdio && lspPort > 0 {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("Whisker LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		} else {
			if err := srv.RunStdio(); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)

	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
}
