// Copyright © 2025 The Whisker authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/whiskertales/whisker/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Whisker Script scratchpad",
	Long: `Start an interactive scratchpad for Whisker Script.

Lines accumulate until an empty line submits them as one chunk; the
chunk is parsed and its shape and diagnostics are printed back. Line
editing and in-session history are supported via readline. Use Ctrl-D
or :quit to exit.

Example session:
  whisker> :: Start
  ....... >     You wake up in a cold room.
  ....... >
  parsed: 0 metadata, 0 includes, 1 passages
  whisker> :tokens
  token dump on`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
