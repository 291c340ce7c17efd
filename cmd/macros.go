// Copyright © 2025 The Whisker authors

package cmd

import (
	"fmt"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/whiskertales/whisker/macro/builtin"
)

// macroDocs describes the built-in macros for the listing.  Host-registered
// macros are not visible here; this command documents what ships with the
// toolkit.
var macroDocs = map[string]string{
	"print":      "Write the arguments to the active output buffer, separated by spaces.",
	"println":    "Like print, with a trailing newline.",
	"uppercase":  "Return the first argument converted to upper case. Pure, so engines may cache or re-evaluate it freely.",
	"set":        "Assign a value to a story variable in the base store: (set name value).",
	"get":        "Read a story variable, yielding nil when it is unset.",
	"goto":       "Record a navigation request to the named passage and raise the transitioning flag. The host engine performs the actual navigation.",
	"save":       "Request a host-side save of the listed variables into a slot. Async: the result arrives when the host completes the save.",
	"load":       "Request a host-side load from a slot. Async.",
	"play-audio": "Request audio playback of a track, with an optional volume. Async.",
}

// macrosCmd represents the macros command
var macrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "List the built-in macro set",
	Long: `List every macro the toolkit registers by default, grouped with its
category and execution traits:

  pure    No side effects; safe for the engine to re-evaluate
  async   The result depends on a host-completed operation

Example:
  whisker macros`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg := builtin.NewRegistry()
		for _, name := range reg.Names() {
			def, _ := reg.Get(name)
			traits := ""
			if def.Pure {
				traits += " [pure]"
			}
			if def.Async {
				traits += " [async]"
			}
			fmt.Printf("%s (%s)%s\n", name, def.Category, traits)
			if doc, ok := macroDocs[name]; ok {
				fmt.Println(indent.String(wordwrap.String(doc, 72), 2))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(macrosCmd)
}
