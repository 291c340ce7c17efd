// Copyright © 2025 The Whisker authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/whiskertales/whisker/diagnostic"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whisker",
	Short: "Whisker — interactive fiction scripting toolkit",
	Long: `Whisker is a toolkit for Whisker Script, the scripting language of the
Whisker interactive-fiction engine.

Getting started:
  whisker check story.ws       Parse a script and report diagnostics
  whisker check -f json *.ws   Machine-readable diagnostics for editors
  whisker tokens story.ws      Dump the token stream
  whisker macros               List the built-in macro set
  whisker repl                 Start an interactive scratchpad
  whisker lsp                  Start the language server

Script overview:
  A script is metadata, includes, and passages:
    @@ title: "My Story"
    @include "lib/common.ws" as common
    :: Start [important, priority: 1]
        You wake up in a cold room.
        * Take the sword -> Armory
        { $health > 0 } You fight on.
        ~ $gold = 5 + 2 * 3
        -> Hallway

  Passage bodies are indented. Text lines render as-is, '->' diverts to
  another passage, '*' offers a choice, '{ expr }' guards a statement,
  and '~' assigns a variable. '//' starts a comment.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.whisker.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// colorMode resolves the persistent --color flag.
func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(colorFlag)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".whisker" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".whisker")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
