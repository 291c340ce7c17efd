// Copyright © 2025 The Whisker authors

package main

import "github.com/whiskertales/whisker/cmd"

func main() {
	cmd.Execute()
}
