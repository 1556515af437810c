package main

import (
	"os"

	cmd "github.com/mosaicnetworks/maelnode/cmd/maelnode/commands"
)

func main() {
	rootCmd := cmd.NewRootCmd(os.Stdin, os.Stdout)

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
