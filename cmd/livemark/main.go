package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "livemark",
	Short:         "Live-preview markup tooling",
	Long:          "Livemark tokenizes markup sources into offset-tagged node payloads\nfor live-preview DOM synchronization, and ships the relay and keyword\ncompletion helpers the preview pipeline uses around the tokenizer.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(relayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
