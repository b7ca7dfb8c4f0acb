package main

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	livemark "github.com/livemark/preview/internal"
	"github.com/livemark/preview/internal/complete"
)

var completeCmd = &cobra.Command{
	Use:   "complete [flags] file.html",
	Short: "Suggest keywords for a cursor position",
	Long:  "Complete classifies the scan context at a byte offset and lists the\nkeyword-table entries matching the prefix there",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func init() {
	completeCmd.Flags().Int("offset", 0, "byte offset of the cursor")
	completeCmd.Flags().String("prefix", "", "partial word before the cursor")
}

func runComplete(cmd *cobra.Command, args []string) error {
	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return fmt.Errorf("failed to get offset flag: %w", err)
	}
	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return fmt.Errorf("failed to get prefix flag: %w", err)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	completer, err := complete.NewCompleter()
	if err != nil {
		return err
	}
	ctx := livemark.ContextAt(string(source), offset)
	suggestions := completer.Suggest(ctx, prefix)

	result := struct {
		Context     string                `json:"context"`
		Suggestions []complete.Suggestion `json:"suggestions"`
	}{
		Context:     ctx.String(),
		Suggestions: suggestions,
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
