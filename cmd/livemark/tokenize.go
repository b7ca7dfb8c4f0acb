package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	livemark "github.com/livemark/preview/internal"
	"github.com/livemark/preview/internal/handler"
	"github.com/livemark/preview/internal/loc"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.html",
	Short: "Tokenize a markup source file",
	Long:  "Tokenize breaks a markup source into its payload stream, one\nclassified, offset-tagged node per payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// payloadJSON is the wire shape of one payload, matching what the
// rendering surface consumes.
type payloadJSON struct {
	NodeType     string     `json:"nodeType"`
	NodeValue    string     `json:"nodeValue,omitempty"`
	NodeName     string     `json:"nodeName,omitempty"`
	Attributes   []attrJSON `json:"attributes,omitempty"`
	Closing      bool       `json:"closing,omitempty"`
	Closed       bool       `json:"closed,omitempty"`
	SourceOffset int        `json:"sourceOffset"`
	SourceLength int        `json:"sourceLength"`
}

type attrJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toPayloadJSON(p livemark.Payload) payloadJSON {
	out := payloadJSON{
		NodeType:     p.Type.String(),
		NodeValue:    p.Value,
		NodeName:     p.Name,
		Closing:      p.Closing,
		Closed:       p.Closed,
		SourceOffset: p.Loc.Loc.Start,
		SourceLength: p.Loc.Len,
	}
	for _, a := range p.Attr {
		out.Attributes = append(out.Attributes, attrJSON{Name: a.Key, Value: a.Val})
	}
	return out
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	h := handler.NewHandler(string(source), args[0])
	payloads := livemark.Tokenize(string(source), h)
	printDiagnostics(h.Diagnostics())

	switch format {
	case "pretty":
		for _, p := range payloads {
			fmt.Fprintf(cmd.OutOrStdout(), "%6d %6d  %-8s %s\n",
				p.Loc.Loc.Start, p.Loc.Len, p.Type, p.String())
		}
		return nil
	case "json":
		out := make([]payloadJSON, 0, len(payloads))
		for _, p := range payloads {
			out = append(out, toPayloadJSON(p))
		}
		encoded, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to encode payloads: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printDiagnostics(msgs []loc.DiagnosticMessage) {
	warn := color.New(color.FgYellow).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	for _, msg := range msgs {
		label := warn("warning:")
		if msg.Severity == int(loc.ErrorType) {
			label = fail("error:")
		}
		if msg.Location != nil {
			fmt.Fprintf(os.Stderr, "%s %s:%d:%d %s\n",
				label, msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", label, msg.Text)
	}
}
