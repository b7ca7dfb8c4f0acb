package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/livemark/preview/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay [flags]",
	Short: "Relay preview messages between editor and rendering surface",
	Long:  "Relay runs the local message relay: every JSON frame a connected\nclient sends is forwarded to all other clients, stamped with the\nsender's id",
	Args:  cobra.NoArgs,
	RunE:  runRelay,
}

func init() {
	relayCmd.Flags().String("addr", "127.0.0.1:35729", "listen address")
}

func runRelay(cmd *cobra.Command, args []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("failed to get addr flag: %w", err)
	}

	r, err := relay.NewRelay(addr)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "relay listening on %s\n", r.Addr())
	if err := r.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
