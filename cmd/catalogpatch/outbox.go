package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outboxLimit int
	outboxAck   bool
)

var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Print pending product events from the outbox",
	Long: `Prints unpublished events of the product_events table as JSON
lines. With --ack, the printed events are marked as published.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.Database.Seed = false
		c.Events.Sink = "outbox"
		a, err := newApp(cmd.Context(), &c, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		pending, err := a.outbox.Pending(cmd.Context(), outboxLimit)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(pending))
		for _, env := range pending {
			line, err := j.Marshal(env)
			if err != nil {
				return fmt.Errorf("encode event %s: %w", env.ID, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(line))
			ids = append(ids, env.ID.String())
		}
		if outboxAck && len(ids) > 0 {
			if err := a.outbox.MarkPublished(cmd.Context(), ids...); err != nil {
				return err
			}
			logger.Info("outbox events acknowledged", zap.Int("events", len(ids)))
		}
		return nil
	},
}

func init() {
	outboxCmd.Flags().IntVar(&outboxLimit, "limit", 100, "Maximum number of events to print")
	outboxCmd.Flags().BoolVar(&outboxAck, "ack", false, "Mark printed events as published")
}
