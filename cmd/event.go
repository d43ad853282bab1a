package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Ledger event commands",
	Long:  `Inspect and publish ledger events through the in-process event bus`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the ledger event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.LedgerEventTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test ledger event",
	Long:  `Publish a ledger event to the bus with the audit subscriber attached, for testing and debugging`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(cmd.Context(), args[0])
	},
}

var (
	eventData      string
	eventCompanyID string
)

func publishTestEvent(ctx context.Context, eventType string) error {
	if !slices.Contains(events.LedgerEventTypes, eventType) {
		return fmt.Errorf("unknown event type %q; see `event list`", eventType)
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"company_id": eventCompanyID,
			"message":    eventData,
			"source":     "cli-command",
		},
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)
	if err := bus.PublishSync(ctx, testEvent); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	lg.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")
	publishEventCmd.Flags().StringVar(&eventCompanyID, "company", "", "Company id recorded on the event")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
