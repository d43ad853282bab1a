package events

import (
	"context"
	"log/slog"
)

// SubscribeAudit writes one structured log line per ledger event.
func SubscribeAudit(bus *EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
		}
		if data, ok := event.Payload().(map[string]interface{}); ok {
			for k, v := range data {
				attrs = append(attrs, k, v)
			}
		}
		logger.InfoContext(ctx, "audit", attrs...)
		return nil
	}

	for _, t := range LedgerEventTypes {
		bus.Subscribe(t, audit)
	}
}
