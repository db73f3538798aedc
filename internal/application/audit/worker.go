package audit

import (
	"context"

	domainInventory "github.com/warehouse-ops/warehouse-api/internal/domain/inventory"
	domainOrder "github.com/warehouse-ops/warehouse-api/internal/domain/order"
	domoutbox "github.com/warehouse-ops/warehouse-api/internal/domain/outbox"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
	"github.com/warehouse-ops/warehouse-api/internal/observability/logctx"
)

const componentAudit = "audit"

// Worker subscribes to every domain event and writes one structured audit
// line per event. Delivery is best-effort; the stores stay authoritative.
type Worker struct {
	subscriber domoutbox.Subscriber
	log        observability.Logger
}

func New(subscriber domoutbox.Subscriber, logger observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Worker{
		subscriber: subscriber,
		log:        logger.With(observability.F("component", componentAudit)),
	}
}

func (w *Worker) Start() {
	for _, name := range []string{
		domainInventory.ItemCreatedEvent{}.EventName(),
		domainInventory.ItemUpdatedEvent{}.EventName(),
		domainInventory.ItemDeletedEvent{}.EventName(),
		domainOrder.OrderCreatedEvent{}.EventName(),
		domainOrder.OrderUpdatedEvent{}.EventName(),
		domainOrder.OrderDeletedEvent{}.EventName(),
	} {
		w.subscriber.Subscribe(name, w.handle)
	}
}

func (w *Worker) handle(ctx context.Context, e domoutbox.Event) error {
	logger := logctx.FromOr(ctx, w.log)

	fields := []observability.Field{observability.F("event", e.EventName())}
	switch ev := e.(type) {
	case domainInventory.ItemCreatedEvent:
		fields = append(fields,
			observability.F("item_id", ev.ItemID),
			observability.F("name", ev.Name),
			observability.F("quantity", ev.Quantity),
			observability.F("price", ev.Price),
		)
	case domainInventory.ItemUpdatedEvent:
		fields = append(fields, observability.F("item_id", ev.ItemID))
	case domainInventory.ItemDeletedEvent:
		fields = append(fields, observability.F("item_id", ev.ItemID))
	case domainOrder.OrderCreatedEvent:
		fields = append(fields,
			observability.F("order_id", ev.OrderID),
			observability.F("customer", ev.Customer),
			observability.F("items", ev.Items),
			observability.F("status", string(ev.Status)),
		)
	case domainOrder.OrderUpdatedEvent:
		fields = append(fields,
			observability.F("order_id", ev.OrderID),
			observability.F("status", string(ev.Status)),
		)
	case domainOrder.OrderDeletedEvent:
		fields = append(fields, observability.F("order_id", ev.OrderID))
	}

	logger.Info("audit_event", fields...)
	return nil
}
