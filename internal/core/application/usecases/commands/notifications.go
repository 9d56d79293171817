package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// orderEvents publishes order notifications after a successful commit.
// Emit errors are logged and swallowed: the order change has already landed.
type orderEvents struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newOrderEvents(notifier ports.Notifier, logger *slog.Logger) orderEvents {
	return orderEvents{notifier: notifier, logger: logger}
}

// paymentSucceeded tells the customer, the restaurant (when known) and the delivery pool
// that an order has been paid. Only the customer event carries the transaction id.
func (e orderEvents) paymentSucceeded(ctx context.Context, o *order.Order, at time.Time) {
	n := newNotification(ports.EventPaymentSuccess, o, at)

	customer := n
	customer.TransactionID = o.Payment().TransactionID()
	e.report(ctx, n.Event, "user", e.notifier.EmitToUser(ctx, o.OwnerID(), customer))

	if restaurantID := o.RestaurantID(); restaurantID != nil {
		e.report(ctx, n.Event, "restaurant", e.notifier.EmitToRestaurant(ctx, *restaurantID, n))
	}

	e.report(ctx, n.Event, ports.DeliveryPoolChannel, e.notifier.EmitToChannel(ctx, ports.DeliveryPoolChannel, n))
}

// statusUpdated tells the customer and the restaurant about a fulfillment step.
// Orders that become ready are also offered to the delivery pool.
func (e orderEvents) statusUpdated(ctx context.Context, o *order.Order, updatedBy string, at time.Time) {
	n := newNotification(ports.EventOrderStatusUpdated, o, at)
	n.UpdatedBy = updatedBy

	e.report(ctx, n.Event, "user", e.notifier.EmitToUser(ctx, o.OwnerID(), n))

	if restaurantID := o.RestaurantID(); restaurantID != nil {
		e.report(ctx, n.Event, "restaurant", e.notifier.EmitToRestaurant(ctx, *restaurantID, n))
	}

	if o.Status() == order.Ready {
		e.report(ctx, n.Event, ports.DeliveryPoolChannel, e.notifier.EmitToChannel(ctx, ports.DeliveryPoolChannel, n))
	}
}

func (e orderEvents) report(ctx context.Context, event, audience string, err error) {
	if err == nil {
		return
	}
	e.logger.WarnContext(ctx, "failed to emit notification",
		"event", event,
		"audience", audience,
		"error", err,
	)
}

func newNotification(event string, o *order.Order, at time.Time) ports.Notification {
	return ports.Notification{
		Event:         event,
		OrderID:       o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		OrderStatus:   o.Status().String(),
		PaymentStatus: string(o.Payment().Status()),
		OccurredAt:    at,
	}
}
