package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// DeliveryPoolChannel is the shared channel every delivery partner listens on.
const DeliveryPoolChannel = "delivery-pool"

const (
	EventPaymentSuccess     = "payment-success"
	EventOrderStatusUpdated = "order-status-updated"
)

// Notification is an addressed order event.
type Notification struct {
	Event         string    `json:"event"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId,omitempty"`
	UpdatedBy     string    `json:"updatedBy,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Notifier forwards events to interested parties. Delivery is best effort:
// having no subscriber is not an error, and callers never undo work because
// an emit failed.
type Notifier interface {
	EmitToUser(ctx context.Context, userID kernel.UUID, n Notification) error
	EmitToRestaurant(ctx context.Context, restaurantID kernel.UUID, n Notification) error
	EmitToChannel(ctx context.Context, channel string, n Notification) error
}
