package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// TransitionDeniedError reports a status change the actor's role may not make.
type TransitionDeniedError struct {
	Role kernel.Role
	From order.Status
	To   order.Status
}

func (e *TransitionDeniedError) Error() string {
	return fmt.Sprintf("%s: role %s may not move an order from %s to %s", errs.ErrAccessDenied, e.Role, e.From, e.To)
}

func (e *TransitionDeniedError) Unwrap() error {
	return errs.ErrAccessDenied
}

// UpdateOrderStatusCommandHandler applies fulfillment transitions allowed by the
// transition policy. Customers may only touch their own orders.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.TransitionPolicy
	events     orderEvents
	clock      Clock
}

// NewUpdateOrderStatusCommandHandler creates the handler.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, services.NewTransitionPolicy(), hub, logger, time.Now)
//	cmd, err := NewUpdateOrderStatusCommand(orderID, kitchen, "preparing")
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update refused: %w", err)
//	}
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.TransitionPolicy,
	notifier ports.Notifier,
	logger *slog.Logger,
	clock Clock,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     newOrderEvents(notifier, logger),
		clock:      clock,
	}
}

// Handle changes the status and announces order-status-updated when it actually changed.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	actor := command.Actor()
	requested := command.Status()
	var changed bool

	o, err := withLockedOrder(ctx, h.uowFactory, command.OrderID(), func(o *order.Order) (bool, error) {
		if actor.Role == kernel.RoleCustomer {
			if err := ensureOwner(o, actor); err != nil {
				return false, err
			}
		}

		current := o.Status()
		if !h.policy.CanTransition(current, requested, actor.Role) {
			return false, &TransitionDeniedError{Role: actor.Role, From: current, To: requested}
		}

		if err := o.ChangeStatus(requested, actor, now); err != nil {
			return false, err
		}
		changed = current != o.Status()
		return changed, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		h.events.statusUpdated(context.WithoutCancel(ctx), o, actor.String(), now)
	}
	return o, nil
}
