package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// Clock returns the current time. Handlers take one so tests can pin time.
type Clock func() time.Time

// orderMutation changes a locked order. It reports whether the order must be persisted.
type orderMutation func(o *order.Order) (persist bool, err error)

// withLockedOrder loads the order under an exclusive row lock, applies mutate and
// commits. The caller's cancellation is detached first: once a payment starts
// changing an order it either lands completely or not at all.
func withLockedOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate orderMutation,
) (*order.Order, error) {
	ctx = context.WithoutCancel(ctx)

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	persist, err := mutate(o)
	if err != nil {
		return nil, err
	}

	if persist {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// ensureOwner rejects actors other than the customer who placed the order.
func ensureOwner(o *order.Order, actor kernel.Actor) error {
	if !o.IsOwnedBy(actor.UserID) {
		return errs.NewAccessDeniedError(actor, "order", o.ID())
	}
	return nil
}
