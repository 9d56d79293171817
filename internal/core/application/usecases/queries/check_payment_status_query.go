// Package queries contains read-only operations of the payment service.
// Queries never modify orders; they read straight from the database.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/guard"
)

var ErrCheckPaymentStatusQueryIsNotConstructed = errors.New(
	"CheckPaymentStatusQuery must be created via NewCheckPaymentStatusQuery constructor",
)

// CheckPaymentStatusQuery is the polling request of a client waiting for a payment.
//
// Example:
//
//	query, err := NewCheckPaymentStatusQuery(paymentID, actor)
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, errs.ErrObjectExpired):
//	    // the session timed out, start a new one
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // never existed or already cleaned up
//	}
type CheckPaymentStatusQuery struct {
	paymentID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewCheckPaymentStatusQuery(paymentID kernel.UUID, actor kernel.Actor) (CheckPaymentStatusQuery, error) {
	if err := errors.Join(paymentID.Validate(), actor.Validate()); err != nil {
		return CheckPaymentStatusQuery{}, err
	}

	return CheckPaymentStatusQuery{
		paymentID: paymentID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckPaymentStatusQuery) Validate() error {
	return q.guard.Validate(ErrCheckPaymentStatusQueryIsNotConstructed)
}

func (q CheckPaymentStatusQuery) PaymentID() kernel.UUID { return q.paymentID }

func (q CheckPaymentStatusQuery) Actor() kernel.Actor { return q.actor }

// CheckPaymentStatusQueryResponse combines the live order state with the session deadline.
type CheckPaymentStatusQueryResponse struct {
	PaymentID          kernel.UUID
	OrderID            kernel.UUID
	OrderNumber        string
	OrderStatus        order.Status
	PaymentStatus      order.PaymentStatus
	PaymentMethod      order.PaymentMethod
	TransactionID      string
	PaidAt             *time.Time
	SessionStatus      session.Status
	ExpiresAt          time.Time
	CollectRequestSent bool
}
