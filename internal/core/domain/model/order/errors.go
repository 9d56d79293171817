package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrStatusMismatch classifies StatusMismatchError.
	ErrStatusMismatch = errors.New("order status mismatch")

	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// StatusMismatchError reports an operation that requires a different current status.
type StatusMismatchError struct {
	Current  Status
	Expected Status
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("%s: order is in %s status, expected %s", ErrStatusMismatch, e.Current, e.Expected)
}

func (e *StatusMismatchError) Unwrap() error {
	return ErrStatusMismatch
}

// PaymentCompletedError reports an attempt to pay an order whose payment is already collected.
type PaymentCompletedError struct {
	OrderNumber string
	PaidAt      *time.Time
}

func (e *PaymentCompletedError) Error() string {
	return fmt.Sprintf("%s: payment for order %s is already completed", errs.ErrConflict, e.OrderNumber)
}

func (e *PaymentCompletedError) Unwrap() error {
	return errs.ErrConflict
}

// HistoryIsInvalidError reports a restored history that repeats a status back to back.
type HistoryIsInvalidError struct {
	Index  int
	Status Status
}

func (e *HistoryIsInvalidError) Error() string {
	return fmt.Sprintf("%s: status history entry %d repeats status %s", errs.ErrValueIsInvalid, e.Index, e.Status)
}

func (e *HistoryIsInvalidError) Unwrap() error {
	return errs.ErrValueIsInvalid
}
