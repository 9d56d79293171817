package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Order is the aggregate root of the payment service. It owns the order status,
// the embedded payment record and the status history, and is the only place
// where any of them change.
//
// Order follows these invariants:
//   - Has a valid identifier, a non-empty order number and exactly one owning customer
//   - Status history never holds two consecutive entries with the same status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	orderNumber  string
	ownerID      kernel.UUID
	restaurantID *kernel.UUID

	status  Status
	payment Payment
	history []StatusChange

	isConstructed bool
}

// NewOrder places an order in PendingPayment with an unpaid payment record.
// The initial status is recorded in history as placed by the owner.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1042", customerID, &restaurantID, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	ownerID kernel.UUID,
	restaurantID *kernel.UUID,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		payment:       NewPayment(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOwner(ownerID),
		o.setRestaurant(restaurantID),
	); err != nil {
		return nil, err
	}

	owner := kernel.Actor{UserID: ownerID, Role: kernel.RoleCustomer}
	o.history = []StatusChange{{Status: PendingPayment, Timestamp: placedAt, UpdatedBy: owner.String()}}
	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	ownerID kernel.UUID,
	restaurantID *kernel.UUID,
	status Status,
	payment Payment,
	history []StatusChange,
) (*Order, error) {
	o := &Order{
		payment:       payment,
		history:       append([]StatusChange(nil), history...),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setOwner(ownerID),
		o.setRestaurant(restaurantID),
		status.Validate(),
		validateHistory(history),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was built by one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) OrderNumber() string { return o.orderNumber }

func (o *Order) OwnerID() kernel.UUID { return o.ownerID }

// RestaurantID returns the restaurant the order was placed with, nil if none is recorded.
func (o *Order) RestaurantID() *kernel.UUID { return o.restaurantID }

func (o *Order) Status() Status { return o.status }

func (o *Order) Payment() Payment { return o.payment }

// History returns a copy of the status history, oldest first.
func (o *Order) History() []StatusChange {
	return append([]StatusChange(nil), o.history...)
}

// IsOwnedBy reports whether userID is the customer who placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.ownerID.IsEqual(userID)
}

// EnsureAwaitingPayment checks that a new payment may start: the payment must not be
// collected yet and the order must be pending_payment, in that order of precedence.
func (o *Order) EnsureAwaitingPayment() error {
	if o.payment.IsCompleted() {
		return &PaymentCompletedError{OrderNumber: o.orderNumber, PaidAt: o.payment.PaidAt()}
	}
	if o.status != PendingPayment {
		return &StatusMismatchError{Current: o.status, Expected: PendingPayment}
	}
	return nil
}

// PayWithUPI records an instantly successful UPI payment and moves the order to Paid.
// An empty app is recorded as UnknownUPIApp.
func (o *Order) PayWithUPI(upiID, app, transactionID string, at time.Time, actor kernel.Actor) error {
	if err := o.EnsureAwaitingPayment(); err != nil {
		return err
	}
	if strings.TrimSpace(upiID) == "" {
		return errs.NewValueIsRequiredError("upiId")
	}
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transactionId")
	}
	if app == "" {
		app = UnknownUPIApp
	}

	paidAt := at
	o.payment = Payment{
		method:        MethodUPI,
		status:        PaymentPaid,
		transactionID: transactionID,
		upiID:         upiID,
		app:           app,
		paidAt:        &paidAt,
	}
	o.applyStatus(Paid, actor, at)
	return nil
}

// ChooseCashOnDelivery selects COD: the payment stays pending until delivery
// and the order is confirmed immediately.
func (o *Order) ChooseCashOnDelivery(at time.Time, actor kernel.Actor) error {
	if err := o.EnsureAwaitingPayment(); err != nil {
		return err
	}

	o.payment.method = MethodCOD
	o.payment.status = PaymentPending
	o.applyStatus(Confirmed, actor, at)
	return nil
}

// ConfirmPayment finalizes a payment reported by an external confirmation.
// It returns true without changing anything when the payment is already collected.
// A legacy Pending order advances to Confirmed; other statuses are left as they are.
func (o *Order) ConfirmPayment(transactionID string, at time.Time, actor kernel.Actor) (alreadyPaid bool) {
	if o.payment.IsCompleted() {
		return true
	}

	paidAt := at
	o.payment.status = PaymentPaid
	o.payment.paidAt = &paidAt
	if transactionID != "" {
		o.payment.transactionID = transactionID
	}

	if o.status == Pending {
		o.applyStatus(Confirmed, actor, at)
	}
	return false
}

// MarkPaidForDemo force-marks the order paid and confirmed for demonstrations.
// It skips every payment guard and leaves the status history untouched.
func (o *Order) MarkPaidForDemo(transactionID string, at time.Time) {
	paidAt := at
	o.payment.status = PaymentPaid
	o.payment.transactionID = transactionID
	o.payment.paidAt = &paidAt
	o.status = Confirmed
}

// ChangeStatus moves the order to a lifecycle status. Whether the actor is
// allowed to request it is decided by the caller's transition policy.
func (o *Order) ChangeStatus(next Status, actor kernel.Actor, at time.Time) error {
	if !next.IsLifecycle() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not a lifecycle status", next))
	}
	o.applyStatus(next, actor, at)
	return nil
}

// applyStatus sets the status and appends a history entry when it actually changes.
func (o *Order) applyStatus(next Status, actor kernel.Actor, at time.Time) {
	if next == o.status {
		return
	}
	o.status = next

	if n := len(o.history); n > 0 && o.history[n-1].Status == next {
		return
	}
	o.history = append(o.history, StatusChange{
		Status:    next,
		Timestamp: at,
		UpdatedBy: actor.String(),
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setRestaurant(restaurantID *kernel.UUID) error {
	if restaurantID == nil {
		return nil
	}
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurant", err)
	}
	id := *restaurantID
	o.restaurantID = &id
	return nil
}
