package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Lifecycle:
//
//	pending_payment ──> paid ──> preparing ──> ready ──> picked_up ──> delivered
//	       │             │  └──> rejected       │
//	       └─────────────┴──────────────────────┴──> cancelled
//
// Two auxiliary states sit beside the lifecycle: Confirmed, entered by cash-on-delivery
// checkout and by payment confirmation, and the legacy Pending state that older orders
// may still carry before their payment is confirmed.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	PendingPayment
	Paid
	Preparing
	Ready
	PickedUp
	Delivered
	Cancelled
	Rejected
	Confirmed
	// Pending is the legacy pre-payment status; new orders start in PendingPayment.
	Pending
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PendingPayment: "pending_payment",
		Paid:           "paid",
		Preparing:      "preparing",
		Ready:          "ready",
		PickedUp:       "picked_up",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
		Confirmed:      "confirmed",
		Pending:        "pending",
	}
}

// LifecycleStatuses returns the eight statuses of the fulfillment lifecycle,
// which are the only targets a status update may request.
func LifecycleStatuses() []Status {
	return []Status{PendingPayment, Paid, Preparing, Ready, PickedUp, Delivered, Cancelled, Rejected}
}

// ParseStatus converts a wire name such as "picked_up" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is a known, non-Unknown value.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsLifecycle reports whether s is one of LifecycleStatuses.
func (s Status) IsLifecycle() bool {
	for _, l := range LifecycleStatuses() {
		if l == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further fulfillment happens after s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}
