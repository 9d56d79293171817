package order

import (
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod is how the customer pays. The zero value means no method chosen yet.
type PaymentMethod string

const (
	MethodUnset PaymentMethod = ""
	MethodUPI   PaymentMethod = "upi"
	MethodCOD   PaymentMethod = "cod"
)

// ParsePaymentMethod accepts "upi" or "cod".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case MethodUPI, MethodCOD:
		return m, nil
	default:
		return MethodUnset, errs.NewValueIsInvalidErrorWithCause(
			"paymentMethod", fmt.Errorf("%q is not a supported payment method", s))
	}
}

// PaymentStatus is the state of the payment sub-record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentInitiated PaymentStatus = "initiated"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Validate checks that the payment status is one of the six known values.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentInitiated, PaymentPaid, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// IsCompleted reports whether money has already been collected.
func (s PaymentStatus) IsCompleted() bool {
	return s == PaymentPaid || s == PaymentCompleted
}

// UnknownUPIApp is recorded when a UPI payment does not name the paying app.
const UnknownUPIApp = "unknown"

// Payment is the payment sub-record embedded in an order.
type Payment struct {
	method        PaymentMethod
	status        PaymentStatus
	transactionID string
	upiID         string
	app           string
	paidAt        *time.Time
}

// NewPayment returns the payment record of a freshly placed order.
func NewPayment() Payment {
	return Payment{status: PaymentPending}
}

// RestorePayment rebuilds a payment record from persistence.
func RestorePayment(
	method PaymentMethod,
	status PaymentStatus,
	transactionID, upiID, app string,
	paidAt *time.Time,
) (Payment, error) {
	if method != MethodUnset {
		if _, err := ParsePaymentMethod(string(method)); err != nil {
			return Payment{}, err
		}
	}
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}

	return Payment{
		method:        method,
		status:        status,
		transactionID: transactionID,
		upiID:         upiID,
		app:           app,
		paidAt:        copyTime(paidAt),
	}, nil
}

func (p Payment) Method() PaymentMethod { return p.method }

func (p Payment) Status() PaymentStatus { return p.status }

func (p Payment) TransactionID() string { return p.transactionID }

func (p Payment) UPIID() string { return p.upiID }

func (p Payment) App() string { return p.app }

// PaidAt returns a copy of the payment time, nil while unpaid.
func (p Payment) PaidAt() *time.Time { return copyTime(p.paidAt) }

// IsCompleted reports whether the payment status is paid or completed.
func (p Payment) IsCompleted() bool {
	return p.status.IsCompleted()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
