package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand finalizes a payment reported from outside, for example
// by a manual check or a gateway callback. Repeating it is safe.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         kernel.Actor
	transactionID string
	paymentID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand builds the command. transactionID and paymentID are optional;
// a nil paymentID means no session is tied to the confirmation.
func NewConfirmPaymentCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	transactionID string,
	paymentID *kernel.UUID,
) (ConfirmPaymentCommand, error) {
	var paymentErr error
	if paymentID != nil {
		paymentErr = paymentID.Validate()
	}

	if err := errors.Join(orderID.Validate(), actor.Validate(), paymentErr); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	cmd := ConfirmPaymentCommand{
		orderID:       orderID,
		actor:         actor,
		transactionID: strings.TrimSpace(transactionID),
		guard:         guard.NewConstructorGuard(),
	}
	if paymentID != nil {
		id := *paymentID
		cmd.paymentID = &id
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }

func (c ConfirmPaymentCommand) Actor() kernel.Actor { return c.actor }

func (c ConfirmPaymentCommand) TransactionID() string { return c.transactionID }

// PaymentID returns the session tied to the confirmation, nil if none.
func (c ConfirmPaymentCommand) PaymentID() *kernel.UUID { return c.paymentID }
