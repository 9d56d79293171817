package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrSimulatePaymentCommandIsNotConstructed = errors.New(
	"SimulatePaymentCommand must be created via NewSimulatePaymentCommand constructor",
)

// SimulatePaymentCommand force-completes the payment behind a session. Demo use only.
type SimulatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewSimulatePaymentCommand(paymentID kernel.UUID, actor kernel.Actor) (SimulatePaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), actor.Validate()); err != nil {
		return SimulatePaymentCommand{}, err
	}

	return SimulatePaymentCommand{
		paymentID: paymentID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SimulatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSimulatePaymentCommandIsNotConstructed)
}

func (c SimulatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

func (c SimulatePaymentCommand) Actor() kernel.Actor { return c.actor }
