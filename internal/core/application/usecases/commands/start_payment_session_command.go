package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrStartPaymentSessionCommandIsNotConstructed = errors.New(
	"StartPaymentSessionCommand must be created via NewStartPaymentSessionCommand constructor",
)

// StartPaymentSessionCommand opens a pollable UPI payment session for an unpaid order.
type StartPaymentSessionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	amount  float64

	guard guard.ConstructorGuard
}

func NewStartPaymentSessionCommand(orderID kernel.UUID, actor kernel.Actor, amount float64) (StartPaymentSessionCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		validateAmount(amount),
	); err != nil {
		return StartPaymentSessionCommand{}, err
	}

	return StartPaymentSessionCommand{
		orderID: orderID,
		actor:   actor,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPaymentSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartPaymentSessionCommandIsNotConstructed)
}

func (c StartPaymentSessionCommand) OrderID() kernel.UUID { return c.orderID }

func (c StartPaymentSessionCommand) Actor() kernel.Actor { return c.actor }

func (c StartPaymentSessionCommand) Amount() float64 { return c.amount }
