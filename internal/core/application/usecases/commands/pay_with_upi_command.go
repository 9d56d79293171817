package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/guard"
)

var ErrPayWithUPICommandIsNotConstructed = errors.New(
	"PayWithUPICommand must be created via NewPayWithUPICommand constructor",
)

// PayWithUPICommand is the direct UPI entry point: no method choice, instant success.
type PayWithUPICommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	amount  float64
	upiID   string
	upiApp  string

	guard guard.ConstructorGuard
}

// NewPayWithUPICommand validates the order, the payer, a positive amount and the UPI id.
func NewPayWithUPICommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	amount float64,
	upiID string,
	upiApp string,
) (PayWithUPICommand, error) {
	upiID = strings.TrimSpace(upiID)

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		validateAmount(amount),
		services.ValidateUPIID(upiID),
	); err != nil {
		return PayWithUPICommand{}, err
	}

	return PayWithUPICommand{
		orderID: orderID,
		actor:   actor,
		amount:  amount,
		upiID:   upiID,
		upiApp:  strings.TrimSpace(upiApp),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayWithUPICommand) Validate() error {
	return c.guard.Validate(ErrPayWithUPICommandIsNotConstructed)
}

func (c PayWithUPICommand) OrderID() kernel.UUID { return c.orderID }

func (c PayWithUPICommand) Actor() kernel.Actor { return c.actor }

func (c PayWithUPICommand) Amount() float64 { return c.amount }

func (c PayWithUPICommand) UPIID() string { return c.upiID }

func (c PayWithUPICommand) UPIApp() string { return c.upiApp }
