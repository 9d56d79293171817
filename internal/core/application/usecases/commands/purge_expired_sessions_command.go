package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrPurgeExpiredSessionsCommandIsNotConstructed = errors.New(
	"PurgeExpiredSessionsCommand must be created via NewPurgeExpiredSessionsCommand constructor",
)

// PurgeExpiredSessionsCommand reclaims sessions nobody can read anymore.
// This is a parameterless command.
type PurgeExpiredSessionsCommand struct {
	guard guard.ConstructorGuard
}

func NewPurgeExpiredSessionsCommand() PurgeExpiredSessionsCommand {
	return PurgeExpiredSessionsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c PurgeExpiredSessionsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredSessionsCommandIsNotConstructed)
}
