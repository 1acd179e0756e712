package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var ErrResetDriverDailyCountersCommandIsNotConstructed = errors.New(
	"ResetDriverDailyCountersCommand must be created via NewResetDriverDailyCountersCommand constructor",
)

// ResetDriverDailyCountersCommand starts a new working day for every driver.
type ResetDriverDailyCountersCommand struct {
	guard guard.ConstructorGuard
}

func NewResetDriverDailyCountersCommand() ResetDriverDailyCountersCommand {
	return ResetDriverDailyCountersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ResetDriverDailyCountersCommand) Validate() error {
	return c.guard.Validate(ErrResetDriverDailyCountersCommandIsNotConstructed)
}
