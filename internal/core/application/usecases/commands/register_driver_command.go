package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand signs a driver up. New drivers are neither approved
// nor available.
type RegisterDriverCommand struct {
	driverID    kernel.UUID
	name        string
	workingArea string

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(driverID kernel.UUID, name, workingArea string) (RegisterDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return RegisterDriverCommand{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RegisterDriverCommand{}, errs.NewValueIsRequiredError("driver name")
	}

	return RegisterDriverCommand{
		driverID:    driverID,
		name:        name,
		workingArea: workingArea,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.UUID { return c.driverID }
func (c RegisterDriverCommand) Name() string          { return c.name }
func (c RegisterDriverCommand) WorkingArea() string   { return c.workingArea }
