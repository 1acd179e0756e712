package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrAddParcelNoteCommandIsNotConstructed = errors.New(
	"AddParcelNoteCommand must be created via NewAddParcelNoteCommand constructor",
)

type AddParcelNoteCommand struct {
	parcelID kernel.UUID
	text     string
	role     kernel.Role

	guard guard.ConstructorGuard
}

func NewAddParcelNoteCommand(parcelID kernel.UUID, text string, role kernel.Role) (AddParcelNoteCommand, error) {
	if err := errors.Join(parcelID.Validate(), role.Validate()); err != nil {
		return AddParcelNoteCommand{}, err
	}
	if strings.TrimSpace(text) == "" {
		return AddParcelNoteCommand{}, errs.NewValueIsRequiredError("note text")
	}

	return AddParcelNoteCommand{
		parcelID: parcelID,
		text:     text,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddParcelNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddParcelNoteCommandIsNotConstructed)
}

func (c AddParcelNoteCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AddParcelNoteCommand) Text() string          { return c.text }
func (c AddParcelNoteCommand) Role() kernel.Role     { return c.role }
