package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// AddParcelNoteCommandHandler appends to a parcel's note history.
type AddParcelNoteCommandHandler struct {
	uowFactory ParcelUoWFactory
	locker     ports.Locker
}

func NewAddParcelNoteCommandHandler(uowFactory ParcelUoWFactory, locker ports.Locker) AddParcelNoteCommandHandler {
	return AddParcelNoteCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h AddParcelNoteCommandHandler) Handle(ctx context.Context, command AddParcelNoteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, ports.ParcelLockKey(command.ParcelID()))
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	p, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	if err = p.AddNote(command.Text(), command.Role(), now()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
