package commands

import (
	"context"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// AssignDriverCommandHandler binds a driver to one parcel. The parcel and
// the driver are locked for the whole transaction, so concurrent
// assignments to the same driver never lose a counter increment.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory, locker)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrDriverUnavailable):
//	    log.Println("driver is not approved or off duty")
//	case errors.Is(err, errs.ErrPackageNotAssignable):
//	    log.Println("parcel is not in an assignable status")
//	}
type AssignDriverCommandHandler struct {
	uowFactory DispatchUoWFactory
	locker     ports.Locker
	dispatcher services.DriverDispatcher
}

func NewAssignDriverCommandHandler(uowFactory DispatchUoWFactory, locker ports.Locker) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		dispatcher: services.NewDriverDispatcher(),
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx,
		ports.ParcelLockKey(command.ParcelID()),
		ports.DriverLockKey(command.DriverID()),
	)
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
	driverRepo := uow.DriverRepository()

	p, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	d, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	changed, err := h.dispatcher.Assign(p, d, now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
