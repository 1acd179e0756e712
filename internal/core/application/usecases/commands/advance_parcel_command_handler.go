package commands

import (
	"context"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// AdvanceParcelCommandHandler executes one forward step of the parcel state
// machine together with its ledger postings.
//
// Example:
//
//	handler := NewAdvanceParcelCommandHandler(uowFactory, locker)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // the parcel moved after it was read, reload and retry
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // terminal status
//	}
type AdvanceParcelCommandHandler struct {
	transition parcelTransition
}

func NewAdvanceParcelCommandHandler(uowFactory ParcelLedgerUoWFactory, locker ports.Locker) AdvanceParcelCommandHandler {
	return AdvanceParcelCommandHandler{
		transition: newParcelTransition(uowFactory, locker),
	}
}

func (h AdvanceParcelCommandHandler) Handle(ctx context.Context, command AdvanceParcelCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	// Without an expected status the caller advances from whatever it sees
	// now. A parcel that moves while we wait for its lock is a conflict, not
	// a second step.
	expected := command.Expected()
	var observed *parcel.State
	if expected == nil {
		state, err := h.transition.observe(ctx, command.ParcelID())
		if err != nil {
			return err
		}
		observed = &state
	}

	return h.transition.run(ctx, command.ParcelID(), func(p *parcel.Parcel, now time.Time) (parcel.Transition, error) {
		switch {
		case expected != nil && p.Status() != *expected:
			return parcel.Transition{}, staleParcel(fmt.Sprintf("expected %s, found %s", *expected, p.Status()))
		case observed != nil && p.State() != *observed:
			return parcel.Transition{}, staleParcel(fmt.Sprintf("moved from %s to %s before the lock was held", *observed, p.State()))
		}
		return p.Advance(command.Role(), now)
	})
}

func staleParcel(details string) error {
	return errs.NewRuleViolationError(errs.ErrConcurrentModification, "parcel", details)
}
