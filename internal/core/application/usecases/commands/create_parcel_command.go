package commands

import (
	"errors"
	"fmt"
	"slices"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand registers a parcel for a shop. A regular parcel starts
// at awaiting_schedule, or at pending when it is already in storage; an
// exchange parcel carries a manifest and starts its own flow.
//
// Example:
//
//	line, _ := parcel.NewItemLine("sneakers", 1)
//	cmd, err := NewCreateParcelCommand(kernel.NewUUID(), "TRK-1001", shopID,
//	    cod, deliveryCost, []parcel.ItemLine{line}, parcel.AwaitingSchedule)
type CreateParcelCommand struct {
	parcelID       kernel.UUID
	trackingNumber string
	shopID         kernel.UUID
	codAmount      kernel.Money
	deliveryCost   kernel.Money
	lines          []parcel.ItemLine
	initial        parcel.Status
	exchange       *parcel.ExchangeManifest

	guard guard.ConstructorGuard
}

func NewCreateParcelCommand(
	parcelID kernel.UUID,
	trackingNumber string,
	shopID kernel.UUID,
	codAmount kernel.Money,
	deliveryCost kernel.Money,
	lines []parcel.ItemLine,
	initial parcel.Status,
) (CreateParcelCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		shopID.Validate(),
		requireTrackingNumber(trackingNumber),
	); err != nil {
		return CreateParcelCommand{}, err
	}
	if len(lines) == 0 {
		return CreateParcelCommand{}, errs.NewValueIsRequiredError("item lines")
	}
	if initial != parcel.AwaitingSchedule && initial != parcel.Pending {
		return CreateParcelCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"initial status",
			fmt.Errorf("%s is not awaiting_schedule or pending", initial),
		)
	}

	return CreateParcelCommand{
		parcelID:       parcelID,
		trackingNumber: trackingNumber,
		shopID:         shopID,
		codAmount:      codAmount,
		deliveryCost:   deliveryCost,
		lines:          slices.Clone(lines),
		initial:        initial,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// NewCreateExchangeParcelCommand builds the command for an exchange parcel.
func NewCreateExchangeParcelCommand(
	parcelID kernel.UUID,
	trackingNumber string,
	shopID kernel.UUID,
	deliveryCost kernel.Money,
	manifest parcel.ExchangeManifest,
) (CreateParcelCommand, error) {
	if err := errors.Join(
		parcelID.Validate(),
		shopID.Validate(),
		requireTrackingNumber(trackingNumber),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return CreateParcelCommand{
		parcelID:       parcelID,
		trackingNumber: trackingNumber,
		shopID:         shopID,
		codAmount:      kernel.ZeroMoney(),
		deliveryCost:   deliveryCost,
		initial:        parcel.ExchangeAwaitingSchedule,
		exchange:       &manifest,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID              { return c.parcelID }
func (c CreateParcelCommand) TrackingNumber() string             { return c.trackingNumber }
func (c CreateParcelCommand) ShopID() kernel.UUID                { return c.shopID }
func (c CreateParcelCommand) CODAmount() kernel.Money            { return c.codAmount }
func (c CreateParcelCommand) DeliveryCost() kernel.Money         { return c.deliveryCost }
func (c CreateParcelCommand) ItemLines() []parcel.ItemLine       { return slices.Clone(c.lines) }
func (c CreateParcelCommand) InitialStatus() parcel.Status       { return c.initial }
func (c CreateParcelCommand) Exchange() *parcel.ExchangeManifest { return c.exchange }

func requireTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	return nil
}
