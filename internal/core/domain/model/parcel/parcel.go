package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel, NewExchangeParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
)

const (
	EventStatusChanged = "parcel.status_changed"
	EventDriverChanged = "parcel.driver_changed"
)

// Parcel is the aggregate root of one shipment (a "package" in the business
// vocabulary). It owns the lifecycle state machine: no other component can
// change its status.
//
// Parcel follows these invariants:
//   - status moves forward along one flow graph (see State); the only backward
//     edge is Unschedule, used when a pickup is deleted
//   - assigned and every later main-flow status require a bound driver
//   - createdAt, actualPickupTime and actualDeliveryTime are set at most once
//   - notes are append-only
//   - the COD amount is booked into the shop ledger at most once and released
//     at most once
//
// Every status change records an EventStatusChanged domain event.
type Parcel struct {
	id             kernel.UUID
	trackingNumber string
	shopID         kernel.UUID

	state    State
	driverID *kernel.UUID
	pickupID *kernel.UUID

	codAmount    kernel.Money
	deliveryCost kernel.Money
	isPaid       bool
	codState     CODState

	itemLines      []ItemLine
	deliveredLines []ItemLine
	collected      kernel.Money

	notes []Note

	rejectionPaid   kernel.Money
	rejectionMethod PaymentMethod

	exchange *ExchangeManifest

	createdAt          time.Time
	actualPickupTime   *time.Time
	actualDeliveryTime *time.Time

	version int64

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

// Transition describes one executed status change. The ledger poster uses it
// to decide which balances move.
type Transition struct {
	ParcelID kernel.UUID
	ShopID   kernel.UUID
	From     State
	To       State
	At       time.Time
}

// NewParcel creates a regular delivery parcel. The initial status is
// awaiting_schedule for parcels that go through a pickup, or pending for
// parcels already in storage.
//
// Example:
//
//	line, _ := parcel.NewItemLine("sneakers", 1)
//	p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-1001", shopID,
//	    cod, deliveryCost, []parcel.ItemLine{line}, parcel.Pending, time.Now())
func NewParcel(
	id kernel.UUID,
	trackingNumber string,
	shopID kernel.UUID,
	codAmount kernel.Money,
	deliveryCost kernel.Money,
	lines []ItemLine,
	initial Status,
	now time.Time,
) (*Parcel, error) {
	if initial != AwaitingSchedule && initial != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"initial status",
			fmt.Errorf("%s is not awaiting_schedule or pending", initial),
		)
	}

	p := &Parcel{
		state:        State{MainFlow, initial},
		codAmount:    codAmount,
		deliveryCost: deliveryCost,
		createdAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setShopID(shopID),
		p.setItemLines(lines),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// NewExchangeParcel creates a parcel following the exchange flow. It carries
// a manifest and an optional cash delta instead of a COD amount.
func NewExchangeParcel(
	id kernel.UUID,
	trackingNumber string,
	shopID kernel.UUID,
	deliveryCost kernel.Money,
	manifest ExchangeManifest,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		state:        State{ExchangeFlow, ExchangeAwaitingSchedule},
		codAmount:    kernel.ZeroMoney(),
		deliveryCost: deliveryCost,
		exchange:     &manifest,
		createdAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setShopID(shopID),
		p.setItemLines(exchangeLines(manifest)),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the parcel was built by one of its constructors.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

func (p *Parcel) ShopID() kernel.UUID {
	return p.shopID
}

func (p *Parcel) State() State {
	return p.state
}

func (p *Parcel) Status() Status {
	return p.state.status
}

func (p *Parcel) CODAmount() kernel.Money {
	return p.codAmount
}

func (p *Parcel) DeliveryCost() kernel.Money {
	return p.deliveryCost
}

func (p *Parcel) IsPaid() bool {
	return p.isPaid
}

func (p *Parcel) CODState() CODState {
	return p.codState
}

// CollectedAmount is the COD cash received on a partial delivery.
func (p *Parcel) CollectedAmount() kernel.Money {
	return p.collected
}

// RejectionShippingPaid is the shipping fee paid by a rejecting customer.
func (p *Parcel) RejectionShippingPaid() kernel.Money {
	return p.rejectionPaid
}

func (p *Parcel) RejectionPaymentMethod() PaymentMethod {
	return p.rejectionMethod
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) ActualPickupTime() *time.Time {
	return copyTime(p.actualPickupTime)
}

func (p *Parcel) ActualDeliveryTime() *time.Time {
	return copyTime(p.actualDeliveryTime)
}

func (p *Parcel) Version() int64 {
	return p.version
}

func (p *Parcel) ItemLines() []ItemLine {
	return append([]ItemLine(nil), p.itemLines...)
}

func (p *Parcel) DeliveredLines() []ItemLine {
	return append([]ItemLine(nil), p.deliveredLines...)
}

func (p *Parcel) Notes() []Note {
	return append([]Note(nil), p.notes...)
}

// Driver returns the bound driver, or nil.
func (p *Parcel) Driver() *kernel.UUID {
	return copyID(p.driverID)
}

// Pickup returns the open pickup the parcel is attached to, or nil.
func (p *Parcel) Pickup() *kernel.UUID {
	return copyID(p.pickupID)
}

func (p *Parcel) IsExchange() bool {
	return p.exchange != nil
}

func (p *Parcel) Exchange() *ExchangeManifest {
	return p.exchange
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) HasDriver(driverID kernel.UUID) bool {
	return p.driverID != nil && p.driverID.IsEqual(driverID)
}

// SetVersion is called by persistence adapters after a successful write.
func (p *Parcel) SetVersion(version int64) {
	p.version = version
}

// Advance moves the parcel to the unique successor of its current state.
//
// This method enforces the following business rules:
//   - the current state must have a successor (ErrInvalidTransition)
//   - the actor role must be allowed to enter the target (ErrPreconditionNotMet)
//   - targets that need a driver require one to be bound (ErrPreconditionNotMet)
//
// Entering pickedup stamps actualPickupTime; entering delivered stamps
// actualDeliveryTime and marks a COD parcel as paid.
func (p *Parcel) Advance(role kernel.Role, now time.Time) (Transition, error) {
	next, err := p.state.Next()
	if err != nil {
		return Transition{}, err
	}

	if !role.In(advanceRoles(next.status)...) {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"parcel",
			fmt.Sprintf("%s may not move a parcel to %s", role, next.status),
		)
	}

	if next.status.RequiresDriver() && p.driverID == nil {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"parcel",
			fmt.Sprintf("%s requires an assigned driver", next.status),
		)
	}

	return p.moveTo(next, now), nil
}

// advanceRoles lists who may advance a parcel into target.
//
//nolint:exhaustive // remaining statuses are not successor targets
func advanceRoles(target Status) []kernel.Role {
	switch target {
	case ScheduledForPickup, ExchangeAwaitingPickup:
		return []kernel.Role{kernel.RoleSystem}
	case Pending, ExchangeInTransit, Assigned:
		return []kernel.Role{kernel.RoleSystem, kernel.RoleAdmin}
	case PickedUp, InTransit, Delivered, ExchangeAwaitingReturn, RejectedAwaitingReturn:
		return []kernel.Role{kernel.RoleDriver, kernel.RoleAdmin}
	case RejectedReturned, CancelledReturned, ExchangeReturned:
		return []kernel.Role{kernel.RoleAdmin}
	}
	return nil
}

// Reject ends the delivery attempt.
//
// A driver rejects at the door: the parcel must be pickedup or in-transit with
// a bound driver, it goes straight to rejected-awaiting-return, and the
// shipping fee the customer paid is recorded, clamped to [0, deliveryCost].
// A positive amount needs a payment method.
//
// An admin (or the system) rejects from any of pending, assigned, pickedup or
// in-transit; the parcel goes to rejected.
//
// Any other status fails with ErrInvalidStateForRejection.
func (p *Parcel) Reject(
	role kernel.Role,
	amountPaid decimal.Decimal,
	method PaymentMethod,
	now time.Time,
) (Transition, error) {
	if p.state.flow != MainFlow || !isRejectable(p.state.status) {
		return Transition{}, p.rejectionError()
	}

	switch role {
	case kernel.RoleDriver:
		if p.state.status != PickedUp && p.state.status != InTransit {
			return Transition{}, p.rejectionError()
		}
		if p.driverID == nil {
			return Transition{}, errs.NewRuleViolationError(
				errs.ErrPreconditionNotMet,
				"parcel",
				"driver rejection requires an assigned driver",
			)
		}

		paid := kernel.ClampMoney(amountPaid, p.deliveryCost)
		if paid.IsPositive() {
			if err := method.Validate(); err != nil {
				return Transition{}, err
			}
			p.rejectionMethod = method
		}
		p.rejectionPaid = paid
		return p.moveTo(State{RejectFlow, RejectedAwaitingReturn}, now), nil

	case kernel.RoleAdmin, kernel.RoleSystem:
		return p.moveTo(State{RejectFlow, Rejected}, now), nil

	case kernel.RoleShop:
	}

	return Transition{}, errs.NewRuleViolationError(
		errs.ErrPreconditionNotMet,
		"parcel",
		fmt.Sprintf("%s may not reject a parcel", role),
	)
}

func isRejectable(s Status) bool {
	return s == Pending || s == Assigned || s == PickedUp || s == InTransit
}

func (p *Parcel) rejectionError() error {
	return errs.NewRuleViolationError(
		errs.ErrInvalidStateForRejection,
		"parcel",
		fmt.Sprintf("%s can not be rejected", p.state.status),
	)
}

// Cancel withdraws a parcel before the driver has it.
//
//   - awaiting_schedule, scheduled_for_pickup: cancelled (detached from its pickup)
//   - pending, assigned: cancelled-awaiting-return
//   - exchange-awaiting-schedule, exchange-awaiting-pickup: exchange-cancelled
//
// Only shops and admins cancel. Other statuses fail with ErrInvalidTransition.
//
//nolint:exhaustive // every other status falls through to the error
func (p *Parcel) Cancel(role kernel.Role, now time.Time) (Transition, error) {
	if !role.In(kernel.RoleShop, kernel.RoleAdmin) {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"parcel",
			fmt.Sprintf("%s may not cancel a parcel", role),
		)
	}

	var target State
	switch p.state {
	case State{MainFlow, AwaitingSchedule}, State{MainFlow, ScheduledForPickup}:
		target = State{CancelFlow, Cancelled}
	case State{MainFlow, Pending}, State{MainFlow, Assigned}:
		target = State{CancelFlow, CancelledAwaitingReturn}
	case State{ExchangeFlow, ExchangeAwaitingSchedule}, State{ExchangeFlow, ExchangeAwaitingPickup}:
		target = State{ExchangeFlow, ExchangeCancelled}
	default:
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrInvalidTransition,
			"parcel",
			fmt.Sprintf("%s can not be cancelled", p.state.status),
		)
	}

	p.pickupID = nil
	return p.moveTo(target, now), nil
}

// MarkReturned closes a return: cancelled-awaiting-return becomes
// cancelled-returned and rejected-awaiting-return becomes rejected-returned.
// Every other status, including the returned ones, fails with
// ErrInvalidStateForReturn.
//
//nolint:exhaustive // only awaiting-return statuses are accepted
func (p *Parcel) MarkReturned(now time.Time) (Transition, error) {
	switch p.state {
	case State{CancelFlow, CancelledAwaitingReturn}:
		return p.moveTo(State{CancelFlow, CancelledReturned}, now), nil
	case State{RejectFlow, RejectedAwaitingReturn}:
		return p.moveTo(State{RejectFlow, RejectedReturned}, now), nil
	}

	return Transition{}, errs.NewRuleViolationError(
		errs.ErrInvalidStateForReturn,
		"parcel",
		fmt.Sprintf("%s is not awaiting return", p.state.status),
	)
}

// RecordPartialDelivery moves an in-transit parcel to
// delivered-awaiting-return. Each reported line must exist and satisfy
// 0 <= quantity <= original quantity; lines not reported count as zero.
// collected is the COD cash actually received and may not exceed the COD
// amount.
//
// A failing call leaves the parcel unchanged.
func (p *Parcel) RecordPartialDelivery(lines []DeliveredLine, collected kernel.Money, now time.Time) (Transition, error) {
	if p.state != (State{MainFlow, InTransit}) {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrInvalidTransition,
			"parcel",
			fmt.Sprintf("partial delivery is not possible from %s", p.state.status),
		)
	}

	delivered := make([]ItemLine, len(p.itemLines))
	for i, line := range p.itemLines {
		delivered[i] = ItemLine{description: line.description}
	}

	seen := make(map[int]bool, len(lines))
	for _, line := range lines {
		if line.LineIndex < 0 || line.LineIndex >= len(p.itemLines) || seen[line.LineIndex] {
			return Transition{}, errs.NewRuleViolationError(
				errs.ErrQuantityOutOfBounds,
				"parcel",
				fmt.Sprintf("line %d is unknown or reported twice", line.LineIndex),
			)
		}
		seen[line.LineIndex] = true

		original := p.itemLines[line.LineIndex].quantity
		if line.Quantity < 0 || line.Quantity > original {
			return Transition{}, errs.NewRuleViolationErrorWithCause(
				errs.ErrQuantityOutOfBounds,
				"parcel",
				fmt.Sprintf("line %d", line.LineIndex),
				errs.NewValueIsOutOfRangeError("delivered quantity", line.Quantity, 0, original),
			)
		}
		delivered[line.LineIndex].quantity = line.Quantity
	}

	if collected.GreaterThan(p.codAmount) {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrInvalidAmount,
			"parcel",
			fmt.Sprintf("collected %s exceeds COD %s", collected, p.codAmount),
		)
	}

	p.deliveredLines = delivered
	p.collected = collected
	if collected.IsPositive() {
		p.isPaid = true
	}
	return p.moveTo(State{PartialFlow, DeliveredAwaitingReturn}, now), nil
}

// Schedule attaches the parcel to a pickup and moves it to the scheduled
// status of its flow. The parcel must be in a pre-pickup status and not
// attached to another pickup.
func (p *Parcel) Schedule(pickupID kernel.UUID, now time.Time) (Transition, error) {
	if err := pickupID.Validate(); err != nil {
		return Transition{}, err
	}
	if p.pickupID != nil {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"parcel",
			fmt.Sprintf("already attached to pickup %s", p.pickupID),
		)
	}
	if !p.state.status.IsPrePickup() {
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrPreconditionNotMet,
			"parcel",
			fmt.Sprintf("%s is not awaiting a schedule", p.state.status),
		)
	}

	t, err := p.Advance(kernel.RoleSystem, now)
	if err != nil {
		return Transition{}, err
	}
	id := pickupID
	p.pickupID = &id
	return t, nil
}

// Unschedule detaches the parcel from its pickup and returns it to the
// pre-pickup status of its flow.
func (p *Parcel) Unschedule(now time.Time) (Transition, error) {
	var target State
	switch p.state {
	case State{MainFlow, ScheduledForPickup}:
		target = State{MainFlow, AwaitingSchedule}
	case State{ExchangeFlow, ExchangeAwaitingPickup}:
		target = State{ExchangeFlow, ExchangeAwaitingSchedule}
	default:
		return Transition{}, errs.NewRuleViolationError(
			errs.ErrInvalidTransition,
			"parcel",
			fmt.Sprintf("%s is not scheduled for a pickup", p.state.status),
		)
	}

	p.pickupID = nil
	return p.moveTo(target, now), nil
}

// BindDriver sets or replaces the driver. The status does not change.
// Binding is allowed while the parcel is pending, assigned, pickedup,
// in-transit or exchange-in-transit; otherwise ErrPackageNotAssignable.
func (p *Parcel) BindDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if !p.state.status.IsAssignable() {
		return errs.NewRuleViolationError(
			errs.ErrPackageNotAssignable,
			"parcel",
			fmt.Sprintf("%s does not accept a driver", p.state.status),
		)
	}

	old := ""
	if p.driverID != nil {
		old = p.driverID.String()
	}
	id := driverID
	p.driverID = &id

	p.Record(kernel.DomainEvent{
		Name:       EventDriverChanged,
		SubjectID:  p.id,
		Attribute:  "driverId",
		OldValue:   old,
		NewValue:   driverID.String(),
		OccurredAt: now,
	})
	return nil
}

// BookCOD marks the COD amount as expected for the shop. It returns the
// amount to credit to ToCollect, or false if there is nothing to book.
func (p *Parcel) BookCOD() (kernel.Money, bool) {
	if p.codState != CODNotBooked || !p.codAmount.IsPositive() {
		return kernel.Money{}, false
	}
	p.codState = CODBooked
	return p.codAmount, true
}

// ReleaseCOD undoes a booking once the parcel outcome is known. It returns
// the amount to debit from ToCollect, or false if nothing was booked.
func (p *Parcel) ReleaseCOD() (kernel.Money, bool) {
	if p.codState != CODBooked {
		return kernel.Money{}, false
	}
	p.codState = CODReleased
	return p.codAmount, true
}

// AddNote appends to the note history.
func (p *Parcel) AddNote(text string, role kernel.Role, now time.Time) error {
	note, err := NewNote(text, role, now)
	if err != nil {
		return err
	}
	p.notes = append(p.notes, note)
	return nil
}

func (p *Parcel) moveTo(next State, now time.Time) Transition {
	prev := p.state
	p.state = next

	switch next.status {
	case PickedUp, ExchangeInTransit:
		if p.actualPickupTime == nil {
			p.actualPickupTime = &now
		}
	case Delivered, DeliveredAwaitingReturn, ExchangeAwaitingReturn:
		if p.actualDeliveryTime == nil {
			p.actualDeliveryTime = &now
		}
	}
	if next.status == Delivered && p.codAmount.IsPositive() {
		p.isPaid = true
	}

	p.Record(kernel.DomainEvent{
		Name:       EventStatusChanged,
		SubjectID:  p.id,
		Attribute:  "status",
		OldValue:   prev.status.String(),
		NewValue:   next.status.String(),
		OccurredAt: now,
	})

	return Transition{
		ParcelID: p.id,
		ShopID:   p.shopID,
		From:     prev,
		To:       next,
		At:       now,
	}
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shop id", err)
	}
	p.shopID = shopID
	return nil
}

func (p *Parcel) setItemLines(lines []ItemLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("item lines")
	}
	for i, line := range lines {
		if line.quantity <= 0 || line.description == "" {
			return errs.NewValueIsInvalidErrorWithCause("item lines", fmt.Errorf("line %d was not built by NewItemLine", i))
		}
	}
	p.itemLines = append([]ItemLine(nil), lines...)
	return nil
}

func exchangeLines(m ExchangeManifest) []ItemLine {
	if give := m.Give(); len(give) > 0 {
		return give
	}
	return m.Take()
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
