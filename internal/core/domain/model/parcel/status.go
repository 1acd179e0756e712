package parcel

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status is the lifecycle position of a parcel. Each value belongs to exactly
// one Flow; see State for how the two combine.
//
// String values are the identifiers used on the wire and in storage.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	AwaitingSchedule
	ScheduledForPickup
	Pending
	Assigned
	PickedUp
	InTransit
	Delivered

	// DeliveredAwaitingReturn is reached only through a partial delivery.
	DeliveredAwaitingReturn

	Rejected
	RejectedAwaitingReturn
	RejectedReturned

	Cancelled
	CancelledAwaitingReturn
	CancelledReturned

	ExchangeAwaitingSchedule
	ExchangeAwaitingPickup
	ExchangeInTransit
	ExchangeAwaitingReturn
	ExchangeReturned
	ExchangeCancelled
)

var statusNames = map[Status]string{
	AwaitingSchedule:         "awaiting_schedule",
	ScheduledForPickup:       "scheduled_for_pickup",
	Pending:                  "pending",
	Assigned:                 "assigned",
	PickedUp:                 "pickedup",
	InTransit:                "in-transit",
	Delivered:                "delivered",
	DeliveredAwaitingReturn:  "delivered-awaiting-return",
	Rejected:                 "rejected",
	RejectedAwaitingReturn:   "rejected-awaiting-return",
	RejectedReturned:         "rejected-returned",
	Cancelled:                "cancelled",
	CancelledAwaitingReturn:  "cancelled-awaiting-return",
	CancelledReturned:        "cancelled-returned",
	ExchangeAwaitingSchedule: "exchange-awaiting-schedule",
	ExchangeAwaitingPickup:   "exchange-awaiting-pickup",
	ExchangeInTransit:        "exchange-in-transit",
	ExchangeAwaitingReturn:   "exchange-awaiting-return",
	ExchangeReturned:         "exchange-returned",
	ExchangeCancelled:        "exchange-cancelled",
}

// AllStatuses lists every valid status in declaration order.
func AllStatuses() []Status {
	statuses := make([]Status, 0, len(statusNames))
	for s := AwaitingSchedule; s <= ExchangeCancelled; s++ {
		statuses = append(statuses, s)
	}
	return statuses
}

// ParseStatus maps a wire identifier such as "in-transit" back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Flow returns the flow graph the status belongs to.
func (s Status) Flow() Flow {
	switch s {
	case AwaitingSchedule, ScheduledForPickup, Pending, Assigned, PickedUp, InTransit, Delivered:
		return MainFlow
	case Rejected, RejectedAwaitingReturn, RejectedReturned:
		return RejectFlow
	case Cancelled, CancelledAwaitingReturn, CancelledReturned:
		return CancelFlow
	case DeliveredAwaitingReturn:
		return PartialFlow
	case ExchangeAwaitingSchedule, ExchangeAwaitingPickup, ExchangeInTransit,
		ExchangeAwaitingReturn, ExchangeReturned, ExchangeCancelled:
		return ExchangeFlow
	case Unknown:
		return UnknownFlow
	}
	return UnknownFlow
}

// RequiresDriver reports whether a parcel may only enter s with a bound driver.
func (s Status) RequiresDriver() bool {
	switch s {
	case Assigned, PickedUp, InTransit, Delivered, DeliveredAwaitingReturn, ExchangeAwaitingReturn:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether a driver may be bound or rebound in s.
func (s Status) IsAssignable() bool {
	switch s {
	case Pending, Assigned, PickedUp, InTransit, ExchangeInTransit:
		return true
	default:
		return false
	}
}

// IsPrePickup reports whether a parcel in s may be attached to a pickup.
func (s Status) IsPrePickup() bool {
	return s == AwaitingSchedule || s == ExchangeAwaitingSchedule
}

// IsScheduled reports whether a parcel in s is waiting for its pickup.
func (s Status) IsScheduled() bool {
	return s == ScheduledForPickup || s == ExchangeAwaitingPickup
}

// IsActive reports whether a driver holding a parcel in s still has work to
// do on it. Used to derive a driver's active assignment count.
func (s Status) IsActive() bool {
	switch s {
	case Assigned, PickedUp, InTransit, RejectedAwaitingReturn, CancelledAwaitingReturn,
		ExchangeInTransit, ExchangeAwaitingReturn:
		return true
	default:
		return false
	}
}

// ActiveStatuses lists the statuses for which IsActive is true.
func ActiveStatuses() []Status {
	var active []Status
	for _, s := range AllStatuses() {
		if s.IsActive() {
			active = append(active, s)
		}
	}
	return active
}
