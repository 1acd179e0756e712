package parcel

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Flow is one of the five disjoint transition graphs a parcel can follow.
type Flow int

const (
	UnknownFlow Flow = iota
	MainFlow
	RejectFlow
	CancelFlow
	PartialFlow
	ExchangeFlow
)

func (f Flow) String() string {
	switch f {
	case MainFlow:
		return "main"
	case RejectFlow:
		return "reject"
	case CancelFlow:
		return "cancel"
	case PartialFlow:
		return "partial"
	case ExchangeFlow:
		return "exchange"
	case UnknownFlow:
		return "unknown"
	}
	return "unknown"
}

// State is the tagged union {flow, status}. The successor function is keyed
// by the pair, so a status that reads the same in two flows can never be
// advanced along the wrong graph.
//
//	main:     awaiting_schedule -> scheduled_for_pickup -> pending -> assigned
//	          -> pickedup -> in-transit -> delivered
//	reject:   rejected -> rejected-awaiting-return -> rejected-returned
//	cancel:   cancelled | cancelled-awaiting-return -> cancelled-returned
//	partial:  delivered-awaiting-return
//	exchange: exchange-awaiting-schedule -> exchange-awaiting-pickup
//	          -> exchange-in-transit -> exchange-awaiting-return -> exchange-returned
//	          | exchange-cancelled
//
// Flows are entered only through the dedicated operations (Reject, Cancel,
// RecordPartialDelivery); Next never crosses from one flow into another.
type State struct {
	flow   Flow
	status Status
}

// NewState pairs flow and status, rejecting pairs that do not belong together.
func NewState(flow Flow, status Status) (State, error) {
	if err := status.Validate(); err != nil {
		return State{}, err
	}
	if status.Flow() != flow {
		return State{}, errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%s does not belong to the %s flow", status, flow),
		)
	}
	return State{flow: flow, status: status}, nil
}

// StateOf builds the state of a valid status. It panics on Unknown, so it is
// reserved for literals known at compile time.
func StateOf(status Status) State {
	s, err := NewState(status.Flow(), status)
	if err != nil {
		panic(err)
	}
	return s
}

func (s State) Flow() Flow {
	return s.flow
}

func (s State) Status() Status {
	return s.status
}

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.flow, s.status)
}

func (s State) IsZero() bool {
	return s.flow == UnknownFlow && s.status == Unknown
}

// IsTerminal reports whether s has no successor within its flow.
func (s State) IsTerminal() bool {
	_, ok := successor(s)
	return !ok
}

// Next returns the unique successor of s, or ErrInvalidTransition when s is
// terminal or unrecognized.
func (s State) Next() (State, error) {
	next, ok := successor(s)
	if !ok {
		return State{}, errs.NewRuleViolationError(
			errs.ErrInvalidTransition,
			"parcel",
			fmt.Sprintf("%s has no successor", s.status),
		)
	}
	return next, nil
}

// successor is the total function over every (flow, status) pair.
//
//nolint:exhaustive,cyclop // each flow lists only its own statuses
func successor(s State) (State, bool) {
	switch s.flow {
	case MainFlow:
		switch s.status {
		case AwaitingSchedule:
			return State{MainFlow, ScheduledForPickup}, true
		case ScheduledForPickup:
			return State{MainFlow, Pending}, true
		case Pending:
			return State{MainFlow, Assigned}, true
		case Assigned:
			return State{MainFlow, PickedUp}, true
		case PickedUp:
			return State{MainFlow, InTransit}, true
		case InTransit:
			return State{MainFlow, Delivered}, true
		case Delivered:
			return State{}, false
		}
	case RejectFlow:
		switch s.status {
		case Rejected:
			return State{RejectFlow, RejectedAwaitingReturn}, true
		case RejectedAwaitingReturn:
			return State{RejectFlow, RejectedReturned}, true
		case RejectedReturned:
			return State{}, false
		}
	case CancelFlow:
		switch s.status {
		case CancelledAwaitingReturn:
			return State{CancelFlow, CancelledReturned}, true
		case Cancelled, CancelledReturned:
			return State{}, false
		}
	case PartialFlow:
		return State{}, false
	case ExchangeFlow:
		switch s.status {
		case ExchangeAwaitingSchedule:
			return State{ExchangeFlow, ExchangeAwaitingPickup}, true
		case ExchangeAwaitingPickup:
			return State{ExchangeFlow, ExchangeInTransit}, true
		case ExchangeInTransit:
			return State{ExchangeFlow, ExchangeAwaitingReturn}, true
		case ExchangeAwaitingReturn:
			return State{ExchangeFlow, ExchangeReturned}, true
		case ExchangeReturned, ExchangeCancelled:
			return State{}, false
		}
	case UnknownFlow:
		return State{}, false
	}
	return State{}, false
}

// branches lists the cross-flow entry edges taken by Reject, Cancel and
// RecordPartialDelivery from s.
//
//nolint:exhaustive // only statuses with an entry edge are listed
func branches(s State) []State {
	if s.flow == ExchangeFlow {
		switch s.status {
		case ExchangeAwaitingSchedule, ExchangeAwaitingPickup:
			return []State{{ExchangeFlow, ExchangeCancelled}}
		}
		return nil
	}
	if s.flow != MainFlow {
		return nil
	}

	switch s.status {
	case AwaitingSchedule, ScheduledForPickup:
		return []State{{CancelFlow, Cancelled}}
	case Pending, Assigned:
		return []State{{RejectFlow, Rejected}, {CancelFlow, CancelledAwaitingReturn}}
	case PickedUp:
		return []State{{RejectFlow, Rejected}, {RejectFlow, RejectedAwaitingReturn}}
	case InTransit:
		return []State{
			{RejectFlow, Rejected},
			{RejectFlow, RejectedAwaitingReturn},
			{PartialFlow, DeliveredAwaitingReturn},
		}
	}
	return nil
}

// CanReach reports whether to is reachable from from by forward moves only:
// successor steps plus flow entry edges. A state reaches itself.
func CanReach(from, to State) bool {
	seen := map[State]bool{}
	queue := []State{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == to {
			return true
		}
		if seen[current] {
			continue
		}
		seen[current] = true

		if next, ok := successor(current); ok {
			queue = append(queue, next)
		}
		queue = append(queue, branches(current)...)
	}
	return false
}
