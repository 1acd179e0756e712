package pickup

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status of a pickup.
//
//	Scheduled ──> PickedUp ──> InStorage
type Status int

const (
	Unknown Status = iota
	Scheduled
	PickedUp
	InStorage
)

func (s Status) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case PickedUp:
		return "picked_up"
	case InStorage:
		return "in_storage"
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	for _, status := range []Status{Scheduled, PickedUp, InStorage} {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("pickup status", fmt.Errorf("%q is not a pickup status", s))
}

func (s Status) Validate() error {
	if s < Scheduled || s > InStorage {
		return errs.NewValueIsInvalidErrorWithCause("pickup status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
