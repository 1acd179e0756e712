package queries

import (
	"errors"
	"strings"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrGetParcelByTrackingQueryIsNotConstructed = errors.New(
	"GetParcelByTrackingQuery must be created via NewGetParcelByTrackingQuery constructor",
)

// GetParcelByTrackingQuery is the public lookup by tracking number.
type GetParcelByTrackingQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewGetParcelByTrackingQuery(trackingNumber string) (GetParcelByTrackingQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return GetParcelByTrackingQuery{}, errs.NewValueIsRequiredError("tracking number")
	}
	return GetParcelByTrackingQuery{trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelByTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelByTrackingQueryIsNotConstructed)
}

func (q GetParcelByTrackingQuery) TrackingNumber() string { return q.trackingNumber }
