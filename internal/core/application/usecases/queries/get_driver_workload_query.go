package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetDriverWorkloadQueryIsNotConstructed = errors.New(
	"GetDriverWorkloadQuery must be created via NewGetDriverWorkloadQuery constructor",
)

// GetDriverWorkloadQuery reads a driver's counters together with the number
// of parcels currently active with them. The active count is derived, never
// stored.
type GetDriverWorkloadQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverWorkloadQuery(driverID kernel.UUID) (GetDriverWorkloadQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverWorkloadQuery{}, err
	}
	return GetDriverWorkloadQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverWorkloadQueryIsNotConstructed)
}

func (q GetDriverWorkloadQuery) DriverID() kernel.UUID { return q.driverID }

type DriverWorkloadView struct {
	DriverID          kernel.UUID
	Name              string
	WorkingArea       string
	IsApproved        bool
	IsAvailable       bool
	AssignedToday     int
	TotalAssigned     int
	ActiveAssignCount int
}
