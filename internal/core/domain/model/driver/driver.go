package driver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

const EventAvailabilityChanged = "driver.availability_changed"

// Driver is a delivery agent that parcels and pickups are dispatched to.
//
// assignedToday and totalAssigned only grow (assignedToday is reset by the
// daily job). The number of parcels the driver currently works on is not
// stored: repositories derive it from the parcels themselves.
type Driver struct {
	id            kernel.UUID
	name          string
	workingArea   string
	isApproved    bool
	isAvailable   bool
	assignedToday int
	totalAssigned int
	version       int64

	kernel.EventRecorder
	guard guard.ConstructorGuard
}

// NewDriver registers a driver. New drivers are available but not approved;
// an admin must approve them before dispatch.
func NewDriver(id kernel.UUID, name, workingArea string) (*Driver, error) {
	d := &Driver{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}
	d.workingArea = strings.TrimSpace(workingArea)
	return d, nil
}

// RestoreDriver rebuilds a driver read back from storage.
func RestoreDriver(
	id kernel.UUID,
	name, workingArea string,
	isApproved, isAvailable bool,
	assignedToday, totalAssigned int,
	version int64,
) (*Driver, error) {
	d, err := NewDriver(id, name, workingArea)
	if err != nil {
		return nil, err
	}
	if assignedToday < 0 || totalAssigned < 0 || assignedToday > totalAssigned {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"assignment counters",
			fmt.Errorf("today %d, total %d", assignedToday, totalAssigned),
		)
	}
	d.isApproved = isApproved
	d.isAvailable = isAvailable
	d.assignedToday = assignedToday
	d.totalAssigned = totalAssigned
	d.version = version
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID          { return d.id }
func (d *Driver) Name() string             { return d.name }
func (d *Driver) WorkingArea() string      { return d.workingArea }
func (d *Driver) IsApproved() bool         { return d.isApproved }
func (d *Driver) IsAvailable() bool        { return d.isAvailable }
func (d *Driver) AssignedToday() int       { return d.assignedToday }
func (d *Driver) TotalAssigned() int       { return d.totalAssigned }
func (d *Driver) Version() int64           { return d.version }
func (d *Driver) SetVersion(version int64) { d.version = version }

func (d *Driver) Approve() {
	d.isApproved = true
}

func (d *Driver) SetAvailability(available bool, now time.Time) {
	if d.isAvailable == available {
		return
	}
	d.isAvailable = available
	d.Record(kernel.DomainEvent{
		Name:       EventAvailabilityChanged,
		SubjectID:  d.id,
		Attribute:  "isAvailable",
		OldValue:   strconv.FormatBool(!available),
		NewValue:   strconv.FormatBool(available),
		OccurredAt: now,
	})
}

// EnsureDispatchable fails with ErrDriverUnavailable unless the driver is
// both approved and available.
func (d *Driver) EnsureDispatchable() error {
	if !d.isApproved {
		return errs.NewRuleViolationError(errs.ErrDriverUnavailable, "driver", "not approved")
	}
	if !d.isAvailable {
		return errs.NewRuleViolationError(errs.ErrDriverUnavailable, "driver", "not available")
	}
	return nil
}

// RecordAssignment bumps the assignment counters. Callers hold the driver
// lock so concurrent assignments never lose an increment.
func (d *Driver) RecordAssignment() {
	d.assignedToday++
	d.totalAssigned++
}

// ResetDailyCounter starts a new working day.
func (d *Driver) ResetDailyCounter() {
	d.assignedToday = 0
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}
