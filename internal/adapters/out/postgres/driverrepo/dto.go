// Package driverrepo persists driver aggregates.
package driverrepo

import (
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	WorkingArea   string    `gorm:"type:varchar(255)"`
	IsApproved    bool      `gorm:"not null"`
	IsAvailable   bool      `gorm:"not null"`
	AssignedToday int       `gorm:"not null"`
	TotalAssigned int       `gorm:"not null"`
	Version       int64     `gorm:"not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:            d.ID().Bytes(),
		Name:          d.Name(),
		WorkingArea:   d.WorkingArea(),
		IsApproved:    d.IsApproved(),
		IsAvailable:   d.IsAvailable(),
		AssignedToday: d.AssignedToday(),
		TotalAssigned: d.TotalAssigned(),
		Version:       d.Version(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.WorkingArea,
		dto.IsApproved,
		dto.IsAvailable,
		dto.AssignedToday,
		dto.TotalAssigned,
		dto.Version,
	)
}
