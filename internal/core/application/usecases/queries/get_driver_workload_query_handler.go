package queries

import (
	"context"
	"database/sql"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriverWorkloadQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverWorkloadQueryHandler(db *gorm.DB) GetDriverWorkloadQueryHandler {
	return GetDriverWorkloadQueryHandler{db: db}
}

func (h GetDriverWorkloadQueryHandler) Handle(ctx context.Context, query GetDriverWorkloadQuery) (DriverWorkloadView, error) {
	if err := query.Validate(); err != nil {
		return DriverWorkloadView{}, err
	}

	active := make([]int, 0, len(parcel.ActiveStatuses()))
	for _, s := range parcel.ActiveStatuses() {
		active = append(active, int(s))
	}

	var (
		view        DriverWorkloadView
		id          uuid.UUID
		workingArea sql.NullString
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.working_area,
			d.is_approved,
			d.is_available,
			d.assigned_today,
			d.total_assigned,
			(SELECT COUNT(*) FROM parcels p WHERE p.driver_id = d.id AND p.status IN ?)
		FROM drivers d
		WHERE d.id = ?
	`, active, query.DriverID().String()).Row().Scan(
		&id,
		&view.Name,
		&workingArea,
		&view.IsApproved,
		&view.IsAvailable,
		&view.AssignedToday,
		&view.TotalAssigned,
		&view.ActiveAssignCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DriverWorkloadView{}, errs.NewObjectNotFoundError("driver", query.DriverID())
	}
	if err != nil {
		return DriverWorkloadView{}, err
	}

	if view.DriverID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return DriverWorkloadView{}, err
	}
	view.WorkingArea = workingArea.String
	return view, nil
}
