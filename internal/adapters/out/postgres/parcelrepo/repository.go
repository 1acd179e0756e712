package parcelrepo

import (
	"context"

	"lastmile/internal/adapters/out/postgres/dbutil"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel with its lines and notes.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dbutil.TranslateError(err, "parcel", aggregate.TrackingNumber())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parcel row under the version guard and replaces its
// child rows.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = expected + 1

	if err := dbutil.UpdateVersioned(ctx, r.db, "parcel", dto.ID, expected, &dto); err != nil {
		return err
	}
	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	aggregate.SetVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) replaceChildren(ctx context.Context, dto ParcelDTO) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("parcel_id = ?", dto.ID).Delete(&ParcelItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("parcel_id = ?", dto.ID).Delete(&ParcelNoteDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Notes) > 0 {
		if err := db.Create(&dto.Notes).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dbutil.TranslateError(err, "parcel", id.String())
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) GetByTracking(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	var dto ParcelDTO
	if err := r.withChildren(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		return nil, dbutil.TranslateError(err, "parcel", trackingNumber)
	}

	return toDomain(dto)
}

// ListByPickup returns the parcels attached to pickupID, ordered by id.
func (r *GormParcelRepository) ListByPickup(ctx context.Context, pickupID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := pickupID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.withChildren(ctx).Order("id").Find(&dtos, "pickup_id = ?", pickupID.Bytes()).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

// CountActiveByDriver counts the parcels a driver still has work on.
func (r *GormParcelRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), activeStatusCodes()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormParcelRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("kind, position") }).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func activeStatusCodes() []int {
	active := parcel.ActiveStatuses()
	codes := make([]int, 0, len(active))
	for _, s := range active {
		codes = append(codes, int(s))
	}
	return codes
}
