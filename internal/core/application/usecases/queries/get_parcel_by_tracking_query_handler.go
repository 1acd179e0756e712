package queries

import (
	"context"
	"database/sql"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TrackingCache remembers which parcel a tracking number belongs to. The
// mapping never changes once a parcel exists, so entries need no
// invalidation.
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error)
	Put(ctx context.Context, trackingNumber string, parcelID kernel.UUID) error
}

// GetParcelByTrackingQueryHandler resolves the tracking number to a parcel
// id, through the cache when one is configured, and then reads the parcel.
// A failing cache is logged and falls back to the database.
type GetParcelByTrackingQueryHandler struct {
	db     *gorm.DB
	cache  TrackingCache
	parcel GetParcelQueryHandler
	logger logrus.FieldLogger
}

// NewGetParcelByTrackingQueryHandler accepts a nil cache.
func NewGetParcelByTrackingQueryHandler(db *gorm.DB, cache TrackingCache, logger logrus.FieldLogger) GetParcelByTrackingQueryHandler {
	return GetParcelByTrackingQueryHandler{
		db:     db,
		cache:  cache,
		parcel: NewGetParcelQueryHandler(db),
		logger: logger,
	}
}

func (h GetParcelByTrackingQueryHandler) Handle(ctx context.Context, query GetParcelByTrackingQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	id, err := h.resolve(ctx, query.TrackingNumber())
	if err != nil {
		return ParcelView{}, err
	}

	byID, err := NewGetParcelQuery(id)
	if err != nil {
		return ParcelView{}, err
	}
	return h.parcel.Handle(ctx, byID)
}

func (h GetParcelByTrackingQueryHandler) resolve(ctx context.Context, trackingNumber string) (kernel.UUID, error) {
	if h.cache != nil {
		id, ok, err := h.cache.Get(ctx, trackingNumber)
		if err != nil {
			h.logger.WithError(err).WithField("tracking_number", trackingNumber).Warn("failed to read tracking cache")
		} else if ok {
			return id, nil
		}
	}

	var raw uuid.UUID
	err := h.db.WithContext(ctx).
		Raw(`SELECT id FROM parcels WHERE tracking_number = ?`, trackingNumber).
		Row().
		Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, errs.NewObjectNotFoundError("tracking number", trackingNumber)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, err
	}
	if h.cache != nil {
		if err = h.cache.Put(ctx, trackingNumber, id); err != nil {
			h.logger.WithError(err).WithField("tracking_number", trackingNumber).Warn("failed to write tracking cache")
		}
	}
	return id, nil
}
