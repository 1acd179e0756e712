package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetParcelQueryHandler reads a parcel and its child rows with plain SQL.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	db := h.db.WithContext(ctx)
	view, err := scanParcel(db.Raw(`
		SELECT
			id,
			tracking_number,
			shop_id,
			flow,
			status,
			driver_id,
			pickup_id,
			cod_amount,
			delivery_cost,
			is_paid,
			collected_amount,
			rejection_paid,
			rejection_method,
			is_exchange,
			created_at,
			actual_pickup_time,
			actual_delivery_time,
			version
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().String()).Row())
	if errors.Is(err, sql.ErrNoRows) {
		return ParcelView{}, errs.NewObjectNotFoundError("parcel", query.ParcelID())
	}
	if err != nil {
		return ParcelView{}, err
	}

	if view.Items, err = h.items(db, query.ParcelID()); err != nil {
		return ParcelView{}, err
	}
	if view.Notes, err = h.notes(db, query.ParcelID()); err != nil {
		return ParcelView{}, err
	}
	return view, nil
}

func scanParcel(row *sql.Row) (ParcelView, error) {
	var (
		view                                 ParcelView
		id, shopID                           uuid.UUID
		driverID, pickupID                   uuid.NullUUID
		flow, status                         int
		cod, cost, collected, rejectionPaid  decimal.Decimal
		rejectionMethod                      sql.NullString
		actualPickupTime, actualDeliveryTime sql.NullTime
	)

	err := row.Scan(
		&id,
		&view.TrackingNumber,
		&shopID,
		&flow,
		&status,
		&driverID,
		&pickupID,
		&cod,
		&cost,
		&view.IsPaid,
		&collected,
		&rejectionPaid,
		&rejectionMethod,
		&view.IsExchange,
		&view.CreatedAt,
		&actualPickupTime,
		&actualDeliveryTime,
		&view.Version,
	)
	if err != nil {
		return ParcelView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ParcelView{}, err
	}
	if view.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return ParcelView{}, err
	}
	if view.DriverID, err = nullableID(driverID); err != nil {
		return ParcelView{}, err
	}
	if view.PickupID, err = nullableID(pickupID); err != nil {
		return ParcelView{}, err
	}

	view.Flow = parcel.Flow(flow).String()
	view.Status = parcel.Status(status).String()
	view.RejectionMethod = rejectionMethod.String
	view.ActualPickupTime = nullableTime(actualPickupTime)
	view.ActualDeliveryTime = nullableTime(actualDeliveryTime)

	amounts, err := toMoney(cod, cost, collected, rejectionPaid)
	if err != nil {
		return ParcelView{}, err
	}
	view.CODAmount, view.DeliveryCost, view.CollectedAmount, view.RejectionPaid =
		amounts[0], amounts[1], amounts[2], amounts[3]

	return view, nil
}

func (h GetParcelQueryHandler) items(db *gorm.DB, parcelID kernel.UUID) ([]ItemLineView, error) {
	rows, err := db.Raw(`
		SELECT kind, description, quantity, delivered_quantity
		FROM parcel_items
		WHERE parcel_id = ?
		ORDER BY CASE kind WHEN 'line' THEN 0 WHEN 'take' THEN 1 ELSE 2 END, position
	`, parcelID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ItemLineView, 0)
	for rows.Next() {
		var (
			item      ItemLineView
			delivered sql.NullInt64
		)
		if err = rows.Scan(&item.Kind, &item.Description, &item.Quantity, &delivered); err != nil {
			return nil, err
		}
		if delivered.Valid {
			q := int(delivered.Int64)
			item.DeliveredQuantity = &q
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetParcelQueryHandler) notes(db *gorm.DB, parcelID kernel.UUID) ([]NoteView, error) {
	rows, err := db.Raw(`
		SELECT text, author_role, created_at
		FROM parcel_notes
		WHERE parcel_id = ?
		ORDER BY position
	`, parcelID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]NoteView, 0)
	for rows.Next() {
		var note NoteView
		if err = rows.Scan(&note.Text, &note.AuthorRole, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	u, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func toMoney(values ...decimal.Decimal) ([]kernel.Money, error) {
	amounts := make([]kernel.Money, 0, len(values))
	for _, v := range values {
		m, err := kernel.NewMoney(v)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, m)
	}
	return amounts, nil
}
