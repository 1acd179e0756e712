package postgres

import (
	"lastmile/internal/adapters/out/postgres/driverrepo"
	"lastmile/internal/adapters/out/postgres/parcelrepo"
	"lastmile/internal/adapters/out/postgres/pickuprepo"
	"lastmile/internal/adapters/out/postgres/shoprepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the repositories, in creation order.
func Models() []any {
	return []any{
		&shoprepo.ShopDTO{},
		&shoprepo.MoneyTransactionDTO{},
		&driverrepo.DriverDTO{},
		&pickuprepo.PickupDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.ParcelItemDTO{},
		&parcelrepo.ParcelNoteDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Tables lists the table names for test cleanup.
func Tables() string {
	return "parcel_notes, parcel_items, parcels, pickups, drivers, money_transactions, shops"
}
