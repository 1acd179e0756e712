// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, locking, transaction
// management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ShopRepoFactory provides access to shop repository within a transaction.
	ShopRepoFactory interface {
		ShopRepository() ports.ShopRepository
	}

	// LedgerRepoFactory provides access to the money transaction log within a
	// transaction.
	LedgerRepoFactory interface {
		MoneyTransactionRepository() ports.MoneyTransactionRepository
	}

	// DriverRepoFactory provides access to driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// PickupRepoFactory provides access to pickup repository within a transaction.
	PickupRepoFactory interface {
		PickupRepository() ports.PickupRepository
	}

	// ParcelUoW manages transactions for parcel-only operations.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// ParcelLedgerUoW is used by every parcel transition: the parcel, its
	// shop balances and the ledger rows change in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().Get(ctx, id)
	//   s, err := uow.ShopRepository().Get(ctx, p.ShopID())
	//   // ... transition, post to the ledger
	//
	//   err = uow.Commit(ctx)
	ParcelLedgerUoW interface {
		TxManager
		ParcelRepoFactory
		ShopRepoFactory
		LedgerRepoFactory
	}

	ParcelLedgerUoWFactory interface {
		Create() ParcelLedgerUoW
	}

	// DispatchUoW binds drivers to parcels and pickups.
	DispatchUoW interface {
		TxManager
		ParcelRepoFactory
		DriverRepoFactory
		PickupRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// LedgerUoW manages transactions for shop balance operations.
	LedgerUoW interface {
		TxManager
		ShopRepoFactory
		LedgerRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// PickupUoW is used by the pickup aggregator, which moves a pickup and
	// all of its parcels together and books their COD.
	PickupUoW interface {
		TxManager
		ParcelRepoFactory
		PickupRepoFactory
		ShopRepoFactory
		LedgerRepoFactory
	}

	PickupUoWFactory interface {
		Create() PickupUoW
	}
)
