package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes; the domain
// events of tracked aggregates are published only after a successful
// Commit and are dropped on Rollback.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	ShopRepository() ShopRepository
	MoneyTransactionRepository() MoneyTransactionRepository
	DriverRepository() DriverRepository
	PickupRepository() PickupRepository
}
