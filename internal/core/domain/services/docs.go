// Package services provides domain services for the rules that span more than
// one aggregate.
//
// The package includes:
//   - LedgerPoster: maps parcel transitions to shop ledger entries
//   - DriverDispatcher: binds drivers to parcels and pickups
//   - LedgerReconciler: recomputes shop balances from the transaction log
//
// Services are stateless values; they mutate the aggregates passed in and
// leave persistence to the application layer.
package services
