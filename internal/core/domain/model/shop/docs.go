// Package shop holds the per-shop ledger: the Shop aggregate with its
// materialized balances and the immutable MoneyTransaction rows that are the
// source of truth for them.
//
// Balances:
//   - ToCollect: COD the platform expects to collect for the shop
//   - TotalCollected: COD cash held by the platform and owed to the shop
//   - Settled: cumulative payouts
//   - Revenue: shipping fees recognized by the platform
//
// Debits are checked before any write, so a refused operation never needs a
// compensating entry.
package shop
