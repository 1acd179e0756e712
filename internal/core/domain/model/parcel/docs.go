// Package parcel implements the Parcel aggregate and its lifecycle state
// machine. A parcel is what the business calls a "package"; the Go keyword
// forces the different name.
//
// The package includes:
//   - Parcel: the aggregate root holding identity, money amounts, item lines,
//     notes and the current State
//   - State: the tagged union {Flow, Status} with a total successor function
//   - the five flows: main delivery, rejection, cancellation, partial
//     delivery and exchange
//
// Key business rules:
//   - Advance follows the unique successor of the current (flow, status)
//   - flows are entered only by Reject, Cancel and RecordPartialDelivery
//   - reaching assigned or any later main-flow status needs a bound driver
//   - rejection shipping payments are clamped to [0, deliveryCost]
//   - partial delivery quantities are bounded by the original quantities
//
// The aggregate records a domain event for every status and driver change;
// ledger consequences are applied by services.LedgerPoster.
package parcel
