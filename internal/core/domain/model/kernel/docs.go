// Package kernel provides the shared building blocks of the last-mile domain
// model.
//
// The package includes:
//   - UUID: identity of every aggregate
//   - Money: a non-negative, cent-rounded amount backed by shopspring/decimal
//   - Role: the kind of actor issuing a request (admin, shop, driver, system)
//   - DomainEvent and EventRecorder: change notifications buffered on
//     aggregates and published after commit
//
// All value objects are immutable and safe for concurrent use.
package kernel
