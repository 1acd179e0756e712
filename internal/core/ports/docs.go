// Package ports defines the contracts between the application core and its
// adapters: repositories for every aggregate, the unit of work that binds
// them to one transaction, the keyed locker and the domain event publisher.
package ports
