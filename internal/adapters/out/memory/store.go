// Package memory is an in-process implementation of the unit of work and
// repositories. Writes are staged per unit of work and applied atomically on
// Commit under the same version rules as the PostgreSQL adapter. It backs the
// application scenario tests.
package memory

import (
	"fmt"
	"sync"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/pickup"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"
)

type versioned interface {
	ID() kernel.UUID
	Version() int64
	SetVersion(version int64)
}

// Store is the committed state shared by every unit of work of a factory.
type Store struct {
	mu      sync.RWMutex
	parcels table[*parcel.Parcel]
	shops   table[*shop.Shop]
	drivers table[*driver.Driver]
	pickups table[*pickup.Pickup]
	ledger  []*shop.MoneyTransaction
}

func NewStore() *Store {
	return &Store{
		parcels: newTable("parcel", cloneParcel),
		shops:   newTable("shop", cloneShop),
		drivers: newTable("driver", cloneDriver),
		pickups: newTable("pickup", clonePickup),
	}
}

// table holds committed copies of one aggregate type. Rows never leave the
// table without being cloned.
type table[T versioned] struct {
	subject string
	rows    map[kernel.UUID]T
	clone   func(T) (T, error)
}

func newTable[T versioned](subject string, clone func(T) (T, error)) table[T] {
	return table[T]{subject: subject, rows: make(map[kernel.UUID]T), clone: clone}
}

// changes are the writes one unit of work staged against a table.
type changes[T versioned] struct {
	added    map[kernel.UUID]T
	updated  map[kernel.UUID]T
	expected map[kernel.UUID]int64
	deleted  map[kernel.UUID]bool
}

func newChanges[T versioned]() changes[T] {
	return changes[T]{
		added:    make(map[kernel.UUID]T),
		updated:  make(map[kernel.UUID]T),
		expected: make(map[kernel.UUID]int64),
		deleted:  make(map[kernel.UUID]bool),
	}
}

func (c *changes[T]) empty() bool {
	return len(c.added) == 0 && len(c.updated) == 0 && len(c.deleted) == 0
}

// lookup returns the row visible to the unit of work: staged first, then
// committed. The result is a private copy.
func (c *changes[T]) lookup(t *table[T], id kernel.UUID) (T, bool, error) {
	var zero T
	if c.deleted[id] {
		return zero, false, nil
	}
	if row, ok := c.added[id]; ok {
		clone, err := t.clone(row)
		return clone, err == nil, err
	}
	if row, ok := c.updated[id]; ok {
		clone, err := t.clone(row)
		return clone, err == nil, err
	}
	if row, ok := t.rows[id]; ok {
		clone, err := t.clone(row)
		return clone, err == nil, err
	}
	return zero, false, nil
}

// visible lists every row the unit of work can see, as private copies.
func (c *changes[T]) visible(t *table[T]) ([]T, error) {
	seen := make(map[kernel.UUID]bool)
	var out []T
	collect := func(id kernel.UUID) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		row, ok, err := c.lookup(t, id)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, row)
		}
		return nil
	}
	for id := range c.added {
		if err := collect(id); err != nil {
			return nil, err
		}
	}
	for id := range c.updated {
		if err := collect(id); err != nil {
			return nil, err
		}
	}
	for id := range t.rows {
		if err := collect(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *changes[T]) add(t *table[T], row T) error {
	id := row.ID()
	if _, ok := t.rows[id]; ok {
		return errs.NewObjectAlreadyExistsError(t.subject, id.String())
	}
	if _, ok := c.added[id]; ok {
		return errs.NewObjectAlreadyExistsError(t.subject, id.String())
	}
	clone, err := t.clone(row)
	if err != nil {
		return err
	}
	delete(c.deleted, id)
	c.added[id] = clone
	return nil
}

// update stages row if its version matches the visible one and bumps the
// version of both the staged copy and row.
func (c *changes[T]) update(t *table[T], row T) error {
	id := row.ID()
	current, ok, err := c.lookup(t, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewObjectNotFoundError(t.subject, id.String())
	}
	if current.Version() != row.Version() {
		return staleVersion(t.subject, id, row.Version())
	}

	clone, err := t.clone(row)
	if err != nil {
		return err
	}
	clone.SetVersion(row.Version() + 1)

	if _, isNew := c.added[id]; isNew {
		c.added[id] = clone
	} else {
		if _, tracked := c.expected[id]; !tracked {
			c.expected[id] = row.Version()
		}
		c.updated[id] = clone
	}
	row.SetVersion(row.Version() + 1)
	return nil
}

func (c *changes[T]) remove(t *table[T], id kernel.UUID) error {
	if _, ok, err := c.lookup(t, id); err != nil {
		return err
	} else if !ok {
		return errs.NewObjectNotFoundError(t.subject, id.String())
	}
	if _, isNew := c.added[id]; isNew {
		delete(c.added, id)
		return nil
	}
	if _, tracked := c.expected[id]; !tracked {
		if row, ok := t.rows[id]; ok {
			c.expected[id] = row.Version()
		}
	}
	delete(c.updated, id)
	c.deleted[id] = true
	return nil
}

// check verifies nobody committed a conflicting write since the rows were
// staged. Callers hold the store write lock.
func (c *changes[T]) check(t *table[T]) error {
	for id := range c.added {
		if _, ok := t.rows[id]; ok {
			return errs.NewObjectAlreadyExistsError(t.subject, id.String())
		}
	}
	for id, version := range c.expected {
		row, ok := t.rows[id]
		if !ok {
			return errs.NewObjectNotFoundError(t.subject, id.String())
		}
		if row.Version() != version {
			return staleVersion(t.subject, id, version)
		}
	}
	return nil
}

func (c *changes[T]) apply(t *table[T]) {
	for id, row := range c.added {
		t.rows[id] = row
	}
	for id, row := range c.updated {
		t.rows[id] = row
	}
	for id := range c.deleted {
		delete(t.rows, id)
	}
}

func staleVersion(subject string, id kernel.UUID, version int64) error {
	return errs.NewRuleViolationError(
		errs.ErrConcurrentModification,
		subject,
		fmt.Sprintf("%s was changed by another operation (expected version %d)", id, version),
	)
}

func cloneParcel(p *parcel.Parcel) (*parcel.Parcel, error) {
	return parcel.RestoreParcel(p.Snapshot())
}

func cloneShop(s *shop.Shop) (*shop.Shop, error) {
	return shop.RestoreShop(s.ID(), s.Name(), s.ShippingFees(), s.IsApproved(), s.Balances(), s.Version())
}

func cloneDriver(d *driver.Driver) (*driver.Driver, error) {
	return driver.RestoreDriver(
		d.ID(),
		d.Name(),
		d.WorkingArea(),
		d.IsApproved(),
		d.IsAvailable(),
		d.AssignedToday(),
		d.TotalAssigned(),
		d.Version(),
	)
}

func clonePickup(p *pickup.Pickup) (*pickup.Pickup, error) {
	return pickup.RestorePickup(
		p.ID(),
		p.ShopID(),
		p.ScheduledTime(),
		p.Address(),
		p.Status(),
		p.Driver(),
		p.ParcelIDs(),
		p.ActualPickupTime(),
		p.Version(),
	)
}
