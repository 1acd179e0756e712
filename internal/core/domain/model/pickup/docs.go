// Package pickup provides the Pickup aggregate: one scheduled collection of
// a shop's parcels by a single driver.
package pickup
