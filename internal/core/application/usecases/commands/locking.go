package commands

import (
	"slices"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

// Handlers take their locks in the order pickup, parcels sorted by id,
// driver, shop. A handler that learns a key only after reading (the shop of
// a parcel) takes it later, which keeps the order.

// parcelLockKeys returns the lock keys of ids, sorted and without duplicates.
func parcelLockKeys(ids []kernel.UUID) []string {
	sorted := sortedIDs(ids)
	keys := make([]string, 0, len(sorted))
	for _, id := range sorted {
		keys = append(keys, ports.ParcelLockKey(id))
	}
	return keys
}

func sortedIDs(ids []kernel.UUID) []kernel.UUID {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int { return a.Compare(b) })
	return slices.CompactFunc(sorted, func(a, b kernel.UUID) bool { return a.IsEqual(b) })
}

func now() time.Time {
	return time.Now().UTC()
}
