package commands_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testShop(t *testing.T, fee string) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(kernel.NewUUID(), "Corner Shop", money(t, fee))
	require.NoError(t, err)
	return s
}

func testDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.NewUUID(), "Sam", "downtown", true, true, 0, 0, 1)
	require.NoError(t, err)
	return d
}

// pendingParcel returns a pending parcel of s with its COD booked.
func pendingParcel(t *testing.T, s *shop.Shop, cod, cost string) *parcel.Parcel {
	t.Helper()
	line, err := parcel.NewItemLine("sneakers", 2)
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-"+kernel.NewUUID().String()[:8], s.ID(),
		money(t, cod), money(t, cost), []parcel.ItemLine{line}, parcel.Pending, time.Now())
	require.NoError(t, err)
	_, err = services.NewLedgerPoster().Book(p, s, time.Now())
	require.NoError(t, err)
	return p
}

// parcelAt drives a booked pending parcel forward until it reaches status.
func parcelAt(t *testing.T, s *shop.Shop, status parcel.Status) *parcel.Parcel {
	t.Helper()
	p := pendingParcel(t, s, "100", "30")
	require.NoError(t, p.BindDriver(kernel.NewUUID(), time.Now()))
	for p.Status() != status {
		_, err := p.Advance(kernel.RoleAdmin, time.Now())
		require.NoError(t, err)
	}
	p.PullEvents()
	s.PullEvents()
	return p
}
