package memory

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []kernel.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newFactory(t *testing.T) (*UnitOfWorkFactory, *recordingPublisher) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	publisher := &recordingPublisher{}
	return NewUnitOfWorkFactory(NewStore(), publisher, logger), publisher
}

func newShop(t *testing.T) *shop.Shop {
	t.Helper()
	fees, err := kernel.MoneyFromString("10")
	require.NoError(t, err)
	s, err := shop.NewShop(kernel.NewUUID(), "Corner Books", fees)
	require.NoError(t, err)
	return s
}

func Test_UnitOfWork_WritesAreInvisibleUntilCommit(t *testing.T) {
	ctx := t.Context()
	factory, publisher := newFactory(t)
	s := newShop(t)

	writer := factory.Create()
	require.NoError(t, writer.Begin(ctx))
	require.NoError(t, writer.ShopRepository().Add(ctx, s))

	_, err := writer.ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)

	_, err = factory.Create().ShopRepository().Get(ctx, s.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, writer.Commit(ctx))

	got, err := factory.Create().ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "Corner Books", got.Name())
	assert.Empty(t, publisher.events)
}

func Test_UnitOfWork_RollbackDiscardsStagedWrites(t *testing.T) {
	ctx := t.Context()
	factory, _ := newFactory(t)
	s := newShop(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShopRepository().Add(ctx, s))
	require.NoError(t, uow.Rollback(ctx))

	_, err := factory.Create().ShopRepository().Get(ctx, s.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, uow.Rollback(ctx), ErrNoTransaction)
}

func Test_UnitOfWork_StaleVersionFailsAtUpdate(t *testing.T) {
	ctx := t.Context()
	factory, _ := newFactory(t)
	s := newShop(t)
	require.NoError(t, factory.Create().ShopRepository().Add(ctx, s))

	first, err := factory.Create().ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)
	second, err := factory.Create().ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)

	first.Approve()
	require.NoError(t, factory.Create().ShopRepository().Update(ctx, first))
	assert.Equal(t, int64(1), first.Version())

	second.Approve()
	err = factory.Create().ShopRepository().Update(ctx, second)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func Test_UnitOfWork_ConflictingCommitFailsAsAWhole(t *testing.T) {
	ctx := t.Context()
	factory, _ := newFactory(t)
	s := newShop(t)
	require.NoError(t, factory.Create().ShopRepository().Add(ctx, s))

	a := factory.Create()
	b := factory.Create()
	require.NoError(t, a.Begin(ctx))
	require.NoError(t, b.Begin(ctx))

	sa, err := a.ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)
	sb, err := b.ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)

	amount, err := kernel.MoneyFromString("50")
	require.NoError(t, err)

	row, err := sa.Credit(shop.TotalCollected, amount, "cod", nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, a.ShopRepository().Update(ctx, sa))
	require.NoError(t, a.MoneyTransactionRepository().Add(ctx, row))

	row, err = sb.Credit(shop.TotalCollected, amount, "cod", nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, b.ShopRepository().Update(ctx, sb))
	require.NoError(t, b.MoneyTransactionRepository().Add(ctx, row))

	require.NoError(t, a.Commit(ctx))
	require.ErrorIs(t, b.Commit(ctx), errs.ErrConcurrentModification)

	reader := factory.Create()
	got, err := reader.ShopRepository().Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.Balance(shop.TotalCollected).String())

	rows, err := reader.MoneyTransactionRepository().ListByShop(ctx, s.ID())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func Test_UnitOfWork_PublishesEventsAfterCommit(t *testing.T) {
	ctx := t.Context()
	factory, publisher := newFactory(t)
	s := newShop(t)
	require.NoError(t, factory.Create().ShopRepository().Add(ctx, s))

	amount, err := kernel.MoneyFromString("5")
	require.NoError(t, err)
	_, err = s.Credit(shop.Revenue, amount, "fee", nil, time.Now())
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ShopRepository().Update(ctx, s))
	assert.Empty(t, publisher.events)

	require.NoError(t, uow.Commit(ctx))
	require.Len(t, publisher.events, 1)
	assert.Equal(t, shop.EventBalanceChanged, publisher.events[0].Name)
}

func Test_ParcelRepository_TrackingNumberIsUnique(t *testing.T) {
	ctx := t.Context()
	factory, _ := newFactory(t)
	s := newShop(t)

	first := newParcel(t, s, "TRK-1")
	second := newParcel(t, s, "TRK-1")

	require.NoError(t, factory.Create().ParcelRepository().Add(ctx, first))
	err := factory.Create().ParcelRepository().Add(ctx, second)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	got, err := factory.Create().ParcelRepository().GetByTracking(ctx, "TRK-1")
	require.NoError(t, err)
	assert.True(t, got.IsEqual(first))
}

func Test_ParcelRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	factory, _ := newFactory(t)
	s := newShop(t)
	p := newParcel(t, s, "TRK-2")
	require.NoError(t, factory.Create().ParcelRepository().Add(ctx, p))

	got, err := factory.Create().ParcelRepository().Get(ctx, p.ID())
	require.NoError(t, err)
	require.NoError(t, got.AddNote("fragile", kernel.RoleAdmin, time.Now()))

	again, err := factory.Create().ParcelRepository().Get(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, again.Notes())
}

func newParcel(t *testing.T, s *shop.Shop, tracking string) *parcel.Parcel {
	t.Helper()
	cod, err := kernel.MoneyFromString("100")
	require.NoError(t, err)
	cost, err := kernel.MoneyFromString("30")
	require.NoError(t, err)
	line, err := parcel.NewItemLine("book", 1)
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), tracking, s.ID(), cod, cost,
		[]parcel.ItemLine{line}, parcel.AwaitingSchedule, time.Now())
	require.NoError(t, err)
	return p
}
