package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func shopWithCollected(t *testing.T, amount string) *shop.Shop {
	t.Helper()
	s, err := shop.RestoreShop(kernel.NewUUID(), "Corner Shop", money(t, "10"), true,
		shop.Balances{
			ToCollect:      kernel.ZeroMoney(),
			TotalCollected: money(t, amount),
			Settled:        kernel.ZeroMoney(),
			Revenue:        kernel.ZeroMoney(),
		}, 1)
	require.NoError(t, err)
	return s
}

func TestSettleShopCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	s := shopWithCollected(t, "100")

	cmd, err := commands.NewSettleShopCommand(s.ID(), money(t, "40"))
	require.NoError(t, err)

	shopRepo := new(MockShopRepository)
	ledgerRepo := new(MockMoneyTransactionRepository)
	uow := new(MockUoW)
	factory := new(MockLedgerUoWFactory)
	locker := new(MockLocker)

	mock.InOrder(
		locker.On("Lock", ctx, []string{ports.ShopLockKey(s.ID())}).Return(noUnlock, nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, s.ID()).Return(s, nil).Once(),
		shopRepo.On("Update", ctx, s).Return(nil).Once(),
		uow.On("MoneyTransactionRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("Add", ctx, mock.MatchedBy(func(rows []*shop.MoneyTransaction) bool {
			return len(rows) == 2 &&
				rows[0].Attribute() == shop.TotalCollected && rows[0].ChangeType() == shop.Decrease &&
				rows[1].Attribute() == shop.Settled && rows[1].ChangeType() == shop.Increase
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewSettleShopCommandHandler(factory, locker)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "60.00", s.Balance(shop.TotalCollected).String())
	assert.Equal(t, "40.00", s.Balance(shop.Settled).String())
	shopRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	locker.AssertExpectations(t)
}

func TestSettleShopCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()
	s := shopWithCollected(t, "30")

	cmd, err := commands.NewSettleShopCommand(s.ID(), money(t, "40"))
	require.NoError(t, err)

	shopRepo := new(MockShopRepository)
	uow := new(MockUoW)
	factory := new(MockLedgerUoWFactory)
	locker := new(MockLocker)

	locker.On("Lock", ctx, mock.Anything).Return(noUnlock, nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShopRepository").Return(shopRepo).Once()
	shopRepo.On("Get", ctx, s.ID()).Return(s, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewSettleShopCommandHandler(factory, locker)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientBalance)
	require.ErrorIs(t, err, errs.ErrInvalidAmount)
	assert.Equal(t, "30.00", s.Balance(shop.TotalCollected).String())
	shopRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReconcileShopCommandHandler_Handle_ReportsDrift(t *testing.T) {
	ctx := t.Context()
	s := shopWithCollected(t, "100")

	cmd, err := commands.NewReconcileShopCommand(s.ID(), false)
	require.NoError(t, err)

	shopRepo := new(MockShopRepository)
	ledgerRepo := new(MockMoneyTransactionRepository)
	uow := new(MockUoW)
	factory := new(MockLedgerUoWFactory)
	locker := new(MockLocker)

	locker.On("Lock", ctx, mock.Anything).Return(noUnlock, nil).Once()
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShopRepository").Return(shopRepo).Once()
	uow.On("MoneyTransactionRepository").Return(ledgerRepo).Once()
	shopRepo.On("Get", ctx, s.ID()).Return(s, nil).Once()
	ledgerRepo.On("ListByShop", ctx, s.ID()).Return([]*shop.MoneyTransaction{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewReconcileShopCommandHandler(factory, locker)
	report, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, report.IsConsistent())
	assert.False(t, report.Repaired)
	assert.Equal(t, "100.00", s.Balance(shop.TotalCollected).String())
	shopRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAdjustTotalCollectedCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewAdjustTotalCollectedCommand(kernel.NewUUID(), money(t, "5"), "  ", shop.Increase)

	require.ErrorIs(t, err, errs.ErrReasonRequired)
}
