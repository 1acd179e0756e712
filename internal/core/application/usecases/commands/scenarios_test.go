package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"lastmile/internal/adapters/out/local"
	"lastmile/internal/adapters/out/memory"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type unitOfWork struct{ factory ports.UnitOfWorkFactory }

func (u unitOfWork) parcelLedger() commands.ParcelLedgerUoWFactory {
	return parcelLedgerFactory(func() commands.ParcelLedgerUoW { return u.factory.Create() })
}

func (u unitOfWork) parcel() commands.ParcelUoWFactory {
	return parcelFactory(func() commands.ParcelUoW { return u.factory.Create() })
}

func (u unitOfWork) dispatch() commands.DispatchUoWFactory {
	return dispatchFactory(func() commands.DispatchUoW { return u.factory.Create() })
}

func (u unitOfWork) ledger() commands.LedgerUoWFactory {
	return ledgerFactory(func() commands.LedgerUoW { return u.factory.Create() })
}

func (u unitOfWork) driver() commands.DriverUoWFactory {
	return driverFactory(func() commands.DriverUoW { return u.factory.Create() })
}

func (u unitOfWork) pickup() commands.PickupUoWFactory {
	return pickupFactory(func() commands.PickupUoW { return u.factory.Create() })
}

type (
	parcelLedgerFactory func() commands.ParcelLedgerUoW
	parcelFactory       func() commands.ParcelUoW
	dispatchFactory     func() commands.DispatchUoW
	ledgerFactory       func() commands.LedgerUoW
	driverFactory       func() commands.DriverUoW
	pickupFactory       func() commands.PickupUoW
)

func (f parcelLedgerFactory) Create() commands.ParcelLedgerUoW { return f() }
func (f parcelFactory) Create() commands.ParcelUoW             { return f() }
func (f dispatchFactory) Create() commands.DispatchUoW         { return f() }
func (f ledgerFactory) Create() commands.LedgerUoW             { return f() }
func (f driverFactory) Create() commands.DriverUoW             { return f() }
func (f pickupFactory) Create() commands.PickupUoW             { return f() }

// ScenarioSuite runs the handlers against the in-memory store and the
// process-local locker.
type ScenarioSuite struct {
	suite.Suite

	factory ports.UnitOfWorkFactory
	locker  ports.Locker
	uow     unitOfWork

	shopID   kernel.UUID
	driverID kernel.UUID
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func (s *ScenarioSuite) SetupTest() {
	logger, _ := test.NewNullLogger()
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore(), local.NewLogPublisher(logger), logger)
	s.locker = local.NewKeyedLocker(time.Second)
	s.uow = unitOfWork{factory: s.factory}

	s.shopID = kernel.NewUUID()
	cmd, err := commands.NewRegisterShopCommand(s.shopID, "Corner Shop", s.money("10"), true)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRegisterShopCommandHandler(s.uow.ledger()).Handle(s.T().Context(), cmd))

	s.driverID = s.registerDriver()
}

func (s *ScenarioSuite) money(v string) kernel.Money {
	m, err := kernel.MoneyFromString(v)
	s.Require().NoError(err)
	return m
}

func (s *ScenarioSuite) registerDriver() kernel.UUID {
	ctx := s.T().Context()
	id := kernel.NewUUID()

	register, err := commands.NewRegisterDriverCommand(id, "Sam", "downtown")
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRegisterDriverCommandHandler(s.uow.driver()).Handle(ctx, register))

	approve, err := commands.NewApproveDriverCommand(id)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewApproveDriverCommandHandler(s.uow.driver(), s.locker).Handle(ctx, approve))
	return id
}

func (s *ScenarioSuite) createParcel(cod, cost string, initial parcel.Status) kernel.UUID {
	line, err := parcel.NewItemLine("sneakers", 2)
	s.Require().NoError(err)

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(id, "TRK-"+id.String()[:8], s.shopID,
		s.money(cod), s.money(cost), []parcel.ItemLine{line}, initial)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreateParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(s.T().Context(), cmd))
	return id
}

func (s *ScenarioSuite) assign(parcelID kernel.UUID) {
	cmd, err := commands.NewAssignDriverCommand(parcelID, s.driverID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewAssignDriverCommandHandler(s.uow.dispatch(), s.locker).Handle(s.T().Context(), cmd))
}

func (s *ScenarioSuite) advance(parcelID kernel.UUID, role kernel.Role, expected *parcel.Status) error {
	cmd, err := commands.NewAdvanceParcelCommand(parcelID, role, expected)
	s.Require().NoError(err)
	return commands.NewAdvanceParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(s.T().Context(), cmd)
}

// advanceTo assigns the driver to a pending parcel and advances it until it
// reaches status.
func (s *ScenarioSuite) advanceTo(parcelID kernel.UUID, status parcel.Status) {
	s.assign(parcelID)
	for s.parcel(parcelID).Status() != status {
		s.Require().NoError(s.advance(parcelID, kernel.RoleAdmin, nil))
	}
}

func (s *ScenarioSuite) parcel(id kernel.UUID) *parcel.Parcel {
	p, err := s.factory.Create().ParcelRepository().Get(s.T().Context(), id)
	s.Require().NoError(err)
	return p
}

func (s *ScenarioSuite) shop() *shop.Shop {
	sh, err := s.factory.Create().ShopRepository().Get(s.T().Context(), s.shopID)
	s.Require().NoError(err)
	return sh
}

func (s *ScenarioSuite) driver() *driver.Driver {
	d, err := s.factory.Create().DriverRepository().Get(s.T().Context(), s.driverID)
	s.Require().NoError(err)
	return d
}

func (s *ScenarioSuite) ledger() []*shop.MoneyTransaction {
	rows, err := s.factory.Create().MoneyTransactionRepository().ListByShop(s.T().Context(), s.shopID)
	s.Require().NoError(err)
	return rows
}

func (s *ScenarioSuite) settle(amount string) error {
	cmd, err := commands.NewSettleShopCommand(s.shopID, s.money(amount))
	s.Require().NoError(err)
	return commands.NewSettleShopCommandHandler(s.uow.ledger(), s.locker).Handle(s.T().Context(), cmd)
}

func (s *ScenarioSuite) TestMainFlowDeliveryCreditsCOD() {
	id := s.createParcel("100", "30", parcel.Pending)
	s.Equal("100.00", s.shop().Balance(shop.ToCollect).String())

	s.assign(id)
	s.Require().NoError(s.advance(id, kernel.RoleAdmin, nil))
	s.Equal(parcel.Assigned, s.parcel(id).Status())

	for _, want := range []parcel.Status{parcel.PickedUp, parcel.InTransit, parcel.Delivered} {
		s.Require().NoError(s.advance(id, kernel.RoleDriver, nil))
		s.Equal(want, s.parcel(id).Status())
	}

	p := s.parcel(id)
	s.True(p.IsPaid())
	s.NotNil(p.ActualDeliveryTime())

	sh := s.shop()
	s.Equal("100.00", sh.Balance(shop.TotalCollected).String())
	s.Equal("0.00", sh.Balance(shop.ToCollect).String())
	s.Equal("10.00", sh.Balance(shop.Revenue).String())
	s.Len(s.ledger(), 4)

	s.ErrorIs(s.advance(id, kernel.RoleDriver, nil), errs.ErrInvalidTransition)
	s.Equal("100.00", s.shop().Balance(shop.TotalCollected).String())
}

func (s *ScenarioSuite) TestAdvanceWithoutDriverFails() {
	id := s.createParcel("100", "30", parcel.Pending)

	err := s.advance(id, kernel.RoleAdmin, nil)

	s.ErrorIs(err, errs.ErrPreconditionNotMet)
	s.Equal(parcel.Pending, s.parcel(id).Status())
}

func (s *ScenarioSuite) TestDriverRejectionAndReturn() {
	ctx := s.T().Context()
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.InTransit)

	reject, err := commands.NewRejectParcelCommand(id, kernel.RoleDriver, decimal.NewFromInt(20), parcel.PaymentCash)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRejectParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(ctx, reject))

	p := s.parcel(id)
	s.Equal(parcel.RejectedAwaitingReturn, p.Status())
	s.Equal("20.00", p.RejectionShippingPaid().String())
	s.Equal("0.00", s.shop().Balance(shop.ToCollect).String())

	returned, err := commands.NewMarkParcelReturnedCommand(id)
	s.Require().NoError(err)
	handler := commands.NewMarkParcelReturnedCommandHandler(s.uow.parcelLedger(), s.locker)
	s.Require().NoError(handler.Handle(ctx, returned))
	s.Equal(parcel.RejectedReturned, s.parcel(id).Status())

	s.ErrorIs(handler.Handle(ctx, returned), errs.ErrInvalidStateForReturn)
}

func (s *ScenarioSuite) TestRejectionPaymentIsClampedToDeliveryCost() {
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.PickedUp)

	cmd, err := commands.NewRejectParcelCommand(id, kernel.RoleDriver, decimal.NewFromInt(75), parcel.PaymentCard)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRejectParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(s.T().Context(), cmd))

	s.Equal("30.00", s.parcel(id).RejectionShippingPaid().String())
}

func (s *ScenarioSuite) TestSettlement() {
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.Delivered)
	before := len(s.ledger())

	s.Require().NoError(s.settle("40"))

	sh := s.shop()
	s.Equal("60.00", sh.Balance(shop.TotalCollected).String())
	s.Equal("40.00", sh.Balance(shop.Settled).String())

	rows := s.ledger()[before:]
	var decreases []*shop.MoneyTransaction
	for _, row := range rows {
		if row.Attribute() == shop.TotalCollected && row.ChangeType() == shop.Decrease {
			decreases = append(decreases, row)
		}
	}
	s.Require().Len(decreases, 1)
	s.Equal("40.00", decreases[0].Amount().String())

	err := s.settle("70")
	s.ErrorIs(err, errs.ErrInsufficientBalance)
	s.Equal("60.00", s.shop().Balance(shop.TotalCollected).String())
	s.Len(s.ledger(), before+2)
}

func (s *ScenarioSuite) TestConcurrentAdvanceHasOneWinner() {
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.PickedUp)
	expected := parcel.PickedUp

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.advance(id, kernel.RoleDriver, &expected)
		}()
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.Kind(err) == errs.ErrConcurrentModification:
			conflicted++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, conflicted)
	s.Equal(parcel.InTransit, s.parcel(id).Status())
}

// gatedLocker reports every Lock call before waiting for the keys.
type gatedLocker struct {
	ports.Locker
	calls chan []string
}

func (l gatedLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	l.calls <- keys
	return l.Locker.Lock(ctx, keys...)
}

func (s *ScenarioSuite) TestConcurrentPlainAdvanceHasOneWinner() {
	ctx := s.T().Context()
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.PickedUp)

	// Hold the parcel so both callers read pickedup before either can move it.
	hold, err := s.locker.Lock(ctx, ports.ParcelLockKey(id))
	s.Require().NoError(err)

	gated := gatedLocker{Locker: s.locker, calls: make(chan []string, 8)}
	handler := commands.NewAdvanceParcelCommandHandler(s.uow.parcelLedger(), gated)
	cmd, err := commands.NewAdvanceParcelCommand(id, kernel.RoleDriver, nil)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = handler.Handle(ctx, cmd)
		}()
	}
	for range results {
		s.Equal([]string{ports.ParcelLockKey(id)}, <-gated.calls)
	}
	hold()
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.Kind(err) == errs.ErrConcurrentModification:
			conflicted++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(1, conflicted)
	s.Equal(parcel.InTransit, s.parcel(id).Status())
	s.Equal("0.00", s.shop().Balance(shop.TotalCollected).String())
	s.Equal("100.00", s.shop().Balance(shop.ToCollect).String())
}

func (s *ScenarioSuite) TestSequentialPlainAdvancesEachMoveOneStep() {
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.PickedUp)

	s.Require().NoError(s.advance(id, kernel.RoleDriver, nil))
	s.Equal(parcel.InTransit, s.parcel(id).Status())
	s.Require().NoError(s.advance(id, kernel.RoleDriver, nil))
	s.Equal(parcel.Delivered, s.parcel(id).Status())
}

func (s *ScenarioSuite) adjust(amount string, direction shop.ChangeType) error {
	cmd, err := commands.NewAdjustTotalCollectedCommand(s.shopID, s.money(amount), "cash count correction", direction)
	s.Require().NoError(err)
	return commands.NewAdjustTotalCollectedCommandHandler(s.uow.ledger(), s.locker).Handle(s.T().Context(), cmd)
}

func (s *ScenarioSuite) TestConcurrentSettleAndDecreaseNeverOverdraw() {
	s.Require().NoError(s.adjust("100", shop.Increase))

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0] = s.settle("70")
	}()
	go func() {
		defer wg.Done()
		results[1] = s.adjust("70", shop.Decrease)
	}()
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, errs.ErrInsufficientBalance)
	}
	s.Equal(1, succeeded)

	sh := s.shop()
	s.Equal("30.00", sh.Balance(shop.TotalCollected).String())

	var increases, decreases decimal.Decimal
	for _, row := range s.ledger() {
		if row.Attribute() != shop.TotalCollected {
			continue
		}
		if row.ChangeType() == shop.Increase {
			increases = increases.Add(row.Amount().Decimal())
		} else {
			decreases = decreases.Add(row.Amount().Decimal())
		}
	}
	s.Equal("30.00", increases.Sub(decreases).StringFixed(2))
}

func (s *ScenarioSuite) TestConcurrentBulkAssignKeepsDriverCounters() {
	batches := make([][]kernel.UUID, 2)
	for i := range batches {
		for range 3 {
			batches[i] = append(batches[i], s.createParcel("10", "5", parcel.Pending))
		}
	}

	handler := commands.NewBulkAssignDriverCommandHandler(
		commands.NewAssignDriverCommandHandler(s.uow.dispatch(), s.locker), 3)

	var wg sync.WaitGroup
	results := make([][]commands.BulkAssignResult, len(batches))
	failures := make([]error, len(batches))
	for i, ids := range batches {
		cmd, err := commands.NewBulkAssignDriverCommand(ids, s.driverID)
		s.Require().NoError(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], failures[i] = handler.Handle(s.T().Context(), cmd)
		}()
	}
	wg.Wait()

	for i := range batches {
		s.Require().NoError(failures[i])
		s.Require().Len(results[i], 3)
		for _, result := range results[i] {
			s.NoError(result.Err)
			s.True(s.parcel(result.ParcelID).HasDriver(s.driverID))
		}
	}
	s.Equal(6, s.driver().TotalAssigned())
	s.Equal(6, s.driver().AssignedToday())
}

func (s *ScenarioSuite) TestExchangeThroughPickup() {
	ctx := s.T().Context()

	oldPair, err := parcel.NewItemLine("sneakers size 42", 1)
	s.Require().NoError(err)
	newPair, err := parcel.NewItemLine("sneakers size 43", 1)
	s.Require().NoError(err)
	manifest, err := parcel.NewExchangeManifest(
		[]parcel.ItemLine{oldPair}, []parcel.ItemLine{newPair}, s.money("15"), parcel.GiveToCustomer)
	s.Require().NoError(err)

	id := kernel.NewUUID()
	create, err := commands.NewCreateExchangeParcelCommand(id, "EXC-"+id.String()[:8], s.shopID, s.money("20"), manifest)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreateParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(ctx, create))
	s.Equal(parcel.ExchangeAwaitingSchedule, s.parcel(id).Status())

	pickupID := kernel.NewUUID()
	schedule, err := commands.NewCreatePickupCommand(pickupID, s.shopID, time.Now().Add(time.Hour),
		"12 Market St", []kernel.UUID{id})
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreatePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, schedule))
	s.Equal(parcel.ExchangeAwaitingPickup, s.parcel(id).Status())

	collected, err := commands.NewMarkPickupCollectedCommand(pickupID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewMarkPickupCollectedCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, collected))
	s.Equal(parcel.ExchangeInTransit, s.parcel(id).Status())

	s.assign(id)
	s.True(s.parcel(id).HasDriver(s.driverID))

	// Nothing collected yet, so the cash handed to the customer can not be covered.
	before := len(s.ledger())
	s.ErrorIs(s.advance(id, kernel.RoleDriver, nil), errs.ErrInsufficientBalance)
	s.Equal(parcel.ExchangeInTransit, s.parcel(id).Status())
	s.Len(s.ledger(), before)
	s.Equal("0.00", s.shop().Balance(shop.TotalCollected).String())

	s.Require().NoError(s.adjust("40", shop.Increase))
	s.Require().NoError(s.advance(id, kernel.RoleDriver, nil))

	s.Equal(parcel.ExchangeAwaitingReturn, s.parcel(id).Status())
	s.Equal("25.00", s.shop().Balance(shop.TotalCollected).String())
	rows := s.ledger()
	last := rows[len(rows)-1]
	s.Equal(shop.TotalCollected, last.Attribute())
	s.Equal(shop.Decrease, last.ChangeType())
	s.Equal("15.00", last.Amount().String())
}

func (s *ScenarioSuite) TestPartialDeliveryOutOfBounds() {
	ctx := s.T().Context()
	id := s.createParcel("100", "30", parcel.Pending)
	s.advanceTo(id, parcel.InTransit)
	handler := commands.NewRecordPartialDeliveryCommandHandler(s.uow.parcelLedger(), s.locker)

	tooMany, err := commands.NewRecordPartialDeliveryCommand(id,
		[]parcel.DeliveredLine{{LineIndex: 0, Quantity: 3}}, s.money("50"))
	s.Require().NoError(err)
	s.ErrorIs(handler.Handle(ctx, tooMany), errs.ErrQuantityOutOfBounds)
	s.Equal(parcel.InTransit, s.parcel(id).Status())

	partial, err := commands.NewRecordPartialDeliveryCommand(id,
		[]parcel.DeliveredLine{{LineIndex: 0, Quantity: 1}}, s.money("50"))
	s.Require().NoError(err)
	s.Require().NoError(handler.Handle(ctx, partial))

	s.Equal(parcel.DeliveredAwaitingReturn, s.parcel(id).Status())
	sh := s.shop()
	s.Equal("50.00", sh.Balance(shop.TotalCollected).String())
	s.Equal("0.00", sh.Balance(shop.ToCollect).String())
}

func (s *ScenarioSuite) TestCancelReleasesBooking() {
	id := s.createParcel("100", "30", parcel.Pending)

	cmd, err := commands.NewCancelParcelCommand(id, kernel.RoleShop)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCancelParcelCommandHandler(s.uow.parcelLedger(), s.locker).Handle(s.T().Context(), cmd))

	s.True(s.parcel(id).State().Flow() == parcel.CancelFlow)
	s.Equal("0.00", s.shop().Balance(shop.ToCollect).String())
}

func (s *ScenarioSuite) TestPickupLifecycle() {
	ctx := s.T().Context()
	first := s.createParcel("40", "20", parcel.AwaitingSchedule)
	second := s.createParcel("60", "20", parcel.AwaitingSchedule)
	s.Equal("0.00", s.shop().Balance(shop.ToCollect).String())

	pickupID := kernel.NewUUID()
	create, err := commands.NewCreatePickupCommand(pickupID, s.shopID, time.Now().Add(time.Hour),
		"12 Market St", []kernel.UUID{first, second})
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreatePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, create))

	for _, id := range []kernel.UUID{first, second} {
		p := s.parcel(id)
		s.Equal(parcel.ScheduledForPickup, p.Status())
		s.Require().NotNil(p.Pickup())
		s.True(p.Pickup().IsEqual(pickupID))
	}

	again, err := commands.NewCreatePickupCommand(kernel.NewUUID(), s.shopID, time.Now().Add(time.Hour),
		"12 Market St", []kernel.UUID{first})
	s.Require().NoError(err)
	s.Error(commands.NewCreatePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, again))

	assignPickup, err := commands.NewAssignDriverToPickupCommand(pickupID, s.driverID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewAssignDriverToPickupCommandHandler(s.uow.dispatch(), s.locker).Handle(ctx, assignPickup))

	collected, err := commands.NewMarkPickupCollectedCommand(pickupID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewMarkPickupCollectedCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, collected))

	s.Equal(parcel.Pending, s.parcel(first).Status())
	s.Equal(parcel.Pending, s.parcel(second).Status())
	s.Equal("100.00", s.shop().Balance(shop.ToCollect).String())

	remove, err := commands.NewDeletePickupCommand(pickupID)
	s.Require().NoError(err)
	s.ErrorIs(commands.NewDeletePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, remove), errs.ErrPreconditionNotMet)

	stored, err := commands.NewMarkPickupInStorageCommand(pickupID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewMarkPickupInStorageCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, stored))
}

func (s *ScenarioSuite) TestDeletePickupUnschedulesParcels() {
	ctx := s.T().Context()
	id := s.createParcel("40", "20", parcel.AwaitingSchedule)

	pickupID := kernel.NewUUID()
	create, err := commands.NewCreatePickupCommand(pickupID, s.shopID, time.Now().Add(time.Hour),
		"12 Market St", []kernel.UUID{id})
	s.Require().NoError(err)
	s.Require().NoError(commands.NewCreatePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, create))

	remove, err := commands.NewDeletePickupCommand(pickupID)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewDeletePickupCommandHandler(s.uow.pickup(), s.locker).Handle(ctx, remove))

	p := s.parcel(id)
	s.Equal(parcel.AwaitingSchedule, p.Status())
	s.Nil(p.Pickup())

	_, err = s.factory.Create().PickupRepository().Get(ctx, pickupID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *ScenarioSuite) TestBulkAssignReportsPerParcel() {
	ids := []kernel.UUID{
		s.createParcel("10", "5", parcel.Pending),
		s.createParcel("20", "5", parcel.Pending),
		kernel.NewUUID(),
		s.createParcel("30", "5", parcel.Pending),
	}

	cmd, err := commands.NewBulkAssignDriverCommand(ids, s.driverID)
	s.Require().NoError(err)
	handler := commands.NewBulkAssignDriverCommandHandler(
		commands.NewAssignDriverCommandHandler(s.uow.dispatch(), s.locker), 2)

	results, err := handler.Handle(s.T().Context(), cmd)

	s.Require().NoError(err)
	s.Require().Len(results, len(ids))
	for i, result := range results {
		s.True(result.ParcelID.IsEqual(ids[i]))
		if i == 2 {
			s.ErrorIs(result.Err, errs.ErrObjectNotFound)
			continue
		}
		s.NoError(result.Err)
		s.True(s.parcel(ids[i]).HasDriver(s.driverID))
	}
	s.Equal(3, s.driver().TotalAssigned())
	s.Equal(3, s.driver().AssignedToday())

	reset := commands.NewResetDriverDailyCountersCommandHandler(s.uow.driver(), s.locker)
	count, err := reset.Handle(s.T().Context(), commands.NewResetDriverDailyCountersCommand())
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(0, s.driver().AssignedToday())
	s.Equal(3, s.driver().TotalAssigned())
}
