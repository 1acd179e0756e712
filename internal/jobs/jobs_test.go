package jobs_test

import (
	"testing"
	"time"

	"lastmile/internal/adapters/out/local"
	"lastmile/internal/adapters/out/memory"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type (
	ledgerFactory       func() commands.LedgerUoW
	parcelLedgerFactory func() commands.ParcelLedgerUoW
	driverFactory       func() commands.DriverUoW
)

func (f ledgerFactory) Create() commands.LedgerUoW             { return f() }
func (f parcelLedgerFactory) Create() commands.ParcelLedgerUoW { return f() }
func (f driverFactory) Create() commands.DriverUoW             { return f() }

type JobsSuite struct {
	suite.Suite

	factory ports.UnitOfWorkFactory
	locker  ports.Locker
	logger  *logrus.Logger
	hook    *test.Hook

	ledger  commands.LedgerUoWFactory
	drivers commands.DriverUoWFactory
}

func TestJobsSuite(t *testing.T) {
	suite.Run(t, new(JobsSuite))
}

func (s *JobsSuite) SetupTest() {
	s.logger, s.hook = test.NewNullLogger()
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore(), local.NewLogPublisher(s.logger), s.logger)
	s.locker = local.NewKeyedLocker(time.Second)

	f := s.factory
	s.ledger = ledgerFactory(func() commands.LedgerUoW { return f.Create() })
	s.drivers = driverFactory(func() commands.DriverUoW { return f.Create() })
}

func (s *JobsSuite) reconciliationJob(schedule string) *jobs.LedgerReconciliationJob {
	return jobs.NewLedgerReconciliationJob(
		s.ledger,
		commands.NewReconcileShopCommandHandler(s.ledger, s.locker),
		schedule,
		s.logger,
	)
}

func (s *JobsSuite) counterResetJob(schedule string) *jobs.DriverCounterResetJob {
	return jobs.NewDriverCounterResetJob(
		commands.NewResetDriverDailyCountersCommandHandler(s.drivers, s.locker),
		schedule,
		s.logger,
	)
}

func (s *JobsSuite) bookedShop() kernel.UUID {
	ctx := s.T().Context()
	fees, err := kernel.MoneyFromString("10")
	s.Require().NoError(err)
	cod, err := kernel.MoneyFromString("100")
	s.Require().NoError(err)

	shopID := kernel.NewUUID()
	register, err := commands.NewRegisterShopCommand(shopID, "Corner Shop", fees, true)
	s.Require().NoError(err)
	s.Require().NoError(commands.NewRegisterShopCommandHandler(s.ledger).Handle(ctx, register))

	line, err := parcel.NewItemLine("sneakers", 1)
	s.Require().NoError(err)
	create, err := commands.NewCreateParcelCommand(kernel.NewUUID(), "TRK-"+shopID.String()[:8], shopID,
		cod, fees, []parcel.ItemLine{line}, parcel.Pending)
	s.Require().NoError(err)
	f := s.factory
	parcels := parcelLedgerFactory(func() commands.ParcelLedgerUoW { return f.Create() })
	s.Require().NoError(commands.NewCreateParcelCommandHandler(parcels, s.locker).Handle(ctx, create))

	return shopID
}

// drift overwrites the projection without writing ledger rows.
func (s *JobsSuite) drift(shopID kernel.UUID) {
	ctx := s.T().Context()
	toCollect, err := kernel.MoneyFromString("50")
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	sh, err := uow.ShopRepository().Get(ctx, shopID)
	s.Require().NoError(err)
	sh.Reconcile(shop.Balances{
		ToCollect:      toCollect,
		TotalCollected: kernel.ZeroMoney(),
		Settled:        kernel.ZeroMoney(),
		Revenue:        kernel.ZeroMoney(),
	}, time.Now())
	s.Require().NoError(uow.ShopRepository().Update(ctx, sh))
	s.Require().NoError(uow.Commit(ctx))
}

func (s *JobsSuite) TestReconciliationFindsNothingOnConsistentLedger() {
	s.bookedShop()

	inconsistent, err := s.reconciliationJob("@every 1h").Run(s.T().Context())

	s.Require().NoError(err)
	s.Zero(inconsistent)
}

func (s *JobsSuite) TestReconciliationLogsDrift() {
	consistent := s.bookedShop()
	drifted := s.bookedShop()
	s.drift(drifted)
	s.hook.Reset()

	inconsistent, err := s.reconciliationJob("@every 1h").Run(s.T().Context())

	s.Require().NoError(err)
	s.Equal(1, inconsistent)

	var warnings []*logrus.Entry
	for _, entry := range s.hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry)
		}
	}
	s.Require().Len(warnings, 1)
	s.Equal(drifted.String(), warnings[0].Data["shop_id"])
	s.NotEqual(consistent.String(), warnings[0].Data["shop_id"])
	s.Equal("ToCollect", warnings[0].Data["attribute"])
	s.Equal("50.00", warnings[0].Data["projected"])
	s.Equal("100.00", warnings[0].Data["recomputed"])

	sh, err := s.factory.Create().ShopRepository().Get(s.T().Context(), drifted)
	s.Require().NoError(err)
	s.Equal("50.00", sh.Balance(shop.ToCollect).String())
}

func (s *JobsSuite) TestJobsStartAndStop() {
	manager := jobs.NewJobManager(s.reconciliationJob("@every 1h"), s.counterResetJob("0 0 * * *"))

	s.Require().NoError(manager.StartAll())
	manager.StopAll()
}

func (s *JobsSuite) TestInvalidScheduleFailsToStart() {
	manager := jobs.NewJobManager(s.reconciliationJob("@every 1h"), s.counterResetJob("every day"))

	err := manager.StartAll()

	s.Require().Error(err)
	s.Contains(err.Error(), "driver counter reset")
}
