package shoprepo_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/adapters/out/postgres/shoprepo"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type ShopRepositoryIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	shops        *shoprepo.GormShopRepository
	transactions *shoprepo.GormMoneyTransactionRepository
	tracker      *MockAggregateTracker
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shoprepo.ShopDTO{}, &shoprepo.MoneyTransactionDTO{}))
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE money_transactions, shops").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.shops = shoprepo.NewGormShopRepository(suite.db, suite.tracker)
	suite.transactions = shoprepo.NewGormMoneyTransactionRepository(suite.db)
}

func (suite *ShopRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShopRepositoryIntegrationTestSuite) TestBalancesAndLedgerRoundTrip() {
	ctx := context.Background()
	s := suite.newShop("Corner Books")
	suite.tracker.On("TrackAggregate", s.ID(), s).Twice()
	suite.Require().NoError(suite.shops.Add(ctx, s))

	start := time.Now().UTC()
	credit, err := s.Credit(shop.TotalCollected, mustMoney("100"), "TRK-1: delivered", nil, start)
	suite.Require().NoError(err)
	settled, err := s.Settle(mustMoney("40"), start.Add(time.Second))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.shops.Update(ctx, s))
	suite.Require().NoError(suite.transactions.Add(ctx, credit))
	suite.Require().NoError(suite.transactions.Add(ctx, settled...))
	suite.Require().NoError(suite.transactions.Add(ctx))

	stored, err := suite.shops.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal("60.00", stored.Balance(shop.TotalCollected).String())
	suite.Equal("40.00", stored.Balance(shop.Settled).String())
	suite.Equal("25.00", stored.ShippingFees().String())
	suite.Equal(int64(1), stored.Version())

	rows, err := suite.transactions.ListByShop(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(credit.ID(), rows[0].ID())
	suite.Equal("TRK-1: delivered", rows[0].Description())
	suite.Equal(shop.Decrease, rows[1].ChangeType())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShopRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	s := suite.newShop("Stale")
	suite.Require().NoError(suite.shops.Add(ctx, s))

	stale, err := suite.shops.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shops.Update(ctx, s))

	suite.Require().ErrorIs(suite.shops.Update(ctx, stale), errs.ErrConcurrentModification)
}

func (suite *ShopRepositoryIntegrationTestSuite) TestGet_Missing_NotFound() {
	_, err := suite.shops.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShopRepositoryIntegrationTestSuite) TestList() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.Require().NoError(suite.shops.Add(ctx, suite.newShop("B")))
	suite.Require().NoError(suite.shops.Add(ctx, suite.newShop("A")))

	shops, err := suite.shops.List(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(shops, 2)
	suite.Equal("A", shops[0].Name())
}

func (suite *ShopRepositoryIntegrationTestSuite) newShop(name string) *shop.Shop {
	s, err := shop.NewShop(kernel.NewUUID(), name, mustMoney("25"))
	suite.Require().NoError(err)
	return s
}

func mustMoney(s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestShopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShopRepositoryIntegrationTestSuite))
}
