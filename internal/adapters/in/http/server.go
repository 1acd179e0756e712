package http

import (
	"context"
	"net/http"
	"strings"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ParcelQuery interface {
	Handle(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelView, error)
}

type TrackingQuery interface {
	Handle(ctx context.Context, query queries.GetParcelByTrackingQuery) (queries.ParcelView, error)
}

type ShopBalanceQuery interface {
	Handle(ctx context.Context, query queries.GetShopBalanceQuery) (queries.ShopBalanceView, error)
}

type MoneyTransactionsQuery interface {
	Handle(ctx context.Context, query queries.ListMoneyTransactionsQuery) ([]queries.MoneyTransactionView, error)
}

type DriverWorkloadQuery interface {
	Handle(ctx context.Context, query queries.GetDriverWorkloadQuery) (queries.DriverWorkloadView, error)
}

// Handlers are the use cases the API exposes.
type Handlers struct {
	// Ledger
	RegisterShop         commands.RegisterShopCommandHandler
	SettleShop           commands.SettleShopCommandHandler
	AdjustTotalCollected commands.AdjustTotalCollectedCommandHandler
	ReconcileShop        commands.ReconcileShopCommandHandler

	// Drivers
	RegisterDriver        commands.RegisterDriverCommandHandler
	ApproveDriver         commands.ApproveDriverCommandHandler
	SetDriverAvailability commands.SetDriverAvailabilityCommandHandler

	// Parcels
	CreateParcel          commands.CreateParcelCommandHandler
	AdvanceParcel         commands.AdvanceParcelCommandHandler
	RejectParcel          commands.RejectParcelCommandHandler
	MarkParcelReturned    commands.MarkParcelReturnedCommandHandler
	RecordPartialDelivery commands.RecordPartialDeliveryCommandHandler
	CancelParcel          commands.CancelParcelCommandHandler
	AddParcelNote         commands.AddParcelNoteCommandHandler
	AssignDriver          commands.AssignDriverCommandHandler
	BulkAssignDriver      commands.BulkAssignDriverCommandHandler

	// Pickups
	CreatePickup         commands.CreatePickupCommandHandler
	AssignDriverToPickup commands.AssignDriverToPickupCommandHandler
	MarkPickupCollected  commands.MarkPickupCollectedCommandHandler
	MarkPickupInStorage  commands.MarkPickupInStorageCommandHandler
	DeletePickup         commands.DeletePickupCommandHandler

	// Read models
	GetParcel             ParcelQuery
	GetParcelByTracking   TrackingQuery
	GetShopBalance        ShopBalanceQuery
	ListMoneyTransactions MoneyTransactionsQuery
	GetDriverWorkload     DriverWorkloadQuery
}

// Server translates HTTP requests into commands and queries. Every handler
// builds its command through the command constructor, so malformed input is
// reported the same way as a domain validation error.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func parseIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseMoney treats an empty string as zero.
func parseMoney(raw string) (kernel.Money, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.ZeroMoney(), nil
	}
	return kernel.MoneyFromString(raw)
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

func created(ctx echo.Context, id kernel.UUID) error {
	return ctx.JSON(http.StatusCreated, Created{ID: id.String()})
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
