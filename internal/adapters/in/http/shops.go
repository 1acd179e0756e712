package http

import (
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/shop"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// RegisterShop handles POST /api/v1/shops.
func (s *Server) RegisterShop(ctx echo.Context) error {
	var body NewShop
	if err := bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	fees, err := parseMoney(body.ShippingFees)
	if err != nil {
		return writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterShopCommand(id, body.Name, fees, body.Approved)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.RegisterShop.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return created(ctx, id)
}

// GetShopBalance handles GET /api/v1/shops/{id}/balance.
func (s *Server) GetShopBalance(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetShopBalanceQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.h.GetShopBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShopBalance(view))
}

// ListMoneyTransactions handles GET /api/v1/shops/{id}/transactions.
func (s *Server) ListMoneyTransactions(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var (
		attribute *string
		limit     *int
		offset    *int
	)
	params := ctx.QueryParams()
	if err = runtime.BindQueryParameter("form", true, false, "attribute", params, &attribute); err != nil {
		return badRequest(ctx, err.Error())
	}
	if err = runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return badRequest(ctx, err.Error())
	}
	if err = runtime.BindQueryParameter("form", true, false, "offset", params, &offset); err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListMoneyTransactionsQuery(id, shop.Attribute(deref(attribute)), deref(limit), deref(offset))
	if err != nil {
		return writeError(ctx, err)
	}
	rows, err := s.h.ListMoneyTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMoneyTransactions(rows))
}

// SettleShop handles POST /api/v1/shops/{id}/settlements.
func (s *Server) SettleShop(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body Settlement
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	amount, err := parseMoney(body.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSettleShopCommand(id, amount)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.SettleShop.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdjustTotalCollected handles POST /api/v1/shops/{id}/adjustments.
func (s *Server) AdjustTotalCollected(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body Adjustment
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	amount, err := parseMoney(body.Amount)
	if err != nil {
		return writeError(ctx, err)
	}
	direction, err := shop.ParseChangeType(body.Direction)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdjustTotalCollectedCommand(id, amount, body.Reason, direction)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.AdjustTotalCollected.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReconcileShop handles POST /api/v1/shops/{id}/reconcile.
func (s *Server) ReconcileShop(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body Reconcile
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReconcileShopCommand(id, body.Repair)
	if err != nil {
		return writeError(ctx, err)
	}
	report, err := s.h.ReconcileShop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toReconciliationReport(report))
}
