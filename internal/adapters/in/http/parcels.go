package http

import (
	"net/http"
	"strings"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

// CreateParcel handles POST /api/v1/parcels. A body with an exchange
// manifest creates an exchange parcel and ignores items and COD.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	shopID, err := kernel.UUIDFromString(body.ShopID)
	if err != nil {
		return writeError(ctx, err)
	}
	cost, err := parseMoney(body.DeliveryCost)
	if err != nil {
		return writeError(ctx, err)
	}

	id := kernel.NewUUID()
	var cmd commands.CreateParcelCommand
	if body.Exchange != nil {
		manifest, err := toExchangeManifest(*body.Exchange)
		if err != nil {
			return writeError(ctx, err)
		}
		cmd, err = commands.NewCreateExchangeParcelCommand(id, body.TrackingNumber, shopID, cost, manifest)
		if err != nil {
			return writeError(ctx, err)
		}
	} else {
		cod, err := parseMoney(body.CODAmount)
		if err != nil {
			return writeError(ctx, err)
		}
		lines, err := toItemLines(body.Items)
		if err != nil {
			return writeError(ctx, err)
		}
		initial := parcel.AwaitingSchedule
		if body.InStorage {
			initial = parcel.Pending
		}
		cmd, err = commands.NewCreateParcelCommand(id, body.TrackingNumber, shopID, cod, cost, lines, initial)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	if err = s.h.CreateParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return created(ctx, id)
}

// GetParcel handles GET /api/v1/parcels/{id}.
func (s *Server) GetParcel(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(view))
}

// GetParcelByTracking handles GET /api/v1/tracking/{trackingNumber}.
func (s *Server) GetParcelByTracking(ctx echo.Context) error {
	query, err := queries.NewGetParcelByTrackingQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.h.GetParcelByTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toParcel(view))
}

// AdvanceParcel handles POST /api/v1/parcels/{id}/advance. An optional
// expectedStatus turns the call into a compare-and-set.
func (s *Server) AdvanceParcel(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	role, err := actorRole(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body Advance
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	var expected *parcel.Status
	if raw := strings.TrimSpace(body.ExpectedStatus); raw != "" {
		status, err := parcel.ParseStatus(raw)
		if err != nil {
			return writeError(ctx, err)
		}
		expected = &status
	}

	cmd, err := commands.NewAdvanceParcelCommand(id, role, expected)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.AdvanceParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectParcel handles POST /api/v1/parcels/{id}/reject.
func (s *Server) RejectParcel(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	role, err := actorRole(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body Reject
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	paid, err := parseDecimal("amount paid", body.AmountPaid)
	if err != nil {
		return writeError(ctx, err)
	}
	method := parcel.PaymentMethod(strings.ToUpper(strings.TrimSpace(body.PaymentMethod)))

	cmd, err := commands.NewRejectParcelCommand(id, role, paid, method)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.RejectParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkParcelReturned handles POST /api/v1/parcels/{id}/return.
func (s *Server) MarkParcelReturned(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkParcelReturnedCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.MarkParcelReturned.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPartialDelivery handles POST /api/v1/parcels/{id}/partial-delivery.
func (s *Server) RecordPartialDelivery(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body PartialDelivery
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	collected, err := parseMoney(body.CollectedAmount)
	if err != nil {
		return writeError(ctx, err)
	}
	lines := make([]parcel.DeliveredLine, len(body.Lines))
	for i, l := range body.Lines {
		lines[i] = parcel.DeliveredLine{LineIndex: l.LineIndex, Quantity: l.Quantity}
	}

	cmd, err := commands.NewRecordPartialDeliveryCommand(id, lines, collected)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.RecordPartialDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelParcel handles POST /api/v1/parcels/{id}/cancel.
func (s *Server) CancelParcel(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	role, err := actorRole(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelParcelCommand(id, role)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.CancelParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddParcelNote handles POST /api/v1/parcels/{id}/notes.
func (s *Server) AddParcelNote(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}
	role, err := actorRole(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body Note
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAddParcelNoteCommand(id, body.Text, role)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.AddParcelNote.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/parcels/{id}/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body Assign
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(id, driverID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkAssignDriver handles POST /api/v1/parcel-assignments. The response
// is 200 even when some parcels were refused; each result carries its own
// error.
func (s *Server) BulkAssignDriver(ctx echo.Context) error {
	var body BulkAssign
	if err := bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}
	parcelIDs, err := parseIDs(body.ParcelIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewBulkAssignDriverCommand(parcelIDs, driverID)
	if err != nil {
		return writeError(ctx, err)
	}
	results, err := s.h.BulkAssignDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BulkAssignResult, len(results))
	for i, r := range results {
		response[i] = BulkAssignResult{ParcelID: r.ParcelID.String(), OK: r.Err == nil}
		if r.Err != nil {
			e := toError(r.Err)
			response[i].Error = &e
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toItemLines(items []ItemLine) ([]parcel.ItemLine, error) {
	lines := make([]parcel.ItemLine, 0, len(items))
	for _, item := range items {
		line, err := parcel.NewItemLine(item.Description, item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func toExchangeManifest(e Exchange) (parcel.ExchangeManifest, error) {
	take, err := toItemLines(e.Take)
	if err != nil {
		return parcel.ExchangeManifest{}, err
	}
	give, err := toItemLines(e.Give)
	if err != nil {
		return parcel.ExchangeManifest{}, err
	}
	delta, err := parseMoney(e.CashDelta)
	if err != nil {
		return parcel.ExchangeManifest{}, err
	}
	direction, err := parcel.ParseCashDirection(e.CashDirection)
	if err != nil {
		return parcel.ExchangeManifest{}, err
	}
	return parcel.NewExchangeManifest(take, give, delta, direction)
}
