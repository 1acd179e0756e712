package http

import (
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreatePickup handles POST /api/v1/pickups.
func (s *Server) CreatePickup(ctx echo.Context) error {
	var body NewPickup
	if err := bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}
	shopID, err := kernel.UUIDFromString(body.ShopID)
	if err != nil {
		return writeError(ctx, err)
	}
	parcelIDs, err := parseIDs(body.ParcelIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePickupCommand(id, shopID, body.ScheduledTime, body.Address, parcelIDs)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.CreatePickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return created(ctx, id)
}

// AssignDriverToPickup handles POST /api/v1/pickups/{id}/assign.
func (s *Server) AssignDriverToPickup(ctx echo.Context) error {
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

	cmd, err := commands.NewAssignDriverToPickupCommand(id, driverID)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.AssignDriverToPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickupCollected handles POST /api/v1/pickups/{id}/picked-up.
func (s *Server) MarkPickupCollected(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkPickupCollectedCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.MarkPickupCollected.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickupInStorage handles POST /api/v1/pickups/{id}/in-storage.
func (s *Server) MarkPickupInStorage(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkPickupInStorageCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.MarkPickupInStorage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeletePickup handles DELETE /api/v1/pickups/{id}.
func (s *Server) DeletePickup(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeletePickupCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.DeletePickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
