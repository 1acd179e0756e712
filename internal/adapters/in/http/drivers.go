package http

import (
	"net/http"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterDriver handles POST /api/v1/drivers. The driver can not be
// dispatched before an admin approves it.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var body NewDriver
	if err := bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(id, body.Name, body.WorkingArea)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.RegisterDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return created(ctx, id)
}

// ApproveDriver handles POST /api/v1/drivers/{id}/approve.
func (s *Server) ApproveDriver(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveDriverCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.ApproveDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/{id}/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	var body Availability
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(id, body.Available)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.SetDriverAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverWorkload handles GET /api/v1/drivers/{id}/workload.
func (s *Server) GetDriverWorkload(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDriverWorkloadQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.h.GetDriverWorkload.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDriverWorkload(view))
}
