package http

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API. Requests under
// /api/v1 are validated against doc before they reach a handler.
func NewRouter(s *Server, doc *openapi3.T, logger logrus.FieldLogger) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e.Group("/api/v1", validator), s)

	return e, nil
}

// RegisterHandlers mounts every API operation on g.
func RegisterHandlers(g *echo.Group, s *Server) {
	g.POST("/shops", s.RegisterShop)
	g.GET("/shops/:id/balance", s.GetShopBalance)
	g.GET("/shops/:id/transactions", s.ListMoneyTransactions)
	g.POST("/shops/:id/settlements", s.SettleShop)
	g.POST("/shops/:id/adjustments", s.AdjustTotalCollected)
	g.POST("/shops/:id/reconcile", s.ReconcileShop)

	g.POST("/drivers", s.RegisterDriver)
	g.POST("/drivers/:id/approve", s.ApproveDriver)
	g.PUT("/drivers/:id/availability", s.SetDriverAvailability)
	g.GET("/drivers/:id/workload", s.GetDriverWorkload)

	g.POST("/parcels", s.CreateParcel)
	g.GET("/parcels/:id", s.GetParcel)
	g.POST("/parcels/:id/advance", s.AdvanceParcel)
	g.POST("/parcels/:id/reject", s.RejectParcel)
	g.POST("/parcels/:id/return", s.MarkParcelReturned)
	g.POST("/parcels/:id/partial-delivery", s.RecordPartialDelivery)
	g.POST("/parcels/:id/cancel", s.CancelParcel)
	g.POST("/parcels/:id/notes", s.AddParcelNote)
	g.POST("/parcels/:id/assign", s.AssignDriver)
	g.POST("/parcel-assignments", s.BulkAssignDriver)
	g.GET("/tracking/:trackingNumber", s.GetParcelByTracking)

	g.POST("/pickups", s.CreatePickup)
	g.DELETE("/pickups/:id", s.DeletePickup)
	g.POST("/pickups/:id/assign", s.AssignDriverToPickup)
	g.POST("/pickups/:id/picked-up", s.MarkPickupCollected)
	g.POST("/pickups/:id/in-storage", s.MarkPickupInStorage)
}
