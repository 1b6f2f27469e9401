package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the REST endpoints to the application's command and query
// handlers.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	validateOrderHandler   commands.ValidateOrderCommandHandler
	prepareOrderHandler    commands.PrepareOrderCommandHandler
	updateLogisticsHandler commands.UpdateLogisticsCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	createAgentHandler     commands.CreateAgentCommandHandler

	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	validateOrderHandler commands.ValidateOrderCommandHandler,
	prepareOrderHandler commands.PrepareOrderCommandHandler,
	updateLogisticsHandler commands.UpdateLogisticsCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createAgentHandler commands.CreateAgentCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		validateOrderHandler:   validateOrderHandler,
		prepareOrderHandler:    prepareOrderHandler,
		updateLogisticsHandler: updateLogisticsHandler,
		cancelOrderHandler:     cancelOrderHandler,
		createAgentHandler:     createAgentHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1 behind the actor
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", ActorContextMiddleware())

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.POST("/orders/:id/validate", s.ValidateOrder)
	api.POST("/orders/:id/prepare", s.PrepareOrder)
	api.POST("/orders/:id/logistics", s.UpdateLogistics)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.POST("/agents", s.CreateAgent)
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLineItem is one position of an order creation request.
type NewLineItem struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	Items []NewLineItem `json:"items"`
}

// OrderCreated is the order creation response body.
type OrderCreated struct {
	ID string `json:"id"`
}

// OrderNote is the body of validate/prepare requests: an optional remark
// recorded in the order's history.
type OrderNote struct {
	Note string `json:"note"`
}

// CancelOrder is the cancellation request body.
type CancelOrder struct {
	Reason string `json:"reason"`
}

// LogisticsUpdate is the shipment progress request body. Empty strings and
// absent timestamps leave the stored tracking fields unchanged.
type LogisticsUpdate struct {
	Status            string     `json:"status"`
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"tracking_number"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery"`
	Note              string     `json:"note"`
}

// NewAgent is the agent creation request body. A null capability override
// grants the role defaults; a present (possibly empty) list replaces them.
type NewAgent struct {
	Name               string    `json:"name"`
	CapabilityOverride *[]string `json:"capability_override"`
}

// AgentCreated is the agent creation response body.
type AgentCreated struct {
	ID string `json:"id"`
}

// ActiveOrder is one row of the active orders listing.
type ActiveOrder struct {
	ID               string    `json:"id"`
	Number           string    `json:"number"`
	CustomerID       string    `json:"customer_id"`
	AssignedAgentID  *string   `json:"assigned_agent_id,omitempty"`
	CommercialStatus string    `json:"commercial_status"`
	LogisticsStatus  string    `json:"logistics_status"`
	TotalCents       int64     `json:"total_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

// HistoryEntry is one row of an order's audit trail.
type HistoryEntry struct {
	Seq     int       `json:"seq"`
	Label   string    `json:"label"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
	Note    string    `json:"note,omitempty"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	items := make([]order.LineItem, 0, len(body.Items))
	for _, position := range body.Items {
		productID, err := kernel.UUIDFromString(position.ProductID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code: http.StatusBadRequest, Message: "invalid product id: " + position.ProductID,
			})
		}

		item, err := order.NewLineItem(productID, position.Quantity, position.UnitPriceCents)
		if err != nil {
			return errorJSON(c, err)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor, items)
	if err != nil {
		return errorJSON(c, err)
	}

	// A concurrent checkout can claim the same daily order number; the retry
	// re-counts and takes the next sequence.
	err = withConflictRetry(c.Request().Context(), func(ctx context.Context) error {
		return s.createOrderHandler.Handle(ctx, cmd)
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// ValidateOrder handles POST /api/v1/orders/:id/validate.
func (s *Server) ValidateOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid order id",
		})
	}

	var body OrderNote
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewValidateOrderCommand(orderID, actor, body.Note)
	if err != nil {
		return errorJSON(c, err)
	}

	err = withConflictRetry(c.Request().Context(), func(ctx context.Context) error {
		return s.validateOrderHandler.Handle(ctx, cmd)
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PrepareOrder handles POST /api/v1/orders/:id/prepare.
func (s *Server) PrepareOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid order id",
		})
	}

	var body OrderNote
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewPrepareOrderCommand(orderID, actor, body.Note)
	if err != nil {
		return errorJSON(c, err)
	}

	err = withConflictRetry(c.Request().Context(), func(ctx context.Context) error {
		return s.prepareOrderHandler.Handle(ctx, cmd)
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateLogistics handles POST /api/v1/orders/:id/logistics.
func (s *Server) UpdateLogistics(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid order id",
		})
	}

	var body LogisticsUpdate
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	target, err := order.LogisticsStatusFromString(body.Status)
	if err != nil {
		return errorJSON(c, err)
	}

	cmd, err := commands.NewUpdateLogisticsCommand(
		orderID, actor, target,
		body.Carrier, body.TrackingNumber,
		body.EstimatedDelivery, body.ActualDelivery,
		body.Note,
	)
	if err != nil {
		return errorJSON(c, err)
	}

	err = withConflictRetry(c.Request().Context(), func(ctx context.Context) error {
		return s.updateLogisticsHandler.Handle(ctx, cmd)
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid order id",
		})
	}

	var body CancelOrder
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, body.Reason)
	if err != nil {
		return errorJSON(c, err)
	}

	err = withConflictRetry(c.Request().Context(), func(ctx context.Context) error {
		return s.cancelOrderHandler.Handle(ctx, cmd)
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateAgent handles POST /api/v1/agents.
func (s *Server) CreateAgent(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	var body NewAgent
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid request body",
		})
	}

	var override []auth.Capability
	if body.CapabilityOverride != nil {
		override = make([]auth.Capability, 0, len(*body.CapabilityOverride))
		for _, token := range *body.CapabilityOverride {
			override = append(override, auth.Capability(token))
		}
	}

	agentID := kernel.NewUUID()
	cmd, err := commands.NewCreateAgentCommand(agentID, actor, body.Name, override)
	if err != nil {
		return errorJSON(c, err)
	}

	if err := s.createAgentHandler.Handle(c.Request().Context(), cmd); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, AgentCreated{ID: agentID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	query, err := queries.NewGetActiveOrdersQuery(actor)
	if err != nil {
		return errorJSON(c, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorJSON(c, err)
	}

	response := make([]ActiveOrder, 0, len(orders))
	for _, o := range orders {
		row := ActiveOrder{
			ID:               o.ID.String(),
			Number:           o.Number,
			CustomerID:       o.CustomerID.String(),
			CommercialStatus: o.CommercialStatus,
			LogisticsStatus:  o.LogisticsStatus,
			TotalCents:       o.TotalCents,
			CreatedAt:        o.CreatedAt,
		}
		if o.AssignedAgentID != nil {
			agentID := o.AssignedAgentID.String()
			row.AssignedAgentID = &agentID
		}
		response = append(response, row)
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code: http.StatusUnauthorized, Message: "actor context missing",
		})
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: "invalid order id",
		})
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID, actor)
	if err != nil {
		return errorJSON(c, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return errorJSON(c, err)
	}

	response := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, HistoryEntry{
			Seq:     entry.Seq,
			Label:   entry.Label,
			ActorID: entry.ActorID.String(),
			At:      entry.At,
			Note:    entry.Note,
		})
	}

	return c.JSON(http.StatusOK, response)
}

// withConflictRetry runs a mutation and retries it once on a version
// conflict. Handlers re-read the aggregate on every call, so the retry
// re-applies the request to the fresh state; if the retry conflicts too, the
// client gets the conflict.
func withConflictRetry(ctx context.Context, mutate func(context.Context) error) error {
	err := mutate(ctx)
	if err != nil && errors.Is(err, errs.ErrVersionConflict) {
		return mutate(ctx)
	}
	return err
}

// errorJSON translates an application error into the API's status code
// conventions.
func errorJSON(c echo.Context, err error) error {
	var denied *errs.AccessDeniedError

	switch {
	case errors.As(err, &denied):
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Code: http.StatusForbidden, Message: denied.Reason,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code: http.StatusNotFound, Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code: http.StatusConflict, Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code: http.StatusBadRequest, Message: err.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code: http.StatusInternalServerError, Message: "internal error",
		})
	}
}
