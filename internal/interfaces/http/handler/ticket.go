package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	workshopapp "github.com/movilshop/backend/internal/application/workshop"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/interfaces/http/dto"
	"github.com/movilshop/backend/internal/interfaces/http/middleware"
)

// TicketHandler handles repair workshop endpoints
type TicketHandler struct {
	BaseHandler
	ticketService      *workshopapp.TicketService
	liquidationService *workshopapp.LiquidationService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(
	ticketService *workshopapp.TicketService,
	liquidationService *workshopapp.LiquidationService,
) *TicketHandler {
	return &TicketHandler{
		ticketService:      ticketService,
		liquidationService: liquidationService,
	}
}

// RegisterRoutes registers workshop routes. Liquidation settles technician
// commissions, so it is admin-only.
func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tickets := rg.Group("/tickets")
	{
		tickets.POST("", h.Create)
		tickets.GET("", h.List)
		tickets.GET("/:id", h.Get)
		tickets.PUT("/:id", h.Update)
		tickets.POST("/:id/parts", h.AddPart)
		tickets.POST("/:id/start", h.StartRepair)
		tickets.POST("/:id/ready", h.MarkReady)
		tickets.POST("/:id/deliver", h.Deliver)
		tickets.POST("/:id/cancel", h.Cancel)
	}

	liquidations := rg.Group("/liquidations", middleware.RequireRole(string(identity.RoleAdmin)))
	{
		liquidations.GET("/pending", h.PendingLiquidations)
		liquidations.POST("/settle", h.SettleLiquidation)
	}
}

// Create takes a device in for repair
func (h *TicketHandler) Create(c *gin.Context) {
	var req workshopapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// List returns tickets with pagination
func (h *TicketHandler) List(c *gin.Context) {
	var filter workshopapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	tickets, total, err := h.ticketService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, tickets, dto.NewMeta(page, pageSize, total))
}

// Get returns a single ticket
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Update changes the diagnosis or labor price while the repair is open
func (h *TicketHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req workshopapp.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// AddPart consumes a spare part from stock into the repair
func (h *TicketHandler) AddPart(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req workshopapp.AddPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	ticket, err := h.ticketService.AddPart(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// StartRepair moves a received ticket into repair
func (h *TicketHandler) StartRepair(c *gin.Context) {
	h.transition(c, h.ticketService.StartRepair)
}

// MarkReady marks a repair as finished and ready for pickup
func (h *TicketHandler) MarkReady(c *gin.Context) {
	h.transition(c, h.ticketService.MarkReady)
}

// Deliver hands the device back to the customer
func (h *TicketHandler) Deliver(c *gin.Context) {
	h.transition(c, h.ticketService.Deliver)
}

// Cancel closes a ticket without completing the repair, restoring any
// consumed parts to stock
func (h *TicketHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req workshopapp.CancelTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Cancel reason is required")
		return
	}

	ticket, err := h.ticketService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// PendingLiquidations returns each technician's unsettled delivered tickets
func (h *TicketHandler) PendingLiquidations(c *gin.Context) {
	lines, err := h.liquidationService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// SettleLiquidation marks a technician's pending tickets as settled
func (h *TicketHandler) SettleLiquidation(c *gin.Context) {
	var req workshopapp.SettleLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Technician ID is required")
		return
	}

	line, err := h.liquidationService.Settle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

func (h *TicketHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, ticketID uuid.UUID) (*workshopapp.TicketResponse, error),
) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ticket, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}
