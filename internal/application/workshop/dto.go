package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/workshop"
	"github.com/shopspring/decimal"
)

// CreateTicketRequest is the request to take a device in for repair
type CreateTicketRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerPhone string          `json:"customer_phone"`
	DeviceBrand   string          `json:"device_brand" binding:"required"`
	DeviceModel   string          `json:"device_model" binding:"required"`
	DeviceIMEI    string          `json:"device_imei"`
	ReportedFault string          `json:"reported_fault" binding:"required"`
	TechnicianID  uuid.UUID       `json:"technician_id" binding:"required"`
	LaborPrice    decimal.Decimal `json:"labor_price" binding:"required"`
}

// AddPartRequest consumes a spare part from stock into a repair
type AddPartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// UpdateTicketRequest updates ticket fields while the repair is open
type UpdateTicketRequest struct {
	Diagnosis  string           `json:"diagnosis"`
	LaborPrice *decimal.Decimal `json:"labor_price"`
}

// CancelTicketRequest closes a ticket without completing the repair
type CancelTicketRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TicketPartResponse is one consumed part
type TicketPartResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// TicketResponse is the full ticket view
type TicketResponse struct {
	ID             uuid.UUID             `json:"id"`
	Number         string                `json:"number"`
	CustomerName   string                `json:"customer_name"`
	CustomerPhone  string                `json:"customer_phone"`
	DeviceBrand    string                `json:"device_brand"`
	DeviceModel    string                `json:"device_model"`
	DeviceIMEI     string                `json:"device_imei"`
	ReportedFault  string                `json:"reported_fault"`
	Diagnosis      string                `json:"diagnosis"`
	TechnicianID   uuid.UUID             `json:"technician_id"`
	TechnicianName string                `json:"technician_name"`
	LaborPrice     decimal.Decimal       `json:"labor_price"`
	Parts          []TicketPartResponse  `json:"parts"`
	PartsTotal     decimal.Decimal       `json:"parts_total"`
	Total          decimal.Decimal       `json:"total"`
	Status         workshop.TicketStatus `json:"status"`
	ReceivedAt     time.Time             `json:"received_at"`
	StartedAt      *time.Time            `json:"started_at"`
	ReadyAt        *time.Time            `json:"ready_at"`
	DeliveredAt    *time.Time            `json:"delivered_at"`
	CancelledAt    *time.Time            `json:"cancelled_at"`
	CancelReason   string                `json:"cancel_reason,omitempty"`
	Liquidated     bool                  `json:"liquidated"`
}

// TicketListFilter carries list query parameters
type TicketListFilter struct {
	Page     int                    `form:"page"`
	PageSize int                    `form:"page_size"`
	OrderBy  string                 `form:"order_by"`
	OrderDir string                 `form:"order_dir"`
	Search   string                 `form:"search"`
	Status   *workshop.TicketStatus `form:"status"`
}

// LiquidationTicketResponse is one ticket inside a liquidation line
type LiquidationTicketResponse struct {
	TicketID     uuid.UUID       `json:"ticket_id"`
	TicketNumber string          `json:"ticket_number"`
	DeliveredAt  string          `json:"delivered_at"`
	LaborPrice   decimal.Decimal `json:"labor_price"`
}

// LiquidationLineResponse is one technician's pending settlement
type LiquidationLineResponse struct {
	TechnicianID    uuid.UUID                   `json:"technician_id"`
	TechnicianName  string                      `json:"technician_name"`
	Tickets         []LiquidationTicketResponse `json:"tickets"`
	TicketCount     int                         `json:"ticket_count"`
	LaborTotal      decimal.Decimal             `json:"labor_total"`
	CommissionRate  decimal.Decimal             `json:"commission_rate"`
	CommissionTotal decimal.Decimal             `json:"commission_total"`
}

// SettleLiquidationRequest marks a technician's pending tickets as settled
type SettleLiquidationRequest struct {
	TechnicianID uuid.UUID `json:"technician_id" binding:"required"`
}

// ToTicketResponse converts a ticket aggregate to its response DTO
func ToTicketResponse(t *workshop.ServiceTicket) TicketResponse {
	parts := make([]TicketPartResponse, 0, len(t.Parts))
	for _, part := range t.Parts {
		parts = append(parts, TicketPartResponse{
			ID:          part.ID,
			ProductID:   part.ProductID,
			ProductName: part.ProductName,
			Quantity:    part.Quantity,
			UnitPrice:   part.UnitPrice.Decimal(),
			LineTotal:   part.LineTotal.Decimal(),
		})
	}

	return TicketResponse{
		ID:             t.ID,
		Number:         t.Number,
		CustomerName:   t.CustomerName,
		CustomerPhone:  t.CustomerPhone,
		DeviceBrand:    t.DeviceBrand,
		DeviceModel:    t.DeviceModel,
		DeviceIMEI:     t.DeviceIMEI,
		ReportedFault:  t.ReportedFault,
		Diagnosis:      t.Diagnosis,
		TechnicianID:   t.TechnicianID,
		TechnicianName: t.TechnicianName,
		LaborPrice:     t.LaborPrice.Decimal(),
		Parts:          parts,
		PartsTotal:     t.PartsTotal().Decimal(),
		Total:          t.Total().Decimal(),
		Status:         t.Status,
		ReceivedAt:     t.ReceivedAt,
		StartedAt:      t.StartedAt,
		ReadyAt:        t.ReadyAt,
		DeliveredAt:    t.DeliveredAt,
		CancelledAt:    t.CancelledAt,
		CancelReason:   t.CancelReason,
		Liquidated:     t.Liquidated,
	}
}

// ToLiquidationLineResponse converts a liquidation line to its response DTO
func ToLiquidationLineResponse(line workshop.LiquidationLine) LiquidationLineResponse {
	tickets := make([]LiquidationTicketResponse, 0, len(line.Tickets))
	for _, tk := range line.Tickets {
		tickets = append(tickets, LiquidationTicketResponse{
			TicketID:     tk.TicketID,
			TicketNumber: tk.TicketNumber,
			DeliveredAt:  tk.DeliveredAt,
			LaborPrice:   tk.LaborPrice.Decimal(),
		})
	}
	return LiquidationLineResponse{
		TechnicianID:    line.TechnicianID,
		TechnicianName:  line.TechnicianName,
		Tickets:         tickets,
		TicketCount:     line.TicketCount,
		LaborTotal:      line.LaborTotal.Decimal(),
		CommissionRate:  line.CommissionRate,
		CommissionTotal: line.CommissionTotal.Decimal(),
	}
}
