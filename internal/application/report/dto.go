package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse is the daily overview shown on the admin home screen
type DashboardResponse struct {
	SalesToday      decimal.Decimal    `json:"sales_today"`
	SalesThisMonth  decimal.Decimal    `json:"sales_this_month"`
	LowStockCount   int                `json:"low_stock_count"`
	LowStock        []LowStockProduct  `json:"low_stock"`
	TicketsInRepair int64              `json:"tickets_in_repair"`
	TicketsReady    int64              `json:"tickets_ready"`
	PendingPayout   decimal.Decimal    `json:"pending_payout"`
	OverduePlans    []OverduePlanEntry `json:"overdue_plans"`
}

// LowStockProduct identifies a product at or below its minimum stock
type LowStockProduct struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	MinStock  int64  `json:"min_stock"`
}

// OverduePlanEntry identifies a layaway plan past its due date
type OverduePlanEntry struct {
	PlanID       string          `json:"plan_id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Balance      decimal.Decimal `json:"balance"`
	DueDate      time.Time       `json:"due_date"`
}

// PurchaseCostLine is one purchase in the net-cost report
type PurchaseCostLine struct {
	PurchaseID    string          `json:"purchase_id"`
	Number        string          `json:"number"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalReturned decimal.Decimal `json:"total_returned"`
	NetCost       decimal.Decimal `json:"net_cost"`
	TotalUnits    int64           `json:"total_units"`
	ReturnedUnits int64           `json:"returned_units"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PurchaseCostReport summarizes procurement spend net of supplier returns
// over a period
type PurchaseCostReport struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	Purchases     []PurchaseCostLine `json:"purchases"`
	TotalCost     decimal.Decimal    `json:"total_cost"`
	TotalReturned decimal.Decimal    `json:"total_returned"`
	NetCost       decimal.Decimal    `json:"net_cost"`
}

// SalesSummaryReport summarizes revenue over a period
type SalesSummaryReport struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Total decimal.Decimal `json:"total"`
}
