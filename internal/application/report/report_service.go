package report

import (
	"context"
	"time"

	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/movilshop/backend/internal/domain/workshop"
)

// ReportService aggregates figures across contexts for the admin screens.
// It only reads; every number is derived from the underlying ledgers at
// request time.
type ReportService struct {
	saleRepo     sales.SaleRepository
	purchaseRepo purchasing.PurchaseRepository
	productRepo  catalog.ProductRepository
	ticketRepo   workshop.TicketRepository
	planRepo     layaway.PlanRepository
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo sales.SaleRepository,
	purchaseRepo purchasing.PurchaseRepository,
	productRepo catalog.ProductRepository,
	ticketRepo workshop.TicketRepository,
	planRepo layaway.PlanRepository,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		ticketRepo:   ticketRepo,
		planRepo:     planRepo,
	}
}

// Dashboard builds the admin overview for the current day
func (s *ReportService) Dashboard(ctx context.Context, now time.Time) (*DashboardResponse, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayCents, err := s.saleRepo.SumTotalBetween(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	monthCents, err := s.saleRepo.SumTotalBetween(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStockEntries := make([]LowStockProduct, 0, len(lowStock))
	for i := range lowStock {
		p := &lowStock[i]
		lowStockEntries = append(lowStockEntries, LowStockProduct{
			ProductID: p.ID.String(),
			Code:      p.Code,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
		})
	}

	inRepair, err := s.countTickets(ctx, workshop.TicketStatusInRepair)
	if err != nil {
		return nil, err
	}
	ready, err := s.countTickets(ctx, workshop.TicketStatusReady)
	if err != nil {
		return nil, err
	}

	// labor still owed to technicians, before commission
	pending, err := s.ticketRepo.FindUnliquidatedDelivered(ctx)
	if err != nil {
		return nil, err
	}
	payout := valueobject.ZeroMoney()
	for _, t := range pending {
		payout = payout.Add(t.LaborPrice)
	}

	overdue, err := s.planRepo.FindOverdue(ctx)
	if err != nil {
		return nil, err
	}
	overdueEntries := make([]OverduePlanEntry, 0, len(overdue))
	for _, plan := range overdue {
		if plan.DueDate == nil {
			continue
		}
		overdueEntries = append(overdueEntries, OverduePlanEntry{
			PlanID:       plan.ID.String(),
			Number:       plan.Number,
			CustomerName: plan.CustomerName,
			Balance:      plan.Balance().Decimal(),
			DueDate:      *plan.DueDate,
		})
	}

	return &DashboardResponse{
		SalesToday:      valueobject.NewMoneyFromCents(todayCents).Decimal(),
		SalesThisMonth:  valueobject.NewMoneyFromCents(monthCents).Decimal(),
		LowStockCount:   len(lowStockEntries),
		LowStock:        lowStockEntries,
		TicketsInRepair: inRepair,
		TicketsReady:    ready,
		PendingPayout:   payout.Decimal(),
		OverduePlans:    overdueEntries,
	}, nil
}

func (s *ReportService) countTickets(ctx context.Context, status workshop.TicketStatus) (int64, error) {
	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(status)
	return s.ticketRepo.Count(ctx, filter)
}

// PurchaseCosts reports procurement spend net of supplier returns in a period
func (s *ReportService) PurchaseCosts(ctx context.Context, from, to time.Time) (*PurchaseCostReport, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000
	filter.Filters["created_from"] = from
	filter.Filters["created_to"] = to

	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &PurchaseCostReport{
		From:      from,
		To:        to,
		Purchases: make([]PurchaseCostLine, 0, len(purchases)),
	}

	totalCost := valueobject.ZeroMoney()
	totalReturned := valueobject.ZeroMoney()
	for i := range purchases {
		p := &purchases[i]
		cost := p.TotalCost()
		returned := p.GetTotalReturned()
		totalCost = totalCost.Add(cost)
		totalReturned = totalReturned.Add(returned)

		report.Purchases = append(report.Purchases, PurchaseCostLine{
			PurchaseID:    p.ID.String(),
			Number:        p.Number,
			TotalCost:     cost.Decimal(),
			TotalReturned: returned.Decimal(),
			NetCost:       p.GetNetCost().Decimal(),
			TotalUnits:    p.TotalUnits(),
			ReturnedUnits: p.TotalReturnedUnits(),
			CreatedAt:     p.CreatedAt,
		})
	}

	report.TotalCost = totalCost.Decimal()
	report.TotalReturned = totalReturned.Decimal()
	report.NetCost = totalCost.Subtract(totalReturned).Decimal()
	return report, nil
}

// SalesSummary reports total revenue in a period
func (s *ReportService) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryReport, error) {
	cents, err := s.saleRepo.SumTotalBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &SalesSummaryReport{
		From:  from,
		To:    to,
		Total: valueobject.NewMoneyFromCents(cents).Decimal(),
	}, nil
}
