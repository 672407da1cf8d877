package workshop

import (
	"sort"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LiquidationTicket is a single settled ticket inside a liquidation line
type LiquidationTicket struct {
	TicketID     uuid.UUID
	TicketNumber string
	DeliveredAt  string
	LaborPrice   valueobject.Money
}

// LiquidationLine aggregates a technician's unsettled labor
type LiquidationLine struct {
	TechnicianID    uuid.UUID
	TechnicianName  string
	Tickets         []LiquidationTicket
	TicketCount     int
	LaborTotal      valueobject.Money
	CommissionRate  decimal.Decimal
	CommissionTotal valueobject.Money
}

// BuildLiquidation groups delivered, not-yet-liquidated tickets by technician
// and computes each technician's commission at the given rate. The rate is a
// fraction of labor, e.g. 0.40 pays the technician 40% of labor income.
// Tickets that are not delivered or already liquidated are skipped. The
// computation is pure; marking tickets as settled is the caller's job.
func BuildLiquidation(tickets []*ServiceTicket, rate decimal.Decimal) ([]LiquidationLine, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 1")
	}

	byTech := make(map[uuid.UUID]*LiquidationLine)
	for _, t := range tickets {
		if t.Status != TicketStatusDelivered || t.Liquidated {
			continue
		}
		line, ok := byTech[t.TechnicianID]
		if !ok {
			line = &LiquidationLine{
				TechnicianID:   t.TechnicianID,
				TechnicianName: t.TechnicianName,
				LaborTotal:     valueobject.ZeroMoney(),
				CommissionRate: rate,
			}
			byTech[t.TechnicianID] = line
		}
		deliveredAt := ""
		if t.DeliveredAt != nil {
			deliveredAt = t.DeliveredAt.Format("2006-01-02 15:04")
		}
		line.Tickets = append(line.Tickets, LiquidationTicket{
			TicketID:     t.ID,
			TicketNumber: t.Number,
			DeliveredAt:  deliveredAt,
			LaborPrice:   t.LaborPrice,
		})
		line.TicketCount++
		line.LaborTotal = line.LaborTotal.Add(t.LaborPrice)
	}

	lines := make([]LiquidationLine, 0, len(byTech))
	for _, line := range byTech {
		line.CommissionTotal = valueobject.NewMoneyFromDecimal(line.LaborTotal.Decimal().Mul(rate))
		lines = append(lines, *line)
	}

	// stable output order for reports
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].TechnicianName < lines[j].TechnicianName
	})

	return lines, nil
}
