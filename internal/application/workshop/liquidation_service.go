package workshop

import (
	"context"

	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/workshop"
	"github.com/shopspring/decimal"
)

// LiquidationService settles technicians' labor commissions over delivered
// repair tickets
type LiquidationService struct {
	ticketRepo workshop.TicketRepository
	txScope    TransactionScope
	rate       decimal.Decimal
}

// NewLiquidationService creates a new LiquidationService with the shop's
// commission rate (a fraction of labor income, e.g. 0.40)
func NewLiquidationService(ticketRepo workshop.TicketRepository, txScope TransactionScope, rate decimal.Decimal) *LiquidationService {
	return &LiquidationService{
		ticketRepo: ticketRepo,
		txScope:    txScope,
		rate:       rate,
	}
}

// ListPending computes the pending settlement per technician from delivered,
// not-yet-liquidated tickets. Read-only.
func (s *LiquidationService) ListPending(ctx context.Context) ([]LiquidationLineResponse, error) {
	tickets, err := s.ticketRepo.FindUnliquidatedDelivered(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := workshop.BuildLiquidation(tickets, s.rate)
	if err != nil {
		return nil, err
	}

	responses := make([]LiquidationLineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, ToLiquidationLineResponse(line))
	}
	return responses, nil
}

// Settle marks all of one technician's pending tickets as liquidated, in a
// single transaction, and returns the settled line. The figures are computed
// from the tickets read inside the transaction, so a ticket delivered after
// the preview simply joins the next settlement.
func (s *LiquidationService) Settle(ctx context.Context, req SettleLiquidationRequest) (*LiquidationLineResponse, error) {
	var settled *workshop.LiquidationLine

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		tickets, err := repos.TicketRepo().FindUnliquidatedDelivered(ctx)
		if err != nil {
			return err
		}

		lines, err := workshop.BuildLiquidation(tickets, s.rate)
		if err != nil {
			return err
		}

		for idx := range lines {
			if lines[idx].TechnicianID == req.TechnicianID {
				settled = &lines[idx]
				break
			}
		}
		if settled == nil {
			return shared.NewDomainError("NOTHING_TO_SETTLE", "Technician has no pending tickets")
		}

		for _, ticket := range tickets {
			if ticket.TechnicianID != req.TechnicianID || ticket.Liquidated {
				continue
			}
			if err := ticket.MarkLiquidated(); err != nil {
				return err
			}
			if err := repos.TicketRepo().SaveWithLock(ctx, ticket); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToLiquidationLineResponse(*settled)
	return &response, nil
}
