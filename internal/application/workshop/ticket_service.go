package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/identity"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/movilshop/backend/internal/domain/workshop"
)

// TicketService handles repair ticket operations
type TicketService struct {
	ticketRepo     workshop.TicketRepository
	userRepo       identity.UserRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo workshop.TicketRepository, userRepo identity.UserRepository, txScope TransactionScope) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		txScope:    txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *TicketService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create takes a device in for repair, snapshotting the technician's name
func (s *TicketService) Create(ctx context.Context, req CreateTicketRequest) (*TicketResponse, error) {
	technician, err := s.userRepo.FindByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, err
	}
	if technician.Role != identity.RoleTechnician && technician.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("NOT_A_TECHNICIAN", "Assigned user is not a technician")
	}

	number, err := s.ticketRepo.GenerateTicketNumber(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := workshop.NewServiceTicket(
		number, req.CustomerName, req.CustomerPhone,
		req.DeviceBrand, req.DeviceModel, req.DeviceIMEI, req.ReportedFault,
		technician.ID, technician.DisplayName,
		valueobject.NewMoneyFromDecimal(req.LaborPrice),
	)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ticket)

	response := ToTicketResponse(ticket)
	return &response, nil
}

// AddPart consumes a spare part from stock into a repair. In one transaction
// it records the part on the ticket at the product's current sale price,
// lowers the product's stock, and appends a stock movement.
func (s *TicketService) AddPart(ctx context.Context, ticketID uuid.UUID, req AddPartRequest) (*TicketResponse, error) {
	var ticket *workshop.ServiceTicket

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ticket, err = repos.TicketRepo().FindByID(ctx, ticketID)
		if err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if _, err := ticket.AddPart(product.ID, product.Name, req.Quantity, product.SalePrice); err != nil {
			return err
		}
		if err := product.DecreaseStock(req.Quantity); err != nil {
			return err
		}

		if err := repos.TicketRepo().SaveWithLock(ctx, ticket); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			product.ID, product.Name, inventory.MovementTypeTicketPart,
			-req.Quantity, product.Stock, ticket.ID, ticket.Number, "",
		)
		if err != nil {
			return err
		}
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// Update records diagnosis and labor price changes on an open ticket
func (s *TicketService) Update(ctx context.Context, ticketID uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Diagnosis != "" {
		ticket.SetDiagnosis(req.Diagnosis)
	}
	if req.LaborPrice != nil {
		if err := ticket.SetLaborPrice(valueobject.NewMoneyFromDecimal(*req.LaborPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// StartRepair moves a received ticket onto the bench
func (s *TicketService) StartRepair(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, ticketID, func(t *workshop.ServiceTicket) error { return t.StartRepair() })
}

// MarkReady marks the repair finished and the device awaiting pickup
func (s *TicketService) MarkReady(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, ticketID, func(t *workshop.ServiceTicket) error { return t.MarkReady() })
}

// Deliver hands the repaired device back to the customer
func (s *TicketService) Deliver(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, ticketID, func(t *workshop.ServiceTicket) error { return t.Deliver() })
}

// Cancel closes the ticket without completing the repair. Parts already
// consumed go back to stock in the same transaction.
func (s *TicketService) Cancel(ctx context.Context, ticketID uuid.UUID, req CancelTicketRequest) (*TicketResponse, error) {
	var ticket *workshop.ServiceTicket

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ticket, err = repos.TicketRepo().FindByID(ctx, ticketID)
		if err != nil {
			return err
		}

		if err := ticket.Cancel(req.Reason); err != nil {
			return err
		}
		if err := repos.TicketRepo().SaveWithLock(ctx, ticket); err != nil {
			return err
		}

		for _, part := range ticket.Parts {
			product, err := repos.ProductRepo().FindByID(ctx, part.ProductID)
			if err != nil {
				return err
			}
			if err := product.IncreaseStock(part.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypeTicketPart,
				part.Quantity, product.Stock, ticket.ID, ticket.Number, "repair cancelled",
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetByID retrieves a ticket by ID
func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTicketResponse(ticket)
	return &response, nil
}

// List retrieves tickets with pagination and optional status filtering
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]TicketResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	var (
		tickets []*workshop.ServiceTicket
		err     error
	)
	if filter.Status != nil {
		tickets, err = s.ticketRepo.FindByStatus(ctx, *filter.Status, domainFilter)
	} else {
		tickets, err = s.ticketRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ticketRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, ToTicketResponse(ticket))
	}
	return responses, total, nil
}

func (s *TicketService) transition(ctx context.Context, ticketID uuid.UUID, fn func(*workshop.ServiceTicket) error) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := fn(ticket); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ticket)

	response := ToTicketResponse(ticket)
	return &response, nil
}

func (s *TicketService) publishEvents(ctx context.Context, ticket *workshop.ServiceTicket) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range ticket.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	ticket.ClearDomainEvents()
}
