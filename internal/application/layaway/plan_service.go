package layaway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PlanService handles layaway plan operations
type PlanService struct {
	planRepo       layaway.PlanRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo layaway.PlanRepository, txScope TransactionScope) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		txScope:  txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PlanService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a plan. In one transaction it reserves each product at its
// current sale price, lowers stock, appends a movement per line, and saves
// the plan; an optional deposit is recorded as the first installment.
func (s *PlanService) Create(ctx context.Context, receivedBy uuid.UUID, req CreatePlanRequest) (*PlanResponse, error) {
	var plan *layaway.Plan

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.PlanRepo().GeneratePlanNumber(ctx)
		if err != nil {
			return err
		}

		plan, err = layaway.NewPlan(number, req.CustomerName, req.CustomerID, req.DueDate)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.Active {
				return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not for sale: "+product.Name)
			}

			if err := plan.AddItem(product.ID, product.Name, line.Quantity, product.SalePrice); err != nil {
				return err
			}
			if err := product.DecreaseStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypeLayaway,
				-line.Quantity, product.Stock, plan.ID, number, "",
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		if req.Deposit != nil {
			method := req.Method
			if method == "" {
				method = "CASH"
			}
			if _, err := plan.RecordPayment(valueobject.NewMoneyFromDecimal(*req.Deposit), method, "deposit", receivedBy); err != nil {
				return err
			}
		}

		return repos.PlanRepo().Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan)

	response := ToPlanResponse(plan, time.Now())
	return &response, nil
}

// RecordPayment appends an installment; the plan completes itself when the
// balance reaches zero
func (s *PlanService) RecordPayment(ctx context.Context, planID, receivedBy uuid.UUID, req RecordPaymentRequest) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if _, err := plan.RecordPayment(valueobject.NewMoneyFromDecimal(req.Amount), req.Method, req.Notes, receivedBy); err != nil {
		return nil, err
	}
	if err := s.planRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan)

	response := ToPlanResponse(plan, time.Now())
	return &response, nil
}

// Cancel closes a plan and puts its reserved merchandise back on the shelf,
// all in one transaction. The payment ledger is kept for the refund.
func (s *PlanService) Cancel(ctx context.Context, planID uuid.UUID, req CancelPlanRequest) (*PlanResponse, error) {
	var plan *layaway.Plan

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		plan, err = repos.PlanRepo().FindByID(ctx, planID)
		if err != nil {
			return err
		}

		if err := plan.Cancel(req.Reason); err != nil {
			return err
		}
		if err := repos.PlanRepo().SaveWithLock(ctx, plan); err != nil {
			return err
		}

		for _, item := range plan.Items {
			product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := product.IncreaseStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypeLayawayRelease,
				item.Quantity, product.Stock, plan.ID, plan.Number, req.Reason,
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

	s.publishEvents(ctx, plan)

	response := ToPlanResponse(plan, time.Now())
	return &response, nil
}

// GetByID retrieves a plan by ID
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPlanResponse(plan, time.Now())
	return &response, nil
}

// List retrieves plans with pagination and optional status filtering
func (s *PlanService) List(ctx context.Context, filter PlanListFilter) ([]PlanResponse, int64, error) {
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
		plans []*layaway.Plan
		err   error
	)
	if filter.Status != nil {
		plans, err = s.planRepo.FindByStatus(ctx, *filter.Status, domainFilter)
	} else {
		plans, err = s.planRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.planRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, ToPlanResponse(plan, now))
	}
	return responses, total, nil
}

// ListOverdue retrieves active plans past their due date
func (s *PlanService) ListOverdue(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindOverdue(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, ToPlanResponse(plan, now))
	}
	return responses, nil
}

func (s *PlanService) publishEvents(ctx context.Context, plan *layaway.Plan) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range plan.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	plan.ClearDomainEvents()
}
