package purchasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PurchaseReturnService records returns of purchased goods to the supplier
// and answers return-validation queries.
type PurchaseReturnService struct {
	purchaseRepo   purchasing.PurchaseRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPurchaseReturnService creates a new PurchaseReturnService
func NewPurchaseReturnService(purchaseRepo purchasing.PurchaseRepository, txScope TransactionScope) *PurchaseReturnService {
	return &PurchaseReturnService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Validate runs a dry-run validation of a proposed return against the
// purchase's current return history. It never writes anything; the same
// checks run again inside the transaction when the return is recorded, so a
// clean dry run is a preview, not a reservation.
func (s *PurchaseReturnService) Validate(ctx context.Context, purchaseID uuid.UUID, req CreateReturnRequest) (*ValidateReturnResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	result := purchase.ValidateReturnItems(toProposedItems(req.Items))
	return &ValidateReturnResponse{Valid: result.Valid, Errors: result.Errors}, nil
}

// Create records a return against a purchase. In one transaction it re-reads
// the purchase, validates the proposed lines against the full return history,
// appends the immutable return record, lowers each product's stock, and
// appends a stock movement per returned line. Failure at any step rolls the
// whole operation back.
func (s *PurchaseReturnService) Create(ctx context.Context, purchaseID uuid.UUID, req CreateReturnRequest) (*ReturnResponse, error) {
	var (
		purchase *purchasing.Purchase
		recorded *purchasing.PurchaseReturn
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		recorded, err = purchase.RecordReturn(toProposedItems(req.Items), req.Reason, req.Notes)
		if err != nil {
			return err
		}

		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		for _, line := range recorded.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := product.DecreaseStock(line.ReturnedQuantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypePurchaseReturn,
				-line.ReturnedQuantity, product.Stock, recorded.ID, purchase.Number, line.Reason,
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

	if s.eventPublisher != nil {
		for _, event := range purchase.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		purchase.ClearDomainEvents()
	}

	response := ToReturnResponse(recorded)
	return &response, nil
}

// GetReturn retrieves one recorded return from a purchase's history
func (s *PurchaseReturnService) GetReturn(ctx context.Context, purchaseID, returnID uuid.UUID) (*ReturnResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	ret := purchase.GetReturn(returnID)
	if ret == nil {
		return nil, shared.ErrNotFound
	}

	response := ToReturnResponse(ret)
	return &response, nil
}

// ListReturns retrieves the full return history of a purchase
func (s *PurchaseReturnService) ListReturns(ctx context.Context, purchaseID uuid.UUID) ([]ReturnResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	returns := make([]ReturnResponse, 0, len(purchase.Returns))
	for idx := range purchase.Returns {
		returns = append(returns, ToReturnResponse(&purchase.Returns[idx]))
	}
	return returns, nil
}

func toProposedItems(items []CreateReturnItemRequest) []purchasing.ProposedReturnItem {
	proposed := make([]purchasing.ProposedReturnItem, 0, len(items))
	for _, item := range items {
		proposed = append(proposed, purchasing.ProposedReturnItem{
			ProductID:        item.ProductID,
			ReturnedQuantity: item.ReturnedQuantity,
			UnitCost:         valueobject.NewMoneyFromDecimal(item.UnitCost),
			Reason:           item.Reason,
		})
	}
	return proposed
}
