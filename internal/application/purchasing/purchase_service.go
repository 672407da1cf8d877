package purchasing

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// PurchaseService handles supplier purchase operations
type PurchaseService struct {
	purchaseRepo   purchasing.PurchaseRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo purchasing.PurchaseRepository, txScope TransactionScope) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a supplier purchase. In one transaction it creates the
// purchase document, raises each product's stock, applies the new purchase
// price (and sale price, when given) with the previous values snapshotted on
// the line, and appends a stock movement per product.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "A purchase needs at least one item")
	}

	var purchase *purchasing.Purchase

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.PurchaseRepo().GeneratePurchaseNumber(ctx)
		if err != nil {
			return err
		}

		purchase, err = purchasing.NewPurchase(number, req.Notes)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}

			unitCost := valueobject.NewMoneyFromDecimal(line.UnitCost)
			salePrice := product.SalePrice
			if line.NewSalePrice != nil {
				salePrice = valueobject.NewMoneyFromDecimal(*line.NewSalePrice)
			}

			_, err = purchase.AddItem(
				product.ID, product.Name, line.Quantity, unitCost,
				product.Stock, product.PurchasePrice, product.SalePrice, salePrice,
			)
			if err != nil {
				return err
			}

			if err := product.ChangePrices(unitCost, salePrice); err != nil {
				return err
			}
			if err := product.IncreaseStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypePurchase,
				line.Quantity, product.Stock, purchase.ID, purchase.Number, "",
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		return repos.PurchaseRepo().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase)

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase with its items and full return history
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByNumber retrieves a purchase by its purchase number
func (s *PurchaseService) GetByNumber(ctx context.Context, number string) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with their derived net-cost figures
func (s *PurchaseService) List(ctx context.Context, filter PurchaseListFilter) ([]PurchaseListItemResponse, int64, error) {
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

	purchases, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]PurchaseListItemResponse, 0, len(purchases))
	for idx := range purchases {
		items = append(items, ToPurchaseListItemResponse(&purchases[idx]))
	}
	return items, total, nil
}

func (s *PurchaseService) publishEvents(ctx context.Context, purchase *purchasing.Purchase) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range purchase.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	purchase.ClearDomainEvents()
}
