package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// SaleService handles point-of-sale operations
type SaleService struct {
	saleRepo       sales.SaleRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, txScope TransactionScope) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		txScope:  txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create rings up a sale. In one transaction it builds the sale from current
// product prices, decrements each product's stock, appends a stock movement
// per line, and saves the sale. A product with insufficient stock fails the
// whole sale.
func (s *SaleService) Create(ctx context.Context, soldBy uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	var sale *sales.Sale

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.SaleRepo().GenerateSaleNumber(ctx)
		if err != nil {
			return err
		}

		sale, err = sales.NewSale(number, req.PaymentMethod, req.CustomerName, soldBy)
		if err != nil {
			return err
		}
		sale.Notes = req.Notes

		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.Active {
				return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not for sale: "+product.Name)
			}

			if _, err := sale.AddItem(product.ID, product.Name, line.Quantity, product.SalePrice); err != nil {
				return err
			}

			if err := product.DecreaseStock(line.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				product.ID, product.Name, inventory.MovementTypeSale,
				-line.Quantity, product.Stock, sale.ID, number, "",
			)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		if req.Discount != nil {
			if err := sale.SetDiscount(valueobject.NewMoneyFromDecimal(*req.Discount)); err != nil {
				return err
			}
		}
		if err := sale.Complete(); err != nil {
			return err
		}

		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range sale.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		sale.ClearDomainEvents()
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByNumber retrieves a sale by its sale number
func (s *SaleService) GetByNumber(ctx context.Context, number string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
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

	found, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, 0, len(found))
	for idx := range found {
		responses = append(responses, ToSaleResponse(&found[idx]))
	}
	return responses, total, nil
}
