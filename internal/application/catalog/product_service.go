package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, movementRepo inventory.StockMovementRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindByCode(ctx, req.Code)
	if err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A product with this code already exists")
	}

	product, err := catalog.NewProduct(
		req.Name, req.Code, req.Brand, req.Category,
		valueobject.NewMoneyFromDecimal(req.PurchasePrice),
		valueobject.NewMoneyFromDecimal(req.SalePrice),
		req.InitialStock,
	)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := product.UpdateDetails(req.Name, req.Brand, req.Category, req.Description); err != nil {
			return nil, err
		}
	}
	if req.MinStock > 0 {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByCode retrieves a product by its SKU code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Update changes product details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdateDetails(req.Name, req.Brand, req.Category, req.Description); err != nil {
		return nil, err
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ChangePrices updates both prices, keeping the previous pair for display
func (s *ProductService) ChangePrices(ctx context.Context, id uuid.UUID, req ChangePricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = product.ChangePrices(
		valueobject.NewMoneyFromDecimal(req.PurchasePrice),
		valueobject.NewMoneyFromDecimal(req.SalePrice),
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock corrects the stock level after a physical count and records
// the correction in the movement log
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	delta := req.NewStock - product.Stock
	if delta == 0 {
		response := ToProductResponse(product)
		return &response, nil
	}

	if err := product.AdjustStock(req.NewStock); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(
		product.ID, product.Name, inventory.MovementTypeAdjustment,
		delta, product.Stock, product.ID, "", req.Note,
	)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate hides a product from sale without deleting its history
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.SaveWithLock(ctx, product)
}

// Activate puts a product back on sale
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Activate()
	return s.productRepo.SaveWithLock(ctx, product)
}

// List retrieves products with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
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
		products []catalog.Product
		err      error
	)
	if filter.OnlyActive {
		products, err = s.productRepo.FindActive(ctx, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, total, nil
}

// ListLowStock retrieves active products at or below their minimum stock
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, nil
}

// ListMovements retrieves a product's stock movement history, newest first
func (s *ProductService) ListMovements(ctx context.Context, productID uuid.UUID, filter MovementListFilter) ([]MovementResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Type != "" {
		domainFilter.Filters = map[string]interface{}{"type": filter.Type}
	}

	movements, err := s.movementRepo.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, ToMovementResponse(&movements[idx]))
	}
	return responses, nil
}
