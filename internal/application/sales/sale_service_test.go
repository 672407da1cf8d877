package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/catalog"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByNumber(ctx context.Context, number string) (*sales.Sale, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SumTotalBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestSaleService_Create(t *testing.T) {
	newProduct := func(t *testing.T, stock int64) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct("Galaxy A54", "SAM-A54", "Samsung", "Phones",
			valueobject.NewMoneyFromCents(10000), valueobject.NewMoneyFromCents(15000), stock)
		require.NoError(t, err)
		return product
	}

	t.Run("sells at current price and decrements stock", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		movementRepo := new(MockMovementRepository)
		service := NewSaleService(saleRepo, NewNoOpTransactionScope(saleRepo, productRepo, movementRepo))

		product := newProduct(t, 5)
		ctx := context.Background()

		saleRepo.On("GenerateSaleNumber", ctx).Return("VT-2024-0042", nil)
		saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		resp, err := service.Create(ctx, uuid.New(), CreateSaleRequest{
			Items:         []CreateSaleItemRequest{{ProductID: product.ID, Quantity: 2}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.NoError(t, err)

		assert.Equal(t, "VT-2024-0042", resp.Number)
		assert.True(t, decimal.RequireFromString("300.00").Equal(resp.Total))
		assert.Equal(t, int64(3), product.Stock)

		movement := movementRepo.Calls[0].Arguments.Get(1).(*inventory.StockMovement)
		assert.Equal(t, inventory.MovementTypeSale, movement.Type)
		assert.Equal(t, int64(-2), movement.Quantity)
		assert.Equal(t, int64(3), movement.StockAfter)
	})

	t.Run("insufficient stock fails the whole sale", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		movementRepo := new(MockMovementRepository)
		service := NewSaleService(saleRepo, NewNoOpTransactionScope(saleRepo, productRepo, movementRepo))

		product := newProduct(t, 1)
		ctx := context.Background()

		saleRepo.On("GenerateSaleNumber", ctx).Return("VT-2024-0043", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Create(ctx, uuid.New(), CreateSaleRequest{
			Items:         []CreateSaleItemRequest{{ProductID: product.ID, Quantity: 2}},
			PaymentMethod: sales.PaymentMethodCash,
		})
		require.Error(t, err)
		saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("inactive product cannot be sold", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		movementRepo := new(MockMovementRepository)
		service := NewSaleService(saleRepo, NewNoOpTransactionScope(saleRepo, productRepo, movementRepo))

		product := newProduct(t, 5)
		product.Deactivate()
		ctx := context.Background()

		saleRepo.On("GenerateSaleNumber", ctx).Return("VT-2024-0044", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Create(ctx, uuid.New(), CreateSaleRequest{
			Items:         []CreateSaleItemRequest{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCard,
		})
		require.Error(t, err)
	})

	t.Run("discount larger than subtotal is rejected", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		productRepo := new(MockProductRepository)
		movementRepo := new(MockMovementRepository)
		service := NewSaleService(saleRepo, NewNoOpTransactionScope(saleRepo, productRepo, movementRepo))

		product := newProduct(t, 5)
		ctx := context.Background()

		saleRepo.On("GenerateSaleNumber", ctx).Return("VT-2024-0045", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.Anything).Return(nil)

		tooBig := decimal.RequireFromString("999.00")
		_, err := service.Create(ctx, uuid.New(), CreateSaleRequest{
			Items:         []CreateSaleItemRequest{{ProductID: product.ID, Quantity: 1}},
			PaymentMethod: sales.PaymentMethodCash,
			Discount:      &tooBig,
		})
		require.Error(t, err)
		saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
