package catalog

import (
	"testing"

	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct(
		"Galaxy A54", "CEL-A54", "Samsung", "Phones",
		valueobject.NewMoneyFromCents(450000),
		valueobject.NewMoneyFromCents(599900),
		10,
	)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid data", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Equal(t, "Galaxy A54", p.Name)
		assert.Equal(t, "CEL-A54", p.Code)
		assert.Equal(t, int64(10), p.Stock)
		assert.True(t, p.Active)
		assert.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", "X-1", "", "", valueobject.ZeroMoney(), valueobject.ZeroMoney(), 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("Phone", "", "", "", valueobject.ZeroMoney(), valueobject.ZeroMoney(), 0)
		assert.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Phone", "X-1", "", "", valueobject.NewMoneyFromCents(-1), valueobject.ZeroMoney(), 0)
		assert.Error(t, err)
	})

	t.Run("fails with negative initial stock", func(t *testing.T) {
		_, err := NewProduct("Phone", "X-1", "", "", valueobject.ZeroMoney(), valueobject.ZeroMoney(), -1)
		assert.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("increase adds units", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.IncreaseStock(5))
		assert.Equal(t, int64(15), p.Stock)
	})

	t.Run("decrease removes units", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.DecreaseStock(4))
		assert.Equal(t, int64(6), p.Stock)
	})

	t.Run("decrease rejects more than available", func(t *testing.T) {
		p := createTestProduct(t)
		err := p.DecreaseStock(11)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only 10 in stock")
		assert.Equal(t, int64(10), p.Stock)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Error(t, p.IncreaseStock(0))
		assert.Error(t, p.DecreaseStock(0))
		assert.Error(t, p.IncreaseStock(-3))
	})

	t.Run("adjust sets absolute value", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.AdjustStock(2))
		assert.Equal(t, int64(2), p.Stock)
		assert.Error(t, p.AdjustStock(-1))
	})

	t.Run("low stock threshold", func(t *testing.T) {
		p := createTestProduct(t)
		assert.False(t, p.IsLowStock())
		require.NoError(t, p.SetMinStock(10))
		assert.True(t, p.IsLowStock())
	})
}

func TestProductChangePrices(t *testing.T) {
	p := createTestProduct(t)
	oldPurchase := p.PurchasePrice
	oldSale := p.SalePrice

	err := p.ChangePrices(valueobject.NewMoneyFromCents(470000), valueobject.NewMoneyFromCents(629900))
	require.NoError(t, err)

	assert.Equal(t, int64(470000), p.PurchasePrice.Cents())
	assert.True(t, p.PreviousPurchasePrice.Equals(oldPurchase))
	assert.True(t, p.PreviousSalePrice.Equals(oldSale))

	assert.Error(t, p.ChangePrices(valueobject.NewMoneyFromCents(-1), valueobject.ZeroMoney()))
}

func TestProductActivation(t *testing.T) {
	p := createTestProduct(t)
	p.Deactivate()
	assert.False(t, p.Active)
	p.Activate()
	assert.True(t, p.Active)
}
