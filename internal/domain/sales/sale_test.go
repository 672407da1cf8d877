package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSale(t *testing.T) *Sale {
	t.Helper()
	s, err := NewSale("VT-20260829-0001", PaymentMethodCash, "Walk-in", uuid.New())
	require.NoError(t, err)
	return s
}

func TestNewSale(t *testing.T) {
	t.Run("creates sale with valid data", func(t *testing.T) {
		s := createTestSale(t)
		assert.Equal(t, "VT-20260829-0001", s.Number)
		assert.Equal(t, PaymentMethodCash, s.PaymentMethod)
		assert.True(t, s.Total().IsZero())
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewSale("", PaymentMethodCash, "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("fails with unknown payment method", func(t *testing.T) {
		_, err := NewSale("VT-1", PaymentMethod("CHECK"), "", uuid.New())
		assert.Error(t, err)
	})
}

func TestSaleItemsAndTotals(t *testing.T) {
	s := createTestSale(t)

	_, err := s.AddItem(uuid.New(), "Galaxy A54", 1, valueobject.NewMoneyFromCents(599900))
	require.NoError(t, err)
	_, err = s.AddItem(uuid.New(), "USB-C Cable", 2, valueobject.NewMoneyFromCents(9900))
	require.NoError(t, err)

	assert.Equal(t, int64(619700), s.Subtotal().Cents())
	assert.Equal(t, int64(3), s.TotalUnits())

	require.NoError(t, s.SetDiscount(valueobject.NewMoneyFromCents(19700)))
	assert.Equal(t, int64(600000), s.Total().Cents())

	t.Run("rejects discount above subtotal", func(t *testing.T) {
		assert.Error(t, s.SetDiscount(valueobject.NewMoneyFromCents(700000)))
	})

	t.Run("rejects invalid lines", func(t *testing.T) {
		_, err := s.AddItem(uuid.Nil, "X", 1, valueobject.ZeroMoney())
		assert.Error(t, err)
		_, err = s.AddItem(uuid.New(), "X", 0, valueobject.ZeroMoney())
		assert.Error(t, err)
		_, err = s.AddItem(uuid.New(), "X", 1, valueobject.NewMoneyFromCents(-5))
		assert.Error(t, err)
	})
}

func TestSaleComplete(t *testing.T) {
	t.Run("fails without items", func(t *testing.T) {
		s := createTestSale(t)
		assert.Error(t, s.Complete())
	})

	t.Run("publishes completion event", func(t *testing.T) {
		s := createTestSale(t)
		_, err := s.AddItem(uuid.New(), "Charger", 1, valueobject.NewMoneyFromCents(24900))
		require.NoError(t, err)

		require.NoError(t, s.Complete())
		events := s.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*SaleCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(24900), event.TotalCents)
	})
}
