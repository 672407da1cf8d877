package purchasing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(v int64) valueobject.Money {
	return valueobject.NewMoneyFromCents(v)
}

// createTestPurchase builds a purchase with one line:
// 10 units of "Galaxy A54" at 100.00 each (total 1000.00).
func createTestPurchase(t *testing.T) (*Purchase, uuid.UUID) {
	t.Helper()
	productID := uuid.New()

	p, err := NewPurchase("PC-20260829-0001", "restock")
	require.NoError(t, err)

	_, err = p.AddItem(productID, "Galaxy A54", 10, cents(10000), 3, cents(9500), cents(12900), cents(12900))
	require.NoError(t, err)

	return p, productID
}

func TestNewPurchase(t *testing.T) {
	t.Run("creates purchase with valid number", func(t *testing.T) {
		p, err := NewPurchase("PC-20260829-0001", "")
		require.NoError(t, err)
		assert.Equal(t, "PC-20260829-0001", p.Number)
		assert.Empty(t, p.Items)
		assert.Empty(t, p.Returns)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewPurchase("", "")
		assert.Error(t, err)
	})
}

func TestPurchaseAddItem(t *testing.T) {
	t.Run("computes line total and aggregates", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		assert.Equal(t, int64(100000), p.TotalCost().Cents())
		assert.Equal(t, int64(10), p.TotalUnits())
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		_, err := p.AddItem(productID, "Galaxy A54", 1, cents(10000), 0, cents(0), cents(0), cents(0))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already appears")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "Cable", 0, cents(500), 0, cents(0), cents(0), cents(0))
		assert.Error(t, err)
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "Cable", 1, cents(-1), 0, cents(0), cents(0), cents(0))
		assert.Error(t, err)
	})

	t.Run("rejects new items once a return exists", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 1, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		_, err = p.AddItem(uuid.New(), "Cable", 1, cents(500), 0, cents(0), cents(0), cents(0))
		assert.Error(t, err)
	})
}

func TestReturnableQuantity(t *testing.T) {
	t.Run("equals original quantity with no returns", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		assert.Equal(t, int64(10), p.ReturnableQuantity(productID))
	})

	t.Run("returns zero for unknown product", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		assert.Equal(t, int64(0), p.ReturnableQuantity(uuid.New()))
	})

	t.Run("decreases by exactly the returned amount and is stable", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		assert.Equal(t, int64(6), p.ReturnableQuantity(productID))
		// Repeated reads do not double count: the figure is derived from
		// history, not decremented from a counter.
		assert.Equal(t, int64(6), p.ReturnableQuantity(productID))
	})
}

func TestValidateReturnItems(t *testing.T) {
	t.Run("accepts a valid proposal", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 5, UnitCost: cents(10000)},
		})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		result := p.ValidateReturnItems(nil)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "select at least one")
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		p, _ := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: uuid.New(), ReturnedQuantity: 1, UnitCost: cents(10000)},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "not part of this purchase")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 0, UnitCost: cents(10000)},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "must be positive")
	})

	t.Run("rejects over-return mentioning both quantities", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 11, UnitCost: cents(10000)},
		})
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "11")
		assert.Contains(t, result.Errors[0], "10")
	})

	t.Run("rejects price drift even when quantity is valid", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 2, UnitCost: cents(10002)},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "does not match")
	})

	t.Run("accumulates all errors in one pass", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: uuid.New(), ReturnedQuantity: 1, UnitCost: cents(10000)},
			{ProductID: productID, ReturnedQuantity: 11, UnitCost: cents(9999)},
		})
		assert.False(t, result.Valid)
		// unknown product + over-return + price mismatch
		assert.Len(t, result.Errors, 3)
	})

	t.Run("evaluates against committed history only", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 7, UnitCost: cents(10000)},
		})
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "only 6 remain")
	})

	t.Run("rejects a product split across lines exceeding the returnable total", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 6, UnitCost: cents(10000)},
			{ProductID: productID, ReturnedQuantity: 6, UnitCost: cents(10000)},
		})
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "12")
		assert.Contains(t, result.Errors[0], "10")
	})

	t.Run("accepts split lines whose sum stays within the returnable total", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		result := p.ValidateReturnItems([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 6, UnitCost: cents(10000)},
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
		})
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
	})

	t.Run("is side-effect free", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		for i := 0; i < 3; i++ {
			p.ValidateReturnItems([]ProposedReturnItem{
				{ProductID: productID, ReturnedQuantity: 5, UnitCost: cents(10000)},
			})
		}
		assert.Empty(t, p.Returns)
		assert.Equal(t, int64(10), p.ReturnableQuantity(productID))
	})
}

func TestRecordReturn(t *testing.T) {
	t.Run("appends immutable record and updates aggregates", func(t *testing.T) {
		p, productID := createTestPurchase(t)

		ret, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000), Reason: "damaged"},
		}, "supplier agreed", "box crushed")
		require.NoError(t, err)
		require.NotNil(t, ret)

		assert.Equal(t, p.ID, ret.PurchaseID)
		assert.Equal(t, int64(40000), ret.TotalRefund.Cents())
		assert.Equal(t, int64(4), ret.TotalUnits)
		require.Len(t, ret.Items, 1)
		assert.Equal(t, "Galaxy A54", ret.Items[0].ProductName)
		assert.Equal(t, int64(10), ret.Items[0].OriginalQuantity)
		assert.Equal(t, "damaged", ret.Items[0].Reason)

		assert.Equal(t, int64(40000), p.GetTotalReturned().Cents())
		assert.Equal(t, int64(60000), p.GetNetCost().Cents())
		assert.Equal(t, int64(6), p.ReturnableQuantity(productID))
	})

	t.Run("rejects invalid proposals with accumulated message", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 99, UnitCost: cents(10000)},
		}, "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "99")
	})

	t.Run("multiple partial returns accumulate correctly", func(t *testing.T) {
		p, productID := createTestPurchase(t)

		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 3, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		_, err = p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		assert.Equal(t, int64(3), p.ReturnableQuantity(productID))
		assert.Equal(t, int64(70000), p.GetTotalReturned().Cents())
		assert.Equal(t, int64(30000), p.GetNetCost().Cents())
		assert.Len(t, p.Returns, 2)
	})

	t.Run("conservation law holds across returns", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		total := p.TotalCost()

		check := func() {
			sum := p.GetNetCost().Add(p.GetTotalReturned())
			assert.True(t, sum.Equals(total), "netCost + totalReturned must equal totalCost")
		}

		check()
		for _, qty := range []int64{2, 3, 5} {
			_, err := p.RecordReturn([]ProposedReturnItem{
				{ProductID: productID, ReturnedQuantity: qty, UnitCost: cents(10000)},
			}, "", "")
			require.NoError(t, err)
			check()
		}

		// Everything has been returned at this point.
		assert.Equal(t, int64(0), p.ReturnableQuantity(productID))
		assert.True(t, p.GetNetCost().IsZero())
	})

	t.Run("rejects a product split across lines exceeding the returnable total", func(t *testing.T) {
		p, productID := createTestPurchase(t)

		_, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 6, UnitCost: cents(10000)},
			{ProductID: productID, ReturnedQuantity: 6, UnitCost: cents(10000)},
		}, "", "")
		assert.Error(t, err)

		assert.Empty(t, p.Returns)
		assert.Equal(t, int64(10), p.ReturnableQuantity(productID))
		assert.True(t, p.GetTotalReturned().IsZero())
		assert.False(t, p.GetNetCost().IsNegative())
	})

	t.Run("publishes a return recorded event", func(t *testing.T) {
		p, productID := createTestPurchase(t)
		p.ClearDomainEvents()

		ret, err := p.RecordReturn([]ProposedReturnItem{
			{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
		}, "", "")
		require.NoError(t, err)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*PurchaseReturnRecordedEvent)
		require.True(t, ok)
		assert.Equal(t, ret.ID, event.ReturnID)
		assert.Equal(t, int64(40000), event.TotalRefundCents)
		assert.Equal(t, int64(60000), event.NetCostCents)
	})
}

func TestLegacyPurchaseWithoutReturns(t *testing.T) {
	// A purchase loaded from a record created before return tracking existed
	// has a nil Returns slice; every reporter degrades gracefully.
	p, productID := createTestPurchase(t)
	p.Returns = nil

	assert.Equal(t, int64(10), p.ReturnableQuantity(productID))
	assert.True(t, p.GetTotalReturned().IsZero())
	assert.True(t, p.GetNetCost().Equals(p.TotalCost()))
}

func TestEndToEndReturnFlow(t *testing.T) {
	// Purchase of 10 units at 100.00 (total 1000.00); return 4 units, then
	// attempt to return 7 more.
	p, productID := createTestPurchase(t)

	_, err := p.RecordReturn([]ProposedReturnItem{
		{ProductID: productID, ReturnedQuantity: 4, UnitCost: cents(10000)},
	}, "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(40000), p.GetTotalReturned().Cents())
	assert.Equal(t, int64(60000), p.GetNetCost().Cents())
	assert.Equal(t, int64(6), p.ReturnableQuantity(productID))

	result := p.ValidateReturnItems([]ProposedReturnItem{
		{ProductID: productID, ReturnedQuantity: 7, UnitCost: cents(10000)},
	})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "7")
	assert.Contains(t, result.Errors[0], "6")
}
