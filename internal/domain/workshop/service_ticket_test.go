package workshop

import (
	"testing"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(v int64) valueobject.Money {
	return valueobject.NewMoneyFromCents(v)
}

func createTestTicket(t *testing.T) *ServiceTicket {
	t.Helper()
	tk, err := NewServiceTicket(
		"TK-2024-0001", "Ana Morales", "555-0142",
		"Samsung", "Galaxy S22", "356938035643809", "Cracked screen",
		uuid.New(), "Luis Paredes",
		cents(45000),
	)
	require.NoError(t, err)
	return tk
}

func TestNewServiceTicket(t *testing.T) {
	t.Run("creates ticket in received status", func(t *testing.T) {
		tk := createTestTicket(t)

		assert.Equal(t, TicketStatusReceived, tk.Status)
		assert.Equal(t, "TK-2024-0001", tk.Number)
		assert.False(t, tk.ReceivedAt.IsZero())
		assert.Empty(t, tk.Parts)
		assert.False(t, tk.Liquidated)
		assert.Len(t, tk.GetDomainEvents(), 1)
	})

	t.Run("rejects empty customer name", func(t *testing.T) {
		_, err := NewServiceTicket("TK-1", "", "", "Apple", "iPhone 13", "", "No power", uuid.New(), "Luis", cents(1000))
		assert.Error(t, err)
	})

	t.Run("rejects empty fault", func(t *testing.T) {
		_, err := NewServiceTicket("TK-1", "Ana", "", "Apple", "iPhone 13", "", "", uuid.New(), "Luis", cents(1000))
		assert.Error(t, err)
	})

	t.Run("rejects negative labor price", func(t *testing.T) {
		_, err := NewServiceTicket("TK-1", "Ana", "", "Apple", "iPhone 13", "", "No power", uuid.New(), "Luis", cents(-100))
		assert.Error(t, err)
	})
}

func TestServiceTicket_StatusFlow(t *testing.T) {
	t.Run("full repair flow", func(t *testing.T) {
		tk := createTestTicket(t)

		require.NoError(t, tk.StartRepair())
		assert.Equal(t, TicketStatusInRepair, tk.Status)
		require.NotNil(t, tk.StartedAt)

		require.NoError(t, tk.MarkReady())
		assert.Equal(t, TicketStatusReady, tk.Status)

		require.NoError(t, tk.Deliver())
		assert.Equal(t, TicketStatusDelivered, tk.Status)
		require.NotNil(t, tk.DeliveredAt)
		assert.True(t, tk.IsTerminal())
	})

	t.Run("cannot deliver before ready", func(t *testing.T) {
		tk := createTestTicket(t)

		err := tk.Deliver()
		assert.Error(t, err)
		assert.Equal(t, TicketStatusReceived, tk.Status)
	})

	t.Run("cannot skip to ready from received", func(t *testing.T) {
		tk := createTestTicket(t)
		assert.Error(t, tk.MarkReady())
	})

	t.Run("cancel from any open status", func(t *testing.T) {
		tk := createTestTicket(t)
		require.NoError(t, tk.StartRepair())

		require.NoError(t, tk.Cancel("Customer declined the quote"))
		assert.Equal(t, TicketStatusCancelled, tk.Status)
		assert.Equal(t, "Customer declined the quote", tk.CancelReason)
		assert.True(t, tk.IsTerminal())
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		tk := createTestTicket(t)
		assert.Error(t, tk.Cancel(""))
	})

	t.Run("terminal states are final", func(t *testing.T) {
		tk := createTestTicket(t)
		require.NoError(t, tk.StartRepair())
		require.NoError(t, tk.MarkReady())
		require.NoError(t, tk.Deliver())

		assert.Error(t, tk.StartRepair())
		assert.Error(t, tk.Cancel("too late"))
	})
}

func TestServiceTicket_Parts(t *testing.T) {
	t.Run("adds part and totals labor plus parts", func(t *testing.T) {
		tk := createTestTicket(t)

		part, err := tk.AddPart(uuid.New(), "Galaxy S22 screen assembly", 1, cents(80000))
		require.NoError(t, err)
		assert.Equal(t, cents(80000), part.LineTotal)

		_, err = tk.AddPart(uuid.New(), "Adhesive strip", 2, cents(1500))
		require.NoError(t, err)

		assert.Equal(t, cents(83000), tk.PartsTotal())
		assert.Equal(t, cents(128000), tk.Total()) // 450.00 labor + 830.00 parts
	})

	t.Run("rejects parts on closed ticket", func(t *testing.T) {
		tk := createTestTicket(t)
		require.NoError(t, tk.Cancel("abandoned"))

		_, err := tk.AddPart(uuid.New(), "Battery", 1, cents(20000))
		assert.Error(t, err)
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		tk := createTestTicket(t)
		_, err := tk.AddPart(uuid.New(), "Battery", 0, cents(20000))
		assert.Error(t, err)
	})
}

func TestServiceTicket_Liquidation(t *testing.T) {
	deliver := func(t *testing.T, tk *ServiceTicket) {
		t.Helper()
		require.NoError(t, tk.StartRepair())
		require.NoError(t, tk.MarkReady())
		require.NoError(t, tk.Deliver())
	}

	t.Run("only delivered tickets can be liquidated", func(t *testing.T) {
		tk := createTestTicket(t)
		assert.Error(t, tk.MarkLiquidated())

		deliver(t, tk)
		require.NoError(t, tk.MarkLiquidated())
		assert.True(t, tk.Liquidated)
		require.NotNil(t, tk.LiquidatedAt)
	})

	t.Run("cannot liquidate twice", func(t *testing.T) {
		tk := createTestTicket(t)
		deliver(t, tk)
		require.NoError(t, tk.MarkLiquidated())
		assert.Error(t, tk.MarkLiquidated())
	})

	t.Run("groups unsettled labor by technician", func(t *testing.T) {
		techA := uuid.New()
		techB := uuid.New()

		newTicket := func(number string, techID uuid.UUID, techName string, labor int64) *ServiceTicket {
			tk, err := NewServiceTicket(number, "Ana Morales", "", "Samsung", "Galaxy S22", "", "Cracked screen", techID, techName, cents(labor))
			require.NoError(t, err)
			return tk
		}

		t1 := newTicket("TK-1", techA, "Luis Paredes", 45000)
		deliver(t, t1)
		t2 := newTicket("TK-2", techA, "Luis Paredes", 30000)
		deliver(t, t2)
		t3 := newTicket("TK-3", techB, "Carmen Ruiz", 60000)
		deliver(t, t3)
		// already settled, must not count
		t4 := newTicket("TK-4", techA, "Luis Paredes", 99900)
		deliver(t, t4)
		require.NoError(t, t4.MarkLiquidated())
		// still open, must not count
		t5 := newTicket("TK-5", techB, "Carmen Ruiz", 10000)

		lines, err := BuildLiquidation([]*ServiceTicket{t1, t2, t3, t4, t5}, decimal.RequireFromString("0.40"))
		require.NoError(t, err)
		require.Len(t, lines, 2)

		// sorted by technician name
		carmen, luis := lines[0], lines[1]
		assert.Equal(t, "Carmen Ruiz", carmen.TechnicianName)
		assert.Equal(t, 1, carmen.TicketCount)
		assert.Equal(t, cents(60000), carmen.LaborTotal)
		assert.Equal(t, cents(24000), carmen.CommissionTotal)

		assert.Equal(t, "Luis Paredes", luis.TechnicianName)
		assert.Equal(t, 2, luis.TicketCount)
		assert.Equal(t, cents(75000), luis.LaborTotal)
		assert.Equal(t, cents(30000), luis.CommissionTotal)
	})

	t.Run("rejects rate outside zero to one", func(t *testing.T) {
		_, err := BuildLiquidation(nil, decimal.RequireFromString("1.5"))
		assert.Error(t, err)
		_, err = BuildLiquidation(nil, decimal.RequireFromString("-0.1"))
		assert.Error(t, err)
	})

	t.Run("empty input produces empty report", func(t *testing.T) {
		lines, err := BuildLiquidation(nil, decimal.RequireFromString("0.5"))
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
