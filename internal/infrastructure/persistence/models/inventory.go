package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
)

// StockMovementModel is the persistence model for stock movements. The table
// is append-only: rows are inserted once and never updated or deleted.
type StockMovementModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName  string    `gorm:"size:200;not null"`
	Type         string    `gorm:"size:30;not null;index"`
	Quantity     int64     `gorm:"not null"`
	StockAfter   int64     `gorm:"not null"`
	ReferenceID  uuid.UUID `gorm:"type:uuid;index"`
	ReferenceDoc string    `gorm:"size:50"`
	Note         string    `gorm:"size:500"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for StockMovementModel
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the model to a domain stock movement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Type:         inventory.MovementType(m.Type),
		Quantity:     m.Quantity,
		StockAfter:   m.StockAfter,
		ReferenceID:  m.ReferenceID,
		ReferenceDoc: m.ReferenceDoc,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
	}
}

// StockMovementModelFromDomain converts a domain stock movement to the model
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:           mv.ID,
		ProductID:    mv.ProductID,
		ProductName:  mv.ProductName,
		Type:         string(mv.Type),
		Quantity:     mv.Quantity,
		StockAfter:   mv.StockAfter,
		ReferenceID:  mv.ReferenceID,
		ReferenceDoc: mv.ReferenceDoc,
		Note:         mv.Note,
		CreatedAt:    mv.CreatedAt,
	}
}
