package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/inventory"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The backing table is append-only; there is no update or delete path.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement record; existing records are never updated
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	model := models.StockMovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByProduct finds movements for a product, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movementModels []models.StockMovementModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockMovementModel{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toDomainMovements(movementModels), nil
}

// FindByReference finds movements created by a specific source document
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	var movementModels []models.StockMovementModel
	if err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toDomainMovements(movementModels), nil
}

// FindAll finds movements matching the filter
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movementModels []models.StockMovementModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockMovementModel{}), filter)

	if err := query.Find(&movementModels).Error; err != nil {
		return nil, err
	}
	return toDomainMovements(movementModels), nil
}

// Count counts movements matching the filter
func (r *GormStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.StockMovementModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockMovementSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockMovementRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("product_name ILIKE ? OR reference_doc ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "created_from":
			query = query.Where("created_at >= ?", value)
		case "created_to":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

func toDomainMovements(movementModels []models.StockMovementModel) []inventory.StockMovement {
	movements := make([]inventory.StockMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = *movementModels[i].ToDomain()
	}
	return movements
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
