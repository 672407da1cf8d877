package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/sales"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID, including items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a sale by its sale number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, number string) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter).
		Preload("Items")

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	result := make([]sales.Sale, len(saleModels))
	for i := range saleModels {
		result[i] = *saleModels[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a sale with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SaleModelFromDomain(sale)

		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
			itemModel := models.SaleItemModelFromDomain(&sale.Items[i])
			if err := tx.Save(itemModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalBetween returns the summed sale totals (in cents) in a period.
// The total of a sale is its item line totals minus the sale discount.
func (r *GormSaleRepository) SumTotalBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(sale_total), 0) FROM (
			SELECT (
				SELECT COALESCE(SUM(line_total_cents), 0)
				FROM sale_items
				WHERE sale_items.sale_id = sales.id
			) - sales.discount_cents AS sale_total
			FROM sales
			WHERE sales.created_at >= ? AND sales.created_at < ?
		) AS totals`, from, to).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GenerateSaleNumber generates the next sequential sale number
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("VT-%d-", year)

	var lastSale models.SaleModel
	err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.Number != "" {
		parts := strings.Split(lastSale.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	number := fmt.Sprintf("%s%04d", prefix, nextNum)

	exists, err := r.existsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if exists {
		for range 100 {
			nextNum++
			number = fmt.Sprintf("%s%04d", prefix, nextNum)
			exists, err = r.existsByNumber(ctx, number)
			if err != nil {
				return "", err
			}
			if !exists {
				return number, nil
			}
		}
		return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Could not generate a unique sale number")
	}

	return number, nil
}

func (r *GormSaleRepository) existsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "sold_by":
			query = query.Where("sold_by = ?", value)
		case "created_from":
			query = query.Where("created_at >= ?", value)
		case "created_to":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
