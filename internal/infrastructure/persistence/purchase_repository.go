package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/purchasing"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM. Purchases
// are always loaded with their full item list and return history so that
// returnable quantities and net cost can be derived from them.
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID, including items and returns
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Returns", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Returns.Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a purchase by its purchase number
func (r *GormPurchaseRepository) FindByNumber(ctx context.Context, number string) (*purchasing.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Returns", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Returns.Items").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PurchaseModel{}), filter).
		Preload("Items").
		Preload("Returns", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Returns.Items")

	if err := query.Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	purchases := make([]purchasing.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = *purchaseModels[i].ToDomain()
	}
	return purchases, nil
}

// Save creates or updates a purchase with its items and returns
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *purchasing.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseModelFromDomain(purchase)

		if err := tx.Omit("Items", "Returns").Save(model).Error; err != nil {
			return err
		}

		if err := r.saveItems(tx, purchase); err != nil {
			return err
		}
		return r.appendNewReturns(tx, purchase)
	})
}

// SaveWithLock saves a purchase with optimistic lock version checking. Domain
// mutations bump the in-memory version, so the row is only updated while the
// stored version is still behind it.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *purchasing.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PurchaseModel{}).
			Where("id = ?", purchase.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		result := tx.Model(&models.PurchaseModel{}).
			Where("id = ? AND version < ?", purchase.ID, purchase.Version).
			Updates(map[string]any{
				"notes":      purchase.Notes,
				"version":    purchase.Version,
				"updated_at": purchase.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The purchase has been modified by another user")
		}

		return r.appendNewReturns(tx, purchase)
	})
}

// saveItems replaces the purchase's item rows with the current item list
func (r *GormPurchaseRepository) saveItems(tx *gorm.DB, purchase *purchasing.Purchase) error {
	currentItemIDs := make([]uuid.UUID, len(purchase.Items))
	for i, item := range purchase.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, currentItemIDs).
			Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("purchase_id = ?", purchase.ID).
			Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range purchase.Items {
		purchase.Items[i].PurchaseID = purchase.ID
		itemModel := models.PurchaseItemModelFromDomain(&purchase.Items[i])
		if err := tx.Save(itemModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// appendNewReturns inserts returns present on the aggregate but not yet
// persisted. Return rows are append-only and are never updated once written.
func (r *GormPurchaseRepository) appendNewReturns(tx *gorm.DB, purchase *purchasing.Purchase) error {
	if len(purchase.Returns) == 0 {
		return nil
	}

	var existingIDs []uuid.UUID
	if err := tx.Model(&models.PurchaseReturnModel{}).
		Where("purchase_id = ?", purchase.ID).
		Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := make(map[uuid.UUID]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	for i := range purchase.Returns {
		ret := &purchase.Returns[i]
		if existing[ret.ID] {
			continue
		}
		ret.PurchaseID = purchase.ID
		retModel := models.PurchaseReturnModelFromDomain(ret)
		if err := tx.Create(retModel).Error; err != nil {
			return err
		}
		for j := range ret.Items {
			ret.Items[j].ReturnID = ret.ID
			itemModel := models.PurchaseReturnItemModelFromDomain(&ret.Items[j])
			if err := tx.Create(itemModel).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete deletes a purchase
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var returnIDs []uuid.UUID
		if err := tx.Model(&models.PurchaseReturnModel{}).
			Where("purchase_id = ?", id).
			Pluck("id", &returnIDs).Error; err != nil {
			return err
		}
		if len(returnIDs) > 0 {
			if err := tx.Where("return_id IN ?", returnIDs).
				Delete(&models.PurchaseReturnItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("purchase_id = ?", id).
				Delete(&models.PurchaseReturnModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("purchase_id = ?", id).
			Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PurchaseModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PurchaseModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GeneratePurchaseNumber generates the next sequential purchase number
func (r *GormPurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PC-%d-", year)

	var lastPurchase models.PurchaseModel
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastPurchase).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastPurchase.Number != "" {
		parts := strings.Split(lastPurchase.Number, "-")
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
		return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Could not generate a unique purchase number")
	}

	return number, nil
}

func (r *GormPurchaseRepository) existsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_from":
			query = query.Where("created_at >= ?", value)
		case "created_to":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ purchasing.PurchaseRepository = (*GormPurchaseRepository)(nil)
