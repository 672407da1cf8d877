package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/layaway"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM. Plans are always
// loaded with their items and full payment history, since the balance is
// derived from the payments rather than stored.
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID, including items and payments
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*layaway.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a plan by its plan number
func (r *GormPlanRepository) FindByNumber(ctx context.Context, number string) (*layaway.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at ASC")
		}).
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds plans matching the filter
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*layaway.Plan, error) {
	var planModels []models.PlanModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at ASC")
		})

	if err := query.Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// FindByStatus finds plans in a given status
func (r *GormPlanRepository) FindByStatus(ctx context.Context, status layaway.PlanStatus, filter shared.Filter) ([]*layaway.Plan, error) {
	var planModels []models.PlanModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PlanModel{}).Where("status = ?", status),
		filter,
	).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at ASC")
		})

	if err := query.Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// FindOverdue finds active plans whose due date has passed
func (r *GormPlanRepository) FindOverdue(ctx context.Context) ([]*layaway.Plan, error) {
	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("received_at ASC")
		}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", layaway.PlanStatusActive, time.Now()).
		Order("due_date ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// Save creates or updates a plan with its items, and appends new payments
func (r *GormPlanRepository) Save(ctx context.Context, plan *layaway.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PlanModelFromDomain(plan)

		if err := tx.Omit("Items", "Payments").Save(model).Error; err != nil {
			return err
		}

		if err := r.saveItems(tx, plan); err != nil {
			return err
		}
		return r.appendNewPayments(tx, plan)
	})
}

// SaveWithLock saves a plan with optimistic lock version checking. Domain
// mutations bump the in-memory version, so the row is only updated while the
// stored version is still behind it.
func (r *GormPlanRepository) SaveWithLock(ctx context.Context, plan *layaway.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PlanModel{}).
			Where("id = ?", plan.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		result := tx.Model(&models.PlanModel{}).
			Where("id = ? AND version < ?", plan.ID, plan.Version).
			Updates(map[string]any{
				"customer_name": plan.CustomerName,
				"customer_id":   plan.CustomerID,
				"status":        string(plan.Status),
				"due_date":      plan.DueDate,
				"notes":         plan.Notes,
				"completed_at":  plan.CompletedAt,
				"cancelled_at":  plan.CancelledAt,
				"cancel_reason": plan.CancelReason,
				"version":       plan.Version,
				"updated_at":    plan.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The plan has been modified by another user")
		}

		if err := r.saveItems(tx, plan); err != nil {
			return err
		}
		return r.appendNewPayments(tx, plan)
	})
}

// saveItems replaces the plan's item rows with the current item list
func (r *GormPlanRepository) saveItems(tx *gorm.DB, plan *layaway.Plan) error {
	currentItemIDs := make([]uuid.UUID, len(plan.Items))
	for i, item := range plan.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("plan_id = ? AND id NOT IN ?", plan.ID, currentItemIDs).
			Delete(&models.PlanItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("plan_id = ?", plan.ID).
			Delete(&models.PlanItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range plan.Items {
		plan.Items[i].PlanID = plan.ID
		itemModel := models.PlanItemModelFromDomain(&plan.Items[i])
		if err := tx.Save(itemModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// appendNewPayments inserts payments present on the aggregate but not yet
// persisted. Payment rows are append-only and never updated once written.
func (r *GormPlanRepository) appendNewPayments(tx *gorm.DB, plan *layaway.Plan) error {
	if len(plan.Payments) == 0 {
		return nil
	}

	var existingIDs []uuid.UUID
	if err := tx.Model(&models.PaymentModel{}).
		Where("plan_id = ?", plan.ID).
		Pluck("id", &existingIDs).Error; err != nil {
		return err
	}
	existing := make(map[uuid.UUID]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	for i := range plan.Payments {
		payment := &plan.Payments[i]
		if existing[payment.ID] {
			continue
		}
		payment.PlanID = plan.ID
		paymentModel := models.PaymentModelFromDomain(payment)
		if err := tx.Create(paymentModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).
			Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", id).
			Delete(&models.PlanItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts plans matching the filter
func (r *GormPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GeneratePlanNumber generates the next sequential plan number
func (r *GormPlanRepository) GeneratePlanNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("AP-%d-", year)

	var lastPlan models.PlanModel
	err := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastPlan).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastPlan.Number != "" {
		parts := strings.Split(lastPlan.Number, "-")
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
		return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Could not generate a unique plan number")
	}

	return number, nil
}

func (r *GormPlanRepository) existsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormPlanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PlanSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPlanRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"number ILIKE ? OR customer_name ILIKE ? OR customer_id ILIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "due_before":
			query = query.Where("due_date IS NOT NULL AND due_date < ?", value)
		}
	}

	return query
}

func toDomainPlans(planModels []models.PlanModel) []*layaway.Plan {
	plans := make([]*layaway.Plan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	return plans
}

// Ensure GormPlanRepository implements PlanRepository
var _ layaway.PlanRepository = (*GormPlanRepository)(nil)
