package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/movilshop/backend/internal/domain/shared"
	"github.com/movilshop/backend/internal/domain/workshop"
	"github.com/movilshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket by its ID, including parts
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*workshop.ServiceTicket, error) {
	var model models.ServiceTicketModel
	if err := r.db.WithContext(ctx).
		Preload("Parts").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a ticket by its ticket number
func (r *GormTicketRepository) FindByNumber(ctx context.Context, number string) (*workshop.ServiceTicket, error) {
	var model models.ServiceTicketModel
	if err := r.db.WithContext(ctx).
		Preload("Parts").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds tickets matching the filter
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*workshop.ServiceTicket, error) {
	var ticketModels []models.ServiceTicketModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ServiceTicketModel{}), filter).
		Preload("Parts")

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	return toDomainTickets(ticketModels), nil
}

// FindByStatus finds tickets in a given status
func (r *GormTicketRepository) FindByStatus(ctx context.Context, status workshop.TicketStatus, filter shared.Filter) ([]*workshop.ServiceTicket, error) {
	var ticketModels []models.ServiceTicketModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ServiceTicketModel{}).Where("status = ?", status),
		filter,
	).Preload("Parts")

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	return toDomainTickets(ticketModels), nil
}

// FindUnliquidatedDelivered finds delivered tickets whose labor has not yet
// been settled with the technician
func (r *GormTicketRepository) FindUnliquidatedDelivered(ctx context.Context) ([]*workshop.ServiceTicket, error) {
	var ticketModels []models.ServiceTicketModel
	if err := r.db.WithContext(ctx).
		Preload("Parts").
		Where("status = ? AND liquidated = ?", workshop.TicketStatusDelivered, false).
		Order("delivered_at ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	return toDomainTickets(ticketModels), nil
}

// Save creates or updates a ticket with its parts
func (r *GormTicketRepository) Save(ctx context.Context, ticket *workshop.ServiceTicket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ServiceTicketModelFromDomain(ticket)

		if err := tx.Omit("Parts").Save(model).Error; err != nil {
			return err
		}
		return r.saveParts(tx, ticket)
	})
}

// SaveWithLock saves a ticket with optimistic lock version checking. Domain
// mutations bump the in-memory version, so the row is only updated while the
// stored version is still behind it.
func (r *GormTicketRepository) SaveWithLock(ctx context.Context, ticket *workshop.ServiceTicket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ServiceTicketModel{}).
			Where("id = ?", ticket.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		result := tx.Model(&models.ServiceTicketModel{}).
			Where("id = ? AND version < ?", ticket.ID, ticket.Version).
			Updates(map[string]any{
				"customer_name":     ticket.CustomerName,
				"customer_phone":    ticket.CustomerPhone,
				"device_brand":      ticket.DeviceBrand,
				"device_model":      ticket.DeviceModel,
				"device_imei":       ticket.DeviceIMEI,
				"reported_fault":    ticket.ReportedFault,
				"diagnosis":         ticket.Diagnosis,
				"technician_id":     ticket.TechnicianID,
				"technician_name":   ticket.TechnicianName,
				"labor_price_cents": ticket.LaborPrice.Cents(),
				"status":            string(ticket.Status),
				"started_at":        ticket.StartedAt,
				"ready_at":          ticket.ReadyAt,
				"delivered_at":      ticket.DeliveredAt,
				"cancelled_at":      ticket.CancelledAt,
				"cancel_reason":     ticket.CancelReason,
				"liquidated":        ticket.Liquidated,
				"liquidated_at":     ticket.LiquidatedAt,
				"version":           ticket.Version,
				"updated_at":        ticket.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The ticket has been modified by another user")
		}

		return r.saveParts(tx, ticket)
	})
}

// saveParts replaces the ticket's part rows with the current part list
func (r *GormTicketRepository) saveParts(tx *gorm.DB, ticket *workshop.ServiceTicket) error {
	currentPartIDs := make([]uuid.UUID, len(ticket.Parts))
	for i, part := range ticket.Parts {
		currentPartIDs[i] = part.ID
	}

	if len(currentPartIDs) > 0 {
		if err := tx.Where("ticket_id = ? AND id NOT IN ?", ticket.ID, currentPartIDs).
			Delete(&models.TicketPartModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("ticket_id = ?", ticket.ID).
			Delete(&models.TicketPartModel{}).Error; err != nil {
			return err
		}
	}

	for i := range ticket.Parts {
		ticket.Parts[i].TicketID = ticket.ID
		partModel := models.TicketPartModelFromDomain(&ticket.Parts[i])
		if err := tx.Save(partModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a ticket
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).
			Delete(&models.TicketPartModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ServiceTicketModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts tickets matching the filter
func (r *GormTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ServiceTicketModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateTicketNumber generates the next sequential ticket number
func (r *GormTicketRepository) GenerateTicketNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("TK-%d-", year)

	var lastTicket models.ServiceTicketModel
	err := r.db.WithContext(ctx).
		Model(&models.ServiceTicketModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastTicket).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastTicket.Number != "" {
		parts := strings.Split(lastTicket.Number, "-")
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
		return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Could not generate a unique ticket number")
	}

	return number, nil
}

func (r *GormTicketRepository) existsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceTicketModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTicketRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TicketSortFields, "received_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTicketRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ? OR device_imei ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "technician_id":
			query = query.Where("technician_id = ?", value)
		case "liquidated":
			query = query.Where("liquidated = ?", value)
		case "received_from":
			query = query.Where("received_at >= ?", value)
		case "received_to":
			query = query.Where("received_at <= ?", value)
		}
	}

	return query
}

func toDomainTickets(ticketModels []models.ServiceTicketModel) []*workshop.ServiceTicket {
	tickets := make([]*workshop.ServiceTicket, len(ticketModels))
	for i := range ticketModels {
		tickets[i] = ticketModels[i].ToDomain()
	}
	return tickets
}

// Ensure GormTicketRepository implements TicketRepository
var _ workshop.TicketRepository = (*GormTicketRepository)(nil)
