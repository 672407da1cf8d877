package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"code":                 true,
	"name":                 true,
	"brand":                true,
	"category":             true,
	"stock":                true,
	"min_stock":            true,
	"purchase_price_cents": true,
	"sale_price_cents":     true,
	"active":               true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"type":       true,
	"quantity":   true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"payment_method": true,
	"customer_name":  true,
}

// TicketSortFields contains allowed sort fields for service tickets
var TicketSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"number":        true,
	"customer_name": true,
	"status":        true,
	"received_at":   true,
}

// PlanSortFields contains allowed sort fields for layaway plans
var PlanSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"number":        true,
	"customer_name": true,
	"status":        true,
	"due_date":      true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}
