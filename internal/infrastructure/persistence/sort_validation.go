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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"price":           true,
	"unit":            true,
	"weight":          true,
	"stock":           true,
	"type_id":         true,
	"manufacturer_id": true,
	"active":          true,
}

// ProductTypeSortFields contains allowed sort fields for product types
var ProductTypeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ManufacturerSortFields contains allowed sort fields for manufacturers
var ManufacturerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"country":    true,
}

// PromoCodeSortFields contains allowed sort fields for promo codes
var PromoCodeSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"code":             true,
	"discount_percent": true,
	"valid_from":       true,
	"valid_to":         true,
	"active":           true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"ordered_at":     true,
	"status":         true,
	"client_id":      true,
	"employee_id":    true,
	"payment_status": true,
	"delivered_at":   true,
}

// PickupPointSortFields contains allowed sort fields for pickup points
var PickupPointSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
	"active":     true,
}

// ClientSortFields contains allowed sort fields for client profiles
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"user_id":    true,
	"phone":      true,
	"birth_date": true,
}

// EmployeeSortFields contains allowed sort fields for employee profiles
var EmployeeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"user_id":    true,
	"position":   true,
	"hired_at":   true,
}
