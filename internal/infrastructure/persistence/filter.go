package persistence

import (
	"time"

	"gorm.io/gorm"

	"github.com/delivery/backend/internal/domain/shared"
)

// applyFilter applies search, extra filters, ordering and pagination to the
// query. OrderBy is validated against the allowed sort fields for the entity,
// falling back to defaultSort for unknown columns.
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool, defaultSort, searchColumn string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumn)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, sortFields, defaultSort)
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies search and extra filters only,
// for use in count queries. An empty searchColumn disables search.
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumn string) *gorm.DB {
	// Apply search
	if filter.Search != "" && searchColumn != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(searchColumn+" "+likeOperator(query)+" ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "archived":
			// splits rows on the validity window rather than the flag:
			// archived means the window has already closed
			if archived, ok := value.(bool); ok {
				if archived {
					query = query.Where("valid_to < ?", time.Now())
				} else {
					query = query.Where("valid_to >= ?", time.Now())
				}
			}
		case "type_id":
			query = query.Where("type_id = ?", value)
		case "manufacturer_id":
			query = query.Where("manufacturer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		}
	}

	return query
}

// likeOperator picks a case-insensitive match operator for the dialect.
// ILIKE is PostgreSQL-only; SQLite's LIKE is case-insensitive by default.
func likeOperator(query *gorm.DB) string {
	if query.Dialector != nil && query.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}
