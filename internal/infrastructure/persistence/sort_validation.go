package persistence

import (
	"strings"

	"github.com/agro/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// defaultSortField keeps listings in insertion order
const defaultSortField = "created_at"

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid; an empty input means ascending.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	switch normalized {
	case "", "ASC":
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

// orderClause builds a safe ORDER BY clause from the filter. The id
// tiebreaker keeps pages stable when many rows share a timestamp.
func orderClause(filter shared.Filter, allowedFields map[string]bool) string {
	field := ValidateSortField(filter.OrderBy, allowedFields, defaultSortField)
	clause := field + " " + ValidateSortOrder(filter.OrderDir)
	if field != "id" {
		clause += ", id ASC"
	}
	return clause
}

// paginate applies offset and limit when both page and page size are set
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// ProducerSortFields contains allowed sort fields for producers
var ProducerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"tax_id":     true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"city":              true,
	"state":             true,
	"total_area":        true,
	"agricultural_area": true,
	"vegetation_area":   true,
}

// CropSortFields contains allowed sort fields for crops
var CropSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"season":     true,
}
