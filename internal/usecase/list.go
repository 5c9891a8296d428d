package usecase

import (
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
)

// Query parameter name to column, per list endpoint. Anything else is ignored.
var (
	professionalFilters = map[string]string{"expertise": "expertise", "location": "location"}
	bookFilters         = map[string]string{"availability": "availability"}
	eventFilters        = map[string]string{"location": "location", "status": "status"}
	materialFilters     = map[string]string{"type": "type", "supplier": "supplier_name", "availability": "availability"}
	auditLogFilters     = map[string]string{"action": "action", "identity_id": "identity_id"}
)

func buildListFilter(q *dto.ListQuery, allowed map[string]string) entity.ListFilter {
	filter := entity.ListFilter{Equals: map[string]interface{}{}}
	if q == nil {
		return filter
	}

	for param, column := range allowed {
		if value, ok := q.Filters[param]; ok && value != "" {
			filter.Equals[column] = value
		}
	}
	filter.Search = q.Search
	filter.Page = q.Page
	filter.PageSize = q.PageSize
	return filter
}
