package dto

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type DeleteCountResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListQuery carries the raw list parameters; the usecase decides which filters apply.
type ListQuery struct {
	Filters  map[string]string
	Search   string
	Page     int
	PageSize int
}
