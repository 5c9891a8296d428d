package converter

import (
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
)

// URLFunc turns a storage key into a public URL.
type URLFunc func(key string) string

// AdminProfileToResponse converts an AdminProfile entity to AccountResponse DTO
func AdminProfileToResponse(profile *entity.AdminProfile, url URLFunc) *dto.AccountResponse {
	if profile == nil {
		return nil
	}

	return &dto.AccountResponse{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		PhoneNo:     profile.PhoneNo,
		Designation: profile.Designation,
		Image:       url(profile.Image),
	}
}
