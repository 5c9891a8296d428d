package converter

import (
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
)

func MobileProfileToResponse(profile *entity.MobileProfile, url URLFunc) *dto.MobileProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.MobileProfileResponse{
		ID:        profile.ID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.EmailValue(),
		PhoneNo:   profile.PhoneNo,
		Image:     url(profile.Image),
		IsActive:  profile.IsActive,
		CreatedOn: profile.CreatedAt,
	}
}

func MobileProfilesToListItems(profiles []entity.MobileProfile) []dto.MobileUserListItem {
	items := make([]dto.MobileUserListItem, len(profiles))
	for i, p := range profiles {
		items[i] = dto.MobileUserListItem{
			ID:        p.ID,
			FirstName: p.FirstName,
			Email:     p.EmailValue(),
			PhoneNo:   p.PhoneNo,
			CreatedOn: p.CreatedAt,
			IsActive:  p.IsActive,
		}
	}
	return items
}
