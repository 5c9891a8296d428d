package converter

import (
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
)

// ProfessionalToResponse inlines the admin review into the professional detail.
func ProfessionalToResponse(p *entity.Professional, review *entity.ProfessionalReview, url URLFunc) *dto.ProfessionalResponse {
	if p == nil {
		return nil
	}

	resp := &dto.ProfessionalResponse{
		ID:         p.ID,
		Name:       p.Name,
		PhoneNo:    p.PhoneNo,
		Email:      p.Email,
		Expertise:  p.Expertise,
		Location:   p.Location,
		About:      p.About,
		Experience: p.Experience,
		Portfolio:  url(p.Portfolio),
		Banner:     url(p.Banner),
		Website:    p.Website,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if review != nil {
		resp.Review = review.Review
		resp.Rating = review.Rating
	}
	return resp
}

func ProfessionalsToListItems(professionals []entity.Professional) []dto.ProfessionalListItem {
	items := make([]dto.ProfessionalListItem, len(professionals))
	for i, p := range professionals {
		items[i] = dto.ProfessionalListItem{
			ID:        p.ID,
			Name:      p.Name,
			PhoneNo:   p.PhoneNo,
			Email:     p.Email,
			Expertise: p.Expertise,
			Location:  p.Location,
		}
	}
	return items
}
