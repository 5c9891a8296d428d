package converter

import (
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
)

func BookToResponse(b *entity.Book, url URLFunc) *dto.BookResponse {
	if b == nil {
		return nil
	}
	return &dto.BookResponse{
		ID:                b.ID,
		Name:              b.Name,
		Price:             b.Price,
		Description:       b.Description,
		AdditionalDetails: b.AdditionalDetails,
		Image:             url(b.Image),
		Availability:      b.Availability,
	}
}

func BooksToListItems(books []entity.Book, url URLFunc) []dto.BookListItem {
	items := make([]dto.BookListItem, len(books))
	for i, b := range books {
		items[i] = dto.BookListItem{
			ID:           b.ID,
			Image:        url(b.Image),
			Name:         b.Name,
			Price:        b.Price,
			Availability: b.Availability,
		}
	}
	return items
}

func EventToResponse(e *entity.Event, url URLFunc) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:                     e.ID,
		Title:                  e.Title,
		Date:                   e.Date,
		Location:               e.Location,
		Description:            e.Description,
		Image:                  url(e.Image),
		AdditionalInformations: e.AdditionalInformations,
		Status:                 e.Status,
	}
}

func EventsToListItems(events []entity.Event) []dto.EventListItem {
	items := make([]dto.EventListItem, len(events))
	for i, e := range events {
		items[i] = dto.EventListItem{
			ID:       e.ID,
			Title:    e.Title,
			Date:     e.Date,
			Location: e.Location,
			Status:   e.Status,
		}
	}
	return items
}

func MaterialToResponse(m *entity.Material, url URLFunc) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:                 m.ID,
		Name:               m.Name,
		Type:               m.Type,
		SupplierName:       m.SupplierName,
		SupplierPhoneNo:    m.SupplierPhoneNo,
		Price:              m.Price,
		DiscountPercentage: m.DiscountPercentage,
		Title:              m.Title,
		Availability:       m.Availability,
		Image:              url(m.Image),
		Description:        m.Description,
		Overview:           m.Overview,
		AdditionalDetails:  m.AdditionalDetails,
	}
}

func MaterialsToListItems(materials []entity.Material, url URLFunc) []dto.MaterialListItem {
	items := make([]dto.MaterialListItem, len(materials))
	for i, m := range materials {
		items[i] = dto.MaterialListItem{
			ID:              m.ID,
			Name:            m.Name,
			Image:           url(m.Image),
			Type:            m.Type,
			SupplierName:    m.SupplierName,
			SupplierPhoneNo: m.SupplierPhoneNo,
			Price:           m.Price,
			Availability:    m.Availability,
		}
	}
	return items
}
