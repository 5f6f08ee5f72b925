// FILE: internal/mapper/business_mapper.go
package mapper

import (
	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
)

type BusinessMapper struct{}

func NewBusinessMapper() *BusinessMapper {
	return &BusinessMapper{}
}

func (m *BusinessMapper) ToEntity(b *model.Business) *entity.Business {
	if b == nil {
		return nil
	}
	return &entity.Business{
		Id:        b.Id,
		Name:      b.Name,
		Slug:      b.Slug,
		Email:     b.Email,
		Phone:     b.Phone,
		Timezone:  b.Timezone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BusinessMapper) ToModel(b *entity.Business) *model.Business {
	if b == nil {
		return nil
	}
	return &model.Business{
		Id:        b.Id,
		Name:      b.Name,
		Slug:      b.Slug,
		Email:     b.Email,
		Phone:     b.Phone,
		Timezone:  b.Timezone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BusinessMapper) VenueToEntity(v *model.Venue) *entity.Venue {
	if v == nil {
		return nil
	}
	return &entity.Venue{
		Id:         v.Id,
		BusinessId: v.BusinessId,
		Name:       v.Name,
		Address:    v.Address,
		City:       v.City,
		Capacity:   v.Capacity,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func (m *BusinessMapper) VenueToModel(v *entity.Venue) *model.Venue {
	if v == nil {
		return nil
	}
	return &model.Venue{
		Id:         v.Id,
		BusinessId: v.BusinessId,
		Name:       v.Name,
		Address:    v.Address,
		City:       v.City,
		Capacity:   v.Capacity,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
