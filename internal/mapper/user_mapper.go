// FILE: internal/mapper/user_mapper.go
package mapper

import (
	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:               u.Id,
		Email:            u.Email,
		FullName:         u.FullName,
		Role:             entity.UserRole(u.Role),
		Status:           entity.UserStatus(u.Status),
		BusinessId:       u.BusinessId,
		Credits:          u.Credits,
		StripeCustomerId: u.StripeCustomerId,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:               u.Id,
		Email:            u.Email,
		FullName:         u.FullName,
		Role:             string(u.Role),
		Status:           string(u.Status),
		BusinessId:       u.BusinessId,
		Credits:          u.Credits,
		StripeCustomerId: u.StripeCustomerId,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
