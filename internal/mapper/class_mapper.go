// FILE: internal/mapper/class_mapper.go
package mapper

import (
	"encoding/json"
	"time"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClassMapper struct{}

func NewClassMapper() *ClassMapper {
	return &ClassMapper{}
}

func rulesToJSON(rules []entity.DiscountRule) datatypes.JSON {
	if len(rules) == 0 {
		return nil
	}
	raw, _ := json.Marshal(rules)
	return datatypes.JSON(raw)
}

func rulesFromJSON(raw datatypes.JSON) []entity.DiscountRule {
	if len(raw) == 0 {
		return nil
	}
	var rules []entity.DiscountRule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil
	}
	return rules
}

func (m *ClassMapper) TemplateToEntity(t *model.ClassTemplate) *entity.ClassTemplate {
	if t == nil {
		return nil
	}
	return &entity.ClassTemplate{
		Id:               t.Id,
		BusinessId:       t.BusinessId,
		VenueId:          t.VenueId,
		Name:             t.Name,
		Description:      t.Description,
		BasePrice:        t.BasePrice,
		DurationMinutes:  t.DurationMinutes,
		RequiresApproval: t.RequiresApproval,
		DiscountRules:    rulesFromJSON(t.DiscountRules),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (m *ClassMapper) TemplateToModel(t *entity.ClassTemplate) *model.ClassTemplate {
	if t == nil {
		return nil
	}
	return &model.ClassTemplate{
		Id:               t.Id,
		BusinessId:       t.BusinessId,
		VenueId:          t.VenueId,
		Name:             t.Name,
		Description:      t.Description,
		BasePrice:        t.BasePrice,
		DurationMinutes:  t.DurationMinutes,
		RequiresApproval: t.RequiresApproval,
		DiscountRules:    rulesToJSON(t.DiscountRules),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (m *ClassMapper) InstanceToEntity(ci *model.ClassInstance) *entity.ClassInstance {
	if ci == nil {
		return nil
	}
	var deletedAt *time.Time
	if ci.DeletedAt.Valid {
		t := ci.DeletedAt.Time
		deletedAt = &t
	}
	return &entity.ClassInstance{
		Id:                      ci.Id,
		BusinessId:              ci.BusinessId,
		VenueId:                 ci.VenueId,
		TemplateId:              ci.TemplateId,
		Name:                    ci.Name,
		StartTime:               ci.StartTime,
		EndTime:                 ci.EndTime,
		TimePattern:             ci.TimePattern,
		DayOfWeek:               ci.DayOfWeek,
		Capacity:                ci.Capacity,
		BookedCount:             ci.BookedCount,
		MinHoursBefore:          ci.MinHoursBefore,
		MaxHoursBefore:          ci.MaxHoursBefore,
		CancellationWindowHours: ci.CancellationWindowHours,
		PriceOverride:           ci.PriceOverride,
		DiscountRules:           rulesFromJSON(ci.DiscountRules),
		Status:                  entity.ClassStatus(ci.Status),
		CreatedAt:               ci.CreatedAt,
		UpdatedAt:               ci.UpdatedAt,
		DeletedAt:               deletedAt,
	}
}

func (m *ClassMapper) InstanceToModel(ci *entity.ClassInstance) *model.ClassInstance {
	if ci == nil {
		return nil
	}
	var deletedAt gorm.DeletedAt
	if ci.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *ci.DeletedAt, Valid: true}
	}
	return &model.ClassInstance{
		Id:                      ci.Id,
		BusinessId:              ci.BusinessId,
		VenueId:                 ci.VenueId,
		TemplateId:              ci.TemplateId,
		Name:                    ci.Name,
		StartTime:               ci.StartTime,
		EndTime:                 ci.EndTime,
		TimePattern:             ci.TimePattern,
		DayOfWeek:               ci.DayOfWeek,
		Capacity:                ci.Capacity,
		BookedCount:             ci.BookedCount,
		MinHoursBefore:          ci.MinHoursBefore,
		MaxHoursBefore:          ci.MaxHoursBefore,
		CancellationWindowHours: ci.CancellationWindowHours,
		PriceOverride:           ci.PriceOverride,
		DiscountRules:           rulesToJSON(ci.DiscountRules),
		Status:                  string(ci.Status),
		CreatedAt:               ci.CreatedAt,
		UpdatedAt:               ci.UpdatedAt,
		DeletedAt:               deletedAt,
	}
}
