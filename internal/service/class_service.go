// FILE: internal/service/class_service.go
package service

import (
	"context"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IClassService covers the business-side template and instance creation
// surface. Instance mutation lives in IClassInstanceService.
type IClassService interface {
	CreateTemplate(ctx context.Context, businessId uuid.UUID, template *entity.ClassTemplate) (*entity.ClassTemplate, error)
	CreateInstance(ctx context.Context, businessId uuid.UUID, templateId uuid.UUID, start, end time.Time, capacity int) (*entity.ClassInstance, error)
	ListVenues(ctx context.Context, businessId uuid.UUID) ([]*entity.Venue, error)
}

type classService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewClassService(uowFactory unitofwork.RepositoryFactory) IClassService {
	return &classService{uowFactory: uowFactory}
}

func (s *classService) CreateTemplate(ctx context.Context, businessId uuid.UUID, template *entity.ClassTemplate) (*entity.ClassTemplate, error) {
	if template.BasePrice < 0 {
		return nil, apperr.Validation("base_price", "base price must not be negative")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	venue, err := uow.BusinessRepository().FindOneVenue(ctx, specification.ByID{ID: template.VenueId})
	if err != nil {
		return nil, err
	}
	if venue == nil || venue.BusinessId != businessId {
		return nil, apperr.NotFound("venue")
	}

	template.Id = uuid.New()
	template.BusinessId = businessId
	template.CreatedAt = time.Now()

	if err := uow.ClassRepository().CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *classService) CreateInstance(ctx context.Context, businessId uuid.UUID, templateId uuid.UUID, start, end time.Time, capacity int) (*entity.ClassInstance, error) {
	if !end.After(start) {
		return nil, apperr.Validation("end_time", "end time must be after start time")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.ClassRepository().FindOneTemplate(ctx, specification.ByID{ID: templateId})
	if err != nil {
		return nil, err
	}
	if template == nil || template.BusinessId != businessId {
		return nil, apperr.NotFound("class_template")
	}

	instance := &entity.ClassInstance{
		Id:          uuid.New(),
		BusinessId:  businessId,
		VenueId:     template.VenueId,
		TemplateId:  template.Id,
		Name:        template.Name,
		StartTime:   start,
		EndTime:     end,
		TimePattern: entity.TimePatternFor(start, end),
		DayOfWeek:   start.Weekday().String(),
		Capacity:    capacity,
		Status:      entity.ClassStatusScheduled,
		CreatedAt:   time.Now(),
	}

	if err := uow.ClassRepository().CreateInstance(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func (s *classService) ListVenues(ctx context.Context, businessId uuid.UUID) ([]*entity.Venue, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BusinessRepository().FindAllVenues(ctx,
		specification.Filter("business_id", businessId),
		specification.OrderBy{Field: "name"},
	)
}
