package implementation

import (
	"context"
	"errors"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/mapper"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/contract"
	"fitbook-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BusinessRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BusinessMapper
}

func NewBusinessRepository(db *gorm.DB) contract.BusinessRepository {
	return &BusinessRepositoryImpl{
		db:     db,
		mapper: mapper.NewBusinessMapper(),
	}
}

func (r *BusinessRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BusinessRepositoryImpl) Create(ctx context.Context, business *entity.Business) error {
	m := r.mapper.ToModel(business)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*business = *r.mapper.ToEntity(m)
	return nil
}

func (r *BusinessRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Business, error) {
	var m model.Business
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BusinessRepositoryImpl) CreateVenue(ctx context.Context, venue *entity.Venue) error {
	m := r.mapper.VenueToModel(venue)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*venue = *r.mapper.VenueToEntity(m)
	return nil
}

func (r *BusinessRepositoryImpl) FindOneVenue(ctx context.Context, specs ...specification.Specification) (*entity.Venue, error) {
	var m model.Venue
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VenueToEntity(&m), nil
}

func (r *BusinessRepositoryImpl) FindAllVenues(ctx context.Context, specs ...specification.Specification) ([]*entity.Venue, error) {
	var models []*model.Venue
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	venues := make([]*entity.Venue, 0, len(models))
	for _, m := range models {
		venues = append(venues, r.mapper.VenueToEntity(m))
	}
	return venues, nil
}
