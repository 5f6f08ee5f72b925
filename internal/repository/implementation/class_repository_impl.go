// FILE: internal/repository/implementation/class_repository_impl.go
package implementation

import (
	"context"
	"errors"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/mapper"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/contract"
	"fitbook-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassMapper
}

func NewClassRepository(db *gorm.DB) contract.ClassRepository {
	return &ClassRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassMapper(),
	}
}

func (r *ClassRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClassRepositoryImpl) CreateTemplate(ctx context.Context, template *entity.ClassTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) UpdateTemplate(ctx context.Context, template *entity.ClassTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) FindOneTemplate(ctx context.Context, specs ...specification.Specification) (*entity.ClassTemplate, error) {
	var m model.ClassTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TemplateToEntity(&m), nil
}

func (r *ClassRepositoryImpl) CreateInstance(ctx context.Context, instance *entity.ClassInstance) error {
	m := r.mapper.InstanceToModel(instance)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*instance = *r.mapper.InstanceToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) UpdateInstance(ctx context.Context, instance *entity.ClassInstance) error {
	m := r.mapper.InstanceToModel(instance)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*instance = *r.mapper.InstanceToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) FindOneInstance(ctx context.Context, specs ...specification.Specification) (*entity.ClassInstance, error) {
	var m model.ClassInstance
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InstanceToEntity(&m), nil
}

func (r *ClassRepositoryImpl) FindAllInstances(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassInstance, error) {
	var models []*model.ClassInstance
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	instances := make([]*entity.ClassInstance, 0, len(models))
	for _, m := range models {
		instances = append(instances, r.mapper.InstanceToEntity(m))
	}
	return instances, nil
}

func (r *ClassRepositoryImpl) SoftDeleteInstance(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ClassInstance{}, id).Error
}

func (r *ClassRepositoryImpl) IncrementBooked(ctx context.Context, id uuid.UUID, capacity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ClassInstance{}).
		Where("id = ? AND booked_count < ?", id, capacity).
		UpdateColumn("booked_count", gorm.Expr("booked_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ClassRepositoryImpl) DecrementBooked(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassInstance{}).
		Where("id = ? AND booked_count > 0", id).
		UpdateColumn("booked_count", gorm.Expr("booked_count - 1")).Error
}
