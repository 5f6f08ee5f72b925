// FILE: internal/repository/contract/class_repository.go
package contract

import (
	"context"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ClassRepository interface {
	// Templates
	CreateTemplate(ctx context.Context, template *entity.ClassTemplate) error
	UpdateTemplate(ctx context.Context, template *entity.ClassTemplate) error
	FindOneTemplate(ctx context.Context, specs ...specification.Specification) (*entity.ClassTemplate, error)

	// Instances
	CreateInstance(ctx context.Context, instance *entity.ClassInstance) error
	UpdateInstance(ctx context.Context, instance *entity.ClassInstance) error
	FindOneInstance(ctx context.Context, specs ...specification.Specification) (*entity.ClassInstance, error)
	FindAllInstances(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassInstance, error)
	SoftDeleteInstance(ctx context.Context, id uuid.UUID) error

	// IncrementBooked bumps the booked counter only while it stays below
	// capacity; returns false when the class is full. The guard runs inside
	// the UPDATE so conflicting bookings serialize on the row.
	IncrementBooked(ctx context.Context, id uuid.UUID, capacity int) (bool, error)

	// DecrementBooked lowers the counter, floored at zero.
	DecrementBooked(ctx context.Context, id uuid.UUID) error
}
