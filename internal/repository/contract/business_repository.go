// FILE: internal/repository/contract/business_repository.go
package contract

import (
	"context"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Business, error)

	CreateVenue(ctx context.Context, venue *entity.Venue) error
	FindOneVenue(ctx context.Context, specs ...specification.Specification) (*entity.Venue, error)
	FindAllVenues(ctx context.Context, specs ...specification.Specification) ([]*entity.Venue, error)
}
