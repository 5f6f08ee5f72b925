// FILE: internal/entity/business_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Business struct {
	Id        uuid.UUID
	Name      string
	Slug      string
	Email     string
	Phone     string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Venue struct {
	Id         uuid.UUID
	BusinessId uuid.UUID
	Name       string
	Address    string
	City       string
	// Default room capacity, used when a class instance has no override.
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
