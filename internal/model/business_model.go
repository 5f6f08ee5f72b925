// FILE: internal/model/business_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Business struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Timezone  string    `gorm:"type:varchar(64);default:'UTC'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Business) TableName() string {
	return "businesses"
}

type Venue struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Address    string    `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(100)"`
	Capacity   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Business Business `gorm:"foreignKey:BusinessId"`
}

func (Venue) TableName() string {
	return "venues"
}
