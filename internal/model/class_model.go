// FILE: internal/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClassTemplate struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BusinessId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	VenueId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Description     string         `gorm:"type:text"`
	BasePrice        int64          `gorm:"not null;default:0"`
	DurationMinutes  int            `gorm:"not null;default:60"`
	RequiresApproval bool           `gorm:"not null;default:false"`
	DiscountRules    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`

	Business Business `gorm:"foreignKey:BusinessId"`
	Venue    Venue    `gorm:"foreignKey:VenueId"`
}

func (ClassTemplate) TableName() string {
	return "class_templates"
}

type ClassInstance struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessId uuid.UUID `gorm:"type:uuid;not null;index"`
	VenueId    uuid.UUID `gorm:"type:uuid;not null;index"`
	TemplateId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`

	StartTime   time.Time `gorm:"not null;index"`
	EndTime     time.Time `gorm:"not null"`
	TimePattern string    `gorm:"type:varchar(20);index"`
	DayOfWeek   string    `gorm:"type:varchar(10);index"`

	Capacity    int `gorm:"not null;default:0"`
	BookedCount int `gorm:"not null;default:0"`

	MinHoursBefore          float64 `gorm:"not null;default:0"`
	MaxHoursBefore          float64 `gorm:"not null;default:0"`
	CancellationWindowHours float64 `gorm:"not null;default:12"`

	PriceOverride *int64
	DiscountRules datatypes.JSON `gorm:"type:jsonb"`

	Status    string         `gorm:"type:varchar(20);not null;default:'scheduled'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Template ClassTemplate `gorm:"foreignKey:TemplateId"`
}

func (ClassInstance) TableName() string {
	return "class_instances"
}
