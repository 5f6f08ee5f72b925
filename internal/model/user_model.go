// FILE: internal/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName         string     `gorm:"type:varchar(255);not null"`
	Role             string     `gorm:"type:varchar(20);not null;default:'member'"`
	Status           string     `gorm:"type:varchar(20);not null;default:'active'"`
	BusinessId       *uuid.UUID `gorm:"type:uuid;index"`
	Credits          int64      `gorm:"not null;default:0"`
	StripeCustomerId *string    `gorm:"type:varchar(255);index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
