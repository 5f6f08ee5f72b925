// FILE: internal/model/subscription_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId               uuid.UUID `gorm:"type:uuid;not null;index"`
	StripeSubscriptionId string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	StripeCustomerId     string    `gorm:"type:varchar(255);index"`

	CreditAmount  int64  `gorm:"not null"`
	PricePerCycle int64  `gorm:"not null"`
	Currency      string `gorm:"type:varchar(10);not null;default:'usd'"`

	Status             string    `gorm:"type:varchar(20);not null"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null"`
	CancelAtPeriodEnd  bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

type StripeEvent struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventId     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	EventType   string    `gorm:"type:varchar(100);not null"`
	ProcessedAt time.Time `gorm:"not null"`
}

func (StripeEvent) TableName() string {
	return "stripe_events"
}
