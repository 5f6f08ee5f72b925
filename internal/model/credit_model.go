// FILE: internal/model/credit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransaction struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	Direction string    `gorm:"type:varchar(10);not null"`
	Reason    string    `gorm:"type:varchar(30);not null"`
	Note      string    `gorm:"type:text"`

	RelatedBookingId      *uuid.UUID `gorm:"type:uuid;index"`
	RelatedSubscriptionId *uuid.UUID `gorm:"type:uuid;index"`
	PeriodStart           *time.Time

	StripePaymentIntentId *string `gorm:"type:varchar(255);index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

type CreditPurchase struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId                uuid.UUID `gorm:"type:uuid;not null;index"`
	Credits               int64     `gorm:"not null"`
	AmountPaid            int64     `gorm:"not null"`
	Currency              string    `gorm:"type:varchar(10);not null;default:'usd'"`
	StripePaymentIntentId string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Status                string    `gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt             time.Time `gorm:"not null"`
	CompletedAt           *time.Time
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (CreditPurchase) TableName() string {
	return "credit_purchases"
}
