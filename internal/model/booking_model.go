// FILE: internal/model/booking_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Booking struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_user_instance"`
	ClassInstanceId uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_user_instance"`
	BusinessId      uuid.UUID `gorm:"type:uuid;not null;index"`

	Status string `gorm:"type:varchar(30);not null;index"`

	OriginalPrice int64 `gorm:"not null;default:0"`
	FinalPrice    int64 `gorm:"not null;default:0"`
	CreditsUsed   int64 `gorm:"not null;default:0"`

	CreditTransactionId *uuid.UUID     `gorm:"type:uuid"`
	AppliedDiscount     datatypes.JSON `gorm:"type:jsonb"`

	HasFreeCancel       bool `gorm:"not null;default:false"`
	FreeCancelExpiresAt *time.Time

	PaidAmount            int64   `gorm:"not null;default:0"`
	StripePaymentIntentId *string `gorm:"type:varchar(255);index"`

	Snapshot datatypes.JSON `gorm:"type:jsonb"`

	CancelledAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	ClassInstance ClassInstance `gorm:"foreignKey:ClassInstanceId"`
	User          User          `gorm:"foreignKey:UserId"`
}

func (Booking) TableName() string {
	return "bookings"
}
