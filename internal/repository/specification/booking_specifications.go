package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingForInstance matches the live bookings of one class instance.
type PendingForInstance struct {
	ClassInstanceID uuid.UUID
}

func (s PendingForInstance) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_instance_id = ? AND status = ?", s.ClassInstanceID, "pending")
}

// SimilarFutureInstances matches sibling occurrences of the same recurring
// class: same business, name, time pattern and weekday, starting at or after
// the reference time.
type SimilarFutureInstances struct {
	BusinessID  uuid.UUID
	Name        string
	TimePattern string
	DayOfWeek   string
	From        time.Time
}

func (s SimilarFutureInstances) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"business_id = ? AND name = ? AND time_pattern = ? AND day_of_week = ? AND start_time >= ?",
		s.BusinessID, s.Name, s.TimePattern, s.DayOfWeek, s.From,
	)
}

// StartingAfter filters instances by start time.
type StartingAfter struct {
	From time.Time
}

func (s StartingAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_time >= ?", s.From)
}
