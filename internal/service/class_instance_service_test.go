package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/dto"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPendingBooking(t *testing.T, db *gorm.DB, fx classFixture, userId uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.Booking{
		Id:              id,
		UserId:          userId,
		ClassInstanceId: fx.InstanceId,
		BusinessId:      fx.BusinessId,
		Status:          string(entity.BookingStatusPending),
	}).Error)
	return id
}

func TestRescheduleGrantsFreeCancelToPendingBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassInstanceService(unitofwork.NewRepositoryFactory(db), nil)

	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)
	fx := seedClass(t, db, 500, 10, start)

	memberA := seedUser(t, db, 0)
	memberB := seedUser(t, db, 0)
	bookingA := seedPendingBooking(t, db, fx, memberA)
	bookingB := seedPendingBooking(t, db, fx, memberB)

	cancelledId := uuid.New()
	require.NoError(t, db.Create(&model.Booking{
		Id:              cancelledId,
		UserId:          memberA,
		ClassInstanceId: fx.InstanceId,
		BusinessId:      fx.BusinessId,
		Status:          string(entity.BookingStatusCancelled),
	}).Error)

	newStart := start.Add(time.Hour)
	newEnd := newStart.Add(time.Hour)
	before := time.Now()
	resp, err := svc.UpdateInstance(ctx, fx.BusinessId, &dto.UpdateClassInstanceRequest{
		Id:        fx.InstanceId,
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.NoError(t, err)

	assert.True(t, resp.Rescheduled)
	assert.Equal(t, 2, resp.BookingsNotified)

	var instance model.ClassInstance
	require.NoError(t, db.First(&instance, "id = ?", fx.InstanceId).Error)
	assert.Equal(t, newStart.Unix(), instance.StartTime.Unix())
	assert.Equal(t, "19:00-20:00", instance.TimePattern)
	assert.Equal(t, "Monday", instance.DayOfWeek)

	for _, id := range []uuid.UUID{bookingA, bookingB} {
		var booking model.Booking
		require.NoError(t, db.First(&booking, "id = ?", id).Error)
		assert.True(t, booking.HasFreeCancel)
		require.NotNil(t, booking.FreeCancelExpiresAt)
		assert.WithinDuration(t, before.Add(freeCancelWindow), *booking.FreeCancelExpiresAt, time.Minute)

		var snapshot entity.ScheduleSnapshot
		require.NoError(t, json.Unmarshal(booking.Snapshot, &snapshot))
		assert.Equal(t, newStart.Unix(), snapshot.StartTime.Unix())
	}

	var untouched model.Booking
	require.NoError(t, db.First(&untouched, "id = ?", cancelledId).Error)
	assert.False(t, untouched.HasFreeCancel)
}

func TestUpdateWithoutTimeChangeDoesNotPropagate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassInstanceService(unitofwork.NewRepositoryFactory(db), nil)

	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)
	fx := seedClass(t, db, 500, 10, start)
	member := seedUser(t, db, 0)
	bookingId := seedPendingBooking(t, db, fx, member)

	sameStart := start
	newName := "Evening Yoga"
	resp, err := svc.UpdateInstance(ctx, fx.BusinessId, &dto.UpdateClassInstanceRequest{
		Id:        fx.InstanceId,
		StartTime: &sameStart,
		Name:      &newName,
	})
	require.NoError(t, err)

	assert.False(t, resp.Rescheduled)
	assert.Equal(t, 0, resp.BookingsNotified)

	var instance model.ClassInstance
	require.NoError(t, db.First(&instance, "id = ?", fx.InstanceId).Error)
	assert.Equal(t, "Evening Yoga", instance.Name)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "id = ?", bookingId).Error)
	assert.False(t, booking.HasFreeCancel)
}

func TestRescheduleAppliesToSimilarInstances(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassInstanceService(unitofwork.NewRepositoryFactory(db), nil)

	start := time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC)
	fx := seedClass(t, db, 500, 10, start)

	// Next week's occurrence of the same recurring slot.
	siblingStart := start.AddDate(0, 0, 7)
	siblingId := uuid.New()
	require.NoError(t, db.Create(&model.ClassInstance{
		Id:          siblingId,
		BusinessId:  fx.BusinessId,
		VenueId:     fx.VenueId,
		TemplateId:  fx.TemplateId,
		Name:        "Morning Yoga",
		StartTime:   siblingStart,
		EndTime:     siblingStart.Add(time.Hour),
		TimePattern: "18:00-19:00",
		DayOfWeek:   "Monday",
		Capacity:    10,
		Status:      string(entity.ClassStatusScheduled),
	}).Error)

	// A different class at the same time must not move.
	otherId := uuid.New()
	require.NoError(t, db.Create(&model.ClassInstance{
		Id:          otherId,
		BusinessId:  fx.BusinessId,
		VenueId:     fx.VenueId,
		TemplateId:  fx.TemplateId,
		Name:        "Pilates",
		StartTime:   siblingStart,
		EndTime:     siblingStart.Add(time.Hour),
		TimePattern: "18:00-19:00",
		DayOfWeek:   "Monday",
		Capacity:    10,
		Status:      string(entity.ClassStatusScheduled),
	}).Error)

	member := seedUser(t, db, 0)
	siblingBooking := uuid.New()
	require.NoError(t, db.Create(&model.Booking{
		Id:              siblingBooking,
		UserId:          member,
		ClassInstanceId: siblingId,
		BusinessId:      fx.BusinessId,
		Status:          string(entity.BookingStatusPending),
	}).Error)

	newStart := start.Add(time.Hour)
	newEnd := newStart.Add(time.Hour)
	resp, err := svc.UpdateInstance(ctx, fx.BusinessId, &dto.UpdateClassInstanceRequest{
		Id:             fx.InstanceId,
		StartTime:      &newStart,
		EndTime:        &newEnd,
		ApplyToSimilar: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Rescheduled)
	assert.Equal(t, 1, resp.SimilarUpdated)
	assert.Equal(t, 1, resp.BookingsNotified)

	// The sibling keeps its own date and takes the new time of day.
	var sibling model.ClassInstance
	require.NoError(t, db.First(&sibling, "id = ?", siblingId).Error)
	assert.Equal(t, siblingStart.Add(time.Hour).Unix(), sibling.StartTime.Unix())
	assert.Equal(t, "19:00-20:00", sibling.TimePattern)

	var other model.ClassInstance
	require.NoError(t, db.First(&other, "id = ?", otherId).Error)
	assert.Equal(t, siblingStart.Unix(), other.StartTime.Unix())
	assert.Equal(t, "18:00-19:00", other.TimePattern)

	var booking model.Booking
	require.NoError(t, db.First(&booking, "id = ?", siblingBooking).Error)
	assert.True(t, booking.HasFreeCancel)
}

func TestUpdateInstanceRejectsForeignBusiness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassInstanceService(unitofwork.NewRepositoryFactory(db), nil)

	fx := seedClass(t, db, 500, 10, time.Now().Add(24*time.Hour))

	capacity := 20
	_, err := svc.UpdateInstance(ctx, uuid.New(), &dto.UpdateClassInstanceRequest{
		Id:       fx.InstanceId,
		Capacity: &capacity,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestDeleteInstanceBlockedByLiveBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassInstanceService(unitofwork.NewRepositoryFactory(db), nil)

	fx := seedClass(t, db, 500, 10, time.Now().Add(24*time.Hour))
	member := seedUser(t, db, 0)
	bookingId := seedPendingBooking(t, db, fx, member)

	err := svc.DeleteInstance(ctx, fx.BusinessId, fx.InstanceId)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeActionNotAllowed, apperr.CodeOf(err))

	require.NoError(t, db.Model(&model.Booking{}).Where("id = ?", bookingId).
		Update("status", string(entity.BookingStatusCancelled)).Error)

	require.NoError(t, svc.DeleteInstance(ctx, fx.BusinessId, fx.InstanceId))

	var count int64
	require.NoError(t, db.Model(&model.ClassInstance{}).Where("id = ?", fx.InstanceId).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
