package service

import (
	"context"
	"testing"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstanceDerivesScheduleFromTemplate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassService(unitofwork.NewRepositoryFactory(db))

	fx := seedClass(t, db, 500, 10, time.Now().Add(24*time.Hour))

	start := time.Date(2026, 9, 9, 7, 30, 0, 0, time.UTC)
	instance, err := svc.CreateInstance(ctx, fx.BusinessId, fx.TemplateId, start, start.Add(time.Hour), 12)
	require.NoError(t, err)

	assert.Equal(t, "Morning Yoga", instance.Name)
	assert.Equal(t, "07:30-08:30", instance.TimePattern)
	assert.Equal(t, "Wednesday", instance.DayOfWeek)
	assert.Equal(t, 12, instance.Capacity)
	assert.Equal(t, entity.ClassStatusScheduled, instance.Status)
}

func TestCreateInstanceValidatesOwnershipAndTimes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassService(unitofwork.NewRepositoryFactory(db))

	fx := seedClass(t, db, 500, 10, time.Now().Add(24*time.Hour))
	start := time.Now().Add(48 * time.Hour)

	_, err := svc.CreateInstance(ctx, uuid.New(), fx.TemplateId, start, start.Add(time.Hour), 10)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	_, err = svc.CreateInstance(ctx, fx.BusinessId, fx.TemplateId, start, start, 10)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestCreateTemplateRequiresOwnedVenue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewClassService(unitofwork.NewRepositoryFactory(db))

	fx := seedClass(t, db, 500, 10, time.Now().Add(24*time.Hour))

	created, err := svc.CreateTemplate(ctx, fx.BusinessId, &entity.ClassTemplate{
		VenueId:   fx.VenueId,
		Name:      "Spin",
		BasePrice: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, fx.BusinessId, created.BusinessId)
	assert.NotEqual(t, uuid.Nil, created.Id)

	_, err = svc.CreateTemplate(ctx, uuid.New(), &entity.ClassTemplate{
		VenueId:   fx.VenueId,
		Name:      "Spin",
		BasePrice: 800,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
