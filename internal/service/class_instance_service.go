// FILE: internal/service/class_instance_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/dto"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/events"
	pktNats "fitbook-be/pkg/nats"

	"github.com/google/uuid"
)

// freeCancelWindow is how long a member keeps the penalty-free cancellation
// granted by a business-initiated reschedule.
const freeCancelWindow = 48 * time.Hour

type IClassInstanceService interface {
	UpdateInstance(ctx context.Context, businessId uuid.UUID, req *dto.UpdateClassInstanceRequest) (*dto.UpdateClassInstanceResponse, error)
	DeleteInstance(ctx context.Context, businessId uuid.UUID, instanceId uuid.UUID) error
	ListInstances(ctx context.Context, businessId uuid.UUID, from time.Time) ([]*dto.ClassInstanceResponse, error)
}

type classInstanceService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewClassInstanceService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IClassInstanceService {
	return &classInstanceService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

// UpdateInstance applies field changes and, when the schedule actually
// moved, grants every pending booking a free-cancel window and refreshes its
// snapshot. A provided-but-identical time does not count as a reschedule.
func (s *classInstanceService) UpdateInstance(ctx context.Context, businessId uuid.UUID, req *dto.UpdateClassInstanceRequest) (*dto.UpdateClassInstanceResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	instance, err := uow.ClassRepository().FindOneInstance(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, apperr.NotFound("class_instance")
	}
	if instance.BusinessId != businessId {
		return nil, apperr.Unauthorized("class belongs to another business")
	}

	// Remember the match key before mutating: siblings are located by the
	// original schedule, not the new one.
	original := *instance

	rescheduled := false
	newStart := instance.StartTime
	newEnd := instance.EndTime
	if req.StartTime != nil && !req.StartTime.Equal(instance.StartTime) {
		newStart = *req.StartTime
		rescheduled = true
	}
	if req.EndTime != nil && !req.EndTime.Equal(instance.EndTime) {
		newEnd = *req.EndTime
		rescheduled = true
	}

	if req.Name != nil {
		instance.Name = *req.Name
	}
	if req.Capacity != nil {
		instance.Capacity = *req.Capacity
	}
	if req.PriceOverride != nil {
		instance.PriceOverride = req.PriceOverride
	}
	if req.DiscountRules != nil {
		instance.DiscountRules = req.DiscountRules
	}

	notified := 0
	if rescheduled {
		applyNewSchedule(instance, newStart, newEnd)
		notified, err = s.propagateReschedule(ctx, uow, instance, now)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.ClassRepository().UpdateInstance(ctx, instance); err != nil {
		return nil, err
	}

	similarUpdated := 0
	if rescheduled && req.ApplyToSimilar {
		similarUpdated, err = s.updateSimilarInstances(ctx, uow, &original, newStart, newEnd, now, &notified)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if rescheduled && notified > 0 && s.eventPublisher != nil {
		evt := events.NewBookingRescheduled(map[string]interface{}{
			"class_instance_id": instance.Id,
			"new_start_time":    instance.StartTime,
			"bookings_affected": notified,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish BOOKING_RESCHEDULED event: %v\n", err)
		}
	}

	return &dto.UpdateClassInstanceResponse{
		Id:               instance.Id,
		Rescheduled:      rescheduled,
		BookingsNotified: notified,
		SimilarUpdated:   similarUpdated,
	}, nil
}

// propagateReschedule grants free cancellation to the instance's pending
// bookings and rewrites their cached schedule snapshots.
func (s *classInstanceService) propagateReschedule(ctx context.Context, uow unitofwork.UnitOfWork, instance *entity.ClassInstance, now time.Time) (int, error) {
	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.PendingForInstance{ClassInstanceID: instance.Id},
	)
	if err != nil {
		return 0, err
	}

	expiry := now.Add(freeCancelWindow)
	for _, booking := range bookings {
		booking.HasFreeCancel = true
		booking.FreeCancelExpiresAt = &expiry
		booking.Snapshot = entity.ScheduleSnapshot{
			StartTime:   instance.StartTime,
			EndTime:     instance.EndTime,
			TimePattern: instance.TimePattern,
			DayOfWeek:   instance.DayOfWeek,
		}
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			return 0, err
		}
	}
	return len(bookings), nil
}

// updateSimilarInstances moves sibling occurrences of a recurring class to
// the new time-of-day, keeping each sibling's own date, and propagates the
// reschedule to their bookings too.
func (s *classInstanceService) updateSimilarInstances(ctx context.Context, uow unitofwork.UnitOfWork, original *entity.ClassInstance, newStart, newEnd time.Time, now time.Time, notified *int) (int, error) {
	siblings, err := uow.ClassRepository().FindAllInstances(ctx,
		specification.SimilarFutureInstances{
			BusinessID:  original.BusinessId,
			Name:        original.Name,
			TimePattern: original.TimePattern,
			DayOfWeek:   original.DayOfWeek,
			From:        original.StartTime,
		},
	)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, sibling := range siblings {
		if sibling.Id == original.Id {
			continue
		}

		siblingStart := atTimeOfDay(sibling.StartTime, newStart)
		siblingEnd := atTimeOfDay(sibling.EndTime, newEnd)
		applyNewSchedule(sibling, siblingStart, siblingEnd)

		if err := uow.ClassRepository().UpdateInstance(ctx, sibling); err != nil {
			return 0, err
		}

		n, err := s.propagateReschedule(ctx, uow, sibling, now)
		if err != nil {
			return 0, err
		}
		*notified += n
		updated++
	}
	return updated, nil
}

// DeleteInstance soft-deletes an instance that has no live bookings.
func (s *classInstanceService) DeleteInstance(ctx context.Context, businessId uuid.UUID, instanceId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	instance, err := uow.ClassRepository().FindOneInstance(ctx, specification.ByID{ID: instanceId})
	if err != nil {
		return err
	}
	if instance == nil {
		return apperr.NotFound("class_instance")
	}
	if instance.BusinessId != businessId {
		return apperr.Unauthorized("class belongs to another business")
	}

	live, err := uow.BookingRepository().Count(ctx,
		specification.PendingForInstance{ClassInstanceID: instanceId},
	)
	if err != nil {
		return err
	}
	if live > 0 {
		return apperr.ActionNotAllowed("class still has active bookings")
	}

	return uow.ClassRepository().SoftDeleteInstance(ctx, instanceId)
}

func (s *classInstanceService) ListInstances(ctx context.Context, businessId uuid.UUID, from time.Time) ([]*dto.ClassInstanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	instances, err := uow.ClassRepository().FindAllInstances(ctx,
		specification.Filter("business_id", businessId),
		specification.StartingAfter{From: from},
		specification.OrderBy{Field: "start_time"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ClassInstanceResponse, 0, len(instances))
	for _, instance := range instances {
		template, err := uow.ClassRepository().FindOneTemplate(ctx, specification.ByID{ID: instance.TemplateId})
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.ClassInstanceResponse{
			Id:          instance.Id,
			Name:        instance.Name,
			StartTime:   instance.StartTime,
			EndTime:     instance.EndTime,
			TimePattern: instance.TimePattern,
			DayOfWeek:   instance.DayOfWeek,
			Capacity:    instance.Capacity,
			BookedCount: instance.BookedCount,
			Status:      instance.Status,
			Price:       instance.EffectivePrice(template),
		})
	}
	return out, nil
}

func applyNewSchedule(instance *entity.ClassInstance, start, end time.Time) {
	instance.StartTime = start
	instance.EndTime = end
	instance.TimePattern = entity.TimePatternFor(start, end)
	instance.DayOfWeek = start.Weekday().String()
}

// atTimeOfDay keeps the date of base and takes the clock time of src.
func atTimeOfDay(base, src time.Time) time.Time {
	return time.Date(
		base.Year(), base.Month(), base.Day(),
		src.Hour(), src.Minute(), src.Second(), 0,
		base.Location(),
	)
}
