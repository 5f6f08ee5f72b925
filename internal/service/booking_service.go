// FILE: internal/service/booking_service.go
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
	"fitbook-be/pkg/gateway"
	pktNats "fitbook-be/pkg/nats"
	"fitbook-be/pkg/pricing"

	"github.com/google/uuid"
)

type IBookingService interface {
	BookClass(ctx context.Context, userId uuid.UUID, req *dto.BookClassRequest) (*dto.BookClassResponse, error)
	CancelBooking(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error)
	CancelBookingWithRefund(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error)
	RejectBookingWithRefund(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error)
	ApproveBooking(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error
	CompleteBooking(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error
	MarkNoShow(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error
	ListMyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error)
}

type bookingService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         creditLedger
	gateway        gateway.Gateway
	reconciler     IRefundReconciler
	eventPublisher *pktNats.Publisher
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	gw gateway.Gateway,
	reconciler IRefundReconciler,
	eventPublisher *pktNats.Publisher,
) IBookingService {
	return &bookingService{
		uowFactory:     uowFactory,
		gateway:        gw,
		reconciler:     reconciler,
		eventPublisher: eventPublisher,
	}
}

// BookClass reserves a slot. The credit debit, the booking insert and the
// counter increment run in one transaction: a ledger failure leaves no
// booking behind and a full class leaves no debit behind.
func (s *bookingService) BookClass(ctx context.Context, userId uuid.UUID, req *dto.BookClassRequest) (*dto.BookClassResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	instance, err := uow.ClassRepository().FindOneInstance(ctx, specification.ByID{ID: req.ClassInstanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, apperr.NotFound("class_instance")
	}

	switch instance.Status {
	case entity.ClassStatusCancelled:
		return nil, apperr.ClassCancelled()
	case entity.ClassStatusCompleted:
		return nil, apperr.ClassCompleted()
	}

	if !now.Before(instance.StartTime) {
		return nil, apperr.ClassStarted()
	}

	hoursUntil := instance.StartTime.Sub(now).Hours()
	if hoursUntil < instance.MinHoursBefore {
		return nil, apperr.TooLate(fmt.Sprintf("bookings close %.0f hours before start", instance.MinHoursBefore))
	}
	if instance.MaxHoursBefore > 0 && hoursUntil > instance.MaxHoursBefore {
		return nil, apperr.TooEarly(fmt.Sprintf("bookings open %.0f hours before start", instance.MaxHoursBefore))
	}

	template, err := uow.ClassRepository().FindOneTemplate(ctx, specification.ByID{ID: instance.TemplateId})
	if err != nil {
		return nil, err
	}

	venue, err := uow.BusinessRepository().FindOneVenue(ctx, specification.ByID{ID: instance.VenueId})
	if err != nil {
		return nil, err
	}

	capacity := instance.EffectiveCapacity(venue)
	if instance.BookedCount >= capacity {
		return nil, apperr.ClassFull()
	}

	// Idempotency: a repeat call returns the live booking instead of
	// charging twice.
	for _, status := range []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusAwaitingApproval} {
		existing, err := uow.BookingRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.Filter("class_instance_id", instance.Id),
			specification.Filter("status", string(status)),
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return bookClassResponse(existing), nil
		}
	}

	quote := pricing.BestDiscount(instance, template, now)
	if quote.OriginalPrice <= 0 {
		return nil, apperr.InvalidPrice()
	}

	bookingId := uuid.New()

	var creditTxId *uuid.UUID
	if quote.FinalPrice > 0 {
		creditTx, err := s.ledger.spend(ctx, uow, userId, quote.FinalPrice, entity.CreditReasonBooking,
			fmt.Sprintf("booking %s", instance.Name), &bookingId)
		if err != nil {
			return nil, err
		}
		creditTxId = &creditTx.Id
	}

	// Templates flagged for approval park the booking with the business.
	// The debit and the slot are held either way; rejection refunds both.
	status := entity.BookingStatusPending
	if template != nil && template.RequiresApproval {
		status = entity.BookingStatusAwaitingApproval
	}

	booking := &entity.Booking{
		Id:                  bookingId,
		UserId:              userId,
		ClassInstanceId:     instance.Id,
		BusinessId:          instance.BusinessId,
		Status:              status,
		OriginalPrice:       quote.OriginalPrice,
		FinalPrice:          quote.FinalPrice,
		CreditsUsed:         quote.FinalPrice,
		CreditTransactionId: creditTxId,
		AppliedDiscount:     quote.Applied,
		Snapshot: entity.ScheduleSnapshot{
			StartTime:   instance.StartTime,
			EndTime:     instance.EndTime,
			TimePattern: instance.TimePattern,
			DayOfWeek:   instance.DayOfWeek,
		},
		CreatedAt: now,
	}
	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, err
	}

	ok, err := uow.ClassRepository().IncrementBooked(ctx, instance.Id, capacity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent booking took the last slot after our read.
		return nil, apperr.ClassFull()
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.NewBookingCreated(map[string]interface{}{
		"booking_id": booking.Id,
		"user_id":    userId,
		"class":      instance.Name,
		"start_time": instance.StartTime,
	}))

	return bookClassResponse(booking), nil
}

// CancelBooking unwinds a credit-paid booking per the refund policy.
func (s *bookingService) CancelBooking(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking")
	}
	if booking.UserId != userId {
		return nil, apperr.Unauthorized("booking belongs to another user")
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, apperr.ActionNotAllowed("only pending bookings can be cancelled")
	}

	instance, err := uow.ClassRepository().FindOneInstance(ctx, specification.ByID{ID: booking.ClassInstanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, apperr.NotFound("class_instance")
	}

	hoursUntil := instance.StartTime.Sub(now).Hours()
	quote := computeRefund(booking.CreditsUsed, hoursUntil, booking.FreeCancelActive(now))

	if err := booking.Cancel(now); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := uow.ClassRepository().DecrementBooked(ctx, instance.Id); err != nil {
		return nil, err
	}

	if quote.Net > 0 {
		_, err := s.ledger.grant(ctx, uow, userId, quote.Net, entity.CreditReasonRefund,
			fmt.Sprintf("cancellation of %s", instance.Name), grantOptions{relatedBookingId: &booking.Id})
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.NewBookingCancelled(map[string]interface{}{
		"booking_id": booking.Id,
		"user_id":    userId,
		"refund":     quote.Net,
	}))

	return &dto.CancelBookingResponse{Id: booking.Id, RefundAmount: quote.Net, Fee: quote.Fee}, nil
}

// CancelBookingWithRefund unwinds a direct-payment booking. The status
// transition commits first; the gateway refund runs after and falls back to
// the reconciliation queue when the call fails.
func (s *bookingService) CancelBookingWithRefund(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking")
	}
	if booking.UserId != userId {
		return nil, apperr.Unauthorized("booking belongs to another user")
	}
	if booking.StripePaymentIntentId == nil {
		return nil, apperr.ActionNotAllowed("booking was not paid through the gateway")
	}

	instance, err := uow.ClassRepository().FindOneInstance(ctx, specification.ByID{ID: booking.ClassInstanceId})
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, apperr.NotFound("class_instance")
	}

	hoursUntil := instance.StartTime.Sub(now).Hours()
	quote := computeRefund(booking.PaidAmount, hoursUntil, booking.FreeCancelActive(now))

	if err := booking.Cancel(now); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.ClassRepository().DecrementBooked(ctx, instance.Id); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.settleGatewayRefund(ctx, booking, quote.Net)

	return &dto.CancelBookingResponse{Id: booking.Id, RefundAmount: quote.Net, Fee: quote.Fee}, nil
}

// RejectBookingWithRefund is the business-side rejection of an
// awaiting_approval booking: always 100% back, no fee.
func (s *bookingService) RejectBookingWithRefund(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) (*dto.CancelBookingResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking")
	}
	if booking.BusinessId != businessId {
		return nil, apperr.Unauthorized("booking belongs to another business")
	}
	if booking.Status != entity.BookingStatusAwaitingApproval {
		return nil, apperr.ActionNotAllowed("booking is not awaiting approval")
	}

	var quote refundQuote
	if booking.StripePaymentIntentId != nil {
		quote = fullRefund(booking.PaidAmount)
	} else {
		quote = fullRefund(booking.CreditsUsed)
	}

	if err := booking.Cancel(now); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.ClassRepository().DecrementBooked(ctx, booking.ClassInstanceId); err != nil {
		return nil, err
	}

	ledgerRefund := booking.StripePaymentIntentId == nil && quote.Net > 0
	if ledgerRefund {
		_, err := s.ledger.grant(ctx, uow, booking.UserId, quote.Net, entity.CreditReasonRefund,
			"booking rejected by business", grantOptions{relatedBookingId: &booking.Id})
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if booking.StripePaymentIntentId != nil {
		s.settleGatewayRefund(ctx, booking, quote.Net)
	}

	s.publishBookingEvent(ctx, events.NewBookingCancelled(map[string]interface{}{
		"booking_id": booking.Id,
		"user_id":    booking.UserId,
		"refund":     quote.Net,
		"rejected":   true,
	}))

	return &dto.CancelBookingResponse{Id: booking.Id, RefundAmount: quote.Net, Fee: quote.Fee}, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return apperr.NotFound("booking")
	}
	if booking.BusinessId != businessId {
		return apperr.Unauthorized("booking belongs to another business")
	}

	if err := booking.Approve(); err != nil {
		return err
	}
	return uow.BookingRepository().Update(ctx, booking)
}

func (s *bookingService) CompleteBooking(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return apperr.NotFound("booking")
	}
	if booking.BusinessId != businessId {
		return apperr.Unauthorized("booking belongs to another business")
	}

	if err := booking.Complete(time.Now()); err != nil {
		return err
	}
	return uow.BookingRepository().Update(ctx, booking)
}

func (s *bookingService) MarkNoShow(ctx context.Context, businessId uuid.UUID, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return apperr.NotFound("booking")
	}
	if booking.BusinessId != businessId {
		return apperr.Unauthorized("booking belongs to another business")
	}

	if err := booking.MarkNoShow(); err != nil {
		return err
	}
	return uow.BookingRepository().Update(ctx, booking)
}

func (s *bookingService) ListMyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, &dto.BookingResponse{
			Id:              b.Id,
			ClassInstanceId: b.ClassInstanceId,
			Status:          b.Status,
			OriginalPrice:   b.OriginalPrice,
			FinalPrice:      b.FinalPrice,
			CreditsUsed:     b.CreditsUsed,
			AppliedDiscount: b.AppliedDiscount,
			HasFreeCancel:   b.HasFreeCancel,
			StartTime:       b.Snapshot.StartTime,
			EndTime:         b.Snapshot.EndTime,
			CreatedAt:       b.CreatedAt,
		})
	}
	return out, nil
}

// settleGatewayRefund performs the post-commit gateway call. A failure must
// not be swallowed into a log line only: the task goes to the durable
// reconciliation queue for retry.
func (s *bookingService) settleGatewayRefund(ctx context.Context, booking *entity.Booking, amount int64) {
	if amount <= 0 || booking.StripePaymentIntentId == nil || s.gateway == nil {
		return
	}
	if err := s.gateway.Refund(ctx, *booking.StripePaymentIntentId, amount); err != nil {
		fmt.Printf("[WARN] Gateway refund failed for booking %s, queueing reconciliation: %v\n", booking.Id, err)
		if s.reconciler != nil {
			task := RefundTask{
				BookingId:       booking.Id,
				PaymentIntentId: *booking.StripePaymentIntentId,
				Amount:          amount,
			}
			if err := s.reconciler.Enqueue(ctx, task); err != nil {
				fmt.Printf("[ERROR] Failed to enqueue refund task for booking %s: %v\n", booking.Id, err)
			}
		}
	}
}

func (s *bookingService) publishBookingEvent(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.EventType(), err)
	}
}

func bookClassResponse(b *entity.Booking) *dto.BookClassResponse {
	return &dto.BookClassResponse{
		Id:              b.Id,
		Status:          b.Status,
		OriginalPrice:   b.OriginalPrice,
		FinalPrice:      b.FinalPrice,
		CreditsUsed:     b.CreditsUsed,
		AppliedDiscount: b.AppliedDiscount,
	}
}
