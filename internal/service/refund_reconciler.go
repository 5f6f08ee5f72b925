// FILE: internal/service/refund_reconciler.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fitbook-be/pkg/gateway"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	refundReconcileTopic = "refund.reconcile"
	refundMaxAttempts    = 5
	refundRetryBackoff   = 30 * time.Second
)

// RefundTask is a durable record of a gateway refund that must eventually
// succeed. Booking status transitions commit first; when the follow-up
// gateway call fails the task is queued here instead of being lost in a log
// line, and the worker retries until the refund lands or attempts run out.
type RefundTask struct {
	BookingId       uuid.UUID `json:"booking_id"`
	PaymentIntentId string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Attempts        int       `json:"attempts"`
}

type IRefundReconciler interface {
	Enqueue(ctx context.Context, task RefundTask) error
	Run(ctx context.Context) error
}

type refundReconciler struct {
	pubSub  *gochannel.GoChannel
	gateway gateway.Gateway
}

func NewRefundReconciler(pubSub *gochannel.GoChannel, gw gateway.Gateway) IRefundReconciler {
	return &refundReconciler{
		pubSub:  pubSub,
		gateway: gw,
	}
}

func (r *refundReconciler) Enqueue(ctx context.Context, task RefundTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	return r.pubSub.Publish(refundReconcileTopic, msg)
}

func (r *refundReconciler) Run(ctx context.Context) error {
	messages, err := r.pubSub.Subscribe(ctx, refundReconcileTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (r *refundReconciler) processMessage(ctx context.Context, msg *message.Message) {
	var task RefundTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		log.Printf("[ERROR] Failed to unmarshal refund task: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	err := r.gateway.Refund(ctx, task.PaymentIntentId, task.Amount)
	if err == nil {
		log.Printf("[INFO] Reconciled refund for booking %s (%d)", task.BookingId, task.Amount)
		msg.Ack()
		return
	}

	task.Attempts++
	if task.Attempts >= refundMaxAttempts {
		// Out of retries. Surface loudly for ops follow-up instead of
		// silently diverging booking state from gateway state.
		log.Printf("[ERROR] Refund for booking %s failed after %d attempts: %v", task.BookingId, task.Attempts, err)
		msg.Ack()
		return
	}

	log.Printf("[WARN] Refund for booking %s failed (attempt %d): %v", task.BookingId, task.Attempts, err)
	msg.Ack()
	go func() {
		select {
		case <-time.After(refundRetryBackoff):
		case <-ctx.Done():
			log.Printf("[WARN] Shutdown before refund retry for booking %s", task.BookingId)
			return
		}
		if err := r.Enqueue(ctx, task); err != nil {
			log.Printf("[ERROR] Failed to requeue refund task for booking %s: %v", task.BookingId, err)
		}
	}()
}
