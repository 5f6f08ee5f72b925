// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"log"

	"fitbook-be/internal/config"
	"fitbook-be/internal/controller"
	"fitbook-be/internal/pkg/logger"
	"fitbook-be/internal/pkg/mailer"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/internal/service"
	"fitbook-be/pkg/gateway"

	pktNats "fitbook-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	BookingController controller.IBookingController
	ClassController   controller.IClassController
	CreditController  controller.ICreditController
	PaymentController controller.IPaymentController

	// Background Services (Exposed for main.go to run)
	RefundReconciler    service.IRefundReconciler
	NotificationService *service.NotificationService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// 3. Payment Gateway
	stripeGateway := gateway.NewStripeGateway(cfg.Stripe.SecretKey)

	// 4. Services
	refundReconciler := service.NewRefundReconciler(pubSub, stripeGateway)

	creditService := service.NewCreditService(uowFactory, natsPub)
	bookingService := service.NewBookingService(uowFactory, stripeGateway, refundReconciler, natsPub)
	classService := service.NewClassService(uowFactory)
	classInstanceService := service.NewClassInstanceService(uowFactory, natsPub)
	paymentService := service.NewPaymentService(uowFactory, stripeGateway, cfg.Stripe.WebhookSecret, natsPub)

	notifService := service.NewNotificationService(uowFactory, natsSub, emailService, sysLogger)

	// 5. Controllers
	return &Container{
		BookingController: controller.NewBookingController(bookingService),
		ClassController:   controller.NewClassController(classService, classInstanceService),
		CreditController:  controller.NewCreditController(creditService),
		PaymentController: controller.NewPaymentController(paymentService),

		RefundReconciler:    refundReconciler,
		NotificationService: notifService,

		Logger: sysLogger,
	}
}
