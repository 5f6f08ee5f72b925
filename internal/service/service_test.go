package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"fitbook-be/internal/entity"
	"fitbook-be/internal/model"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/gateway"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Business{},
		&model.Venue{},
		&model.ClassTemplate{},
		&model.ClassInstance{},
		&model.Booking{},
		&model.CreditTransaction{},
		&model.CreditPurchase{},
		&model.Subscription{},
		&model.StripeEvent{},
	))
	return db
}

// seedUser writes the user row and a matching ledger entry, so the cached
// balance and the transaction sum start out consistent.
func seedUser(t *testing.T, db *gorm.DB, credits int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.User{
		Id:       id,
		Email:    id.String() + "@test.local",
		FullName: "Test Member",
		Role:     string(entity.UserRoleMember),
		Status:   string(entity.UserStatusActive),
		Credits:  credits,
	}).Error)
	if credits > 0 {
		require.NoError(t, db.Create(&model.CreditTransaction{
			Id:        uuid.New(),
			UserId:    id,
			Amount:    credits,
			Direction: string(entity.CreditDirectionCredit),
			Reason:    string(entity.CreditReasonGift),
			Note:      "seed balance",
			CreatedAt: time.Now(),
		}).Error)
	}
	return id
}

type classFixture struct {
	BusinessId uuid.UUID
	VenueId    uuid.UUID
	TemplateId uuid.UUID
	InstanceId uuid.UUID
}

func seedClass(t *testing.T, db *gorm.DB, price int64, capacity int, start time.Time) classFixture {
	t.Helper()

	fx := classFixture{
		BusinessId: uuid.New(),
		VenueId:    uuid.New(),
		TemplateId: uuid.New(),
		InstanceId: uuid.New(),
	}
	end := start.Add(time.Hour)

	require.NoError(t, db.Create(&model.Business{
		Id:   fx.BusinessId,
		Name: "Test Studio",
		Slug: "test-studio-" + fx.BusinessId.String()[:8],
	}).Error)
	require.NoError(t, db.Create(&model.Venue{
		Id:         fx.VenueId,
		BusinessId: fx.BusinessId,
		Name:       "Main Room",
		Capacity:   capacity,
	}).Error)
	require.NoError(t, db.Create(&model.ClassTemplate{
		Id:         fx.TemplateId,
		BusinessId: fx.BusinessId,
		VenueId:    fx.VenueId,
		Name:       "Morning Yoga",
		BasePrice:  price,
	}).Error)
	require.NoError(t, db.Create(&model.ClassInstance{
		Id:          fx.InstanceId,
		BusinessId:  fx.BusinessId,
		VenueId:     fx.VenueId,
		TemplateId:  fx.TemplateId,
		Name:        "Morning Yoga",
		StartTime:   start,
		EndTime:     end,
		TimePattern: entity.TimePatternFor(start, end),
		DayOfWeek:   start.Weekday().String(),
		Capacity:    capacity,
		Status:      string(entity.ClassStatusScheduled),
	}).Error)
	return fx
}

func userCredits(t *testing.T, db *gorm.DB, userId uuid.UUID) int64 {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, "id = ?", userId).Error)
	return user.Credits
}

func bookedCount(t *testing.T, db *gorm.DB, instanceId uuid.UUID) int {
	t.Helper()
	var instance model.ClassInstance
	require.NoError(t, db.First(&instance, "id = ?", instanceId).Error)
	return instance.BookedCount
}

func ledgerSum(t *testing.T, db *gorm.DB, userId uuid.UUID) int64 {
	t.Helper()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	sum, err := uow.CreditRepository().SumForUser(context.Background(), userId)
	require.NoError(t, err)
	return sum
}

// fakeGateway satisfies gateway.Gateway without network calls.
type fakeGateway struct {
	refundErr error
	refunds   []string
	cancelled []string
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, email, name string) (*gateway.Customer, error) {
	return &gateway.Customer{Id: "cus_test"}, nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, customerId string, amount int64, currency string, metadata map[string]string) (*gateway.PaymentIntent, error) {
	return &gateway.PaymentIntent{Id: "pi_" + uuid.NewString(), ClientSecret: "cs_test"}, nil
}

func (g *fakeGateway) CreateEphemeralKey(ctx context.Context, customerId string) (string, error) {
	return "ek_test", nil
}

func (g *fakeGateway) Refund(ctx context.Context, paymentIntentId string, amount int64) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds = append(g.refunds, paymentIntentId)
	return nil
}

func (g *fakeGateway) CancelPaymentIntent(ctx context.Context, paymentIntentId string) error {
	g.cancelled = append(g.cancelled, paymentIntentId)
	return nil
}

type fakeReconciler struct {
	tasks []RefundTask
}

func (r *fakeReconciler) Enqueue(ctx context.Context, task RefundTask) error {
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *fakeReconciler) Run(ctx context.Context) error {
	return nil
}
