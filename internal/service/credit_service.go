// FILE: internal/service/credit_service.go
package service

import (
	"context"
	"fmt"

	"fitbook-be/internal/apperr"
	"fitbook-be/internal/dto"
	"fitbook-be/internal/entity"
	"fitbook-be/internal/repository/specification"
	"fitbook-be/internal/repository/unitofwork"
	"fitbook-be/pkg/events"
	pktNats "fitbook-be/pkg/nats"

	"github.com/google/uuid"
)

type ICreditService interface {
	Balance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error)
	History(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditTransactionResponse, error)
	SpendCredits(ctx context.Context, userId uuid.UUID, amount int64, note string) (*dto.CreditMutationResponse, error)
	AddCredits(ctx context.Context, userId uuid.UUID, amount int64, reason entity.CreditReason, note string) (*dto.CreditMutationResponse, error)
	GiftCredits(ctx context.Context, req *dto.GiftCreditsRequest) (*dto.CreditMutationResponse, error)
	CompleteCreditPurchase(ctx context.Context, paymentIntentId string) error
}

type creditService struct {
	uowFactory     unitofwork.RepositoryFactory
	ledger         creditLedger
	eventPublisher *pktNats.Publisher
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) ICreditService {
	return &creditService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *creditService) Balance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return &dto.CreditBalanceResponse{Balance: user.Credits}, nil
}

func (s *creditService) History(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.CreditTransactionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	transactions, err := uow.CreditRepository().FindAllTransactions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.CreditTransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, &dto.CreditTransactionResponse{
			Id:        tx.Id,
			Amount:    tx.Amount,
			Direction: tx.Direction,
			Reason:    tx.Reason,
			Note:      tx.Note,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out, nil
}

func (s *creditService) SpendCredits(ctx context.Context, userId uuid.UUID, amount int64, note string) (*dto.CreditMutationResponse, error) {
	if amount <= 0 {
		return nil, apperr.Validation("amount", "spend amount must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	tx, err := s.ledger.spend(ctx, uow, userId, amount, entity.CreditReasonBooking, note, nil)
	if err != nil {
		return nil, err
	}

	balance, err := s.balanceInTx(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &dto.CreditMutationResponse{TransactionId: tx.Id, Amount: tx.Amount, Balance: balance}, nil
}

func (s *creditService) AddCredits(ctx context.Context, userId uuid.UUID, amount int64, reason entity.CreditReason, note string) (*dto.CreditMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	tx, err := s.ledger.grant(ctx, uow, userId, amount, reason, note, grantOptions{})
	if err != nil {
		return nil, err
	}

	balance, err := s.balanceInTx(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &dto.CreditMutationResponse{TransactionId: tx.Id, Amount: tx.Amount, Balance: balance}, nil
}

// balanceInTx reads the cached balance through the caller's transaction so
// the returned figure is the one this mutation produced.
func (s *creditService) balanceInTx(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int64, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperr.NotFound("user")
	}
	return user.Credits, nil
}

func (s *creditService) GiftCredits(ctx context.Context, req *dto.GiftCreditsRequest) (*dto.CreditMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	res, err := s.AddCredits(ctx, req.UserId, req.Amount, entity.CreditReasonGift, req.Note)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewCreditsGranted(map[string]interface{}{
			"user_id": req.UserId,
			"amount":  req.Amount,
			"reason":  string(entity.CreditReasonGift),
		})
		// The grant already committed, notification delivery is auxiliary.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish CREDITS_GRANTED event: %v\n", err)
		}
	}
	return res, nil
}

func (s *creditService) CompleteCreditPurchase(ctx context.Context, paymentIntentId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := s.ledger.completePurchase(ctx, uow, paymentIntentId); err != nil {
		return err
	}

	return uow.Commit()
}
