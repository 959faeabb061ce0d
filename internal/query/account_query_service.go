package query

import (
	"context"

	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/models"
)

type AccountQueryService struct {
	readRepo AccountViewReader
}

func NewAccountQueryService(readRepo AccountViewReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// GetBalance returns models.ErrNoAccount when the user has not opened an account.
func (s *AccountQueryService) GetBalance(ctx context.Context, q cqrs.GetBalanceQuery) (*models.AccountView, error) {
	return s.readRepo.GetByUserID(ctx, q.UserID)
}
