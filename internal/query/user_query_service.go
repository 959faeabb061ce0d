package query

import (
	"context"
	"errors"

	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/models"
)

type UserViewReader interface {
	GetByID(ctx context.Context, id string) (*models.UserView, error)
}

type AccountViewReader interface {
	GetByUserID(ctx context.Context, userID string) (*models.AccountView, error)
}

type UserQueryService struct {
	users    UserViewReader
	accounts AccountViewReader
}

func NewUserQueryService(users UserViewReader, accounts AccountViewReader) *UserQueryService {
	return &UserQueryService{users: users, accounts: accounts}
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
	return s.users.GetByID(ctx, q.UserID)
}

// Dashboard returns the caller's profile; Account is nil until one is opened.
func (s *UserQueryService) Dashboard(ctx context.Context, q cqrs.DashboardQuery) (*models.DashboardView, error) {
	user, err := s.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.DashboardView{
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
	account, err := s.accounts.GetByUserID(ctx, q.UserID)
	switch {
	case errors.Is(err, models.ErrNoAccount):
	case err != nil:
		return nil, err
	default:
		dashboard.Account = account
	}
	return dashboard, nil
}
