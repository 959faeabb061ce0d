package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/banking-service/shared/auth"
	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/eaglebank/banking-service/shared/utils"
	"github.com/google/uuid"
)

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(userID, username string) (auth.Token, error)
}

// AuthQueryService checks credentials and hands out session tokens. It reads
// users but never changes them.
type AuthQueryService struct {
	users  UserFinder
	tokens TokenIssuer
	logger logging.Logger

	// dummyHash is compared against when the email is unknown, so both
	// failure paths pay for one bcrypt comparison.
	dummyHash string
}

func NewAuthQueryService(users UserFinder, tokens TokenIssuer, logger logging.Logger) (*AuthQueryService, error) {
	dummyHash, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credential check: %w", err)
	}
	return &AuthQueryService{
		users:     users,
		tokens:    tokens,
		logger:    logger.With("service", "auth_query"),
		dummyHash: dummyHash,
	}, nil
}

// Authenticate returns the user owning email and password. An unknown email
// and a wrong password both yield models.ErrInvalidCredentials.
func (s *AuthQueryService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if errors.Is(err, models.ErrUserNotFound) {
		utils.CheckPassword(password, s.dummyHash)
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (auth.Token, error) {
	user, err := s.Authenticate(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return auth.Token{}, err
	}
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return auth.Token{}, err
	}
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}
