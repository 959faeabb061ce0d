package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/events"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/eaglebank/banking-service/shared/utils"
)

type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
}

type UserViewCache interface {
	CacheUserView(ctx context.Context, view *models.UserView)
}

// UserCommandService writes user state to PostgreSQL and keeps the Redis
// read model up to date.
type UserCommandService struct {
	writeRepo UserWriter
	readRepo  UserViewCache
	publisher EventPublisher
	logger    logging.Logger
}

func NewUserCommandService(
	writeRepo UserWriter,
	readRepo UserViewCache,
	publisher EventPublisher,
	logger logging.Logger,
) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		logger:    logger.With("service", "user_command"),
	}
}

// Register creates a user. Email is stored trimmed and lower-cased so that
// uniqueness and login ignore case. Returns models.ErrAlreadyExists when the
// email or username is taken.
func (s *UserCommandService) Register(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Name:         strings.TrimSpace(cmd.Name),
		Email:        utils.NormalizeEmail(cmd.Email),
		Username:     strings.TrimSpace(cmd.Username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.writeRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.readRepo.CacheUserView(ctx, models.UserToView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}); err != nil {
		s.logger.Warn(ctx, "failed to publish event", "event", events.UserRegistered, "user_id", user.ID, "error", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}
