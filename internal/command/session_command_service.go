package command

import (
	"context"
	"time"

	"github.com/eaglebank/banking-service/shared/cqrs"
)

type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// SessionCommandService ends sessions.
type SessionCommandService struct {
	sessions SessionRevoker
}

func NewSessionCommandService(sessions SessionRevoker) *SessionCommandService {
	return &SessionCommandService{sessions: sessions}
}

// Logout revokes the token for the rest of its lifetime.
func (s *SessionCommandService) Logout(ctx context.Context, cmd cqrs.LogoutCommand) error {
	return s.sessions.Revoke(ctx, cmd.TokenID, cmd.ExpiresAt)
}
