package command

import (
	"context"
	"testing"
	"time"

	"github.com/eaglebank/banking-service/internal/query"
	"github.com/eaglebank/banking-service/shared/auth"
	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAliceScenario walks one customer through the whole lifecycle against
// the in-memory stores.
func TestAliceScenario(t *testing.T) {
	ctx := context.Background()
	users := newMemUserStore()
	accounts := newMemAccountStore()
	cache := &recordingCache{}
	pub := &recordingPublisher{}

	userCmds := NewUserCommandService(users, cache, pub, logging.Discard())
	accountCmds := NewAccountCommandService(accounts, cache, pub, defaultRange, logging.Discard())
	authQueries, err := query.NewAuthQueryService(users, auth.NewTokenManager("scenario-secret-123", time.Hour), logging.Discard())
	require.NoError(t, err)
	accountQueries := query.NewAccountQueryService(accountViews{accounts})
	userQueries := query.NewUserQueryService(users, accountViews{accounts})

	registered, err := userCmds.Register(ctx, cqrs.RegisterUserCommand{
		Name: "Alice", Email: "a@x", Username: "alice", Password: "pw1",
	})
	require.NoError(t, err)

	user, err := authQueries.Authenticate(ctx, "a@x", "pw1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = authQueries.Authenticate(ctx, "a@x", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	dash, err := userQueries.Dashboard(ctx, cqrs.DashboardQuery{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "alice", dash.Username)
	assert.Nil(t, dash.Account)

	opened, err := accountCmds.OpenAccount(ctx, cqrs.OpenAccountCommand{UserID: user.ID, RawInitialBalance: "100"})
	require.NoError(t, err)
	assert.True(t, opened.Balance.Equal(dec("100")))

	view, err := accountCmds.Deposit(ctx, cqrs.DepositCommand{UserID: user.ID, Amount: dec("50")})
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(dec("150")))

	view, err = accountCmds.Withdraw(ctx, cqrs.WithdrawCommand{UserID: user.ID, Amount: dec("30")})
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(dec("120")))

	_, err = accountCmds.Withdraw(ctx, cqrs.WithdrawCommand{UserID: user.ID, Amount: dec("500")})
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	balance, err := accountQueries.GetBalance(ctx, cqrs.GetBalanceQuery{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, opened.AccountNumber, balance.AccountNumber)
	assert.True(t, balance.Balance.Equal(dec("120")))

	dash, err = userQueries.Dashboard(ctx, cqrs.DashboardQuery{UserID: user.ID})
	require.NoError(t, err)
	require.NotNil(t, dash.Account)
	assert.Equal(t, opened.AccountNumber, dash.Account.AccountNumber)
}
