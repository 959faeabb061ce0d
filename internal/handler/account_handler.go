package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	OpenAccount(context.Context, cqrs.OpenAccountCommand) (*models.Account, error)
	Deposit(context.Context, cqrs.DepositCommand) (*models.AccountView, error)
	Withdraw(context.Context, cqrs.WithdrawCommand) (*models.AccountView, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetBalance(context.Context, cqrs.GetBalanceQuery) (*models.AccountView, error)
}

// AccountHandler handles account-related HTTP requests. Every route acts on
// the caller's own account.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
	logger   logging.Logger
}

// OpenAccountRequest may be omitted entirely; a missing or unusable
// initialBalance opens the account at zero.
type OpenAccountRequest struct {
	InitialBalance Amount `json:"initialBalance"`
}

type AmountRequest struct {
	Amount Amount `json:"amount" validate:"required"`
}

type BalanceResponse struct {
	AccountNumber int64           `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier, logger logging.Logger) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries, logger: logger}
}

func (h *AccountHandler) OpenAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req OpenAccountRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	account, err := h.commands.OpenAccount(c.Request.Context(), cqrs.OpenAccountCommand{
		UserID:            userID,
		RawInitialBalance: string(req.InitialBalance),
	})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to open account")
		return
	}

	c.JSON(http.StatusCreated, BalanceResponse{AccountNumber: account.AccountNumber, Balance: account.Balance})
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}

	view, err := h.commands.Deposit(c.Request.Context(), cqrs.DepositCommand{UserID: userID, Amount: amount})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{AccountNumber: view.AccountNumber, Balance: view.Balance})
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}

	view, err := h.commands.Withdraw(c.Request.Context(), cqrs.WithdrawCommand{UserID: userID, Amount: amount})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{AccountNumber: view.AccountNumber, Balance: view.Balance})
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetBalance(c.Request.Context(), cqrs.GetBalanceQuery{UserID: userID})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{AccountNumber: view.AccountNumber, Balance: view.Balance})
}

func (h *AccountHandler) bindAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return decimal.Zero, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return decimal.Zero, false
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Invalid amount")
		return decimal.Zero, false
	}
	return amount, true
}
