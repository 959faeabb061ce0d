package handler

import (
	"errors"
	"net/http"

	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{models.ErrAlreadyExists, http.StatusConflict, "A user with that email or username already exists"},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{models.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{models.ErrAlreadyHasAccount, http.StatusConflict, "You already have an account"},
	{models.ErrNoAccount, http.StatusNotFound, "Account not found"},
	{models.ErrInvalidAmount, http.StatusBadRequest, "Amount must be greater than zero with at most two decimal places"},
	{models.ErrInsufficientFunds, http.StatusUnprocessableEntity, "Insufficient funds"},
	{models.ErrBalanceLimitExceeded, http.StatusUnprocessableEntity, "Deposit would exceed the maximum balance"},
	{models.ErrAccountNumberSpaceExhausted, http.StatusServiceUnavailable, "No account numbers available, try again later"},
}

// respondWithServiceError maps domain errors to their status codes. Anything
// else is logged and reported as a 500 with the given message.
func respondWithServiceError(c *gin.Context, logger logging.Logger, err error, message string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			middleware.RespondWithError(c, m.status, m.message)
			return
		}
	}
	logger.Error(c.Request.Context(), message,
		"request_id", middleware.GetRequestID(c),
		"path", c.FullPath(),
		"error", err,
	)
	middleware.RespondWithError(c, http.StatusInternalServerError, message)
}
