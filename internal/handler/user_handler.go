package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/gin-gonic/gin"
)

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	Dashboard(context.Context, cqrs.DashboardQuery) (*models.DashboardView, error)
}

type UserHandler struct {
	queries UserQuerier
	logger  logging.Logger
}

func NewUserHandler(queries UserQuerier, logger logging.Logger) *UserHandler {
	return &UserHandler{queries: queries, logger: logger}
}

func (h *UserHandler) Dashboard(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.Dashboard(c.Request.Context(), cqrs.DashboardQuery{UserID: userID})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, view)
}
