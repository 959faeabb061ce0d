package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/eaglebank/banking-service/shared/auth"
	"github.com/eaglebank/banking-service/shared/cqrs"
	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	"github.com/eaglebank/banking-service/shared/models"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side user operations used by AuthHandler.
type UserCommander interface {
	Register(context.Context, cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthQuerier defines the credential check used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (auth.Token, error)
}

// SessionCommander ends sessions.
type SessionCommander interface {
	Logout(context.Context, cqrs.LogoutCommand) error
}

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	users        UserCommander
	queries      AuthQuerier
	sessions     SessionCommander
	secureCookie bool
	logger       logging.Logger
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	// bcrypt only looks at the first 72 bytes.
	Password string `json:"password" validate:"required,max=72"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewAuthHandler(users UserCommander, queries AuthQuerier, sessions SessionCommander, secureCookie bool, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		queries:      queries,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Register(c.Request.Context(), cqrs.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to register user")
		return
	}

	c.Header("Location", "/v1/auth/login")
	c.JSON(http.StatusCreated, RegisterResponse{ID: user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to log in")
		return
	}

	maxAge := int(time.Until(token.ExpiresAt).Seconds())
	h.setSessionCookie(c, token.Value, maxAge)
	c.JSON(http.StatusOK, AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, expiresAt, ok := middleware.GetToken(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), cqrs.LogoutCommand{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}); err != nil {
		respondWithServiceError(c, h.logger, err, "Failed to log out")
		return
	}

	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
