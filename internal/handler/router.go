package handler

import (
	"net/http"
	"time"

	"github.com/eaglebank/banking-service/shared/logging"
	"github.com/eaglebank/banking-service/shared/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Accounts *AccountHandler
}

// NewRouter builds the HTTP surface. requireAuth guards every route except
// registration, login and the health check.
func NewRouter(h Handlers, requireAuth gin.HandlerFunc, allowedOrigins []string, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/v1/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
	}

	r.GET("/v1/dashboard", requireAuth, h.Users.Dashboard)

	accounts := r.Group("/v1/accounts", requireAuth)
	{
		accounts.POST("", h.Accounts.OpenAccount)
		accounts.POST("/deposit", h.Accounts.Deposit)
		accounts.POST("/withdraw", h.Accounts.Withdraw)
		accounts.GET("/balance", h.Accounts.GetBalance)
	}

	return r
}
