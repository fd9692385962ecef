package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront/api/internal/config"
	"storefront/api/internal/middleware"
	"storefront/api/internal/models"
	"storefront/api/internal/repository"
	"storefront/api/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	store       repository.CredentialStore
	cache       *redis.Client
}

// NewHandlerSet wires the auth core. The credential store is injected so
// the same handlers run against postgres in production and the in-memory
// store in tests; cache and audit may be nil.
func NewHandlerSet(
	log zerolog.Logger,
	store repository.CredentialStore,
	audit repository.AuditStore,
	cache *redis.Client,
	cfg *config.AppConfig,
) HandlerSet {
	limiter := service.NewLoginLimiter(cache, cfg.Security.LoginAttempts, cfg.Security.LoginWindow, log)
	auth := service.NewAuthService(store, audit, limiter, cfg, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		store:       store,
		cache:       cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	protected := router.Group("/auth")
	protected.Use(middleware.Auth(h.cfg, h.store))
	protected.GET("/me", h.Me)
	protected.POST("/change-password", h.ChangePassword)

	admin := router.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg, h.store),
		middleware.RequireRole(models.RoleAdmin),
	)
	admin.GET("/users", h.AdminListUsers)
	admin.PUT("/users/:id/role", h.AdminChangeRole)
	admin.PUT("/users/:id/active", h.AdminSetActive)
	admin.DELETE("/users/:id", h.AdminDeleteUser)
}
