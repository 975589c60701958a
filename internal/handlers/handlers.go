package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stedonnelly/accountd/internal/config"
	"github.com/stedonnelly/accountd/internal/middleware"
	"github.com/stedonnelly/accountd/internal/repository"
	"github.com/stedonnelly/accountd/internal/security"
	"github.com/stedonnelly/accountd/internal/service"
)

type HandlerSet struct {
	log    zerolog.Logger
	cfg    *config.AppConfig
	auth   *service.AuthService
	policy security.CookiePolicy
	db     *pgxpool.Pool
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	signer := security.NewCookieSigner(cfg.Session.Secret, cfg.Session.MaxAge)
	auth := service.NewAuthService(userRepo, sessionRepo, signer, cfg.Session.MaxAge, log)
	policy := security.NewCookiePolicy(cfg.Session.CookieName, cfg.Session.MaxAge, cfg.Session.SecureCookies)

	return HandlerSet{
		log:    log,
		cfg:    cfg,
		auth:   auth,
		policy: policy,
		db:     db,
	}
}

// NewHandlerSetWith wires a HandlerSet around pre-built collaborators.
// Tests use it to swap the repositories for in-memory stores.
func NewHandlerSetWith(log zerolog.Logger, cfg *config.AppConfig, auth *service.AuthService, db *pgxpool.Pool) HandlerSet {
	return HandlerSet{
		log:    log,
		cfg:    cfg,
		auth:   auth,
		policy: security.NewCookiePolicy(cfg.Session.CookieName, cfg.Session.MaxAge, cfg.Session.SecureCookies),
		db:     db,
	}
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	v1 := router.Group("/v1")
	{
		health := v1.Group("/health")
		health.GET("/healthz", h.Healthz)
		health.GET("/readyz", h.Readyz)

		users := v1.Group("/users")
		users.POST("", h.CreateUser)

		auth := v1.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		protected := v1.Group("/auth")
		protected.Use(middleware.Auth(h.cfg.Session.CookieName, h.auth))
		protected.GET("/me", h.Me)
	}
}
