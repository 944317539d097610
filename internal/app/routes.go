package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"Lucky/internal/auth"
	"Lucky/internal/cache"
	"Lucky/internal/config"
	"Lucky/internal/game"
	"Lucky/internal/handlers"
	"Lucky/internal/logging"
	"Lucky/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine and seeds default settings.
func Setup(r *gin.Engine, cfg config.Config, log logging.Logger, st stores, rdb *redis.Client) error {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	ttl := cfg.Auth.SessionTTL.Duration()
	sessions := auth.NewManager(
		auth.NewStore(rdb, ttl),
		auth.NewSigner(cfg.Auth.SecretKey, ttl),
		cfg.Auth.CookieSecure,
	)
	limiter := auth.NewIPLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)
	r.Use(sessions.Sessions())
	r.GET("/", indexHandler())

	settingsSvc := service.NewSettingsService(st.settings, cache.NewSettingsCache(rdb, cfg.Redis.DefaultTTL.Duration()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := settingsSvc.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	accountSvc := service.NewAccountService(st.accounts)
	authHandler := handlers.NewAuthHandler(sessions, accountSvc, log.With("handler", "auth"))
	registerAuthRoutes(r, authHandler, limiter)

	playSvc := service.NewPlayService(st.accounts, settingsSvc, game.NewEngine(nil))
	playHandler := handlers.NewPlayHandler(accountSvc, playSvc, log.With("handler", "play"))
	registerPlayRoutes(r.Group("", auth.RequireAccount()), playHandler)

	adminSvc := service.NewAdminService(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, st.accounts, settingsSvc)
	adminHandler := handlers.NewAdminHandler(sessions, adminSvc, log.With("handler", "admin"))
	registerAdminRoutes(r.Group("/admin"), adminHandler, limiter)
	return nil
}

func indexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.SessionFromContext(c).Account(); ok {
			c.Redirect(http.StatusSeeOther, "/play")
			return
		}
		c.Redirect(http.StatusSeeOther, auth.LoginPath)
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env, "store": cfg.Store.Driver})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler, limiter *auth.IPLimiter) {
	r.POST("/register", limiter.Middleware(), h.Register)
	r.POST("/login", limiter.Middleware(), h.Login)
	r.GET("/logout", h.Logout)
}

func registerPlayRoutes(g *gin.RouterGroup, h *handlers.PlayHandler) {
	g.GET("/play", h.Status)
	g.POST("/play", h.Play)
}

func registerAdminRoutes(g *gin.RouterGroup, h *handlers.AdminHandler, limiter *auth.IPLimiter) {
	g.POST("/login", limiter.Middleware(), h.Login)
	g.GET("/logout", h.Logout)

	protected := g.Group("", auth.RequireAdmin())
	protected.GET("/dashboard", h.Dashboard)
	protected.POST("/dashboard", h.UpdateLossProb)
	protected.GET("/create_demo/:user_id", h.CreateDemo)
}
