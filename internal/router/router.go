package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crossgate/internal/config"
	"crossgate/internal/handler"
	"crossgate/internal/middleware"
	"crossgate/internal/port"
)

// Source configures the source application's gin engine: the token
// exchange endpoint plus health checks.
func Source(
	exchangeH *handler.ExchangeHandler,
	healthH *handler.HealthHandler,
	corsCfg config.CORSConfig,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsCfg.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.POST("/api/auth/custom-token", exchangeH.CustomToken)

	return r
}

// Target configures the target application's gin engine: the SSO
// redemption route and the session-protected API surface.
func Target(
	ssoH *handler.SSOHandler,
	sessionH *handler.SessionHandler,
	healthH *handler.HealthHandler,
	sessions port.SessionIssuer,
	corsCfg config.CORSConfig,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsCfg.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Redemption route; the handshake lands here
	r.GET("/sso", ssoH.Redeem)

	// Protected routes - require an established session
	api := r.Group("/api/session")
	api.Use(middleware.SessionAuth(sessions))
	api.GET("/me", sessionH.Me)
	api.POST("/logout", sessionH.Logout)

	return r
}
