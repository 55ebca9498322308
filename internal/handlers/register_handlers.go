package handlers

import (
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/middleware"
	"github.com/SscSPs/orbit_finance/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// APIBasePath prefixes every API route.
const APIBasePath = "/api/v1"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r.Group(APIBasePath), cfg, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group(APIBasePath, middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerWorkspaceRoutes(v1, services)
	registerTransactionRoutes(v1, services.Transaction, services.User)
	registerAdminRoutes(v1, services.Admin)
}
