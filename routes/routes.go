package routes

import (
	"time"

	"theray/config"
	"theray/handlers"
	"theray/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/health", hb.HealthHandler)
}

// RegisterSessionRoutes sets up the session booking and lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sessions := r.Group("/api/sessions")
	{
		sessions.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		sessions.POST("", middleware.RequireRole("client"), hb.CreateSessionHandler)
		sessions.GET("", hb.ListSessionsHandler)
		sessions.GET("/:id", hb.GetSessionHandler)
		sessions.PUT("/:id", hb.UpdateSessionHandler)
		sessions.PATCH("/:id/cancel", hb.CancelSessionHandler)
	}
}

// RegisterProviderRoutes sets up the read-only provider endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	providers := r.Group("/api/providers")
	{
		providers.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		providers.GET("/:id/availability", hb.ProviderAvailabilityHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	corsConfig := cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		// cors rejects an empty allow-list; fall back to open, credential-less CORS.
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
}
