package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	JWTSecret string

	// Session endpoints
	CreateSessionHandler gin.HandlerFunc
	ListSessionsHandler  gin.HandlerFunc
	GetSessionHandler    gin.HandlerFunc
	UpdateSessionHandler gin.HandlerFunc
	CancelSessionHandler gin.HandlerFunc

	// Provider endpoints
	ProviderAvailabilityHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires a bundle from the session handler.
func NewHandlerBundle(sh *SessionHandler, jwtSecret string) *HandlerBundle {
	return &HandlerBundle{
		JWTSecret:                   jwtSecret,
		CreateSessionHandler:        sh.CreateSessionHandler,
		ListSessionsHandler:         sh.ListSessionsHandler,
		GetSessionHandler:           sh.GetSessionHandler,
		UpdateSessionHandler:        sh.UpdateSessionHandler,
		CancelSessionHandler:        sh.CancelSessionHandler,
		ProviderAvailabilityHandler: sh.ProviderAvailabilityHandler,
		HealthHandler:               HealthHandler,
	}
}
