package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"theray/handlers"
	"theray/utils"

	"github.com/gin-gonic/gin"
)

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func testBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		JWTSecret:                   "secret",
		CreateSessionHandler:        okHandler,
		ListSessionsHandler:         okHandler,
		GetSessionHandler:           okHandler,
		UpdateSessionHandler:        okHandler,
		CancelSessionHandler:        okHandler,
		ProviderAvailabilityHandler: okHandler,
		HealthHandler:               okHandler,
	}
}

func serve(r http.Handler, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, testBundle())

	client, _ := utils.GenerateToken("secret", "user-1", "client", time.Hour)
	provider, _ := utils.GenerateToken("secret", "user-2", "provider", time.Hour)

	tests := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/sessions", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/sessions", client, http.StatusOK},
		{http.MethodPost, "/api/sessions", client, http.StatusOK},
		{http.MethodPost, "/api/sessions", provider, http.StatusForbidden},
		{http.MethodPut, "/api/sessions/s1", provider, http.StatusOK},
		{http.MethodPatch, "/api/sessions/s1/cancel", provider, http.StatusOK},
		{http.MethodGet, "/api/providers/p1/availability", client, http.StatusOK},
	}
	for _, tt := range tests {
		if got := serve(r, tt.method, tt.path, tt.token); got != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, got)
		}
	}
}
