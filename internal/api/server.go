package api

import (
	"net/http"
	"time"

	chatapi "github.com/ai-discovery/discovery-backend/internal/api/chat"
	"github.com/ai-discovery/discovery-backend/internal/api/docs"
	"github.com/ai-discovery/discovery-backend/internal/api/middleware"
	statusapi "github.com/ai-discovery/discovery-backend/internal/api/status"
	"github.com/ai-discovery/discovery-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(statusHandler *statusapi.Handler, chatHandler *chatapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	statusapi.RegisterRoutes(r, statusHandler)
	chatapi.RegisterRoutes(r, chatHandler)

	return r
}
