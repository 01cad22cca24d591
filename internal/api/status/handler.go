package status

import (
	"net/http"

	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/ai-discovery/discovery-backend/internal/pkg/response"
)

const (
	statusOnline  = "online"
	statusHealthy = "healthy"
	serviceName   = "AI Discovery Backend API"
)

type Handler struct {
	environment string
	project     string
}

func NewHandler(environment, project string) *Handler {
	return &Handler{
		environment: environment,
		project:     project,
	}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.StatusResponse{
		Status:  statusOnline,
		Message: serviceName,
	})
}

// Health handles GET /health. The completion provider is not probed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.HealthResponse{
		Status:      statusHealthy,
		Environment: h.environment,
		Project:     h.project,
	})
}
